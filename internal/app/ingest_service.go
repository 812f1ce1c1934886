// Package app wires the pipeline stages together behind the primary ports.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/lotledger/internal/core/normalize"
	"github.com/example/lotledger/internal/core/reconcile"
	"github.com/example/lotledger/internal/core/split"
	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/primary"
	"github.com/example/lotledger/internal/ports/secondary"
)

// IngestServiceImpl implements primary.IngestService: split → normalize →
// debtor guard → reconcile / cancel / error sink.
type IngestServiceImpl struct {
	engine  *reconcile.Engine
	debtors secondary.DebtorDirectory
	errors  secondary.ErrorSink
	log     zerolog.Logger
}

// NewIngestService creates an IngestService with injected dependencies.
func NewIngestService(
	engine *reconcile.Engine,
	debtors secondary.DebtorDirectory,
	errorSink secondary.ErrorSink,
	log zerolog.Logger,
) *IngestServiceImpl {
	return &IngestServiceImpl{
		engine:  engine,
		debtors: debtors,
		errors:  errorSink,
		log:     log,
	}
}

// ProcessMessage splits, normalizes and reconciles one raw message.
func (s *IngestServiceImpl) ProcessMessage(ctx context.Context, raw models.RawMessage) (*primary.Report, error) {
	report := &primary.Report{Messages: 1}

	rows := split.Explode(raw)
	candidates := normalize.Candidates(rows)
	report.Candidates = len(candidates)

	for _, lot := range candidates {
		if err := s.processCandidate(ctx, lot, report); err != nil {
			// Storage failure: the candidate's transaction rolled back,
			// the caller decides retry policy.
			return report, fmt.Errorf("failed to reconcile message %s: %w", lot.MessageNumber, err)
		}
	}
	return report, nil
}

// ProcessBatch processes messages in order and aggregates the report.
func (s *IngestServiceImpl) ProcessBatch(ctx context.Context, raws []models.RawMessage) (*primary.Report, error) {
	total := &primary.Report{}
	for _, raw := range raws {
		report, err := s.ProcessMessage(ctx, raw)
		total.Merge(report)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// processCandidate routes one candidate. Only storage failures return an
// error; everything else is counted, logged and absorbed.
func (s *IngestServiceImpl) processCandidate(ctx context.Context, lot *models.Lot, report *primary.Report) error {
	if !lot.Kind.Recognized() {
		s.log.Warn().
			Str("message_type", string(lot.Kind)).
			Str("message_number", lot.MessageNumber).
			Msg("unhandled message kind, candidate dropped")
		report.Unhandled++
		return nil
	}

	if lot.DebtorINN == "" {
		s.log.Error().
			Str("message_number", lot.MessageNumber).
			Msg("candidate carries no debtor INN")
		report.Rejected++
		return nil
	}

	exists, err := s.debtors.Exists(ctx, lot.DebtorINN)
	if err != nil {
		return fmt.Errorf("failed to check debtor directory: %w", err)
	}
	if !exists {
		// The directory builder runs separately and is expected to
		// backfill; no retry is scheduled here.
		s.log.Warn().
			Str("debtor_inn", lot.DebtorINN).
			Str("message_number", lot.MessageNumber).
			Msg("debtor not found in directory, candidate rejected")
		report.Rejected++
		return nil
	}

	if lot.Kind == models.KindCancellation {
		res, err := s.engine.Cancel(ctx, lot)
		if err != nil {
			return err
		}
		report.Cancelled += int(res.Cancelled)
		return nil
	}

	res, err := s.engine.Reconcile(ctx, lot)
	if errors.Is(err, reconcile.ErrNoLotNumber) {
		s.log.Info().
			Str("debtor_inn", lot.DebtorINN).
			Str("lot_number", lot.LotNumber).
			Msg("candidate has no usable lot number, diverted to error sink")
		if sinkErr := s.errors.Insert(ctx, lot); sinkErr != nil {
			return sinkErr
		}
		report.Errored++
		return nil
	}
	if err != nil {
		return err
	}

	if res.Status == models.StatusToUpdate {
		report.Updated++
	} else {
		report.New++
	}
	return nil
}
