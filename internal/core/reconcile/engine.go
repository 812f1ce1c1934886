// Package reconcile decides, for each observed lot candidate, whether it is
// a brand-new lot, an update to an existing lot, or a cancellation, and
// mutates the versioned lot store accordingly. One parametrized engine
// serves every kind; per-kind behavior lives in the strategy table.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/secondary"
)

// ErrNoLotNumber marks a candidate whose lot number does not parse as a
// numeric token. Such candidates cannot be matched safely and belong in the
// error sink.
var ErrNoLotNumber = errors.New("lot number is not number-like")

// ErrUnhandledKind marks a candidate whose kind has no reconciliation
// strategy.
var ErrUnhandledKind = errors.New("no reconciliation strategy for kind")

// Result describes the outcome of one candidate's reconciliation.
type Result struct {
	// Status is the lot status assigned to the inserted row.
	Status models.LotStatus

	// Archived is the number of prior versions moved to the archive.
	Archived int

	// Cancelled is the number of rows flipped to pending deletion.
	Cancelled int64
}

// Engine reconciles candidates against a lot store.
type Engine struct {
	store secondary.LotStore
	key   secondary.MatchKey
	log   zerolog.Logger
}

// New creates an engine matching on the given identity key.
func New(store secondary.LotStore, key secondary.MatchKey, log zerolog.Logger) *Engine {
	if !key.Valid() {
		key = secondary.MatchByDebtorINN
	}
	return &Engine{store: store, key: key, log: log}
}

// Reconcile runs the match → archive+delete → insert sequence for one
// candidate inside a single store transaction. The candidate's lineage
// fields and status are set in place before insertion:
//
//   - PrevMessageNumber becomes the first matched row's message number, or
//     empty for a brand-new lot;
//   - Status becomes ToUpdate when anything matched, New otherwise.
//
// On any storage failure the transaction rolls back and the store is left
// exactly as it was; the caller may retry with the same candidate.
func (e *Engine) Reconcile(ctx context.Context, lot *models.Lot) (*Result, error) {
	strat, ok := strategies[lot.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnhandledKind, lot.Kind)
	}
	if strat.requiresLotNumber && !numberLike(lot.LotNumber) {
		return nil, fmt.Errorf("%w: %q", ErrNoLotNumber, lot.LotNumber)
	}

	filter := strat.filter(lot, e.key)
	res := &Result{}

	err := e.store.WithinTx(ctx, func(tx secondary.LotTx) error {
		matches, err := tx.FindCurrent(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to match current lots: %w", err)
		}

		if len(matches) > 1 {
			// Data inconsistency: the at-most-one-current invariant was
			// already violated. Tolerated; every matched row is archived.
			e.log.Warn().
				Str("key", filter.KeyValue).
				Str("lot_number", lot.LotNumber).
				Int("matches", len(matches)).
				Msg("multiple current rows matched one lot key")
		}

		for _, m := range matches {
			if err := tx.Archive(ctx, m); err != nil {
				return fmt.Errorf("failed to archive lot %d: %w", m.ID, err)
			}
			if err := tx.DeleteCurrent(ctx, m); err != nil {
				return fmt.Errorf("failed to delete superseded lot %d: %w", m.ID, err)
			}
		}

		if len(matches) > 0 {
			lot.PrevMessageNumber = matches[0].MessageNumber
			lot.Status = models.StatusToUpdate
		} else {
			lot.PrevMessageNumber = ""
			lot.Status = models.StatusNew
		}

		if err := tx.InsertCurrent(ctx, lot); err != nil {
			return fmt.Errorf("failed to insert current lot: %w", err)
		}

		res.Status = lot.Status
		res.Archived = len(matches)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("kind", string(lot.Kind)).
		Str("message_number", lot.MessageNumber).
		Str("lot_number", lot.LotNumber).
		Str("status", string(res.Status)).
		Int("archived", res.Archived).
		Msg("lot reconciled")
	return res, nil
}

// Cancel flips current rows referenced by a cancellation candidate to
// pending deletion. The rows stay in the current store. Idempotent: rows
// already pending deletion are not counted again, and a missing target is
// not an error.
func (e *Engine) Cancel(ctx context.Context, lot *models.Lot) (*Result, error) {
	if lot.PrevMessageNumber == "" {
		e.log.Info().
			Str("message_number", lot.MessageNumber).
			Msg("cancellation carries no prior message reference, nothing to cancel")
		return &Result{}, nil
	}

	res := &Result{}
	err := e.store.WithinTx(ctx, func(tx secondary.LotTx) error {
		n, err := tx.UpdateStatus(ctx, lot.PrevMessageNumber, models.StatusPendingDeletion)
		if err != nil {
			return fmt.Errorf("failed to mark lots pending deletion: %w", err)
		}
		res.Cancelled = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("cancelled_message_number", lot.PrevMessageNumber).
		Int64("rows", res.Cancelled).
		Msg("cancellation applied")
	return res, nil
}
