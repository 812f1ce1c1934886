// Package primary defines the primary ports (driving adapters) for the
// pipeline: the interfaces the CLI and any future schedulers call into.
package primary

import (
	"context"

	"github.com/example/lotledger/internal/models"
)

// IngestService reconciles extracted registry messages into the lot store.
type IngestService interface {
	// ProcessMessage splits, normalizes and reconciles one raw message.
	// Per-candidate problems (unknown debtor, unusable lot number,
	// unhandled kind) never fail the message; only storage failures do.
	ProcessMessage(ctx context.Context, raw models.RawMessage) (*Report, error)

	// ProcessBatch processes messages in order and aggregates the report.
	// It stops at the first storage failure, returning the partial report
	// so the caller can retry from the failed message.
	ProcessBatch(ctx context.Context, raws []models.RawMessage) (*Report, error)
}

// Report aggregates pipeline outcomes for one or more messages.
type Report struct {
	Messages   int // raw messages processed
	Candidates int // lot candidates after split + normalize
	New        int // inserted as brand-new lots
	Updated    int // inserted superseding archived versions
	Cancelled  int // rows flipped to pending deletion
	Rejected   int // debtor guard rejections
	Unhandled  int // unrecognized message kinds
	Errored    int // diverted to the error sink
}

// Merge adds other's counters into r.
func (r *Report) Merge(other *Report) {
	r.Messages += other.Messages
	r.Candidates += other.Candidates
	r.New += other.New
	r.Updated += other.Updated
	r.Cancelled += other.Cancelled
	r.Rejected += other.Rejected
	r.Unhandled += other.Unhandled
	r.Errored += other.Errored
}
