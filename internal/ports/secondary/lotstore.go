// Package secondary defines the secondary ports (driven adapters) for the
// pipeline: the lot store, the debtor directory, and the error sink. The
// application drives external storage exclusively through these interfaces.
package secondary

import (
	"context"

	"github.com/example/lotledger/internal/models"
)

// MatchKey selects which identity field non-valuation matching keys on.
// Historical data keyed on either, so the choice is configuration.
type MatchKey string

const (
	MatchByDebtorINN  MatchKey = "debtor_inn"
	MatchByCaseNumber MatchKey = "case_number"
)

// Valid reports whether the match key is a known value.
func (k MatchKey) Valid() bool {
	return k == MatchByDebtorINN || k == MatchByCaseNumber
}

// MatchFilter selects current lot rows for reconciliation. Exactly one of
// the three criteria shapes is populated per query:
//
//   - non-valuation: Key + LotNumber + ExcludeValuation
//   - valuation:     Kind + Key + AssetDescription
//   - cancellation:  MessageNumber
type MatchFilter struct {
	KeyField         MatchKey
	KeyValue         string
	LotNumber        string
	ExcludeValuation bool
	Kind             models.Kind
	AssetDescription string
	MessageNumber    string
}

// LotTx is the set of store operations available inside one reconciliation
// transaction. All mutations within one Reconcile call commit or roll back
// together.
type LotTx interface {
	// FindCurrent returns current rows matching the filter.
	FindCurrent(ctx context.Context, f MatchFilter) ([]*models.Lot, error)

	// Archive copies a row verbatim into the archive store.
	Archive(ctx context.Context, lot *models.Lot) error

	// DeleteCurrent removes a row from the current store.
	DeleteCurrent(ctx context.Context, lot *models.Lot) error

	// InsertCurrent inserts a lot as a new current row.
	InsertCurrent(ctx context.Context, lot *models.Lot) error

	// UpdateStatus sets the status of current rows with the given message
	// number, skipping rows already in that status. Returns the number of
	// rows changed, which makes re-applied cancellations a visible no-op.
	UpdateStatus(ctx context.Context, messageNumber string, status models.LotStatus) (int64, error)
}

// LotStore is the persistent lot store, partitioned into current and
// archived rows.
type LotStore interface {
	// WithinTx runs fn inside a single serializable transaction. The
	// transaction is committed when fn returns nil and rolled back
	// otherwise.
	WithinTx(ctx context.Context, fn func(tx LotTx) error) error

	// FindCurrent is a read-only query against the current partition,
	// outside any reconciliation transaction.
	FindCurrent(ctx context.Context, f MatchFilter) ([]*models.Lot, error)

	// ListCurrent returns current rows, optionally filtered by debtor INN.
	// Empty inn lists everything.
	ListCurrent(ctx context.Context, inn string) ([]*models.Lot, error)
}

// DebtorDirectory is the external registry of known debtors. Read-only from
// this pipeline's perspective; the directory-building side pipeline owns it.
type DebtorDirectory interface {
	// Exists reports whether a debtor with the given tax identifier is known.
	Exists(ctx context.Context, inn string) (bool, error)
}

// ErrorSink receives candidates that cannot be reconciled safely. Distinct
// from the current and archive stores; writes here never raise to the
// pipeline.
type ErrorSink interface {
	// Insert stores the candidate's full field set in the error collection.
	Insert(ctx context.Context, lot *models.Lot) error
}
