// Package sqlite contains SQLite implementations of the storage ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/secondary"
)

// lotColumns is the shared column list for lots, lots_archive (minus
// lot_id) and lots_errors.
const lotColumns = `debtor_inn, debtor_text, case_number, message_number, lot_number,
	source_link, asset_description, asset_classification, price, publication_date,
	auction_start_date, auction_end_date, prev_message_number, prev_publication_date,
	organizer, trading_platform, contract_status, contract_date, result_status,
	result_date, kind, lot_status`

const lotPlaceholders = "?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?"

// lotArgs returns a lot's values in lotColumns order.
func lotArgs(lot *models.Lot) []any {
	return []any{
		lot.DebtorINN, lot.DebtorText, lot.CaseNumber, lot.MessageNumber, lot.LotNumber,
		lot.SourceLink, lot.AssetDescription, lot.AssetClassification, lot.Price, lot.PublicationDate,
		lot.AuctionStartDate, lot.AuctionEndDate, lot.PrevMessageNumber, lot.PrevPublicationDate,
		lot.Organizer, lot.TradingPlatform, lot.ContractStatus, lot.ContractDate, lot.ResultStatus,
		lot.ResultDate, string(lot.Kind), string(lot.Status),
	}
}

// scanLot reads one lots row (id + lotColumns) from rows.
func scanLot(rows *sql.Rows) (*models.Lot, error) {
	var (
		lot    models.Lot
		kind   string
		status string
	)
	err := rows.Scan(
		&lot.ID,
		&lot.DebtorINN, &lot.DebtorText, &lot.CaseNumber, &lot.MessageNumber, &lot.LotNumber,
		&lot.SourceLink, &lot.AssetDescription, &lot.AssetClassification, &lot.Price, &lot.PublicationDate,
		&lot.AuctionStartDate, &lot.AuctionEndDate, &lot.PrevMessageNumber, &lot.PrevPublicationDate,
		&lot.Organizer, &lot.TradingPlatform, &lot.ContractStatus, &lot.ContractDate, &lot.ResultStatus,
		&lot.ResultDate, &kind, &status,
	)
	if err != nil {
		return nil, err
	}
	lot.Kind = models.Kind(kind)
	lot.Status = models.LotStatus(status)
	return &lot, nil
}

// matchWhere translates a MatchFilter into a WHERE clause. The filter
// shapes mirror the reconciliation strategies: cancellation by message
// number, valuation by kind+key+description, everything else by
// key+lot_number excluding valuation rows.
func matchWhere(f secondary.MatchFilter) (string, []any, error) {
	keyColumn := "debtor_inn"
	if f.KeyField == secondary.MatchByCaseNumber {
		keyColumn = "case_number"
	}

	switch {
	case f.MessageNumber != "":
		return "message_number = ?", []any{f.MessageNumber}, nil
	case f.Kind != "":
		return "kind = ? AND " + keyColumn + " = ? AND asset_description = ?",
			[]any{string(f.Kind), f.KeyValue, f.AssetDescription}, nil
	case f.KeyValue != "":
		where := keyColumn + " = ? AND lot_number = ?"
		args := []any{f.KeyValue, f.LotNumber}
		if f.ExcludeValuation {
			where += " AND kind != ?"
			args = append(args, string(models.KindValuation))
		}
		return where, args, nil
	default:
		return "", nil, fmt.Errorf("empty match filter")
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func findCurrent(ctx context.Context, q querier, f secondary.MatchFilter) ([]*models.Lot, error) {
	where, args, err := matchWhere(f)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, "SELECT id, "+lotColumns+" FROM lots WHERE "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query current lots: %w", err)
	}
	defer rows.Close()

	var lots []*models.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// LotStore implements secondary.LotStore with SQLite.
type LotStore struct {
	db *sql.DB
}

// NewLotStore creates a new SQLite lot store.
func NewLotStore(db *sql.DB) *LotStore {
	return &LotStore{db: db}
}

// WithinTx runs fn inside one serializable transaction.
func (s *LotStore) WithinTx(ctx context.Context, fn func(tx secondary.LotTx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&lotTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindCurrent queries the current partition outside a transaction.
func (s *LotStore) FindCurrent(ctx context.Context, f secondary.MatchFilter) ([]*models.Lot, error) {
	return findCurrent(ctx, s.db, f)
}

// ListCurrent returns current rows, optionally filtered by debtor INN.
func (s *LotStore) ListCurrent(ctx context.Context, inn string) ([]*models.Lot, error) {
	query := "SELECT id, " + lotColumns + " FROM lots"
	var args []any
	if inn != "" {
		query += " WHERE debtor_inn = ?"
		args = append(args, inn)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list current lots: %w", err)
	}
	defer rows.Close()

	var lots []*models.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// ListArchive returns archived rows for a debtor INN; empty inn lists all.
func (s *LotStore) ListArchive(ctx context.Context, inn string) ([]*models.Lot, error) {
	query := "SELECT lot_id, " + lotColumns + " FROM lots_archive"
	var args []any
	if inn != "" {
		query += " WHERE debtor_inn = ?"
		args = append(args, inn)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived lots: %w", err)
	}
	defer rows.Close()

	var lots []*models.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archived lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// lotTx implements secondary.LotTx over one open transaction.
type lotTx struct {
	tx *sql.Tx
}

func (t *lotTx) FindCurrent(ctx context.Context, f secondary.MatchFilter) ([]*models.Lot, error) {
	return findCurrent(ctx, t.tx, f)
}

func (t *lotTx) Archive(ctx context.Context, lot *models.Lot) error {
	args := append([]any{lot.ID}, lotArgs(lot)...)
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO lots_archive (lot_id, "+lotColumns+") VALUES (?, "+lotPlaceholders+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to archive lot: %w", err)
	}
	return nil
}

func (t *lotTx) DeleteCurrent(ctx context.Context, lot *models.Lot) error {
	res, err := t.tx.ExecContext(ctx, "DELETE FROM lots WHERE id = ?", lot.ID)
	if err != nil {
		return fmt.Errorf("failed to delete lot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("lot %d not found in current store", lot.ID)
	}
	return nil
}

func (t *lotTx) InsertCurrent(ctx context.Context, lot *models.Lot) error {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO lots ("+lotColumns+") VALUES ("+lotPlaceholders+")",
		lotArgs(lot)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lot: %w", err)
	}
	lot.ID, _ = res.LastInsertId()
	return nil
}

func (t *lotTx) UpdateStatus(ctx context.Context, messageNumber string, status models.LotStatus) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE lots SET lot_status = ? WHERE message_number = ? AND lot_status != ?",
		string(status), messageNumber, string(status),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update lot status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated rows: %w", err)
	}
	return n, nil
}
