// Package postgres contains pgx implementations of the storage ports for
// production installs, where the lot store is shared with the scraping loop
// and the directory builder.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/secondary"
)

const lotColumns = `debtor_inn, debtor_text, case_number, message_number, lot_number,
	source_link, asset_description, asset_classification, price, publication_date,
	auction_start_date, auction_end_date, prev_message_number, prev_publication_date,
	organizer, trading_platform, contract_status, contract_date, result_status,
	result_date, kind, lot_status`

const lotPlaceholders = `$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	$15, $16, $17, $18, $19, $20, $21, $22`

func lotArgs(lot *models.Lot) []any {
	return []any{
		lot.DebtorINN, lot.DebtorText, lot.CaseNumber, lot.MessageNumber, lot.LotNumber,
		lot.SourceLink, lot.AssetDescription, lot.AssetClassification, lot.Price, lot.PublicationDate,
		lot.AuctionStartDate, lot.AuctionEndDate, lot.PrevMessageNumber, lot.PrevPublicationDate,
		lot.Organizer, lot.TradingPlatform, lot.ContractStatus, lot.ContractDate, lot.ResultStatus,
		lot.ResultDate, string(lot.Kind), string(lot.Status),
	}
}

func scanLot(row pgx.Row) (*models.Lot, error) {
	var (
		lot    models.Lot
		kind   string
		status string
	)
	err := row.Scan(
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

// matchWhere translates a MatchFilter into a WHERE clause with positional
// placeholders.
func matchWhere(f secondary.MatchFilter) (string, []any, error) {
	keyColumn := "debtor_inn"
	if f.KeyField == secondary.MatchByCaseNumber {
		keyColumn = "case_number"
	}

	switch {
	case f.MessageNumber != "":
		return "message_number = $1", []any{f.MessageNumber}, nil
	case f.Kind != "":
		return "kind = $1 AND " + keyColumn + " = $2 AND asset_description = $3",
			[]any{string(f.Kind), f.KeyValue, f.AssetDescription}, nil
	case f.KeyValue != "":
		where := keyColumn + " = $1 AND lot_number = $2"
		args := []any{f.KeyValue, f.LotNumber}
		if f.ExcludeValuation {
			where += " AND kind != $3"
			args = append(args, string(models.KindValuation))
		}
		return where, args, nil
	default:
		return "", nil, fmt.Errorf("empty match filter")
	}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findCurrent(ctx context.Context, q querier, f secondary.MatchFilter) ([]*models.Lot, error) {
	where, args, err := matchWhere(f)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, "SELECT id, "+lotColumns+" FROM lots WHERE "+where+" ORDER BY id", args...)
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

// LotStore implements secondary.LotStore over a pgx connection pool.
type LotStore struct {
	pool *pgxpool.Pool
}

// NewLotStore creates a lot store over an existing pool.
func NewLotStore(pool *pgxpool.Pool) *LotStore {
	return &LotStore{pool: pool}
}

// Connect opens a pool for the given DSN, verifies the connection and
// ensures the schema exists.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// WithinTx runs fn inside a serializable transaction: the store is shared
// with other processes, and two concurrent candidates for the same lot key
// must not both believe they are new.
func (s *LotStore) WithinTx(ctx context.Context, fn func(tx secondary.LotTx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&lotTx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback failed: %v (after: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindCurrent queries the current partition outside a transaction.
func (s *LotStore) FindCurrent(ctx context.Context, f secondary.MatchFilter) ([]*models.Lot, error) {
	return findCurrent(ctx, s.pool, f)
}

// ListCurrent returns current rows, optionally filtered by debtor INN.
func (s *LotStore) ListCurrent(ctx context.Context, inn string) ([]*models.Lot, error) {
	query := "SELECT id, " + lotColumns + " FROM lots"
	var args []any
	if inn != "" {
		query += " WHERE debtor_inn = $1"
		args = append(args, inn)
	}
	query += " ORDER BY id"

	rows, err := s.pool.Query(ctx, query, args...)
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

// ListArchive returns archived rows, optionally filtered by debtor INN.
func (s *LotStore) ListArchive(ctx context.Context, inn string) ([]*models.Lot, error) {
	query := "SELECT lot_id, " + lotColumns + " FROM lots_archive"
	var args []any
	if inn != "" {
		query += " WHERE debtor_inn = $1"
		args = append(args, inn)
	}
	query += " ORDER BY id"

	rows, err := s.pool.Query(ctx, query, args...)
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

type lotTx struct {
	tx pgx.Tx
}

func (t *lotTx) FindCurrent(ctx context.Context, f secondary.MatchFilter) ([]*models.Lot, error) {
	return findCurrent(ctx, t.tx, f)
}

func (t *lotTx) Archive(ctx context.Context, lot *models.Lot) error {
	args := append([]any{lot.ID}, lotArgs(lot)...)
	_, err := t.tx.Exec(ctx,
		`INSERT INTO lots_archive (lot_id, `+lotColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to archive lot: %w", err)
	}
	return nil
}

func (t *lotTx) DeleteCurrent(ctx context.Context, lot *models.Lot) error {
	tag, err := t.tx.Exec(ctx, "DELETE FROM lots WHERE id = $1", lot.ID)
	if err != nil {
		return fmt.Errorf("failed to delete lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lot %d not found in current store", lot.ID)
	}
	return nil
}

func (t *lotTx) InsertCurrent(ctx context.Context, lot *models.Lot) error {
	err := t.tx.QueryRow(ctx,
		"INSERT INTO lots ("+lotColumns+") VALUES ("+lotPlaceholders+") RETURNING id",
		lotArgs(lot)...,
	).Scan(&lot.ID)
	if err != nil {
		return fmt.Errorf("failed to insert lot: %w", err)
	}
	return nil
}

func (t *lotTx) UpdateStatus(ctx context.Context, messageNumber string, status models.LotStatus) (int64, error) {
	tag, err := t.tx.Exec(ctx,
		"UPDATE lots SET lot_status = $1 WHERE message_number = $2 AND lot_status != $1",
		string(status), messageNumber,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update lot status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DebtorRepository implements secondary.DebtorDirectory over pgx.
type DebtorRepository struct {
	pool *pgxpool.Pool
}

// NewDebtorRepository creates a debtor repository over an existing pool.
func NewDebtorRepository(pool *pgxpool.Pool) *DebtorRepository {
	return &DebtorRepository{pool: pool}
}

// Exists reports whether a debtor with the given INN is known.
func (r *DebtorRepository) Exists(ctx context.Context, inn string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, "SELECT 1 FROM debtors WHERE inn = $1", inn).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up debtor: %w", err)
	}
	return true, nil
}

// Add inserts or updates a directory entry.
func (r *DebtorRepository) Add(ctx context.Context, d *models.Debtor) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO debtors (inn, name, source_link, case_number) VALUES ($1, $2, $3, $4)
		ON CONFLICT (inn) DO UPDATE SET name = EXCLUDED.name,
			source_link = EXCLUDED.source_link, case_number = EXCLUDED.case_number`,
		d.INN, d.Name, d.SourceLink, d.CaseNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to add debtor: %w", err)
	}
	return nil
}

// List returns all directory entries.
func (r *DebtorRepository) List(ctx context.Context) ([]*models.Debtor, error) {
	rows, err := r.pool.Query(ctx, "SELECT inn, name, source_link, case_number FROM debtors ORDER BY inn")
	if err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}
	defer rows.Close()

	var debtors []*models.Debtor
	for rows.Next() {
		d := &models.Debtor{}
		if err := rows.Scan(&d.INN, &d.Name, &d.SourceLink, &d.CaseNumber); err != nil {
			return nil, fmt.Errorf("failed to scan debtor: %w", err)
		}
		debtors = append(debtors, d)
	}
	return debtors, rows.Err()
}

// ErrorRepository implements secondary.ErrorSink over pgx.
type ErrorRepository struct {
	pool *pgxpool.Pool
}

// NewErrorRepository creates an error repository over an existing pool.
func NewErrorRepository(pool *pgxpool.Pool) *ErrorRepository {
	return &ErrorRepository{pool: pool}
}

// Insert stores a failed candidate in the error collection.
func (r *ErrorRepository) Insert(ctx context.Context, lot *models.Lot) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO lots_errors ("+lotColumns+") VALUES ("+lotPlaceholders+")",
		lotArgs(lot)...,
	)
	if err != nil {
		return fmt.Errorf("failed to insert error record: %w", err)
	}
	return nil
}

// List returns up to limit failed candidates, newest first.
func (r *ErrorRepository) List(ctx context.Context, limit int) ([]*models.Lot, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, "+lotColumns+" FROM lots_errors ORDER BY id DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list error records: %w", err)
	}
	defer rows.Close()

	var lots []*models.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan error record: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}
