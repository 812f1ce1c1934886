package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL mirrors the SQLite schema for Postgres installs. The directory
// builder and the scraping loop share this database, so everything is
// IF NOT EXISTS.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS lots (
	id BIGSERIAL PRIMARY KEY,
	debtor_inn TEXT NOT NULL,
	debtor_text TEXT NOT NULL DEFAULT '',
	case_number TEXT NOT NULL DEFAULT '',
	message_number TEXT NOT NULL DEFAULT '',
	lot_number TEXT NOT NULL DEFAULT '',
	source_link TEXT NOT NULL DEFAULT '',
	asset_description TEXT NOT NULL DEFAULT '',
	asset_classification TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	publication_date TEXT NOT NULL DEFAULT '',
	auction_start_date TEXT NOT NULL DEFAULT '',
	auction_end_date TEXT NOT NULL DEFAULT '',
	prev_message_number TEXT NOT NULL DEFAULT '',
	prev_publication_date TEXT NOT NULL DEFAULT '',
	organizer TEXT NOT NULL DEFAULT '',
	trading_platform TEXT NOT NULL DEFAULT '',
	contract_status TEXT NOT NULL DEFAULT '',
	contract_date TEXT NOT NULL DEFAULT '',
	result_status TEXT NOT NULL DEFAULT '',
	result_date TEXT NOT NULL DEFAULT '',
	kind TEXT NOT NULL,
	lot_status TEXT NOT NULL CHECK(lot_status IN ('new', 'to_update', 'pending_deletion')),
	loaded_at TIMESTAMPTZ DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_lots_inn_lot ON lots(debtor_inn, lot_number);
CREATE INDEX IF NOT EXISTS idx_lots_case_lot ON lots(case_number, lot_number);
CREATE INDEX IF NOT EXISTS idx_lots_message ON lots(message_number);

CREATE TABLE IF NOT EXISTS lots_archive (
	id BIGSERIAL PRIMARY KEY,
	lot_id BIGINT NOT NULL,
	debtor_inn TEXT NOT NULL,
	debtor_text TEXT NOT NULL DEFAULT '',
	case_number TEXT NOT NULL DEFAULT '',
	message_number TEXT NOT NULL DEFAULT '',
	lot_number TEXT NOT NULL DEFAULT '',
	source_link TEXT NOT NULL DEFAULT '',
	asset_description TEXT NOT NULL DEFAULT '',
	asset_classification TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	publication_date TEXT NOT NULL DEFAULT '',
	auction_start_date TEXT NOT NULL DEFAULT '',
	auction_end_date TEXT NOT NULL DEFAULT '',
	prev_message_number TEXT NOT NULL DEFAULT '',
	prev_publication_date TEXT NOT NULL DEFAULT '',
	organizer TEXT NOT NULL DEFAULT '',
	trading_platform TEXT NOT NULL DEFAULT '',
	contract_status TEXT NOT NULL DEFAULT '',
	contract_date TEXT NOT NULL DEFAULT '',
	result_status TEXT NOT NULL DEFAULT '',
	result_date TEXT NOT NULL DEFAULT '',
	kind TEXT NOT NULL,
	lot_status TEXT NOT NULL,
	archived_at TIMESTAMPTZ DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_archive_message ON lots_archive(message_number);

CREATE TABLE IF NOT EXISTS lots_errors (
	id BIGSERIAL PRIMARY KEY,
	debtor_inn TEXT NOT NULL DEFAULT '',
	debtor_text TEXT NOT NULL DEFAULT '',
	case_number TEXT NOT NULL DEFAULT '',
	message_number TEXT NOT NULL DEFAULT '',
	lot_number TEXT NOT NULL DEFAULT '',
	source_link TEXT NOT NULL DEFAULT '',
	asset_description TEXT NOT NULL DEFAULT '',
	asset_classification TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	publication_date TEXT NOT NULL DEFAULT '',
	auction_start_date TEXT NOT NULL DEFAULT '',
	auction_end_date TEXT NOT NULL DEFAULT '',
	prev_message_number TEXT NOT NULL DEFAULT '',
	prev_publication_date TEXT NOT NULL DEFAULT '',
	organizer TEXT NOT NULL DEFAULT '',
	trading_platform TEXT NOT NULL DEFAULT '',
	contract_status TEXT NOT NULL DEFAULT '',
	contract_date TEXT NOT NULL DEFAULT '',
	result_status TEXT NOT NULL DEFAULT '',
	result_date TEXT NOT NULL DEFAULT '',
	kind TEXT NOT NULL DEFAULT '',
	lot_status TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS debtors (
	inn TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	source_link TEXT NOT NULL DEFAULT '',
	case_number TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ DEFAULT now()
);
`

// EnsureSchema creates the lotledger tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
