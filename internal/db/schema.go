package db

// SchemaSQL is the complete schema for fresh lotledger installs.
//
// This is the single source of truth for the SQLite schema. All repository
// tests build their in-memory databases from GetSchemaSQL(), so a column
// referenced by adapter code but missing here fails tests immediately with
// "no such column" instead of surfacing in production.
//
// Keep this in sync with the migrations list when adding columns or tables.
const SchemaSQL = `
-- Current lots: the latest known version of every lot.
CREATE TABLE IF NOT EXISTS lots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
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
	loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_lots_inn_lot ON lots(debtor_inn, lot_number);
CREATE INDEX IF NOT EXISTS idx_lots_case_lot ON lots(case_number, lot_number);
CREATE INDEX IF NOT EXISTS idx_lots_message ON lots(message_number);

-- Archive: superseded versions, full copies of the rows they replace.
-- Rows are only ever inserted here, never deleted.
CREATE TABLE IF NOT EXISTS lots_archive (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	lot_id INTEGER NOT NULL,
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
	archived_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_archive_message ON lots_archive(message_number);

-- Candidates that failed required-field validation, kept out of the lot
-- stores so the pipeline never blocks on them.
CREATE TABLE IF NOT EXISTS lots_errors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
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
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Debtor directory. Owned by the directory-building side pipeline; this
-- pipeline only reads it.
CREATE TABLE IF NOT EXISTS debtors (
	inn TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	source_link TEXT NOT NULL DEFAULT '',
	case_number TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
