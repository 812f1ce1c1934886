// Package sqlite_test contains integration tests for the SQLite adapters.
//
// All test setup goes through db.GetSchemaSQL() so tests always run against
// the authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/lotledger/internal/db"
	"github.com/example/lotledger/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedDebtor inserts a directory entry so the debtor guard passes.
func seedDebtor(t *testing.T, conn *sql.DB, inn string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT OR IGNORE INTO debtors (inn, name) VALUES (?, ?)", inn, "Test Debtor",
	)
	if err != nil {
		t.Fatalf("failed to seed debtor: %v", err)
	}
}

// makeLot builds a minimal announcement candidate.
func makeLot(inn, lotNumber, messageNumber string) *models.Lot {
	return &models.Lot{
		DebtorINN:        inn,
		CaseNumber:       "А40-100/2024",
		MessageNumber:    messageNumber,
		LotNumber:        lotNumber,
		AssetDescription: "Нежилое помещение",
		Price:            "100000,00",
		Kind:             models.KindAuction,
		Status:           models.StatusNew,
	}
}

// countRows is a small assertion helper for table sizes.
func countRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
