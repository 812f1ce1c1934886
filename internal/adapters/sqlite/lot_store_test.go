package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/lotledger/internal/adapters/sqlite"
	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/secondary"
)

func TestLotStore_InsertAndFindCurrent(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	lot := makeLot("7701234567", "1", "100")
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		return tx.InsertCurrent(ctx, lot)
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}
	if lot.ID == 0 {
		t.Error("expected insert to set the row ID")
	}

	found, err := store.FindCurrent(ctx, secondary.MatchFilter{
		KeyField:         secondary.MatchByDebtorINN,
		KeyValue:         "7701234567",
		LotNumber:        "1",
		ExcludeValuation: true,
	})
	if err != nil {
		t.Fatalf("FindCurrent failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 row, got %d", len(found))
	}
	if found[0].MessageNumber != "100" {
		t.Errorf("expected message number '100', got %q", found[0].MessageNumber)
	}
	if found[0].Kind != models.KindAuction {
		t.Errorf("expected kind %q, got %q", models.KindAuction, found[0].Kind)
	}
}

func TestLotStore_FindCurrentExcludesValuation(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	valuation := makeLot("7701234567", "1", "100")
	valuation.Kind = models.KindValuation
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		return tx.InsertCurrent(ctx, valuation)
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}

	found, err := store.FindCurrent(ctx, secondary.MatchFilter{
		KeyField:         secondary.MatchByDebtorINN,
		KeyValue:         "7701234567",
		LotNumber:        "1",
		ExcludeValuation: true,
	})
	if err != nil {
		t.Fatalf("FindCurrent failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("valuation rows must not match non-valuation criteria, got %d", len(found))
	}
}

func TestLotStore_FindCurrentByCaseNumber(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	lot := makeLot("7701234567", "2", "101")
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		return tx.InsertCurrent(ctx, lot)
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}

	found, err := store.FindCurrent(ctx, secondary.MatchFilter{
		KeyField:         secondary.MatchByCaseNumber,
		KeyValue:         "А40-100/2024",
		LotNumber:        "2",
		ExcludeValuation: true,
	})
	if err != nil {
		t.Fatalf("FindCurrent failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 row matched by case number, got %d", len(found))
	}
}

func TestLotStore_ValuationMatchByDescription(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	valuation := makeLot("7701234567", "", "102")
	valuation.Kind = models.KindValuation
	valuation.AssetDescription = "Станок токарный"
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		return tx.InsertCurrent(ctx, valuation)
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}

	found, err := store.FindCurrent(ctx, secondary.MatchFilter{
		KeyField:         secondary.MatchByDebtorINN,
		KeyValue:         "7701234567",
		Kind:             models.KindValuation,
		AssetDescription: "Станок токарный",
	})
	if err != nil {
		t.Fatalf("FindCurrent failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 valuation row, got %d", len(found))
	}

	// A different description is a different lot.
	found, err = store.FindCurrent(ctx, secondary.MatchFilter{
		KeyField:         secondary.MatchByDebtorINN,
		KeyValue:         "7701234567",
		Kind:             models.KindValuation,
		AssetDescription: "Пресс гидравлический",
	})
	if err != nil {
		t.Fatalf("FindCurrent failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("expected no match for other description, got %d", len(found))
	}
}

func TestLotStore_ArchiveAndDelete(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	lot := makeLot("7701234567", "1", "100")
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		if err := tx.InsertCurrent(ctx, lot); err != nil {
			return err
		}
		if err := tx.Archive(ctx, lot); err != nil {
			return err
		}
		return tx.DeleteCurrent(ctx, lot)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	if n := countRows(t, conn, "lots"); n != 0 {
		t.Errorf("expected empty current store, got %d rows", n)
	}
	if n := countRows(t, conn, "lots_archive"); n != 1 {
		t.Errorf("expected 1 archived row, got %d", n)
	}

	archived, err := store.ListArchive(ctx, "7701234567")
	if err != nil {
		t.Fatalf("ListArchive failed: %v", err)
	}
	if len(archived) != 1 || archived[0].MessageNumber != "100" {
		t.Fatalf("expected archived copy of message 100, got %+v", archived)
	}
}

func TestLotStore_UpdateStatusIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	lot := makeLot("7701234567", "1", "100")
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		return tx.InsertCurrent(ctx, lot)
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}

	var first, second int64
	err = store.WithinTx(ctx, func(tx secondary.LotTx) error {
		var err error
		first, err = tx.UpdateStatus(ctx, "100", models.StatusPendingDeletion)
		return err
	})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	err = store.WithinTx(ctx, func(tx secondary.LotTx) error {
		var err error
		second, err = tx.UpdateStatus(ctx, "100", models.StatusPendingDeletion)
		return err
	})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if first != 1 {
		t.Errorf("expected first update to change 1 row, got %d", first)
	}
	if second != 0 {
		t.Errorf("expected second update to be a no-op, got %d", second)
	}
}

func TestLotStore_RollbackLeavesStoreUntouched(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	existing := makeLot("7701234567", "1", "100")
	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		return tx.InsertCurrent(ctx, existing)
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}

	boom := errors.New("boom")
	err = store.WithinTx(ctx, func(tx secondary.LotTx) error {
		if err := tx.Archive(ctx, existing); err != nil {
			return err
		}
		if err := tx.DeleteCurrent(ctx, existing); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	// The matched row must not end up archived-but-not-deleted or
	// deleted-but-not-replaced.
	if n := countRows(t, conn, "lots"); n != 1 {
		t.Errorf("expected current row back after rollback, got %d rows", n)
	}
	if n := countRows(t, conn, "lots_archive"); n != 0 {
		t.Errorf("expected empty archive after rollback, got %d rows", n)
	}
}

func TestLotStore_ListCurrent(t *testing.T) {
	conn := setupTestDB(t)
	store := sqlite.NewLotStore(conn)
	ctx := context.Background()

	err := store.WithinTx(ctx, func(tx secondary.LotTx) error {
		if err := tx.InsertCurrent(ctx, makeLot("7701234567", "1", "100")); err != nil {
			return err
		}
		return tx.InsertCurrent(ctx, makeLot("5009876543", "1", "200"))
	})
	if err != nil {
		t.Fatalf("InsertCurrent failed: %v", err)
	}

	all, err := store.ListCurrent(ctx, "")
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rows, got %d", len(all))
	}

	one, err := store.ListCurrent(ctx, "5009876543")
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(one) != 1 || one[0].MessageNumber != "200" {
		t.Fatalf("expected the second debtor's row, got %+v", one)
	}
}
