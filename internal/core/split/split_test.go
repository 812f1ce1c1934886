package split

import (
	"testing"

	"github.com/example/lotledger/internal/models"
)

func TestExplodeSingleLot(t *testing.T) {
	raw := models.RawMessage{
		models.FieldMessageType: "Объявление о проведении торгов",
		models.FieldDebtorINN:   "7701234567",
		models.FieldLotNumber:   "1",
		models.FieldPrice:       "100 000,00",
	}

	rows := Explode(raw)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][models.FieldLotNumber] != "1" {
		t.Errorf("expected lot number '1', got %q", rows[0][models.FieldLotNumber])
	}
}

func TestExplodeMultiLot(t *testing.T) {
	raw := models.RawMessage{
		models.FieldMessageType:      "Объявление о проведении торгов",
		models.FieldDebtorINN:        "7701234567",
		models.FieldLotNumber:        "1&&&2&&&3",
		models.FieldAssetDescription: "Гараж&&&Автомобиль&&&Станок",
		models.FieldPrice:            "100 000,00&&&200 000,00&&&300 000,00",
	}

	rows := Explode(raw)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[1][models.FieldLotNumber] != "2" {
		t.Errorf("expected lot number '2', got %q", rows[1][models.FieldLotNumber])
	}
	if rows[2][models.FieldAssetDescription] != "Станок" {
		t.Errorf("expected 'Станок', got %q", rows[2][models.FieldAssetDescription])
	}
	// Non-split fields are copied into every row.
	for i, row := range rows {
		if row[models.FieldDebtorINN] != "7701234567" {
			t.Errorf("row %d: debtor INN not copied, got %q", i, row[models.FieldDebtorINN])
		}
	}
}

func TestExplodeSeparatorWithTrailingSpace(t *testing.T) {
	raw := models.RawMessage{
		models.FieldLotNumber: "1&&& 2",
	}

	rows := Explode(raw)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][models.FieldLotNumber] != "2" {
		t.Errorf("expected '2', got %q", rows[1][models.FieldLotNumber])
	}
}

func TestExplodeUnevenFields(t *testing.T) {
	raw := models.RawMessage{
		models.FieldLotNumber: "1&&&2&&&3",
		models.FieldPrice:     "500,00",
	}

	rows := Explode(raw)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][models.FieldPrice] != "500,00" {
		t.Errorf("expected first row to keep price, got %q", rows[0][models.FieldPrice])
	}
	// Shorter lists pad with the empty string.
	if rows[1][models.FieldPrice] != "" || rows[2][models.FieldPrice] != "" {
		t.Errorf("expected padded rows to have empty price, got %q / %q",
			rows[1][models.FieldPrice], rows[2][models.FieldPrice])
	}
}

func TestExplodeDoesNotShareStorage(t *testing.T) {
	raw := models.RawMessage{
		models.FieldLotNumber: "1&&&2",
		models.FieldDebtorINN: "7701234567",
	}

	rows := Explode(raw)
	rows[0][models.FieldDebtorINN] = "changed"
	if rows[1][models.FieldDebtorINN] != "7701234567" {
		t.Error("exploded rows share map storage")
	}
}
