package normalize

import (
	"testing"

	"github.com/example/lotledger/internal/models"
)

func announcementRow() models.RawMessage {
	return models.RawMessage{
		models.FieldMessageType:         "Объявление о проведении торгов в форме аукциона",
		models.FieldDebtorINN:           "7701234567",
		models.FieldDebtorName:          "ООО Ромашка",
		models.FieldCaseNumber:          "А40-12345/2023",
		models.FieldMessageNumber:       "11223344",
		models.FieldLotNumber:           "1",
		models.FieldSourceLink:          "https://example.test/msg/11223344",
		models.FieldAssetDescription:    "Нежилое помещение 120 кв.м",
		models.FieldAssetClassification: "Недвижимое имущество",
		models.FieldPrice:               "1 250 000,00 руб.",
		models.FieldPublicationDate:     "15.03.2024 10:30:00",
		models.FieldPriorMessageRef:     "Объявление №10101010 от 01.02.2024",
	}
}

func TestCandidateAnnouncement(t *testing.T) {
	lots := Candidates([]models.RawMessage{announcementRow()})
	if len(lots) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(lots))
	}

	lot := lots[0]
	if lot.Kind != models.KindAuction {
		t.Errorf("expected kind %q, got %q", models.KindAuction, lot.Kind)
	}
	if lot.Price != "1250000,00" {
		t.Errorf("expected normalized price, got %q", lot.Price)
	}
	if lot.PublicationDate != "15.03.2024" {
		t.Errorf("expected date-only publication date, got %q", lot.PublicationDate)
	}
	if lot.PrevMessageNumber != "10101010" {
		t.Errorf("expected previous message number '10101010', got %q", lot.PrevMessageNumber)
	}
	if lot.PrevPublicationDate != "01.02.2024" {
		t.Errorf("expected previous publication date '01.02.2024', got %q", lot.PrevPublicationDate)
	}
}

func TestCandidateDropsAnnulledMessages(t *testing.T) {
	row := announcementRow()
	row[models.FieldMessageType] = "Аннулированное объявление о проведении торгов"

	// An annulled type classifies as Cancellation and survives as a
	// cancellation candidate, never as a lot row.
	lots := Candidates([]models.RawMessage{row})
	if len(lots) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(lots))
	}
	if lots[0].Kind != models.KindCancellation {
		t.Errorf("expected cancellation kind, got %q", lots[0].Kind)
	}
}

func TestCandidateDropsUnknownINN(t *testing.T) {
	row := announcementRow()
	row[models.FieldDebtorINN] = "не указан"

	if lots := Candidates([]models.RawMessage{row}); len(lots) != 0 {
		t.Fatalf("expected 0 candidates, got %d", len(lots))
	}
}

func TestCandidateDropsReceivables(t *testing.T) {
	row := announcementRow()
	row[models.FieldAssetClassification] = "Дебиторская задолженность"

	if lots := Candidates([]models.RawMessage{row}); len(lots) != 0 {
		t.Fatalf("expected receivables to be dropped, got %d candidates", len(lots))
	}
}

func TestCandidateDropsLeaseAndClaimRights(t *testing.T) {
	descriptions := []string{
		"Право аренды земельного участка",
		"Права (требования) к ООО Василек",
		"право требования по договору займа",
	}
	for _, desc := range descriptions {
		row := announcementRow()
		row[models.FieldAssetDescription] = desc
		if lots := Candidates([]models.RawMessage{row}); len(lots) != 0 {
			t.Errorf("expected %q to be dropped", desc)
		}
	}

	// The filter only applies to announcements and valuations.
	row := announcementRow()
	row[models.FieldMessageType] = "Сообщение о результатах торгов"
	row[models.FieldAssetDescription] = "Право аренды земельного участка"
	if lots := Candidates([]models.RawMessage{row}); len(lots) != 1 {
		t.Errorf("expected result-kind row to survive the rights filter")
	}
}

func TestCandidateDropsEmptySaleAgreement(t *testing.T) {
	row := announcementRow()
	row[models.FieldMessageType] = "Сведения о заключении договора купли-продажи"

	if lots := Candidates([]models.RawMessage{row}); len(lots) != 0 {
		t.Fatal("expected sale agreement without contract details to be dropped")
	}

	row[models.FieldContractStatus] = "Договор №5 от 01.03.2024, сообщение №20202020 от 05.03.2024"
	lots := Candidates([]models.RawMessage{row})
	if len(lots) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(lots))
	}
	if lots[0].ContractStatus != "5" {
		t.Errorf("expected extracted contract message number, got %q", lots[0].ContractStatus)
	}
	if lots[0].ContractDate != "01.03.2024" {
		t.Errorf("expected extracted contract date, got %q", lots[0].ContractDate)
	}
}

func TestCandidateDropsFailedAuctionResults(t *testing.T) {
	row := announcementRow()
	row[models.FieldMessageType] = "Сообщение о результатах торгов"
	row[models.FieldWinner] = "Торги не состоялись"

	if lots := Candidates([]models.RawMessage{row}); len(lots) != 0 {
		t.Fatal("expected failed auction result to be dropped")
	}
}

func TestCandidateKeepsUnhandledKind(t *testing.T) {
	row := announcementRow()
	row[models.FieldMessageType] = "Сообщение о собрании кредиторов"

	lots := Candidates([]models.RawMessage{row})
	if len(lots) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(lots))
	}
	if lots[0].Kind.Recognized() {
		t.Errorf("expected unrecognized kind, got %q", lots[0].Kind)
	}
}

func TestValuationLotNumbering(t *testing.T) {
	rows := []models.RawMessage{}
	for _, desc := range []string{"Станок токарный", "Пресс гидравлический"} {
		row := announcementRow()
		row[models.FieldMessageType] = "Отчет оценщика об оценке имущества должника"
		row[models.FieldLotNumber] = ""
		row[models.FieldAssetDescription] = desc
		rows = append(rows, row)
	}

	lots := Candidates(rows)
	if len(lots) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(lots))
	}
	if lots[0].LotNumber != "1" || lots[1].LotNumber != "2" {
		t.Errorf("expected sequential lot numbers, got %q and %q", lots[0].LotNumber, lots[1].LotNumber)
	}
}
