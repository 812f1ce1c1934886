package classify

import (
	"testing"

	"github.com/example/lotledger/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		messageType string
		want        models.Kind
		wantOK      bool
	}{
		{
			name:        "sale agreement",
			messageType: "Сведения о заключении договора купли-продажи",
			want:        models.KindSaleAgreement,
			wantOK:      true,
		},
		{
			name:        "auction result",
			messageType: "Сообщение о результатах торгов",
			want:        models.KindAuctionResult,
			wantOK:      true,
		},
		{
			name:        "valuation",
			messageType: "Отчет оценщика об оценке имущества должника",
			want:        models.KindValuation,
			wantOK:      true,
		},
		{
			name:        "public offer",
			messageType: "Объявление о проведении торгов в форме публичного предложения",
			want:        models.KindPublicOffer,
			wantOK:      true,
		},
		{
			name:        "auction",
			messageType: "Объявление о проведении торгов в форме аукциона",
			want:        models.KindAuction,
			wantOK:      true,
		},
		{
			name:        "competitive bidding",
			messageType: "Объявление о проведении торгов в форме конкурса",
			want:        models.KindAuction,
			wantOK:      true,
		},
		{
			name:        "cancellation",
			messageType: "Сообщение об отмене",
			want:        models.KindCancellation,
			wantOK:      true,
		},
		{
			name:        "annulment",
			messageType: "Аннулирование сообщения",
			want:        models.KindCancellation,
			wantOK:      true,
		},
		{
			// Cancellation must win over the embedded result text.
			name:        "cancellation of a result message",
			messageType: "Отмена сообщения о результатах торгов",
			want:        models.KindCancellation,
			wantOK:      true,
		},
		{
			name:        "unhandled type keeps original text",
			messageType: "Сообщение о собрании кредиторов",
			want:        models.Kind("сообщение о собрании кредиторов"),
			wantOK:      false,
		},
		{
			name:        "empty type",
			messageType: "",
			want:        models.Kind(""),
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.messageType)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.messageType, got, tt.want)
			}
			if ok != tt.wantOK {
				t.Errorf("Classify(%q) ok = %v, want %v", tt.messageType, ok, tt.wantOK)
			}
		})
	}
}

func TestClassifyRecognizedKinds(t *testing.T) {
	kind, ok := Classify("Сообщение о результатах торгов")
	if !ok {
		t.Fatal("expected recognized kind")
	}
	if !kind.Recognized() {
		t.Errorf("expected %q to be recognized", kind)
	}
}
