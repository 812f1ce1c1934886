// Package normalize turns raw extracted messages into lot candidates. It
// filters out irrelevant records, cleans free text, decomposes composite
// reference fields and attaches the reconciliation kind.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/example/lotledger/internal/core/classify"
	"github.com/example/lotledger/internal/models"
)

var (
	cancelledType = regexp.MustCompile(`аннулир|отмен`)
	receivables   = regexp.MustCompile(`дебиторск`)
	// A form of "право" optionally followed by a parenthetical qualifier,
	// then lease or claim. Go's \b is ASCII-only, hence the explicit
	// left-boundary class for Cyrillic.
	leaseOrClaim  = regexp.MustCompile(`(?:^|[^а-яё])прав(?:о|а|ам|ах|у)?\s*\(?[^)]{0,40}?(?:аренд|треб)`)
	failedAuction = regexp.MustCompile(`несосто|не состо|за собой`)
)

// Candidates converts the exploded rows of one message into lot candidates.
// Rows filtered out by type or property rules produce nothing; the result
// may be empty.
func Candidates(rows []models.RawMessage) []*models.Lot {
	lots := make([]*models.Lot, 0, len(rows))
	for _, row := range rows {
		if lot := candidate(row); lot != nil {
			lots = append(lots, lot)
		}
	}
	numberValuationLots(lots)
	return lots
}

// candidate builds one lot candidate, or nil when the row is filtered out.
func candidate(row models.RawMessage) *models.Lot {
	typeText := CleanText(row[models.FieldMessageType])
	kind, _ := classify.Classify(typeText)

	// Annulled and cancelled messages never become lot rows. They survive
	// only as Cancellation candidates for the cancellation handler.
	if cancelledType.MatchString(strings.ToLower(typeText)) && kind != models.KindCancellation {
		return nil
	}

	inn := CleanText(row[models.FieldDebtorINN])
	// "не указан" and friends from the extractor.
	if strings.Contains(strings.ToLower(inn), "не") {
		return nil
	}

	description := CleanText(row[models.FieldAssetDescription])
	classification := CleanText(row[models.FieldAssetClassification])
	contractText := CleanText(row[models.FieldContractStatus])

	switch {
	case kind == models.KindAuctionResult:
		// Failed auctions carry no sellable outcome.
		winner := strings.ToLower(row[models.FieldWinner])
		best := strings.ToLower(row[models.FieldBestPrice])
		if failedAuction.MatchString(winner) || failedAuction.MatchString(best) {
			return nil
		}
	case kind.IsAnnouncement() || kind == models.KindValuation:
		if receivables.MatchString(strings.ToLower(classification)) {
			return nil
		}
		if leaseOrClaim.MatchString(strings.ToLower(description)) {
			return nil
		}
	case kind == models.KindSaleAgreement:
		// No agreement details means nothing was actually concluded.
		if contractText == "" {
			return nil
		}
	}

	priorRef := row[models.FieldPriorMessageRef]
	resultText := row[models.FieldResultStatus]

	return &models.Lot{
		DebtorINN:           inn,
		DebtorText:          CleanText(row[models.FieldDebtorName]),
		CaseNumber:          CleanText(row[models.FieldCaseNumber]),
		MessageNumber:       CleanText(row[models.FieldMessageNumber]),
		LotNumber:           CleanText(row[models.FieldLotNumber]),
		SourceLink:          strings.TrimSpace(row[models.FieldSourceLink]),
		AssetDescription:    description,
		AssetClassification: classification,
		Price:               NormalizePrice(row[models.FieldPrice]),
		PublicationDate:     publicationDate(row[models.FieldPublicationDate]),
		AuctionStartDate:    CleanText(row[models.FieldAuctionStartDate]),
		AuctionEndDate:      CleanText(row[models.FieldAuctionEndDate]),
		PrevMessageNumber:   ExtractMessageNumber(priorRef),
		PrevPublicationDate: ExtractDate(priorRef),
		Organizer:           CleanText(row[models.FieldOrganizer]),
		TradingPlatform:     CleanText(row[models.FieldTradingPlatform]),
		ContractStatus:      ExtractMessageNumber(contractText),
		ContractDate:        ExtractDate(contractText),
		ResultStatus:        ExtractMessageNumber(resultText),
		ResultDate:          ExtractDate(resultText),
		Kind:                kind,
	}
}

// publicationDate reduces a publication timestamp to its date part.
func publicationDate(s string) string {
	if d := ExtractDate(s); d != "" {
		return d
	}
	return CleanText(s)
}

// numberValuationLots assigns sequential lot numbers to valuation candidates,
// which the registry publishes without one. The ordinal is per source
// message, keyed by its link.
func numberValuationLots(lots []*models.Lot) {
	next := make(map[string]int)
	for _, lot := range lots {
		if lot.Kind != models.KindValuation || lot.LotNumber != "" {
			continue
		}
		next[lot.SourceLink]++
		lot.LotNumber = strconv.Itoa(next[lot.SourceLink])
	}
}
