package reconcile

import (
	"strconv"
	"strings"

	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/secondary"
)

// strategy describes how one kind locates prior versions of the same lot.
type strategy struct {
	// requiresLotNumber gates matching on a parseable lot number; a
	// candidate without one cannot be reconciled safely and is diverted
	// to the error sink.
	requiresLotNumber bool

	// filter builds the match query for the candidate.
	filter func(lot *models.Lot, key secondary.MatchKey) secondary.MatchFilter
}

// nonValuationFilter matches on the identity key and lot number, excluding
// valuation rows: valuations carry no comparable lot numbers and never
// participate in non-valuation matching.
func nonValuationFilter(lot *models.Lot, key secondary.MatchKey) secondary.MatchFilter {
	return secondary.MatchFilter{
		KeyField:         key,
		KeyValue:         keyValue(lot, key),
		LotNumber:        lot.LotNumber,
		ExcludeValuation: true,
	}
}

// valuationFilter matches on kind, identity key and the asset description
// text, the only usable join key for valuation messages.
func valuationFilter(lot *models.Lot, key secondary.MatchKey) secondary.MatchFilter {
	return secondary.MatchFilter{
		KeyField:         key,
		KeyValue:         keyValue(lot, key),
		Kind:             models.KindValuation,
		AssetDescription: lot.AssetDescription,
	}
}

// strategies is the routing table for reconcilable kinds. Cancellation is
// handled separately: it never inserts, only flips statuses.
var strategies = map[models.Kind]strategy{
	models.KindSaleAgreement: {requiresLotNumber: true, filter: nonValuationFilter},
	models.KindAuctionResult: {requiresLotNumber: true, filter: nonValuationFilter},
	models.KindAuction:       {requiresLotNumber: true, filter: nonValuationFilter},
	models.KindPublicOffer:   {requiresLotNumber: true, filter: nonValuationFilter},
	models.KindValuation:     {filter: valuationFilter},
}

// keyValue resolves the configured identity key on a candidate.
func keyValue(lot *models.Lot, key secondary.MatchKey) string {
	if key == secondary.MatchByCaseNumber {
		return lot.CaseNumber
	}
	return lot.DebtorINN
}

// numberLike reports whether a lot number parses as a numeric token.
// Registry lot numbers are occasionally fractional ("2,1").
func numberLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return err == nil
}
