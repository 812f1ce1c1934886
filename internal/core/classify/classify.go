// Package classify maps free-text registry message types onto reconciliation
// kinds. The registry publishes Russian free text, so the rule tokens match
// the source vocabulary.
package classify

import (
	"regexp"
	"strings"

	"github.com/example/lotledger/internal/models"
)

// rule is one entry of the ordered classification cascade.
type rule struct {
	pattern *regexp.Regexp
	kind    models.Kind
}

// rules is evaluated top to bottom, first match wins. Cancellation comes
// first: cancellation texts routinely embed the type of the message they
// cancel ("отмена сообщения о результатах торгов"), and a later position
// would misclassify them as that type.
var rules = []rule{
	{regexp.MustCompile(`отмен|аннулир`), models.KindCancellation},
	{regexp.MustCompile(`заключени`), models.KindSaleAgreement},
	{regexp.MustCompile(`результ`), models.KindAuctionResult},
	{regexp.MustCompile(`оцен`), models.KindValuation},
	{regexp.MustCompile(`публич`), models.KindPublicOffer},
	{regexp.MustCompile(`аукц|конкур`), models.KindAuction},
}

// Classify maps a message-type text to its kind. When no rule matches, the
// lowercased original text is returned as the Kind and ok is false; such
// candidates are logged as unhandled and never reconciled.
func Classify(messageType string) (kind models.Kind, ok bool) {
	text := strings.ToLower(strings.TrimSpace(messageType))
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.kind, true
		}
	}
	return models.Kind(text), false
}
