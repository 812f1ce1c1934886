package normalize

import (
	"regexp"
	"strings"
)

var (
	// Printable ASCII plus Cyrillic; everything else is scraping noise
	// (non-breaking spaces, tabs, control characters).
	nonPrintable = regexp.MustCompile(`[^\x20-\x7Eа-яА-ЯёЁ]`)
	multiSpace   = regexp.MustCompile(` +`)

	messageNumberPattern = regexp.MustCompile(`№\s*(\d+)`)
	datePattern          = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	pricePattern         = regexp.MustCompile(`\b\d{1,3}(?:\s?\d{3})*(?:,\d{2})?\b`)
)

// CleanText strips non-printable characters, collapses internal whitespace
// and trims the result.
func CleanText(s string) string {
	s = nonPrintable.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractMessageNumber pulls the first "№<digits>" token out of composite
// free text, e.g. a prior-message reference. Empty when absent.
func ExtractMessageNumber(s string) string {
	m := messageNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractDate pulls the first dd.mm.yyyy-shaped substring. Empty when absent.
func ExtractDate(s string) string {
	return datePattern.FindString(s)
}

// NormalizePrice takes the first amount-shaped token ("178 529,75") and
// strips the internal group spaces. Empty when no amount is present.
func NormalizePrice(s string) string {
	m := pricePattern.FindString(s)
	if m == "" {
		return ""
	}
	return strings.ReplaceAll(m, " ", "")
}
