package payments

import "regexp"

const (
	CardBrandVisa       = "visa"
	CardBrandMastercard = "mastercard"
	CardBrandAmex       = "amex"
	CardBrandDiscover   = "discover"
	CardBrandUnknown    = "unknown"
)

// Prefix heuristics only; this is not a BIN table lookup.
var cardBrandPatterns = []struct {
	brand   string
	pattern *regexp.Regexp
}{
	{CardBrandVisa, regexp.MustCompile(`^4`)},
	{CardBrandMastercard, regexp.MustCompile(`^5[1-5]`)},
	{CardBrandAmex, regexp.MustCompile(`^3[47]`)},
	{CardBrandDiscover, regexp.MustCompile(`^6(?:011|5)`)},
}

// DetectCardBrand guesses the card brand from the leading digits of number.
// It returns CardBrandUnknown when no prefix matches.
func DetectCardBrand(number string) string {
	for _, p := range cardBrandPatterns {
		if p.pattern.MatchString(number) {
			return p.brand
		}
	}
	return CardBrandUnknown
}
