package vendors

import "tripscan/core/domain"

// AmericanParser handles American Airlines confirmation emails. American
// calls the confirmation a record locator; the shared rules cover both
// phrasings.
type AmericanParser struct {
	baseParser
}

func NewAmericanParser() *AmericanParser {
	return &AmericanParser{
		baseParser: newBaseParser(domain.VendorAmerican, `(?i)american ?air(?:lines)?|americanair|aa\.com`),
	}
}
