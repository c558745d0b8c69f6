package vendors

import (
	"regexp"

	"tripscan/core/domain"
)

// baseParser implements the common signature-match + shared-rule extraction
// most airline confirmation templates follow. Vendor parsers embed it and
// override what differs.
type baseParser struct {
	vendor    domain.Vendor
	signature *regexp.Regexp
}

func newBaseParser(vendor domain.Vendor, signature string) baseParser {
	return baseParser{
		vendor:    vendor,
		signature: regexp.MustCompile(signature),
	}
}

func (p baseParser) Vendor() domain.Vendor {
	return p.vendor
}

func (p baseParser) Match(in *Input) bool {
	return p.signature.MatchString(in.From) ||
		p.signature.MatchString(in.Subject) ||
		p.signature.MatchString(in.Source())
}

// Parse applies the shared rules. Usable means at least a confirmation code
// or a recognizable route; otherwise nil and the caller falls through.
func (p baseParser) Parse(in *Input) *domain.ParsedItinerary {
	text := in.preferredText()

	confirmation := extractConfirmation(text)
	from, to := extractRoute(text)
	if confirmation == "" && from == "" {
		return nil
	}

	dep, arr := extractDates(text)
	leg := domain.Leg{
		FromCity:  from,
		ToCity:    to,
		Departure: dep,
		Arrival:   arr,
	}

	return &domain.ParsedItinerary{
		Vendor:       p.vendor,
		Confirmation: confirmation,
		Legs:         []domain.Leg{leg},
		Hash:         domain.ContentHash(text),
		Confidence:   Confidence,
	}
}
