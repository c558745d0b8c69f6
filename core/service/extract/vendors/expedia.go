package vendors

import (
	"regexp"

	"tripscan/core/domain"
)

// ExpediaParser handles Expedia itinerary emails, which carry a long numeric
// itinerary number instead of an airline-style locator.
type ExpediaParser struct {
	baseParser
}

var expediaItineraryNumber = regexp.MustCompile(`(?i)itinerary\s*(?:number|#)[:#\s]*\s*(\d{10,14})\b`)

func NewExpediaParser() *ExpediaParser {
	return &ExpediaParser{
		baseParser: newBaseParser(domain.VendorExpedia, `(?i)expedia(?:\.com)?`),
	}
}

func (p *ExpediaParser) Parse(in *Input) *domain.ParsedItinerary {
	parsed := p.baseParser.Parse(in)
	m := expediaItineraryNumber.FindStringSubmatch(in.preferredText())
	if m == nil {
		return parsed
	}
	if parsed == nil {
		text := in.preferredText()
		dep, arr := extractDates(text)
		from, to := extractRoute(text)
		parsed = &domain.ParsedItinerary{
			Vendor:     p.vendor,
			Legs:       []domain.Leg{{FromCity: from, ToCity: to, Departure: dep, Arrival: arr}},
			Hash:       domain.ContentHash(text),
			Confidence: Confidence,
		}
	}
	if parsed.Confirmation == "" {
		parsed.Confirmation = m[1]
	}
	return parsed
}
