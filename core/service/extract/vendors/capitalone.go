package vendors

import (
	"regexp"

	"tripscan/core/domain"
)

// CapitalOneParser handles Capital One Travel booking confirmations.
type CapitalOneParser struct {
	baseParser
}

// Capital One Travel says "Booking ID" where airlines say confirmation.
var capitalOneBookingID = regexp.MustCompile(`(?i)booking (?:id|reference)[:#\s]*\s*([A-Z0-9]{5,10})\b`)

func NewCapitalOneParser() *CapitalOneParser {
	return &CapitalOneParser{
		baseParser: newBaseParser(domain.VendorCapitalOne, `(?i)capital ?one(?: travel)?|capitalone\.com`),
	}
}

func (p *CapitalOneParser) Parse(in *Input) *domain.ParsedItinerary {
	parsed := p.baseParser.Parse(in)
	if parsed != nil && parsed.Confirmation == "" {
		if m := capitalOneBookingID.FindStringSubmatch(in.preferredText()); m != nil {
			parsed.Confirmation = m[1]
		}
	}
	if parsed == nil {
		// Route-less bookings still carry a Booking ID worth keeping.
		if m := capitalOneBookingID.FindStringSubmatch(in.preferredText()); m != nil {
			text := in.preferredText()
			dep, arr := extractDates(text)
			parsed = &domain.ParsedItinerary{
				Vendor:       p.vendor,
				Confirmation: m[1],
				Legs:         []domain.Leg{{Departure: dep, Arrival: arr}},
				Hash:         domain.ContentHash(text),
				Confidence:   Confidence,
			}
		}
	}
	return parsed
}
