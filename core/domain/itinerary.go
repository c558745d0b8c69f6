package domain

import "time"

// =============================================================================
// Vendor
// =============================================================================

// Vendor tags the extraction source of an itinerary. Travel vendors form a
// closed enumeration; "jsonld", "ics" and "generic" mark non-vendor extractors.
type Vendor string

const (
	VendorJSONLD  Vendor = "jsonld"
	VendorICS     Vendor = "ics"
	VendorGeneric Vendor = "generic"

	VendorCapitalOne Vendor = "capitalone"
	VendorDelta      Vendor = "delta"
	VendorUnited     Vendor = "united"
	VendorAmerican   Vendor = "aa"
	VendorSouthwest  Vendor = "southwest"
	VendorExpedia    Vendor = "expedia"
)

// =============================================================================
// Leg & ParsedItinerary
// =============================================================================

// Leg is one directional travel segment. Arrival >= Departure is expected but
// not enforced; malformed input must not break the pipeline.
type Leg struct {
	FromCity  string    `json:"from_city,omitempty"`
	ToCity    string    `json:"to_city,omitempty"`
	Departure time.Time `json:"departure"`
	Arrival   time.Time `json:"arrival"`
}

// ParsedItinerary is the canonical output of the itinerary normalizer.
// Constructed once per parsed message and never mutated afterwards.
type ParsedItinerary struct {
	Vendor       Vendor  `json:"vendor,omitempty"`
	Confirmation string  `json:"confirmation,omitempty"`
	Legs         []Leg   `json:"legs"` // non-empty, ordered
	Hash         string  `json:"hash"` // hex sha256 over the normalized source
	Confidence   float64 `json:"confidence"` // [0,1]
}

// Start returns the departure of the first leg, or fallback when no legs exist.
func (p *ParsedItinerary) Start(fallback time.Time) time.Time {
	if len(p.Legs) == 0 || p.Legs[0].Departure.IsZero() {
		return fallback
	}
	return p.Legs[0].Departure
}

// End returns the arrival of the last leg, falling back to start.
func (p *ParsedItinerary) End(fallback time.Time) time.Time {
	if len(p.Legs) == 0 || p.Legs[len(p.Legs)-1].Arrival.IsZero() {
		return fallback
	}
	return p.Legs[len(p.Legs)-1].Arrival
}

// TripTitle builds the canonical trip title: "From→To [CONF]".
func (p *ParsedItinerary) TripTitle() string {
	from := "Trip"
	if len(p.Legs) > 0 && p.Legs[0].FromCity != "" {
		from = p.Legs[0].FromCity
	}
	to := ""
	if len(p.Legs) > 0 {
		to = p.Legs[len(p.Legs)-1].ToCity
	}
	return from + "→" + to + " [" + p.Confirmation + "]"
}
