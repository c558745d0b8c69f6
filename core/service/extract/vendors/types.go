// Package vendors implements signature-based extraction rules for known
// travel vendors. Adding a vendor means registering one parser; dispatch
// logic never changes.
package vendors

import (
	"regexp"
	"strings"
	"time"

	"tripscan/core/domain"
)

// Confidence for vendor-heuristic itineraries: above the generic fallback,
// below machine-readable sources.
const Confidence = 0.5

// Input is the per-message view a vendor parser sees.
type Input struct {
	From    string
	Subject string
	HTML    string
	Text    string
}

// Source returns the combined body used for signature scanning and field
// extraction.
func (in *Input) Source() string {
	return in.HTML + in.Text
}

// preferredText returns the plain-text body when present; regex field
// extraction works much better on text than on markup.
func (in *Input) preferredText() string {
	if in.Text != "" {
		return in.Text
	}
	return in.HTML
}

// Parser is one vendor's signature + extraction rules.
type Parser interface {
	// Vendor returns the vendor tag this parser emits.
	Vendor() domain.Vendor

	// Match checks the vendor signature against the message.
	Match(in *Input) bool

	// Parse applies the vendor's field-extraction rules. Returns nil when
	// the rules yield nothing usable; the caller falls through.
	Parse(in *Input) *domain.ParsedItinerary
}

// =============================================================================
// Registry
// =============================================================================

// Registry dispatches messages to vendor parsers in registration order, so
// matching stays deterministic.
type Registry struct {
	parsers []Parser
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a parser to the dispatch table.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// Find returns the first parser whose signature matches, or nil.
func (r *Registry) Find(in *Input) Parser {
	for _, p := range r.parsers {
		if p.Match(in) {
			return p
		}
	}
	return nil
}

// Extract runs the matching parser's rules. Nil when no vendor matches or
// the matched vendor's rules yield nothing usable.
func (r *Registry) Extract(in *Input) *domain.ParsedItinerary {
	p := r.Find(in)
	if p == nil {
		return nil
	}
	return p.Parse(in)
}

// Vendors lists the registered vendor tags in dispatch order.
func (r *Registry) Vendors() []domain.Vendor {
	tags := make([]domain.Vendor, len(r.parsers))
	for i, p := range r.parsers {
		tags[i] = p.Vendor()
	}
	return tags
}

// =============================================================================
// Shared field extraction
// =============================================================================

var (
	confirmationPattern = regexp.MustCompile(`(?i)(?:confirmation|record locator|booking reference|conf(?:irmation)?\s*(?:code|number|#))[:#\s]*\s*([A-Z0-9]{5,8})\b`)

	// "Boston to Denver", "Boston - Denver", "Boston → Denver"
	routePattern = regexp.MustCompile(`(?m)([A-Z][A-Za-z.' ]{1,30}?)\s+(?:to|-|–|→)\s+([A-Z][A-Za-z.' ]{1,30})`)

	// "Jan 2, 2026", "January 2, 2026", "01/02/2026", "2026-01-02"
	datePattern = regexp.MustCompile(`(?:\b[A-Z][a-z]{2,8} \d{1,2}, \d{4}\b)|(?:\b\d{1,2}/\d{1,2}/\d{4}\b)|(?:\b\d{4}-\d{2}-\d{2}\b)`)
)

var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"1/2/2006",
	"2006-01-02",
}

func extractConfirmation(src string) string {
	if m := confirmationPattern.FindStringSubmatch(src); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

func extractRoute(src string) (from, to string) {
	if m := routePattern.FindStringSubmatch(src); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", ""
}

// extractDates returns the first and last parseable dates in the body.
// Zero times when none parse.
func extractDates(src string) (first, last time.Time) {
	for _, raw := range datePattern.FindAllString(src, -1) {
		t, ok := parseDate(raw)
		if !ok {
			continue
		}
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if last.IsZero() || t.After(last) {
			last = t
		}
	}
	return first, last
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
