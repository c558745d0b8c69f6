package extract

import (
	"context"

	"tripscan/core/domain"
	"tripscan/core/service/extract/vendors"
)

// Normalizer runs the extractor chain in confidence-descending order and
// returns the first successful result. Machine-verifiable sources beat
// vendor heuristics beat the generic placeholder; once an extractor
// succeeds, the rest are never invoked.
type Normalizer struct {
	extractors []Extractor
}

// NewNormalizer builds the default chain: markup → calendar → vendor →
// generic.
func NewNormalizer(registry *vendors.Registry, opts Options) *Normalizer {
	return NewNormalizerWith(
		NewMarkupExtractor(opts),
		NewCalendarExtractor(opts),
		NewVendorExtractor(registry, opts),
		NewGenericExtractor(opts),
	)
}

// NewNormalizerWith builds a normalizer over an explicit chain, in order.
func NewNormalizerWith(extractors ...Extractor) *Normalizer {
	return &Normalizer{extractors: extractors}
}

// Normalize parses one message. Returns (nil, nil) when no extractor
// applies — an empty message is non-itinerary mail, not an error, and the
// generic fallback never runs on it.
func (n *Normalizer) Normalize(ctx context.Context, msg *domain.RawMessage, fetch AttachmentFetcher) (*domain.ParsedItinerary, error) {
	in := &Input{
		Message:         msg,
		Body:            ExtractBody(msg),
		FetchAttachment: fetch,
	}

	for _, e := range n.extractors {
		parsed, err := e.Extract(ctx, in)
		if err != nil {
			// An extractor blowing up is recovered at extractor scope; the
			// next strategy still gets its chance.
			continue
		}
		if parsed != nil {
			return parsed, nil
		}
	}
	return nil, nil
}
