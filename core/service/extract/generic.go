package extract

import (
	"context"

	"tripscan/core/domain"
)

// GenericConfidence marks the last-resort placeholder itinerary. Downstream
// consumers must treat its leg data as unreliable.
const GenericConfidence = 0.2

// GenericExtractor always succeeds for messages with extractable content,
// producing a low-confidence placeholder itinerary so the pipeline never
// returns nothing for plausibly-relevant mail. Empty messages yield no
// result; they are skipped as non-itinerary mail.
type GenericExtractor struct {
	opts Options
}

func NewGenericExtractor(opts Options) *GenericExtractor {
	return &GenericExtractor{opts: opts}
}

func (e *GenericExtractor) Name() string { return "generic" }

func (e *GenericExtractor) Extract(_ context.Context, in *Input) (*domain.ParsedItinerary, error) {
	src := in.Body.Text
	if src == "" {
		src = in.Body.HTML
	}
	if src == "" {
		return nil, nil
	}

	return &domain.ParsedItinerary{
		Vendor:     domain.VendorGeneric,
		Legs:       []domain.Leg{placeholderLeg(e.opts, "TBD", "TBD")},
		Hash:       domain.ContentHash(src),
		Confidence: GenericConfidence,
	}, nil
}
