package extract

import (
	"context"

	"tripscan/core/domain"
	"tripscan/core/service/extract/vendors"
)

// VendorExtractor dispatches to the travel-vendor registry. Field extraction
// lives in the vendors package; this wrapper only normalizes missing times
// to the placeholder window.
type VendorExtractor struct {
	registry *vendors.Registry
	opts     Options
}

func NewVendorExtractor(registry *vendors.Registry, opts Options) *VendorExtractor {
	if registry == nil {
		registry = vendors.NewDefaultRegistry()
	}
	return &VendorExtractor{registry: registry, opts: opts}
}

func (e *VendorExtractor) Name() string { return "vendor" }

func (e *VendorExtractor) Extract(_ context.Context, in *Input) (*domain.ParsedItinerary, error) {
	if in.Body.IsEmpty() {
		return nil, nil
	}

	parsed := e.registry.Extract(&vendors.Input{
		From:    in.From(),
		Subject: in.Subject(),
		HTML:    in.Body.HTML,
		Text:    in.Body.Text,
	})
	if parsed == nil {
		return nil, nil
	}

	for i := range parsed.Legs {
		leg := &parsed.Legs[i]
		if leg.Departure.IsZero() {
			placeholder := placeholderLeg(e.opts, leg.FromCity, leg.ToCity)
			leg.Departure = placeholder.Departure
			if leg.Arrival.IsZero() {
				leg.Arrival = placeholder.Arrival
			}
		} else if leg.Arrival.IsZero() {
			leg.Arrival = leg.Departure.Add(e.opts.window())
		}
	}
	return parsed, nil
}
