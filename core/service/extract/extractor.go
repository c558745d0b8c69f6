package extract

import (
	"context"
	"time"

	"tripscan/core/domain"
)

// DefaultPlaceholderWindow is the synthetic trip duration substituted when a
// structured payload carries no usable departure/arrival times. Placeholder,
// not a statement about the actual trip.
const DefaultPlaceholderWindow = 2 * time.Hour

// AttachmentFetcher loads one attachment body for the message being parsed.
type AttachmentFetcher func(ctx context.Context, attachmentID string) ([]byte, error)

// Input carries everything an extractor may look at for one message.
type Input struct {
	Message *domain.RawMessage
	Body    domain.ExtractedBody

	// FetchAttachment is nil when the caller cannot resolve attachments
	// (extractors must tolerate that).
	FetchAttachment AttachmentFetcher
}

// From returns the message From header, or "".
func (in *Input) From() string {
	if in.Message == nil {
		return ""
	}
	return in.Message.Header("From")
}

// Subject returns the message Subject header, or "".
func (in *Input) Subject() string {
	if in.Message == nil {
		return ""
	}
	return in.Message.Header("Subject")
}

// Extractor is one parsing strategy. (nil, nil) means "does not apply";
// errors are reserved for unexpected conditions and make the normalizer
// fall through the same way.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, in *Input) (*domain.ParsedItinerary, error)
}

// Options tunes the extractor chain.
type Options struct {
	// PlaceholderWindow overrides DefaultPlaceholderWindow when > 0.
	PlaceholderWindow time.Duration

	// Clock overrides time.Now, for deterministic placeholder times in tests.
	Clock func() time.Time
}

func (o Options) window() time.Duration {
	if o.PlaceholderWindow > 0 {
		return o.PlaceholderWindow
	}
	return DefaultPlaceholderWindow
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// placeholderLeg builds the unknown-time fallback leg.
func placeholderLeg(o Options, fromCity, toCity string) domain.Leg {
	dep := o.now()
	return domain.Leg{
		FromCity:  fromCity,
		ToCity:    toCity,
		Departure: dep,
		Arrival:   dep.Add(o.window()),
	}
}
