package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"regexp"
	"time"

	"tripscan/core/domain"

	"github.com/emersion/go-ical"
)

// CalendarConfidence is assigned to itineraries parsed from calendar-invite
// attachments.
const CalendarConfidence = 0.7

// CalendarExtractor parses a calendar-invite attachment into an itinerary.
// Absence of an invite is not an error.
type CalendarExtractor struct {
	opts Options
}

func NewCalendarExtractor(opts Options) *CalendarExtractor {
	return &CalendarExtractor{opts: opts}
}

func (e *CalendarExtractor) Name() string { return "ics" }

func (e *CalendarExtractor) Extract(ctx context.Context, in *Input) (*domain.ParsedItinerary, error) {
	if in.Message == nil {
		return nil, nil
	}
	part := FindCalendarPart(in.Message.Payload)
	if part == nil {
		return nil, nil
	}

	raw, err := e.partBytes(ctx, in, part)
	if err != nil || len(raw) == 0 {
		// Unfetchable attachment: fall through, the vendor/generic paths may
		// still produce something.
		return nil, nil
	}

	cal, err := ical.NewDecoder(bytes.NewReader(raw)).Decode()
	if err != nil {
		return nil, nil
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, nil
	}
	ev := events[0]

	leg := placeholderLeg(e.opts, "", "")
	if start, err := ev.DateTimeStart(time.UTC); err == nil && !start.IsZero() {
		leg.Departure = start
		leg.Arrival = start.Add(e.opts.window())
	}
	if end, err := ev.DateTimeEnd(time.UTC); err == nil && !end.IsZero() {
		leg.Arrival = end
	}
	if loc, err := ev.Props.Text(ical.PropLocation); err == nil && loc != "" {
		leg.ToCity = loc
	}

	confirmation := ""
	if summary, err := ev.Props.Text(ical.PropSummary); err == nil {
		confirmation = confirmationFromSummary(summary)
	}

	return &domain.ParsedItinerary{
		Vendor:       domain.VendorICS,
		Confirmation: confirmation,
		Legs:         []domain.Leg{leg},
		Hash:         domain.ContentHash(string(raw)),
		Confidence:   CalendarConfidence,
	}, nil
}

func (e *CalendarExtractor) partBytes(ctx context.Context, in *Input, part *domain.MessagePart) ([]byte, error) {
	if part.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
			return data, nil
		}
		if data, err := base64.RawURLEncoding.DecodeString(part.Body.Data); err == nil {
			return data, nil
		}
		return nil, nil
	}
	if part.Body.AttachmentID != "" && in.FetchAttachment != nil {
		return in.FetchAttachment(ctx, part.Body.AttachmentID)
	}
	return nil, nil
}

// locatorPattern matches "Confirmation ABC123" style tokens in invite
// summaries.
var locatorPattern = regexp.MustCompile(`(?i)(?:confirmation|record locator|conf)[:#. ]+\s*([A-Z0-9]{5,8})`)

// confirmationFromSummary pulls a locator-looking token out of an invite
// summary like "Flight DL123 - Confirmation ABC123".
func confirmationFromSummary(summary string) string {
	if m := locatorPattern.FindStringSubmatch(summary); m != nil {
		return m[1]
	}
	return ""
}
