package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tripscan/core/domain"
)

var inviteICS = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//airline//booking//EN",
	"BEGIN:VEVENT",
	"UID:evt-1",
	"DTSTAMP:20260301T000000Z",
	"DTSTART:20260310T093000Z",
	"DTEND:20260310T144500Z",
	"SUMMARY:Flight DL123 - Confirmation ABC123",
	"LOCATION:Denver",
	"END:VEVENT",
	"END:VCALENDAR",
	"",
}, "\r\n")

func icsMessage(part *domain.MessagePart) *domain.RawMessage {
	return &domain.RawMessage{
		ID: "msg-1",
		Payload: &domain.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*domain.MessagePart{
				{MimeType: "text/plain", Body: &domain.PartBody{Data: b64("see attached")}},
				part,
			},
		},
	}
}

func TestCalendarExtractor(t *testing.T) {
	e := NewCalendarExtractor(Options{Clock: testClock})

	t.Run("inline calendar part", func(t *testing.T) {
		msg := icsMessage(&domain.MessagePart{
			MimeType: "text/calendar",
			Body:     &domain.PartBody{Data: b64(inviteICS)},
		})
		parsed, err := e.Extract(context.Background(), &Input{Message: msg})
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if parsed == nil {
			t.Fatal("Extract() = nil, want itinerary")
		}
		if parsed.Vendor != domain.VendorICS {
			t.Errorf("Vendor = %s, want %s", parsed.Vendor, domain.VendorICS)
		}
		if parsed.Confidence != CalendarConfidence {
			t.Errorf("Confidence = %v, want %v", parsed.Confidence, CalendarConfidence)
		}
		if parsed.Confirmation != "ABC123" {
			t.Errorf("Confirmation = %q, want ABC123", parsed.Confirmation)
		}
		leg := parsed.Legs[0]
		wantDep := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
		wantArr := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)
		if !leg.Departure.Equal(wantDep) {
			t.Errorf("Departure = %v, want %v", leg.Departure, wantDep)
		}
		if !leg.Arrival.Equal(wantArr) {
			t.Errorf("Arrival = %v, want %v", leg.Arrival, wantArr)
		}
		if leg.ToCity != "Denver" {
			t.Errorf("ToCity = %q, want Denver", leg.ToCity)
		}
	})

	t.Run("attachment resolved through fetcher", func(t *testing.T) {
		msg := icsMessage(&domain.MessagePart{
			MimeType: "application/octet-stream",
			Filename: "invite.ics",
			Body:     &domain.PartBody{AttachmentID: "att-7"},
		})
		var fetchedID string
		fetch := func(_ context.Context, attachmentID string) ([]byte, error) {
			fetchedID = attachmentID
			return []byte(inviteICS), nil
		}
		parsed, err := e.Extract(context.Background(), &Input{Message: msg, FetchAttachment: fetch})
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if parsed == nil {
			t.Fatal("Extract() = nil, want itinerary")
		}
		if fetchedID != "att-7" {
			t.Errorf("fetched attachment = %q, want att-7", fetchedID)
		}
		if parsed.Confirmation != "ABC123" {
			t.Errorf("Confirmation = %q, want ABC123", parsed.Confirmation)
		}
	})

	t.Run("fetcher failure falls through", func(t *testing.T) {
		msg := icsMessage(&domain.MessagePart{
			MimeType: "text/calendar",
			Body:     &domain.PartBody{AttachmentID: "att-7"},
		})
		fetch := func(context.Context, string) ([]byte, error) {
			return nil, errors.New("gone")
		}
		parsed, err := e.Extract(context.Background(), &Input{Message: msg, FetchAttachment: fetch})
		if parsed != nil || err != nil {
			t.Errorf("Extract() = (%+v, %v), want (nil, nil)", parsed, err)
		}
	})

	t.Run("no fetcher for attachment-only part falls through", func(t *testing.T) {
		msg := icsMessage(&domain.MessagePart{
			MimeType: "text/calendar",
			Body:     &domain.PartBody{AttachmentID: "att-7"},
		})
		parsed, err := e.Extract(context.Background(), &Input{Message: msg})
		if parsed != nil || err != nil {
			t.Errorf("Extract() = (%+v, %v), want (nil, nil)", parsed, err)
		}
	})

	t.Run("no calendar part", func(t *testing.T) {
		msg := &domain.RawMessage{
			Payload: &domain.MessagePart{
				MimeType: "text/plain",
				Body:     &domain.PartBody{Data: b64("just text")},
			},
		}
		parsed, err := e.Extract(context.Background(), &Input{Message: msg})
		if parsed != nil || err != nil {
			t.Errorf("Extract() = (%+v, %v), want (nil, nil)", parsed, err)
		}
	})

	t.Run("unparseable calendar data falls through", func(t *testing.T) {
		msg := icsMessage(&domain.MessagePart{
			MimeType: "text/calendar",
			Body:     &domain.PartBody{Data: b64("not a calendar")},
		})
		parsed, err := e.Extract(context.Background(), &Input{Message: msg})
		if parsed != nil || err != nil {
			t.Errorf("Extract() = (%+v, %v), want (nil, nil)", parsed, err)
		}
	})
}

func TestConfirmationFromSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		want    string
	}{
		{"confirmation keyword", "Flight DL123 - Confirmation ABC123", "ABC123"},
		{"record locator keyword", "Trip record locator: XY9Z87", "XY9Z87"},
		{"conf shorthand", "Conf# QWE456 itinerary", "QWE456"},
		{"no locator", "Team standup", ""},
		{"too-short token ignored", "Confirmation AB12", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confirmationFromSummary(tt.summary); got != tt.want {
				t.Errorf("confirmationFromSummary(%q) = %q, want %q", tt.summary, got, tt.want)
			}
		})
	}
}
