package vendors

import (
	"testing"
	"time"

	"tripscan/core/domain"
)

func TestDefaultRegistryOrder(t *testing.T) {
	got := NewDefaultRegistry().Vendors()
	want := []domain.Vendor{
		domain.VendorCapitalOne,
		domain.VendorExpedia,
		domain.VendorDelta,
		domain.VendorUnited,
		domain.VendorAmerican,
		domain.VendorSouthwest,
	}
	if len(got) != len(want) {
		t.Fatalf("Vendors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vendors()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRegistryDispatch(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name       string
		input      *Input
		wantVendor domain.Vendor
		wantNil    bool
	}{
		{
			name: "delta from address",
			input: &Input{
				From: "Delta Air Lines <no-reply@delta.com>",
				Text: "Confirmation ABC123\nBoston to Denver",
			},
			wantVendor: domain.VendorDelta,
		},
		{
			name: "united subject",
			input: &Input{
				Subject: "Your United Airlines eTicket",
				Text:    "Confirmation: QWE456",
			},
			wantVendor: domain.VendorUnited,
		},
		{
			name: "american record locator phrasing",
			input: &Input{
				From: "notify@americanair.aa.com",
				Text: "Record locator: XY9Z87\nDallas to Miami",
			},
			wantVendor: domain.VendorAmerican,
		},
		{
			name: "southwest body signature",
			input: &Input{
				Text: "Thanks for flying Southwest Airlines! Confirmation ABC123",
			},
			wantVendor: domain.VendorSouthwest,
		},
		{
			name: "aggregator outranks mentioned carrier",
			input: &Input{
				From: "Capital One Travel <travel@capitalone.com>",
				Text: "Your Delta flight is booked. Booking ID: CO12345\nBoston to Denver",
			},
			wantVendor: domain.VendorCapitalOne,
		},
		{
			name: "expedia outranks mentioned carrier",
			input: &Input{
				From: "Expedia <itinerary@expedia.com>",
				Text: "United flight booked. Itinerary number: 72301457711234",
			},
			wantVendor: domain.VendorExpedia,
		},
		{
			name: "unknown sender",
			input: &Input{
				From: "orders@shop.example.com",
				Text: "Your package shipped",
			},
			wantNil: true,
		},
		{
			name: "matched vendor with unusable body",
			input: &Input{
				From: "no-reply@delta.com",
				Text: "lowercase text with nothing extractable",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := r.Extract(tt.input)
			if tt.wantNil {
				if parsed != nil {
					t.Errorf("Extract() = %+v, want nil", parsed)
				}
				return
			}
			if parsed == nil {
				t.Fatal("Extract() = nil, want itinerary")
			}
			if parsed.Vendor != tt.wantVendor {
				t.Errorf("Vendor = %s, want %s", parsed.Vendor, tt.wantVendor)
			}
			if parsed.Confidence != Confidence {
				t.Errorf("Confidence = %v, want %v", parsed.Confidence, Confidence)
			}
			if parsed.Hash == "" {
				t.Error("Hash is empty")
			}
		})
	}
}

func TestBaseParserFields(t *testing.T) {
	r := NewDefaultRegistry()
	parsed := r.Extract(&Input{
		From: "no-reply@delta.com",
		Text: "Confirmation: ABC123\nBoston to Denver\nDepart Jan 2, 2026\nReturn Jan 9, 2026",
	})
	if parsed == nil {
		t.Fatal("Extract() = nil, want itinerary")
	}
	if parsed.Confirmation != "ABC123" {
		t.Errorf("Confirmation = %q, want ABC123", parsed.Confirmation)
	}
	leg := parsed.Legs[0]
	if leg.FromCity != "Boston" || leg.ToCity != "Denver" {
		t.Errorf("route = %q→%q, want Boston→Denver", leg.FromCity, leg.ToCity)
	}
	wantDep := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	wantArr := time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC)
	if !leg.Departure.Equal(wantDep) {
		t.Errorf("Departure = %v, want %v", leg.Departure, wantDep)
	}
	if !leg.Arrival.Equal(wantArr) {
		t.Errorf("Arrival = %v, want %v", leg.Arrival, wantArr)
	}
}

func TestCapitalOneBookingIDFallback(t *testing.T) {
	r := NewDefaultRegistry()
	parsed := r.Extract(&Input{
		From: "Capital One Travel <travel@capitalone.com>",
		Text: "Your hotel is reserved.\nBooking ID: H83KD92QX",
	})
	if parsed == nil {
		t.Fatal("Extract() = nil, want itinerary for booking-id-only email")
	}
	if parsed.Vendor != domain.VendorCapitalOne {
		t.Errorf("Vendor = %s, want %s", parsed.Vendor, domain.VendorCapitalOne)
	}
	if parsed.Confirmation != "H83KD92QX" {
		t.Errorf("Confirmation = %q, want H83KD92QX", parsed.Confirmation)
	}
}

func TestExpediaItineraryNumber(t *testing.T) {
	r := NewDefaultRegistry()
	parsed := r.Extract(&Input{
		From: "Expedia <itinerary@expedia.com>",
		Text: "Itinerary # 72301457711\nSeattle to Austin\nMar 3, 2026",
	})
	if parsed == nil {
		t.Fatal("Extract() = nil, want itinerary")
	}
	if parsed.Confirmation != "72301457711" {
		t.Errorf("Confirmation = %q, want the itinerary number", parsed.Confirmation)
	}
	if parsed.Legs[0].FromCity != "Seattle" {
		t.Errorf("FromCity = %q, want Seattle", parsed.Legs[0].FromCity)
	}
}

func TestSharedFieldExtraction(t *testing.T) {
	t.Run("confirmation phrasings", func(t *testing.T) {
		tests := []struct {
			src  string
			want string
		}{
			{"Confirmation: ABC123", "ABC123"},
			{"Record Locator XY9Z87", "XY9Z87"},
			{"Booking reference: QWE456", "QWE456"},
			{"Confirmation code DEF789", "DEF789"},
			{"conf# ghj234 lowercase locator", "GHJ234"},
			{"no locator text", ""},
		}
		for _, tt := range tests {
			if got := extractConfirmation(tt.src); got != tt.want {
				t.Errorf("extractConfirmation(%q) = %q, want %q", tt.src, got, tt.want)
			}
		}
	})

	t.Run("date formats", func(t *testing.T) {
		first, last := extractDates("Depart 1/2/2026 and return 2026-01-09")
		if first.IsZero() || last.IsZero() {
			t.Fatal("extractDates() missed a supported format")
		}
		if !first.Before(last) {
			t.Errorf("first = %v not before last = %v", first, last)
		}
	})

	t.Run("no dates", func(t *testing.T) {
		first, last := extractDates("sometime soon")
		if !first.IsZero() || !last.IsZero() {
			t.Errorf("extractDates() = (%v, %v), want zero times", first, last)
		}
	})
}
