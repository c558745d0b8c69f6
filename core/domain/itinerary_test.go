package domain

import (
	"testing"
	"time"
)

func TestParsedItineraryStartEnd(t *testing.T) {
	fallback := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dep := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	arr := time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)

	tests := []struct {
		name      string
		itinerary ParsedItinerary
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name: "single leg uses its own times",
			itinerary: ParsedItinerary{
				Legs: []Leg{{Departure: dep, Arrival: arr}},
			},
			wantStart: dep,
			wantEnd:   arr,
		},
		{
			name: "multi leg spans first departure to last arrival",
			itinerary: ParsedItinerary{
				Legs: []Leg{
					{Departure: dep, Arrival: dep.Add(2 * time.Hour)},
					{Departure: dep.Add(3 * time.Hour), Arrival: arr},
				},
			},
			wantStart: dep,
			wantEnd:   arr,
		},
		{
			name:      "no legs falls back",
			itinerary: ParsedItinerary{},
			wantStart: fallback,
			wantEnd:   fallback,
		},
		{
			name: "zero departure falls back",
			itinerary: ParsedItinerary{
				Legs: []Leg{{Arrival: arr}},
			},
			wantStart: fallback,
			wantEnd:   arr,
		},
		{
			name: "zero last arrival falls back to start",
			itinerary: ParsedItinerary{
				Legs: []Leg{{Departure: dep}},
			},
			wantStart: dep,
			wantEnd:   fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.itinerary.Start(fallback); !got.Equal(tt.wantStart) {
				t.Errorf("Start() = %v, want %v", got, tt.wantStart)
			}
			if got := tt.itinerary.End(tt.wantStart); !got.Equal(tt.wantEnd) {
				t.Errorf("End() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestParsedItineraryTripTitle(t *testing.T) {
	tests := []struct {
		name      string
		itinerary ParsedItinerary
		want      string
	}{
		{
			name: "route and confirmation",
			itinerary: ParsedItinerary{
				Confirmation: "ABC123",
				Legs:         []Leg{{FromCity: "Boston", ToCity: "Denver"}},
			},
			want: "Boston→Denver [ABC123]",
		},
		{
			name: "multi leg takes outer endpoints",
			itinerary: ParsedItinerary{
				Confirmation: "XY9Z87",
				Legs: []Leg{
					{FromCity: "Boston", ToCity: "Chicago"},
					{FromCity: "Chicago", ToCity: "Denver"},
				},
			},
			want: "Boston→Denver [XY9Z87]",
		},
		{
			name:      "no legs yields generic title",
			itinerary: ParsedItinerary{Confirmation: "ABC123"},
			want:      "Trip→ [ABC123]",
		},
		{
			name: "missing from city keeps generic prefix",
			itinerary: ParsedItinerary{
				Legs: []Leg{{ToCity: "Denver"}},
			},
			want: "Trip→Denver []",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.itinerary.TripTitle(); got != tt.want {
				t.Errorf("TripTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
