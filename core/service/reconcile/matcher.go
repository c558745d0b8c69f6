// Package reconcile matches parsed itineraries onto trip records.
package reconcile

import (
	"context"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"

	"github.com/google/uuid"
)

// MatchSlack widens the overlap window on both sides. Emails about one trip
// arrive piecemeal (booking, change, reminder) with drifting leg dates; the
// slack keeps them collapsing onto one record.
const MatchSlack = 2 * 24 * time.Hour

// AutoPurpose marks trips created by the pipeline rather than by hand.
const AutoPurpose = "Auto from Gmail"

// Result reports what the reconciler did with one itinerary. At most one
// trip is ever touched.
type Result struct {
	Trip    *domain.Trip
	Created bool

	// MatchedByOverlap is true when the trip was found purely by date-range
	// overlap, with no confirmation-code corroboration — a potential false
	// merge worth surfacing.
	MatchedByOverlap bool
}

// Matcher reconciles itineraries against the trip store.
type Matcher struct {
	trips out.TripRepository
	clock func() time.Time
}

func NewMatcher(trips out.TripRepository) *Matcher {
	return &Matcher{trips: trips, clock: time.Now}
}

// NewMatcherWithClock pins the fallback-time source, for tests.
func NewMatcherWithClock(trips out.TripRepository, clock func() time.Time) *Matcher {
	return &Matcher{trips: trips, clock: clock}
}

// Reconcile finds the trip an itinerary belongs to and merges into it, or
// creates a new one. Candidate precedence: confirmation-code substring match
// against stored titles first, date-range overlap second.
func (m *Matcher) Reconcile(ctx context.Context, userID string, itin *domain.ParsedItinerary) (*Result, error) {
	now := m.clock()
	start := itin.Start(now)
	end := itin.End(start)
	title := itin.TripTitle()

	candidate, byOverlap, err := m.findCandidate(ctx, userID, itin, start, end)
	if err != nil {
		return nil, err
	}

	if candidate != nil {
		updated, err := m.trips.Update(ctx, candidate.ID, domain.TripChanges{
			Title:     title,
			StartDate: start,
			EndDate:   end,
			Status:    domain.TripStatusPlanned,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Trip: updated, MatchedByOverlap: byOverlap}, nil
	}

	trip := &domain.Trip{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Status:    domain.TripStatusPlanned,
		Purpose:   AutoPurpose,
	}
	if err := m.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	return &Result{Trip: trip, Created: true}, nil
}

func (m *Matcher) findCandidate(ctx context.Context, userID string, itin *domain.ParsedItinerary, start, end time.Time) (*domain.Trip, bool, error) {
	if itin.Confirmation != "" {
		trip, err := m.trips.FindByTitleContains(ctx, userID, itin.Confirmation)
		if err != nil {
			return nil, false, err
		}
		if trip != nil {
			return trip, false, nil
		}
	}

	trip, err := m.trips.FindOverlapping(ctx, userID, start.Add(-MatchSlack), end.Add(MatchSlack))
	if err != nil {
		return nil, false, err
	}
	return trip, trip != nil, nil
}
