// Package in defines inbound service ports.
package in

import "context"

// OutcomeStatus classifies the result of processing one message.
type OutcomeStatus string

const (
	OutcomeSkippedDuplicate   OutcomeStatus = "skipped-duplicate"
	OutcomeSkippedUnparseable OutcomeStatus = "skipped-unparseable"
	OutcomeMergedIntoTrip     OutcomeStatus = "merged-into-trip"
	OutcomeCreatedTrip        OutcomeStatus = "created-trip"
	OutcomeError              OutcomeStatus = "error"
)

// MessageOutcome is the per-message result of a poll run.
type MessageOutcome struct {
	MessageID string        `json:"message_id"`
	Status    OutcomeStatus `json:"status"`
	TripID    string        `json:"trip_id,omitempty"`
	Reason    string        `json:"reason,omitempty"`
}

// PollResult summarizes one user's poll run. Processed counts messages that
// produced or updated a trip.
type PollResult struct {
	UserID    string           `json:"user_id"`
	Processed int              `json:"processed"`
	Outcomes  []MessageOutcome `json:"outcomes"`
}

// PollService scans a user's inbox for travel-confirmation mail, reconciles
// extracted itineraries against trips, and records processed messages.
type PollService interface {
	PollUser(ctx context.Context, userID string) (*PollResult, error)

	// PollAll polls every Gmail-connected user. Per-user failures are logged
	// and skipped; the run never aborts.
	PollAll(ctx context.Context) (int, error)
}
