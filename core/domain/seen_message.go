package domain

import "time"

// SeenMessageRecord is the idempotence marker for a processed provider
// message. Created exactly once; never updated. Existence of a record with
// the same (user, message id) is the sole skip signal on future polls.
type SeenMessageRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MessageID    string    `json:"message_id"` // provider message id
	ThreadID     string    `json:"thread_id,omitempty"`
	InternalDate int64     `json:"internal_date"` // provider epoch millis
	Vendor       Vendor    `json:"vendor,omitempty"`
	ParsedHash   string    `json:"parsed_hash,omitempty"`
	TripID       string    `json:"trip_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
