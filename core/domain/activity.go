package domain

import "time"

// =============================================================================
// Activity log
// =============================================================================

type ActivityLevel string

const (
	ActivityLevelInfo  ActivityLevel = "info"
	ActivityLevelWarn  ActivityLevel = "warn"
	ActivityLevelError ActivityLevel = "error"
)

// Well-known activity actions emitted by the pipeline.
const (
	ActionTripCreated      = "TRIP_CREATED"
	ActionTripUpdated      = "TRIP_UPDATED"
	ActionTripMergeOverlap = "TRIP_MERGE_OVERLAP"
	ActionGmailPollFail    = "GMAIL_POLL_FAIL"
	ActionDriveFolderMade  = "DRIVE_FOLDER_CREATED"
	ActionDriveSyncFail    = "DRIVE_SYNC_FAIL"
	ActionCalendarEventSet = "CAL_EVENT_CREATED"
	ActionCalendarSyncFail = "CAL_SYNC_FAIL"
)

// ActivityEntry is one fire-and-forget audit record.
type ActivityEntry struct {
	ID        string         `json:"id,omitempty"`
	UserID    string         `json:"user_id"`
	Level     ActivityLevel  `json:"level"`
	Action    string         `json:"action"`
	Message   string         `json:"message,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	TripID    string         `json:"trip_id,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
}
