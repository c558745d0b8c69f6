package domain

import "time"

// =============================================================================
// Trip
// =============================================================================

type TripStatus string

const (
	TripStatusPlanned  TripStatus = "planned"
	TripStatusApproved TripStatus = "approved" // set by external collaborators
	TripStatusExported TripStatus = "exported" // set by external collaborators
)

// Trip is a travel record. The reconciler owns title, dates, status and
// purpose; artifact columns are owned by the side-effect writers.
type Trip struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Status    TripStatus `json:"status"`
	Purpose   string     `json:"purpose,omitempty"`

	// Artifact links (Drive folder, Calendar event)
	DriveFolderID   string `json:"drive_folder_id,omitempty"`
	CalendarEventID string `json:"calendar_event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TripChanges carries the fields the reconciler writes on a merge.
type TripChanges struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Status    TripStatus
}
