package domain

import "time"

// User is the minimal user projection the poller needs.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	GmailConnected     bool      `json:"gmail_connected"`
	DriveConnected     bool      `json:"drive_connected"`
	CalendarConnected  bool      `json:"calendar_connected"`
	UsePrimaryCalendar bool      `json:"use_primary_calendar"`
	BufferMinutes      int       `json:"buffer_minutes"`
	CreatedAt          time.Time `json:"created_at"`
}
