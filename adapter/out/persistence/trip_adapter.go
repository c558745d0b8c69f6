// Package persistence provides database adapters.
package persistence

import (
	"context"
	"database/sql"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"

	"github.com/jmoiron/sqlx"
)

// tripEntity is the trips table row.
type tripEntity struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	Title           string         `db:"title"`
	StartDate       time.Time      `db:"start_date"`
	EndDate         time.Time      `db:"end_date"`
	Status          string         `db:"status"`
	Purpose         sql.NullString `db:"purpose"`
	DriveFolderID   sql.NullString `db:"drive_folder_id"`
	CalendarEventID sql.NullString `db:"calendar_event_id"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (e *tripEntity) toDomain() *domain.Trip {
	return &domain.Trip{
		ID:              e.ID,
		UserID:          e.UserID,
		Title:           e.Title,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		Status:          domain.TripStatus(e.Status),
		Purpose:         e.Purpose.String,
		DriveFolderID:   e.DriveFolderID.String,
		CalendarEventID: e.CalendarEventID.String,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

const tripColumns = `id, user_id, title, start_date, end_date, status, purpose,
	       drive_folder_id, calendar_event_id, created_at, updated_at`

// TripAdapter implements out.TripRepository using PostgreSQL.
type TripAdapter struct {
	db *sqlx.DB
}

// NewTripAdapter creates a new TripAdapter.
func NewTripAdapter(db *sqlx.DB) *TripAdapter {
	return &TripAdapter{db: db}
}

// FindByTitleContains returns the user's most recently updated trip whose
// title contains needle, or (nil, nil) when none matches.
func (a *TripAdapter) FindByTitleContains(ctx context.Context, userID, needle string) (*domain.Trip, error) {
	var entity tripEntity
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
		ORDER BY updated_at DESC
		LIMIT 1`

	if err := a.db.GetContext(ctx, &entity, query, userID, needle); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return entity.toDomain(), nil
}

// FindOverlapping returns the user's most recently updated trip whose date
// window intersects [from, to], or (nil, nil) when none matches.
func (a *TripAdapter) FindOverlapping(ctx context.Context, userID string, from, to time.Time) (*domain.Trip, error) {
	var entity tripEntity
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY updated_at DESC
		LIMIT 1`

	if err := a.db.GetContext(ctx, &entity, query, userID, from, to); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return entity.toDomain(), nil
}

// Create inserts a new trip.
func (a *TripAdapter) Create(ctx context.Context, trip *domain.Trip) error {
	now := time.Now().UTC()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	query := `
		INSERT INTO trips (id, user_id, title, start_date, end_date, status, purpose,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := a.db.ExecContext(ctx, query,
		trip.ID,
		trip.UserID,
		trip.Title,
		trip.StartDate,
		trip.EndDate,
		string(trip.Status),
		nullable(trip.Purpose),
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	return err
}

// Update applies the reconciler's changes and returns the updated trip.
func (a *TripAdapter) Update(ctx context.Context, tripID string, changes domain.TripChanges) (*domain.Trip, error) {
	var entity tripEntity
	query := `
		UPDATE trips
		SET title = $1, start_date = $2, end_date = $3, status = $4, updated_at = $5
		WHERE id = $6
		RETURNING ` + tripColumns

	err := a.db.GetContext(ctx, &entity, query,
		changes.Title,
		changes.StartDate,
		changes.EndDate,
		string(changes.Status),
		time.Now().UTC(),
		tripID,
	)
	if err != nil {
		if noRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entity.toDomain(), nil
}

// SetArtifacts records artifact ids on the trip row. Empty values clear the
// corresponding column.
func (a *TripAdapter) SetArtifacts(ctx context.Context, tripID, driveFolderID, calendarEventID string) error {
	query := `
		UPDATE trips
		SET drive_folder_id = $1, calendar_event_id = $2, updated_at = $3
		WHERE id = $4`

	_, err := a.db.ExecContext(ctx, query,
		nullable(driveFolderID),
		nullable(calendarEventID),
		time.Now().UTC(),
		tripID,
	)
	return err
}

// GetByID returns a trip by id, or (nil, nil) when absent.
func (a *TripAdapter) GetByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	var entity tripEntity
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	if err := a.db.GetContext(ctx, &entity, query, tripID); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return entity.toDomain(), nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure TripAdapter implements out.TripRepository
var _ out.TripRepository = (*TripAdapter)(nil)
