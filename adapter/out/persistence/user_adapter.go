package persistence

import (
	"context"
	"database/sql"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"

	"github.com/jmoiron/sqlx"
)

// userEntity is the users table row, projected to poller needs.
type userEntity struct {
	ID                 string        `db:"id"`
	Email              string        `db:"email"`
	GmailConnected     bool          `db:"gmail_connected"`
	DriveConnected     bool          `db:"drive_connected"`
	CalendarConnected  bool          `db:"calendar_connected"`
	UsePrimaryCalendar bool          `db:"use_primary_calendar"`
	BufferMinutes      sql.NullInt64 `db:"buffer_minutes"`
	CreatedAt          time.Time     `db:"created_at"`
}

func (e *userEntity) toDomain() *domain.User {
	return &domain.User{
		ID:                 e.ID,
		Email:              e.Email,
		GmailConnected:     e.GmailConnected,
		DriveConnected:     e.DriveConnected,
		CalendarConnected:  e.CalendarConnected,
		UsePrimaryCalendar: e.UsePrimaryCalendar,
		BufferMinutes:      int(e.BufferMinutes.Int64),
		CreatedAt:          e.CreatedAt,
	}
}

const userColumns = `id, email, gmail_connected, drive_connected, calendar_connected,
	       use_primary_calendar, buffer_minutes, created_at`

// UserAdapter implements out.UserRepository using PostgreSQL.
type UserAdapter struct {
	db *sqlx.DB
}

// NewUserAdapter creates a new UserAdapter.
func NewUserAdapter(db *sqlx.DB) *UserAdapter {
	return &UserAdapter{db: db}
}

// GetByID returns a user by id, or (nil, nil) when absent.
func (a *UserAdapter) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var entity userEntity
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	if err := a.db.GetContext(ctx, &entity, query, userID); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return entity.toDomain(), nil
}

// ListGmailConnected returns every user with a live Gmail connection.
func (a *UserAdapter) ListGmailConnected(ctx context.Context) ([]*domain.User, error) {
	var entities []*userEntity
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE gmail_connected = true
		ORDER BY created_at`

	if err := a.db.SelectContext(ctx, &entities, query); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(entities))
	for _, entity := range entities {
		users = append(users, entity.toDomain())
	}
	return users, nil
}

// Ensure UserAdapter implements out.UserRepository
var _ out.UserRepository = (*UserAdapter)(nil)
