package persistence

import (
	"context"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"
	"tripscan/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ActivityAdapter implements out.ActivityLogger using PostgreSQL. Log is
// fire-and-forget: failures are logged and swallowed so audit writes never
// break the pipeline.
type ActivityAdapter struct {
	db *sqlx.DB
}

// NewActivityAdapter creates a new ActivityAdapter.
func NewActivityAdapter(db *sqlx.DB) *ActivityAdapter {
	return &ActivityAdapter{db: db}
}

// Log persists one activity entry.
func (a *ActivityAdapter) Log(ctx context.Context, entry *domain.ActivityEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var meta []byte
	if len(entry.Meta) > 0 {
		var err error
		meta, err = json.Marshal(entry.Meta)
		if err != nil {
			logger.Warn("failed to marshal activity meta: %v", err)
			meta = nil
		}
	}

	query := `
		INSERT INTO activity_log (id, user_id, level, action, message, meta, trip_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := a.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		string(entry.Level),
		entry.Action,
		nullable(entry.Message),
		meta,
		nullable(entry.TripID),
		entry.CreatedAt,
	)
	if err != nil {
		logger.WithField("action", entry.Action).Warn("failed to write activity entry: %v", err)
	}
}

// Ensure ActivityAdapter implements out.ActivityLogger
var _ out.ActivityLogger = (*ActivityAdapter)(nil)
