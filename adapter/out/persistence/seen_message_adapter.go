package persistence

import (
	"context"
	"time"

	"tripscan/core/domain"
	"tripscan/core/port/out"

	"github.com/jmoiron/sqlx"
)

// SeenMessageAdapter implements out.SeenMessageRepository using PostgreSQL.
// The table carries a unique (user_id, message_id) constraint; insertion is
// idempotent through ON CONFLICT DO NOTHING.
type SeenMessageAdapter struct {
	db *sqlx.DB
}

// NewSeenMessageAdapter creates a new SeenMessageAdapter.
func NewSeenMessageAdapter(db *sqlx.DB) *SeenMessageAdapter {
	return &SeenMessageAdapter{db: db}
}

// FindSeenIDs returns the subset of candidate ids already recorded.
func (a *SeenMessageAdapter) FindSeenIDs(ctx context.Context, userID string, candidateIDs []string) (map[string]struct{}, error) {
	if len(candidateIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	var ids []string
	query := `
		SELECT message_id
		FROM seen_messages
		WHERE user_id = $1 AND message_id = ANY($2)`

	if err := a.db.SelectContext(ctx, &ids, query, userID, candidateIDs); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return seen, nil
}

// Create records a processed message.
func (a *SeenMessageAdapter) Create(ctx context.Context, rec *domain.SeenMessageRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO seen_messages (id, user_id, message_id, thread_id, internal_date,
		                           vendor, parsed_hash, trip_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, message_id) DO NOTHING`

	_, err := a.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.MessageID,
		nullable(rec.ThreadID),
		rec.InternalDate,
		nullable(string(rec.Vendor)),
		nullable(rec.ParsedHash),
		nullable(rec.TripID),
		rec.CreatedAt,
	)
	return err
}

// Ensure SeenMessageAdapter implements out.SeenMessageRepository
var _ out.SeenMessageRepository = (*SeenMessageAdapter)(nil)
