package out

import (
	"context"
	"time"

	"tripscan/core/domain"
)

// =============================================================================
// Trip persistence
// =============================================================================

// TripRepository is the relational trip store. Find methods return (nil, nil)
// when no row matches.
type TripRepository interface {
	// FindByTitleContains returns the user's most recent trip whose title
	// contains needle.
	FindByTitleContains(ctx context.Context, userID, needle string) (*domain.Trip, error)

	// FindOverlapping returns the user's most recent trip whose [start,end]
	// window intersects [from, to].
	FindOverlapping(ctx context.Context, userID string, from, to time.Time) (*domain.Trip, error)

	Create(ctx context.Context, trip *domain.Trip) error
	Update(ctx context.Context, tripID string, changes domain.TripChanges) (*domain.Trip, error)

	// SetArtifacts records side-effect writer output on the trip row.
	SetArtifacts(ctx context.Context, tripID, driveFolderID, calendarEventID string) error

	GetByID(ctx context.Context, tripID string) (*domain.Trip, error)
}

// =============================================================================
// Seen-message persistence
// =============================================================================

// SeenMessageRepository is the append-only idempotence store.
type SeenMessageRepository interface {
	// FindSeenIDs returns the subset of candidate ids already recorded for
	// the user.
	FindSeenIDs(ctx context.Context, userID string, candidateIDs []string) (map[string]struct{}, error)

	Create(ctx context.Context, rec *domain.SeenMessageRecord) error
}

// SeenMessageCache is an advisory fast-path over SeenMessageRepository.
// Misses and errors are harmless; the SQL store stays authoritative.
type SeenMessageCache interface {
	FilterSeen(ctx context.Context, userID string, candidateIDs []string) (map[string]struct{}, error)
	MarkSeen(ctx context.Context, userID string, messageIDs ...string) error
}

// =============================================================================
// Users, activity, side effects
// =============================================================================

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	ListGmailConnected(ctx context.Context) ([]*domain.User, error)
}

// ActivityLogger persists audit entries. Fire-and-forget: implementations
// swallow their own failures.
type ActivityLogger interface {
	Log(ctx context.Context, entry *domain.ActivityEntry)
}

// ArtifactWriter performs post-reconciliation side effects (calendar event,
// storage folder). Opaque to the pipeline; errors are reported for logging
// but never change a message outcome.
type ArtifactWriter interface {
	SyncTrip(ctx context.Context, userID, tripID string, itinerary *domain.ParsedItinerary) error
}

// MessageArchive stores the raw body a parse consumed, for reprocessing and
// debugging. Best effort.
type MessageArchive interface {
	Save(ctx context.Context, userID string, messageID string, body domain.ExtractedBody, receivedAt time.Time) error
}
