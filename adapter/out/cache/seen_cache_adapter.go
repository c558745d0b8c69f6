// Package cache provides Redis-backed advisory caches.
package cache

import (
	"context"
	"fmt"
	"time"

	"tripscan/core/port/out"

	"github.com/redis/go-redis/v9"
)

// seenKeyTTL keeps per-user sets from growing unbounded. The SQL store is
// authoritative; expiry here only costs one extra lookup per candidate.
const seenKeyTTL = 30 * 24 * time.Hour

// SeenCacheAdapter implements out.SeenMessageCache over a Redis set per
// user.
type SeenCacheAdapter struct {
	client *redis.Client
}

// NewSeenCacheAdapter creates a new seen-message cache.
func NewSeenCacheAdapter(client *redis.Client) *SeenCacheAdapter {
	return &SeenCacheAdapter{client: client}
}

func seenKey(userID string) string {
	return fmt.Sprintf("seen:messages:%s", userID)
}

// FilterSeen returns the subset of candidate ids present in the user's set.
func (a *SeenCacheAdapter) FilterSeen(ctx context.Context, userID string, candidateIDs []string) (map[string]struct{}, error) {
	if len(candidateIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	members := make([]any, len(candidateIDs))
	for i, id := range candidateIDs {
		members[i] = id
	}

	hits, err := a.client.SMIsMember(ctx, seenKey(userID), members...).Result()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for i, hit := range hits {
		if hit {
			seen[candidateIDs[i]] = struct{}{}
		}
	}
	return seen, nil
}

// MarkSeen adds message ids to the user's set and refreshes its TTL.
func (a *SeenCacheAdapter) MarkSeen(ctx context.Context, userID string, messageIDs ...string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	members := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		members[i] = id
	}

	key := seenKey(userID)
	pipe := a.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, seenKeyTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Ensure SeenCacheAdapter implements out.SeenMessageCache
var _ out.SeenMessageCache = (*SeenCacheAdapter)(nil)
