// Package provider implements outbound mail provider adapters.
package provider

import (
	"context"
	"sync"
	"time"

	"tripscan/adapter/out/provider/gmail"
	"tripscan/core/domain"
	"tripscan/core/port/out"
	"tripscan/pkg/logger"

	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"
)

// =============================================================================
// Gmail Adapter
// =============================================================================

// GmailAdapter implements out.MailProvider for Gmail, with a circuit breaker
// around every API call and write-back of refreshed tokens.
type GmailAdapter struct {
	config *oauth2.Config
	tokens out.OAuthRepository
	cb     *gobreaker.CircuitBreaker
}

// NewGmailAdapter creates a new Gmail adapter.
func NewGmailAdapter(config *oauth2.Config, tokens out.OAuthRepository) *GmailAdapter {
	cbSettings := gobreaker.Settings{
		Name:        "gmail-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	}

	return &GmailAdapter{
		config: config,
		tokens: tokens,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// ListCandidateMessageIDs lists message ids matching the query.
func (a *GmailAdapter) ListCandidateMessageIDs(ctx context.Context, conn *out.OAuthConnection, q out.MailListQuery) ([]string, error) {
	client, err := a.clientFor(ctx, conn)
	if err != nil {
		return nil, err
	}

	result, err := a.cb.Execute(func() (any, error) {
		return client.ListMessageIDs(ctx, q.Query, q.MaxResults)
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// GetFullMessage fetches one message with its full part tree.
func (a *GmailAdapter) GetFullMessage(ctx context.Context, conn *out.OAuthConnection, messageID string) (*domain.RawMessage, error) {
	client, err := a.clientFor(ctx, conn)
	if err != nil {
		return nil, err
	}

	result, err := a.cb.Execute(func() (any, error) {
		return client.GetMessage(ctx, messageID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.RawMessage), nil
}

// GetAttachment fetches a decoded attachment body.
func (a *GmailAdapter) GetAttachment(ctx context.Context, conn *out.OAuthConnection, messageID, attachmentID string) ([]byte, error) {
	client, err := a.clientFor(ctx, conn)
	if err != nil {
		return nil, err
	}

	result, err := a.cb.Execute(func() (any, error) {
		return client.GetAttachment(ctx, messageID, attachmentID)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (a *GmailAdapter) clientFor(ctx context.Context, conn *out.OAuthConnection) (*gmail.Client, error) {
	token := &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		TokenType:    "Bearer",
	}
	if conn.Expiry > 0 {
		token.Expiry = time.Unix(conn.Expiry, 0)
	}

	src := &persistingTokenSource{
		base:         a.config.TokenSource(ctx, token),
		tokens:       a.tokens,
		connectionID: conn.ID,
		last:         token,
	}
	return gmail.NewClient(ctx, oauth2.NewClient(ctx, src))
}

// =============================================================================
// Token refresh write-back
// =============================================================================

// persistingTokenSource stores rotated tokens so the next poll run starts
// from a valid access token instead of refreshing again.
type persistingTokenSource struct {
	base         oauth2.TokenSource
	tokens       out.OAuthRepository
	connectionID string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	rotated := s.last == nil || token.AccessToken != s.last.AccessToken
	s.last = token
	s.mu.Unlock()

	if rotated && s.tokens != nil {
		if err := s.tokens.UpdateToken(context.Background(), s.connectionID, token); err != nil {
			logger.WithError(err).Warn("failed to persist refreshed token")
		}
	}
	return token, nil
}

// Ensure GmailAdapter implements out.MailProvider.
var _ out.MailProvider = (*GmailAdapter)(nil)
