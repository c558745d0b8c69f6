// Package out defines outbound collaborator ports.
package out

import (
	"context"

	"tripscan/core/domain"

	"golang.org/x/oauth2"
)

// MailListQuery bounds one candidate listing call.
type MailListQuery struct {
	Query      string // provider search expression
	MaxResults int64
}

// MailProvider fetches candidate messages for a user's connection.
// Implementations own transport concerns (token refresh, circuit breaking);
// the pipeline never talks to the provider API directly.
type MailProvider interface {
	// ListCandidateMessageIDs returns provider message ids matching the
	// query, in provider order.
	ListCandidateMessageIDs(ctx context.Context, conn *OAuthConnection, q MailListQuery) ([]string, error)

	// GetFullMessage fetches one message with its full part tree.
	GetFullMessage(ctx context.Context, conn *OAuthConnection, messageID string) (*domain.RawMessage, error)

	// GetAttachment fetches a single attachment body, decoded.
	GetAttachment(ctx context.Context, conn *OAuthConnection, messageID, attachmentID string) ([]byte, error)
}

// OAuthConnection is a stored provider connection for a user.
type OAuthConnection struct {
	ID           string
	UserID       string
	Provider     string
	Email        string
	AccessToken  string
	RefreshToken string
	Expiry       int64 // unix seconds, 0 when unknown
}

// OAuthRepository stores provider tokens. Token acquisition lives elsewhere;
// this pipeline only reads connections and persists refreshed tokens.
type OAuthRepository interface {
	GetConnection(ctx context.Context, userID string) (*OAuthConnection, error)
	UpdateToken(ctx context.Context, connectionID string, token *oauth2.Token) error
}
