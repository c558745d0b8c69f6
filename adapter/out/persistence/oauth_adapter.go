package persistence

import (
	"context"
	"database/sql"
	"time"

	"tripscan/core/port/out"
	"tripscan/pkg/crypto"
	"tripscan/pkg/logger"

	"github.com/jmoiron/sqlx"
	"golang.org/x/oauth2"
)

// oauthConnectionEntity is the oauth_connections table row.
type oauthConnectionEntity struct {
	ID           string       `db:"id"`
	UserID       string       `db:"user_id"`
	Provider     string       `db:"provider"`
	Email        string       `db:"email"`
	AccessToken  string       `db:"access_token"`
	RefreshToken string       `db:"refresh_token"`
	ExpiresAt    sql.NullTime `db:"expires_at"`
	IsConnected  bool         `db:"is_connected"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// OAuthAdapter implements out.OAuthRepository using PostgreSQL. Tokens are
// encrypted at rest when an encryption key is configured.
type OAuthAdapter struct {
	db                *sqlx.DB
	encryptionEnabled bool
}

// NewOAuthAdapter creates a new OAuthAdapter.
func NewOAuthAdapter(db *sqlx.DB) *OAuthAdapter {
	err := crypto.Init()
	encryptionEnabled := err == nil
	if !encryptionEnabled {
		logger.Warn("Token encryption disabled: %v", err)
	}

	return &OAuthAdapter{
		db:                db,
		encryptionEnabled: encryptionEnabled,
	}
}

func (a *OAuthAdapter) encryptToken(token string) string {
	if !a.encryptionEnabled || token == "" {
		return token
	}
	encrypted, err := crypto.EncryptToken(token)
	if err != nil {
		logger.Warn("Failed to encrypt token: %v", err)
		return token
	}
	return encrypted
}

func (a *OAuthAdapter) decryptToken(token string) string {
	if token == "" || !crypto.IsEncrypted(token) {
		return token
	}
	decrypted, err := crypto.DecryptToken(token)
	if err != nil {
		// Token might not be encrypted (legacy), return as-is
		return token
	}
	return decrypted
}

// GetConnection returns the user's live Google connection, or (nil, nil)
// when none exists.
func (a *OAuthAdapter) GetConnection(ctx context.Context, userID string) (*out.OAuthConnection, error) {
	var entity oauthConnectionEntity
	query := `
		SELECT id, user_id, provider, email, access_token, refresh_token,
		       expires_at, is_connected, created_at, updated_at
		FROM oauth_connections
		WHERE user_id = $1 AND provider = 'google' AND is_connected = true
		ORDER BY updated_at DESC
		LIMIT 1`

	if err := a.db.GetContext(ctx, &entity, query, userID); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, err
	}

	conn := &out.OAuthConnection{
		ID:           entity.ID,
		UserID:       entity.UserID,
		Provider:     entity.Provider,
		Email:        entity.Email,
		AccessToken:  a.decryptToken(entity.AccessToken),
		RefreshToken: a.decryptToken(entity.RefreshToken),
	}
	if entity.ExpiresAt.Valid {
		conn.Expiry = entity.ExpiresAt.Time.Unix()
	}
	return conn, nil
}

// UpdateToken persists a refreshed token on an existing connection. A
// refresh response without a rotated refresh token keeps the stored one.
func (a *OAuthAdapter) UpdateToken(ctx context.Context, connectionID string, token *oauth2.Token) error {
	query := `
		UPDATE oauth_connections
		SET access_token = $1,
		    refresh_token = COALESCE(NULLIF($2, ''), refresh_token),
		    expires_at = $3,
		    updated_at = $4
		WHERE id = $5`

	var expiresAt sql.NullTime
	if !token.Expiry.IsZero() {
		expiresAt = sql.NullTime{Time: token.Expiry.UTC(), Valid: true}
	}

	_, err := a.db.ExecContext(ctx, query,
		a.encryptToken(token.AccessToken),
		a.encryptToken(token.RefreshToken),
		expiresAt,
		time.Now().UTC(),
		connectionID,
	)
	return err
}

// Ensure OAuthAdapter implements out.OAuthRepository
var _ out.OAuthRepository = (*OAuthAdapter)(nil)
