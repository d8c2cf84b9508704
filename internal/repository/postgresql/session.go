package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS portal_sessions (
	session_id         TEXT PRIMARY KEY,
	access_token       TEXT NOT NULL,
	refresh_token      TEXT NOT NULL,
	access_expires_at  TIMESTAMPTZ NOT NULL,
	refresh_expires_at TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS portal_sessions_refresh_expires_at_idx ON portal_sessions (refresh_expires_at);
`

type sessionRepositoryImpl struct {
	db *database.DB
}

// NewSessionRepository creates a PostgreSQL backed token store.
func NewSessionRepository(db *database.DB) session.TokenStore {
	return &sessionRepositoryImpl{db: db}
}

// EnsureSessionSchema creates the portal_sessions table when missing.
func EnsureSessionSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, sessionSchema); err != nil {
		return fmt.Errorf("create portal_sessions: %w", err)
	}
	return nil
}

func (s *sessionRepositoryImpl) Get(ctx context.Context, sessionID string) (session.Tokens, error) {
	q := GetQuerier(ctx, s.db)
	query := `
		SELECT access_token, refresh_token, access_expires_at, refresh_expires_at
		FROM portal_sessions
		WHERE session_id = $1 AND refresh_expires_at > NOW()
	`
	var (
		access, refresh             string
		accessExpiry, refreshExpiry time.Time
	)
	err := q.QueryRow(ctx, query, sessionID).Scan(&access, &refresh, &accessExpiry, &refreshExpiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Tokens{}, session.ErrSessionNotFound
		}
		return session.Tokens{}, fmt.Errorf("get session: %w", err)
	}

	return session.Tokens{
		Token: &oauth2.Token{
			AccessToken:  access,
			RefreshToken: refresh,
			TokenType:    "Bearer",
			Expiry:       accessExpiry,
		},
		RefreshExpiry: refreshExpiry,
	}, nil
}

func (s *sessionRepositoryImpl) Save(ctx context.Context, sessionID string, tokens session.Tokens) error {
	if tokens.Token == nil {
		return session.ErrTokensMissing
	}
	q := GetQuerier(ctx, s.db)
	query := `
		INSERT INTO portal_sessions (session_id, access_token, refresh_token, access_expires_at, refresh_expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (session_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			access_expires_at = EXCLUDED.access_expires_at,
			refresh_expires_at = EXCLUDED.refresh_expires_at,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, sessionID, tokens.Access(), tokens.Refresh(), tokens.Token.Expiry.UTC(), tokens.RefreshExpiry.UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *sessionRepositoryImpl) SetAccess(ctx context.Context, sessionID string, access string, expiry time.Time) error {
	return WithTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		var refreshExpiry time.Time
		err := tx.QueryRow(ctx, `
			SELECT refresh_expires_at FROM portal_sessions
			WHERE session_id = $1
			FOR UPDATE
		`, sessionID).Scan(&refreshExpiry)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return session.ErrSessionNotFound
			}
			return fmt.Errorf("lock session: %w", err)
		}
		if !refreshExpiry.After(time.Now()) {
			return session.ErrSessionExpired
		}

		_, err = tx.Exec(ctx, `
			UPDATE portal_sessions
			SET access_token = $2, access_expires_at = $3, updated_at = NOW()
			WHERE session_id = $1
		`, sessionID, access, expiry.UTC())
		if err != nil {
			return fmt.Errorf("update access token: %w", err)
		}
		return nil
	})
}

func (s *sessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	q := GetQuerier(ctx, s.db)
	if _, err := q.Exec(ctx, `DELETE FROM portal_sessions WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *sessionRepositoryImpl) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, s.db)
	tag, err := q.Exec(ctx, `DELETE FROM portal_sessions WHERE refresh_expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
