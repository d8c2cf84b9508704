package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

type sessionRecord struct {
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
	AccessExpiry  time.Time `json:"access_expires_at"`
	RefreshExpiry time.Time `json:"refresh_expires_at"`
}

type sessionRepositoryImpl struct {
	rdb    *goredis.Client
	prefix string
}

// NewSessionRepository creates a Redis backed token store. Keys expire with the refresh token.
func NewSessionRepository(rdb *goredis.Client, prefix string) session.TokenStore {
	return &sessionRepositoryImpl{rdb: rdb, prefix: prefix}
}

func (s *sessionRepositoryImpl) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *sessionRepositoryImpl) Get(ctx context.Context, sessionID string) (session.Tokens, error) {
	raw, err := s.rdb.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return session.Tokens{}, session.ErrSessionNotFound
		}
		return session.Tokens{}, fmt.Errorf("get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return session.Tokens{}, fmt.Errorf("decode session: %w", err)
	}
	tokens := rec.tokens()
	if tokens.Expired(time.Now()) {
		return session.Tokens{}, session.ErrSessionNotFound
	}
	return tokens, nil
}

func (s *sessionRepositoryImpl) Save(ctx context.Context, sessionID string, tokens session.Tokens) error {
	if tokens.Token == nil {
		return session.ErrTokensMissing
	}
	return s.write(ctx, sessionID, recordOf(tokens))
}

func (s *sessionRepositoryImpl) SetAccess(ctx context.Context, sessionID string, access string, expiry time.Time) error {
	key := s.key(sessionID)
	// WATCH keeps a concurrent logout from being overwritten by a late refresh
	return s.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return session.ErrSessionNotFound
			}
			return fmt.Errorf("get session: %w", err)
		}
		var rec sessionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		ttl := time.Until(rec.RefreshExpiry)
		if ttl <= 0 {
			return session.ErrSessionExpired
		}
		rec.AccessToken = access
		rec.AccessExpiry = expiry
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, key)
}

func (s *sessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired is a no-op: Redis evicts keys when their TTL runs out.
func (s *sessionRepositoryImpl) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (s *sessionRepositoryImpl) write(ctx context.Context, sessionID string, rec sessionRecord) error {
	ttl := time.Until(rec.RefreshExpiry)
	if ttl <= 0 {
		return session.ErrSessionExpired
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func recordOf(t session.Tokens) sessionRecord {
	rec := sessionRecord{RefreshExpiry: t.RefreshExpiry}
	if t.Token != nil {
		rec.AccessToken = t.Token.AccessToken
		rec.RefreshToken = t.Token.RefreshToken
		rec.AccessExpiry = t.Token.Expiry
	}
	return rec
}

func (r sessionRecord) tokens() session.Tokens {
	return session.Tokens{
		Token: &oauth2.Token{
			AccessToken:  r.AccessToken,
			RefreshToken: r.RefreshToken,
			TokenType:    "Bearer",
			Expiry:       r.AccessExpiry,
		},
		RefreshExpiry: r.RefreshExpiry,
	}
}
