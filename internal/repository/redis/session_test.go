package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/config"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) session.TokenStore {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb, err := NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewSessionRepository(rdb, fmt.Sprintf("test:%d:", time.Now().UnixNano()))
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, "sid", session.NewTokens("a", "r", time.Hour, time.Hour, time.Now())))
	require.NoError(t, repo.SetAccess(ctx, "sid", "a2", time.Now().Add(time.Hour)))

	got, err := repo.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "a2", got.Access())
	assert.Equal(t, "r", got.Refresh())

	require.NoError(t, repo.Delete(ctx, "sid"))
	_, err = repo.Get(ctx, "sid")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionRepository_SaveExpired(t *testing.T) {
	repo := newTestRepository(t)
	tokens := session.NewTokens("a", "r", time.Hour, time.Hour, time.Now().Add(-2*time.Hour))
	err := repo.Save(context.Background(), "sid", tokens)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestSessionRepository_SaveWithoutToken(t *testing.T) {
	repo := NewSessionRepository(nil, "test:")
	err := repo.Save(context.Background(), "sid", session.Tokens{RefreshExpiry: time.Now().Add(time.Hour)})
	assert.ErrorIs(t, err, session.ErrTokensMissing)
}
