package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSessionDB *database.DB

func sessionTestInit(t *testing.T) {
	if testSessionDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testSessionDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, EnsureSessionSchema(context.Background(), testSessionDB))
}

func uniqueSessionID() string {
	return fmt.Sprintf("test-session-%d", time.Now().UnixNano())
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	sessionTestInit(t)
	repo := NewSessionRepository(testSessionDB)
	sid := uniqueSessionID()

	require.NoError(t, repo.Save(ctx, sid, session.NewTokens("access", "refresh", time.Hour, 24*time.Hour, time.Now())))

	got, err := repo.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "access", got.Access())
	assert.Equal(t, "refresh", got.Refresh())
}

func TestSessionRepository_SetAccess(t *testing.T) {
	ctx := context.Background()
	sessionTestInit(t)
	repo := NewSessionRepository(testSessionDB)
	sid := uniqueSessionID()

	require.NoError(t, repo.Save(ctx, sid, session.NewTokens("access", "refresh", time.Hour, 24*time.Hour, time.Now())))
	require.NoError(t, repo.SetAccess(ctx, sid, "access-2", time.Now().Add(time.Hour)))

	got, err := repo.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "access-2", got.Access())
	assert.Equal(t, "refresh", got.Refresh())

	err = repo.SetAccess(ctx, uniqueSessionID(), "x", time.Now())
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionRepository_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	sessionTestInit(t)
	repo := NewSessionRepository(testSessionDB)
	sid := uniqueSessionID()

	past := time.Now().Add(-72 * time.Hour)
	require.NoError(t, repo.Save(ctx, sid, session.NewTokens("a", "r", time.Hour, 24*time.Hour, past)))

	_, err := repo.Get(ctx, sid)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	purged, err := repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, purged, int64(1))
}

func TestSessionRepository_SaveWithoutToken(t *testing.T) {
	repo := NewSessionRepository(nil)
	err := repo.Save(context.Background(), "sid", session.Tokens{RefreshExpiry: time.Now().Add(time.Hour)})
	assert.ErrorIs(t, err, session.ErrTokensMissing)
}
