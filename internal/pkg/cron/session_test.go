package cron

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionJobs_PurgeExpiredSessions(t *testing.T) {
	ctx := context.Background()
	tokens := memory.NewSessionRepository()

	now := time.Now()
	require.NoError(t, tokens.Save(ctx, "old", session.NewTokens("a", "r", time.Hour, time.Hour, now.Add(-2*time.Hour))))
	require.NoError(t, tokens.Save(ctx, "live", session.NewTokens("a", "r", time.Hour, 24*time.Hour, now)))

	registry := store.NewRegistry(nil, nil, nil)
	for _, id := range []string{"old", "live", "gone"} {
		registry.Get(id)
	}

	var ended []string
	jobs := NewSessionJobs(tokens, registry, func(id string) {
		ended = append(ended, id)
		registry.Reset(id)
	}, time.Minute)
	require.NoError(t, jobs.PurgeExpiredSessions(ctx))

	assert.ElementsMatch(t, []string{"old", "gone"}, ended)
	assert.Equal(t, []string{"live"}, registry.Sessions())

	_, err := tokens.Get(ctx, "live")
	assert.NoError(t, err)
	purged, err := tokens.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestSessionJobs_WithoutSets(t *testing.T) {
	jobs := NewSessionJobs(memory.NewSessionRepository(), nil, nil, time.Minute)
	assert.NoError(t, jobs.PurgeExpiredSessions(context.Background()))
}
