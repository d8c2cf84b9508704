package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
)

// SessionSets lists the sessions that hold in-memory state.
type SessionSets interface {
	Sessions() []string
}

type SessionJobs struct {
	store    session.TokenStore
	sets     SessionSets
	end      func(sessionID string)
	interval time.Duration
	now      func() time.Time
}

// NewSessionJobs purges expired token pairs and calls end for every session
// in sets whose tokens are gone.
func NewSessionJobs(store session.TokenStore, sets SessionSets, end func(sessionID string), interval time.Duration) *SessionJobs {
	return &SessionJobs{
		store:    store,
		sets:     sets,
		end:      end,
		interval: interval,
		now:      time.Now,
	}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_sessions", j.interval, j.PurgeExpiredSessions)
}

// PurgeExpiredSessions removes token pairs whose refresh token has expired,
// then ends the in-memory sessions left without tokens.
func (j *SessionJobs) PurgeExpiredSessions(ctx context.Context) error {
	purged, err := j.store.PurgeExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("purge expired sessions: %w", err)
	}
	if purged > 0 {
		slog.Info("Purged expired sessions", "count", purged)
	}
	return j.evictStale(ctx)
}

func (j *SessionJobs) evictStale(ctx context.Context) error {
	if j.sets == nil || j.end == nil {
		return nil
	}

	var evicted int
	for _, id := range j.sets.Sessions() {
		_, err := j.store.Get(ctx, id)
		switch {
		case err == nil:
		case errors.Is(err, session.ErrSessionNotFound):
			j.end(id)
			evicted++
		default:
			return fmt.Errorf("check session tokens: %w", err)
		}
	}
	if evicted > 0 {
		slog.Info("Ended stale sessions", "count", evicted)
	}
	return nil
}
