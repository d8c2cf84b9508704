package store

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry(nil, nil, &notify.Recorder{})

	a := r.Get("s1")
	require.NotNil(t, a.Leave)
	assert.Same(t, a, r.Get("s1"))
	assert.NotSame(t, a, r.Get("s2"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"s1", "s2"}, r.Sessions())

	r.Reset("s1")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"s2"}, r.Sessions())
	assert.NotSame(t, a, r.Get("s1"))
}

func TestRegistry_FromContext(t *testing.T) {
	r := NewRegistry(nil, nil, nil)

	_, err := r.FromContext(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)

	set, err := r.FromContext(session.WithID(context.Background(), "abc"))
	require.NoError(t, err)
	assert.Same(t, set, r.Get("abc"))
}

func TestNewSet_SharesLoader(t *testing.T) {
	set := NewRegistry(nil, nil, nil).Get("s")
	done := set.Loader.Track()
	assert.True(t, set.Loader.Active())
	done()
	assert.False(t, set.Loader.Active())
}
