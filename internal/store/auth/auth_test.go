package auth

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Ensure(t *testing.T) {
	b := storetest.New(t)
	var calls atomic.Int32
	b.Mux.HandleFunc("GET /auth/me/", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		storetest.WriteJSON(w, http.StatusOK, map[string]any{
			"id": 7, "email": "hr@example.com",
			"role_detail": map[string]any{"role": "HR"},
		})
	})

	s := New(b.Deps)
	u, err := s.Ensure(storetest.Ctx())
	require.NoError(t, err)
	assert.Equal(t, user.RoleHR, u.Role())
	assert.True(t, u.IsSuperUser())

	_, err = s.Ensure(storetest.Ctx())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	s.Clear()
	assert.Nil(t, s.User())
}

func TestStore_FetchMeFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("GET /auth/me/", http.StatusUnauthorized, map[string]any{"detail": "Invalid token"})

	s := New(b.Deps)
	_, err := s.FetchMe(storetest.Ctx())
	require.Error(t, err)
	assert.Nil(t, s.User())
	assert.NotEmpty(t, s.Error())
	assert.Empty(t, b.Notifier.Toasts())
}
