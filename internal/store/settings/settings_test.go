package settings

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/settings"
	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ToggleAndSave(t *testing.T) {
	b := storetest.New(t)
	var sent map[string]any
	b.Mux.HandleFunc("PUT /api/organizations/permissions/", func(w http.ResponseWriter, r *http.Request) {
		sent = storetest.DecodeBody(r)
		storetest.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	s := New(b.Deps)
	assert.False(t, s.Dirty())

	s.SelectEmployee("EMP001")
	require.NoError(t, s.Toggle(2, settings.FieldEdit))
	assert.True(t, s.Dirty())
	assert.True(t, s.Current()[2].Edit)

	s.SelectEmployee("")
	assert.False(t, s.Current()[2].Edit)

	require.NoError(t, s.Save(storetest.Ctx()))
	assert.False(t, s.Dirty())
	perms := sent["permissions"].(map[string]any)
	assert.Contains(t, perms, "EMP001")
	assert.Contains(t, perms, settings.GlobalKey)
	assert.Equal(t, "Changes Saved", b.Notifier.Last().Title)
}

func TestStore_ToggleErrors(t *testing.T) {
	s := New(storetest.New(t).Deps)
	assert.ErrorIs(t, s.Toggle(5, settings.FieldView), settings.ErrRowOutOfRange)
	assert.ErrorIs(t, s.Toggle(0, "approve"), settings.ErrUnknownField)
	assert.False(t, s.Dirty())
}

func TestStore_SaveFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("PUT /api/organizations/permissions/", http.StatusForbidden, map[string]any{"message": "Forbidden"})

	s := New(b.Deps)
	require.NoError(t, s.Toggle(0, settings.FieldDelete))
	require.Error(t, s.Save(storetest.Ctx()))
	assert.Equal(t, "Forbidden", s.Error())
	assert.True(t, s.Dirty())
}

func TestStore_SearchEmployees(t *testing.T) {
	s := New(storetest.New(t).Deps)
	s.SetEmployees([]employee.Lookup{
		{ID: 1, EmployeeID: "EMP001", FullName: "Sarah Miller"},
		{ID: 2, EmployeeID: "EMP002", FullName: "Marcus Chen"},
	})

	assert.Empty(t, s.SearchEmployees(""))
	found := s.SearchEmployees("mar")
	require.Len(t, found, 1)
	assert.Equal(t, "EMP002", found[0].EmployeeID)

	_, ok := s.SelectedEmployee()
	assert.False(t, ok)
	s.SelectEmployee("EMP001")
	e, ok := s.SelectedEmployee()
	require.True(t, ok)
	assert.Equal(t, "Sarah Miller", e.FullName)
}
