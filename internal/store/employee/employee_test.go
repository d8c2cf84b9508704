package employee

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/hris-portal-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FetchMe(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/employees/me/", map[string]any{
		"id":        1,
		"full_name": "Ada Lovelace",
		"is_active": true,
		"department_detail": map[string]any{
			"id": 2, "name": "Engineering", "manager_name": "Grace Hopper", "is_active": true,
		},
		"designation_detail": map[string]any{"id": 3, "name": "Engineer"},
	})

	s := New(b.Deps)
	e, err := s.FetchMe(storetest.Ctx())
	require.NoError(t, err)
	assert.Equal(t, 1, e.ID)
	assert.Empty(t, s.Error())
	assert.True(t, s.Loaded())
	assert.Equal(t, "Ada Lovelace", s.FullName())
	assert.Equal(t, "Engineering", s.DepartmentName())
	assert.Equal(t, "Engineer", s.DesignationName())
	assert.Equal(t, "Grace Hopper", s.ManagerName())
	assert.True(t, s.IsActive())

	require.NoError(t, s.Update(map[string]any{"full_name": "Ada King"}))
	assert.Equal(t, "Ada King", s.FullName())

	s.Clear()
	assert.False(t, s.Loaded())
	assert.Equal(t, "", s.DepartmentName())
	assert.NoError(t, s.Update(map[string]any{"full_name": "x"}))
}

func TestStore_FetchMeFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("GET /api/employees/me/", http.StatusNotFound, map[string]any{"message": "Employee profile not found"})

	s := New(b.Deps)
	_, err := s.FetchMe(storetest.Ctx())
	require.Error(t, err)
	assert.Equal(t, "Employee profile not found", s.Error())
	assert.Nil(t, s.Employee())
	assert.False(t, s.IsActive())
	assert.Equal(t, "Employee profile not found", b.Notifier.Last().Description)
}

func TestContextStore(t *testing.T) {
	b := storetest.New(t)
	b.JSON("GET /api/employees/lookup-list/", map[string]any{
		"data": []map[string]any{
			{"id": 1, "employee_id": "EMP001", "full_name": "Ada"},
			{"id": 2, "employee_id": "EMP002", "full_name": "Bob", "employment_status": "terminated"},
		},
	})

	s := NewContext(b.Deps)
	assert.False(t, s.IsViewingOther())

	list, err := s.FetchLookupList(storetest.Ctx())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Empty(t, s.Error())

	_, ok := s.ActiveEmployee()
	assert.False(t, ok)

	s.Select(2)
	assert.True(t, s.IsViewingOther())
	active, ok := s.ActiveEmployee()
	require.True(t, ok)
	assert.Equal(t, "Bob", active.FullName)

	opts := s.Options()
	require.Len(t, opts, 2)
	assert.False(t, opts[0].IsInactive)
	assert.True(t, opts[1].IsInactive)

	s.Select(99)
	_, ok = s.ActiveEmployee()
	assert.False(t, ok)

	s.ClearSelection()
	_, ok = s.SelectedID()
	assert.False(t, ok)
}

func TestContextStore_FetchFailure(t *testing.T) {
	b := storetest.New(t)
	b.Fail("GET /api/employees/lookup-list/", http.StatusForbidden, map[string]any{"message": "Forbidden"})

	s := NewContext(b.Deps)
	_, err := s.FetchLookupList(storetest.Ctx())
	require.Error(t, err)
	assert.Equal(t, "Forbidden", s.Error())
	assert.Empty(t, s.Options())
}
