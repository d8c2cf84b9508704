package settings

import "slices"

// GlobalKey holds the organisation-wide defaults.
const GlobalKey = "global"

type Field string

const (
	FieldView   Field = "view"
	FieldCreate Field = "create"
	FieldEdit   Field = "edit"
	FieldDelete Field = "delete"
)

// Permission is one module row of the permission matrix.
type Permission struct {
	Module string `json:"module"`
	View   bool   `json:"view"`
	Create bool   `json:"create"`
	Edit   bool   `json:"edit"`
	Delete bool   `json:"delete"`
}

// Toggle flips field and reports whether field is known.
func (p *Permission) Toggle(field Field) bool {
	switch field {
	case FieldView:
		p.View = !p.View
	case FieldCreate:
		p.Create = !p.Create
	case FieldEdit:
		p.Edit = !p.Edit
	case FieldDelete:
		p.Delete = !p.Delete
	default:
		return false
	}
	return true
}

// Matrix maps GlobalKey or an employee ID to its permission rows.
type Matrix map[string][]Permission

func DefaultMatrix() Matrix {
	return Matrix{
		GlobalKey: {
			{Module: "Attendance", View: true, Create: true, Edit: true, Delete: false},
			{Module: "Leave Management", View: true, Create: true, Edit: true, Delete: true},
			{Module: "Inventory", View: true, Create: true, Edit: false, Delete: false},
		},
	}
}

func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for k, rows := range m {
		out[k] = slices.Clone(rows)
	}
	return out
}

func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	for k, rows := range m {
		o, ok := other[k]
		if !ok || !slices.Equal(rows, o) {
			return false
		}
	}
	return true
}

// Rows returns the rows for key, falling back to the global defaults.
func (m Matrix) Rows(key string) []Permission {
	if key == "" {
		key = GlobalKey
	}
	if rows, ok := m[key]; ok {
		return slices.Clone(rows)
	}
	return slices.Clone(m[GlobalKey])
}

// SaveRequest is the body of PUT /api/organizations/permissions/.
type SaveRequest struct {
	Permissions Matrix `json:"permissions"`
}
