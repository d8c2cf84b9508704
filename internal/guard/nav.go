package guard

import "github.com/cmlabs-hris/hris-portal-go/internal/domain/user"

// NavItem is a sidebar entry.
type NavItem struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	To    string `json:"to"`
}

// Nav returns the sidebar entries visible to u.
func Nav(u *user.User, viewingOther bool) []NavItem {
	items := []NavItem{}
	if u == nil || u.RoleDetail == nil {
		return items
	}

	hideOther := viewingOther && u.IsSuperUser()
	for _, r := range Routes {
		if !r.Nav {
			continue
		}
		if hideOther && r.HiddenForOther {
			continue
		}
		if len(r.Roles) > 0 && !u.HasRole(r.Roles...) {
			continue
		}
		items = append(items, NavItem{Label: r.Label, Icon: r.Icon, To: r.link()})
	}
	return items
}
