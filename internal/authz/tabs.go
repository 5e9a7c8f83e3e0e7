package authz

import "github.com/greengrid/rectrade/internal/models"

// Permission names a single flag of the permission set. Used by tabs to
// declare what they require.
type Permission string

const (
	PermTrade              Permission = "trade"
	PermRegisterFacilities Permission = "register-facilities"
	PermViewAnalytics      Permission = "view-analytics"
	PermExportReports      Permission = "export-reports"
	PermManageUsers        Permission = "manage-users"
)

// Tab describes a feature section of the client. A tab with an empty
// Requires is visible to everyone; AdminOnly tabs are gated on role alone,
// independent of the permission matrix.
type Tab struct {
	ID        string
	Title     string
	Requires  Permission
	AdminOnly bool
}

// DefaultTabs is the client's section layout.
var DefaultTabs = []Tab{
	{ID: "overview", Title: "Overview"},
	{ID: "trade", Title: "Trade", Requires: PermTrade},
	{ID: "facilities", Title: "Facilities", Requires: PermRegisterFacilities},
	{ID: "analytics", Title: "Analytics", Requires: PermViewAnalytics},
	{ID: "reports", Title: "Reports", Requires: PermExportReports},
	{ID: "wallet", Title: "Wallet"},
	{ID: "admin", Title: "Admin", AdminOnly: true},
}

func has(set models.PermissionSet, p Permission) bool {
	switch p {
	case PermTrade:
		return set.Trade
	case PermRegisterFacilities:
		return set.RegisterFacilities
	case PermViewAnalytics:
		return set.ViewAnalytics
	case PermExportReports:
		return set.ExportReports
	case PermManageUsers:
		return set.ManageUsers
	default:
		return false
	}
}

// Visible reports whether the tab should be shown to a user with the given
// role. The permission set is derived from role here, never read from the
// user record.
func (t Tab) Visible(role models.Role) bool {
	if t.AdminOnly {
		return role == models.RoleAdmin
	}
	if t.Requires == "" {
		return true
	}
	return has(PermissionsFor(role), t.Requires)
}

// VisibleTabs filters tabs down to those visible for the role, preserving
// order.
func VisibleTabs(tabs []Tab, role models.Role) []Tab {
	out := make([]Tab, 0, len(tabs))
	for _, t := range tabs {
		if t.Visible(role) {
			out = append(out, t)
		}
	}
	return out
}
