// Package authz derives capability flags from an account's role. The derived
// table is the single source of truth for gating decisions: the server also
// asserts a permission set on the user, but the client never trusts it for
// feature gating, only re-derives from role.
package authz

import "github.com/greengrid/rectrade/internal/models"

// PermissionsFor returns the capability flags for a role. It is a total,
// deterministic function: unknown roles get no capabilities.
func PermissionsFor(role models.Role) models.PermissionSet {
	switch role {
	case models.RoleTrader:
		return models.PermissionSet{
			Trade:         true,
			ViewAnalytics: true,
			ExportReports: true,
		}
	case models.RoleFacilityOwner:
		return models.PermissionSet{
			Trade:              true,
			RegisterFacilities: true,
			ViewAnalytics:      true,
			ExportReports:      true,
		}
	case models.RoleComplianceOfficer:
		return models.PermissionSet{
			ViewAnalytics: true,
			ExportReports: true,
			ManageUsers:   true,
		}
	case models.RoleAdmin:
		return models.PermissionSet{
			Trade:              true,
			RegisterFacilities: true,
			ViewAnalytics:      true,
			ExportReports:      true,
			ManageUsers:        true,
		}
	default:
		return models.PermissionSet{}
	}
}
