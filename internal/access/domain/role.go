package domain

import (
	"slices"
	"sort"
)

// Role is a user's role within an organization.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Hierarchy lists every role from most to least senior. A new role is added
// by inserting it at the right position; nothing else is renumbered.
var Hierarchy = []Role{
	RoleOwner,
	RoleAdmin,
	RoleManager,
	RoleOperator,
	RoleViewer,
}

// RoleIndex returns the position of r in Hierarchy, lower is more senior.
func RoleIndex(r Role) (int, bool) {
	i := slices.Index(Hierarchy, r)
	return i, i >= 0
}

// ParseRole parses a string to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	_, ok := RoleIndex(r)
	return ok
}

func (r Role) String() string { return string(r) }

// Permission is a named capability granted to one or more roles.
type Permission string

const (
	PermViewDashboard     Permission = "view_dashboard"
	PermViewAssets        Permission = "view_assets"
	PermViewReadings      Permission = "view_readings"
	PermRecordReadings    Permission = "record_readings"
	PermAcknowledgeAlerts Permission = "acknowledge_alerts"
	PermManageAssets      Permission = "manage_assets"
	PermManageRegions     Permission = "manage_regions"
	PermExportReports     Permission = "export_reports"
	PermViewInvitations   Permission = "view_invitations"
	PermManageUsers       Permission = "manage_users"
	PermInviteUsers       Permission = "invite_users"
	PermRevokeInvitations Permission = "revoke_invitations"
	PermManageSettings    Permission = "manage_settings"
	PermManageBilling     Permission = "manage_billing"
	PermDeleteOrg         Permission = "delete_organization"
)

// Each role's set must contain every permission of the roles below it in
// Hierarchy. Keep that true when extending the table.
var rolePermissions = func() map[Role]map[Permission]struct{} {
	viewer := []Permission{PermViewDashboard, PermViewAssets, PermViewReadings}
	operator := append(slices.Clone(viewer), PermRecordReadings, PermAcknowledgeAlerts)
	manager := append(slices.Clone(operator),
		PermManageAssets, PermManageRegions, PermExportReports, PermViewInvitations)
	admin := append(slices.Clone(manager),
		PermManageUsers, PermInviteUsers, PermRevokeInvitations, PermManageSettings)
	owner := append(slices.Clone(admin), PermManageBilling, PermDeleteOrg)

	table := map[Role][]Permission{
		RoleOwner:    owner,
		RoleAdmin:    admin,
		RoleManager:  manager,
		RoleOperator: operator,
		RoleViewer:   viewer,
	}

	out := make(map[Role]map[Permission]struct{}, len(table))
	for role, perms := range table {
		set := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		out[role] = set
	}
	return out
}()

// HasPermission reports whether role grants permission.
func HasPermission(role Role, permission Permission) bool {
	_, ok := rolePermissions[role][permission]
	return ok
}

// Permissions returns the sorted permissions granted to role.
func Permissions(role Role) []Permission {
	set := rolePermissions[role]
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
