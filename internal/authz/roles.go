// Package authz holds the bureau's back-office role taxonomy shared by the
// route guards and handlers.
package authz

// Role IDs carried in the JWT. Sales owns the deal pipeline, Operations
// runs projects and firm offers, Audit reads everything but writes nothing,
// Management and Admin see the whole book of business.
const (
	RoleSales      = 10
	RoleOperations = 20
	RoleAudit      = 30
	RoleManagement = 40
	RoleAdmin      = 50
)

// IsElevated reports whether the role may read records it does not own.
func IsElevated(roleID int) bool {
	return roleID == RoleOperations || roleID == RoleManagement || roleID == RoleAdmin
}

// IsReadOnly reports whether the role is barred from mutations.
func IsReadOnly(roleID int) bool {
	return roleID == RoleAudit
}
