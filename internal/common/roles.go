// File: internal/common/roles.go
package common

// Roles a profile can carry. Provider-side functionality is limited to the
// placeholder dashboard; everything else assumes RoleClient.
const (
	RoleClient   = "client"
	RoleProvider = "provider"
)

// IsValidRole reports whether role is one of the supported profile roles.
func IsValidRole(role string) bool {
	return role == RoleClient || role == RoleProvider
}
