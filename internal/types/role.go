package types

import (
	"fmt"
	"strings"
)

// Role is the canonical account role. The backend reports roles
// inconsistently (numeric codes on some endpoints, free-form strings on
// others), so every payload goes through ParseRole exactly once and the
// rest of the client only ever compares Role values.
type Role string

const (
	RoleShopper  Role = "shopper"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ParseRole maps any backend role representation to a canonical Role.
// Unknown values default to shopper, matching the storefront's behavior of
// treating unrecognized accounts as regular customers.
func ParseRole(raw any) Role {
	s := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", raw)))
	switch {
	case s == "1" || strings.Contains(s, "employee"):
		return RoleEmployee
	case s == "3" || strings.Contains(s, "superadmin") || strings.Contains(s, "admin"):
		return RoleAdmin
	default:
		return RoleShopper
	}
}

// Label returns the back-office display name for a role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Superadmin"
	case RoleEmployee:
		return "Employee"
	default:
		return "Shopper"
	}
}

// IsStaff reports whether the role belongs in the back office.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// RedirectForRole returns the landing route after a successful login:
// staff go to the employee portal, shoppers to the storefront home.
func RedirectForRole(r Role) string {
	if r.IsStaff() {
		return "/employee-portal"
	}
	return "/"
}
