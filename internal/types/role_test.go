package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  any
		want Role
	}{
		{"shopper", RoleShopper},
		{"employee", RoleEmployee},
		{"Employee", RoleEmployee},
		{1, RoleEmployee},
		{float64(1), RoleEmployee},
		{"1", RoleEmployee},
		{"admin", RoleAdmin},
		{"superadmin", RoleAdmin},
		{"SuperAdmin", RoleAdmin},
		{3, RoleAdmin},
		{"3", RoleAdmin},
		{nil, RoleShopper},
		{"", RoleShopper},
		{"customer", RoleShopper},
		{42, RoleShopper},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.raw), "ParseRole(%v)", tt.raw)
	}
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Shopper", RoleShopper.Label())
	assert.Equal(t, "Employee", RoleEmployee.Label())
	assert.Equal(t, "Superadmin", RoleAdmin.Label())
}

func TestIsStaff(t *testing.T) {
	assert.False(t, RoleShopper.IsStaff())
	assert.True(t, RoleEmployee.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
}

func TestRedirectForRole(t *testing.T) {
	assert.Equal(t, "/", RedirectForRole(RoleShopper))
	assert.Equal(t, "/employee-portal", RedirectForRole(RoleEmployee))
	assert.Equal(t, "/employee-portal", RedirectForRole(RoleAdmin))
}
