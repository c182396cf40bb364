package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleCashier))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleSuperAdmin))
	assert.False(t, IsValidRole("manager"))
	assert.False(t, IsValidRole(""))
	assert.False(t, IsValidRole("Admin")) // codes are case-sensitive
}

func TestRoleAllowed(t *testing.T) {
	assert.True(t, RoleAllowed(RoleAdmin, RoleAdmin, RoleSuperAdmin))
	assert.True(t, RoleAllowed(RoleSuperAdmin, RoleSuperAdmin))
	assert.False(t, RoleAllowed(RoleCashier, RoleAdmin, RoleSuperAdmin))
	assert.False(t, RoleAllowed(RoleAdmin))
}
