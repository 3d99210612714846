package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetRoles_RoundTrip(t *testing.T) {
	var u User
	assert.Empty(t, u.RoleList())

	u.SetRoles([]string{RoleStaff, RoleGuest})
	assert.Equal(t, []string{RoleStaff, RoleGuest}, u.RoleList())
	assert.True(t, u.HasRole(RoleStaff))
	assert.False(t, u.HasRole(RoleAdmin))
}

func TestRoleLabel_HighestPrivilegeWins(t *testing.T) {
	var u User

	assert.Equal(t, "USER", u.RoleLabel())

	u.SetRoles([]string{RoleGuest})
	assert.Equal(t, "USER", u.RoleLabel())

	u.SetRoles([]string{RoleGuest, RoleStaff})
	assert.Equal(t, "STAFF", u.RoleLabel())

	u.SetRoles([]string{RoleStaff, RoleManager})
	assert.Equal(t, "MANAGER", u.RoleLabel())

	u.SetRoles([]string{RoleGuest, RoleAdmin, RoleStaff})
	assert.Equal(t, "ADMIN", u.RoleLabel())
}
