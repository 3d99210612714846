package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleManager = "ROLE_MANAGER"
	RoleStaff   = "ROLE_STAFF"
	RoleGuest   = "ROLE_GUEST"
)

type User struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	FullName string         `gorm:"size:255" json:"full_name"`
	Username string         `gorm:"uniqueIndex;size:150" json:"username"`
	Email    string         `gorm:"uniqueIndex;size:180" json:"email"`
	Password string         `gorm:"size:255" json:"-"` // store hashed password, never return in JSON
	Roles    datatypes.JSON `gorm:"column:roles" json:"roles"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) RoleList() []string {
	var roles []string
	if len(u.Roles) > 0 {
		_ = json.Unmarshal(u.Roles, &roles)
	}
	return roles
}

func (u *User) SetRoles(roles []string) {
	b, _ := json.Marshal(roles)
	u.Roles = datatypes.JSON(b)
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// RoleLabel collapses the role set into a single audit label,
// highest privilege first.
func (u *User) RoleLabel() string {
	switch {
	case u.HasRole(RoleAdmin):
		return "ADMIN"
	case u.HasRole(RoleManager):
		return "MANAGER"
	case u.HasRole(RoleStaff):
		return "STAFF"
	default:
		return "USER"
	}
}

func (u *User) AuditEntityType() string { return "User" }

func (u *User) AuditEntityID() uint { return u.ID }

func (u *User) AuditDisplayName() string {
	if u.Email != "" {
		return u.Email
	}
	if u.ID != 0 {
		return fmt.Sprintf("ID: %d", u.ID)
	}
	return "Unknown"
}

// AuditFields deliberately leaves out the password hash.
func (u *User) AuditFields() map[string]interface{} {
	return map[string]interface{}{
		"full_name": u.FullName,
		"username":  u.Username,
		"email":     u.Email,
		"roles":     u.RoleList(),
	}
}
