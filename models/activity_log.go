package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Auditable is the serialization contract a tracked entity implements so the
// activity logger can snapshot it without reflection. AuditFields must return
// only scalar values and foreign-key ids (no nested entities) and must leave
// out password-like fields.
type Auditable interface {
	AuditEntityType() string
	AuditEntityID() uint
	AuditDisplayName() string
	AuditFields() map[string]interface{}
}

// ActivityLog is an append-only audit record. The application never updates
// or deletes rows, and log writes about ActivityLog itself are suppressed.
type ActivityLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   *uint  `gorm:"column:user_id;index" json:"user_id,omitempty"`
	User     *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Username string `gorm:"size:100" json:"username"`
	UserRole string `gorm:"column:user_role;size:50" json:"user_role"`

	Action     string `gorm:"size:20;index" json:"action"`
	EntityType string `gorm:"column:entity_type;size:100;index" json:"entity_type,omitempty"`
	EntityID   *uint  `gorm:"column:entity_id" json:"entity_id,omitempty"`
	EntityName string `gorm:"column:entity_name;size:255" json:"entity_name,omitempty"`

	Description string         `gorm:"type:text" json:"description"`
	OldData     datatypes.JSON `gorm:"column:old_data" json:"old_data,omitempty"`
	NewData     datatypes.JSON `gorm:"column:new_data" json:"new_data,omitempty"`

	IPAddress string `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent string `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	Device    string `gorm:"size:120" json:"device,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
