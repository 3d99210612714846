package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tour struct {
	gorm.Model

	Name        string          `json:"name" gorm:"type:varchar(150)"`
	Description string          `json:"description" gorm:"type:text"`
	Location    string          `json:"location" gorm:"type:varchar(255)"`
	// Price is per participant.
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Duration       string          `json:"duration" gorm:"type:varchar(160)"`
	ScheduleDate   *time.Time      `json:"scheduleDate" gorm:"column:schedule_date"`
	AvailableSlots int             `json:"availableSlots" gorm:"column:available_slots"`
	Status         string          `json:"status" gorm:"type:varchar(30)"`

	MainImage     string         `json:"mainImage" gorm:"column:main_image;type:varchar(255)"`
	GalleryImages datatypes.JSON `json:"galleryImages" gorm:"column:gallery_images"`
}

func (t *Tour) AuditEntityType() string { return "Tour" }

func (t *Tour) AuditEntityID() uint { return t.ID }

func (t *Tour) AuditDisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	if t.ID != 0 {
		return fmt.Sprintf("ID: %d", t.ID)
	}
	return "Unknown"
}

func (t *Tour) AuditFields() map[string]interface{} {
	return map[string]interface{}{
		"name":            t.Name,
		"description":     t.Description,
		"location":        t.Location,
		"price":           t.Price.StringFixed(2),
		"duration":        t.Duration,
		"available_slots": t.AvailableSlots,
		"status":          t.Status,
		"main_image":      t.MainImage,
	}
}
