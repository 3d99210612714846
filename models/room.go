package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber    string          `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(40)"`
	RoomType      string          `json:"roomType" gorm:"column:room_type;type:varchar(60)"`
	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"column:price_per_night;type:decimal(10,2)"`
	Capacity      int             `json:"capacity"`
	Features      string          `json:"features" gorm:"type:varchar(4000)"`
	Description   string          `json:"description" gorm:"type:text"`
	Status        string          `json:"status" gorm:"type:varchar(30)"`

	MainImage     string         `json:"mainImage" gorm:"column:main_image;type:varchar(255)"`
	GalleryImages datatypes.JSON `json:"galleryImages" gorm:"column:gallery_images"`
}

func (r *Room) AuditEntityType() string { return "Room" }

func (r *Room) AuditEntityID() uint { return r.ID }

func (r *Room) AuditDisplayName() string {
	if r.RoomNumber != "" {
		return r.RoomNumber
	}
	if r.ID != 0 {
		return fmt.Sprintf("ID: %d", r.ID)
	}
	return "Unknown"
}

func (r *Room) AuditFields() map[string]interface{} {
	return map[string]interface{}{
		"room_number":     r.RoomNumber,
		"room_type":       r.RoomType,
		"price_per_night": r.PricePerNight.StringFixed(2),
		"capacity":        r.Capacity,
		"features":        r.Features,
		"description":     r.Description,
		"status":          r.Status,
		"main_image":      r.MainImage,
	}
}
