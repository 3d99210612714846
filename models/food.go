package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Food struct {
	gorm.Model

	Name        string          `json:"name" gorm:"type:varchar(100)"`
	Description string          `json:"description" gorm:"type:text"`
	// Price is per unit.
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Category       string          `json:"category" gorm:"type:varchar(50)"`
	AvailableStock int             `json:"availableStock" gorm:"column:available_stock"`
	Status         string          `json:"status" gorm:"type:varchar(50)"`

	MainImage     string         `json:"mainImage" gorm:"column:main_image;type:varchar(255)"`
	GalleryImages datatypes.JSON `json:"galleryImages" gorm:"column:gallery_images"`
}

func (f *Food) AuditEntityType() string { return "Food" }

func (f *Food) AuditEntityID() uint { return f.ID }

func (f *Food) AuditDisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	if f.ID != 0 {
		return fmt.Sprintf("ID: %d", f.ID)
	}
	return "Unknown"
}

func (f *Food) AuditFields() map[string]interface{} {
	return map[string]interface{}{
		"name":            f.Name,
		"description":     f.Description,
		"price":           f.Price.StringFixed(2),
		"category":        f.Category,
		"available_stock": f.AvailableStock,
		"status":          f.Status,
		"main_image":      f.MainImage,
	}
}
