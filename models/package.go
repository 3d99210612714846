package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PackageStatusActive   = "Active"
	PackageStatusInactive = "Inactive"
	PackageStatusDraft    = "Draft"
)

// Package bundles rooms/tours/foods at one combined price. OriginalPrice and
// DiscountPercentage are derived fields: they are recomputed explicitly by the
// services mutating the price or the item set, never on reads.
type Package struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(150)" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	OriginalPrice      decimal.Decimal  `gorm:"column:original_price;type:decimal(10,2)" json:"originalPrice"`
	PackagePrice       decimal.Decimal  `gorm:"column:package_price;type:decimal(10,2)" json:"packagePrice"`
	DiscountPercentage *decimal.Decimal `gorm:"column:discount_percentage;type:decimal(5,2)" json:"discountPercentage"`

	ValidFrom          *time.Time `gorm:"column:valid_from" json:"validFrom"`
	ValidUntil         *time.Time `gorm:"column:valid_until" json:"validUntil"`
	MaxRedemptions     *int       `gorm:"column:max_redemptions" json:"maxRedemptions"`
	CurrentRedemptions int        `gorm:"column:current_redemptions;default:0" json:"currentRedemptions"`

	Status      string `gorm:"type:varchar(50);default:Active" json:"status"`
	PackageType string `gorm:"column:package_type;type:varchar(100)" json:"packageType"`
	IsFeatured  bool   `gorm:"column:is_featured;default:false" json:"isFeatured"`

	MainImage     string         `gorm:"column:main_image;type:varchar(255)" json:"mainImage"`
	GalleryImages datatypes.JSON `gorm:"column:gallery_images" json:"galleryImages"`

	TermsAndConditions string `gorm:"column:terms_and_conditions;type:text" json:"termsAndConditions"`
	Inclusions         string `gorm:"type:text" json:"inclusions"`
	Exclusions         string `gorm:"type:text" json:"exclusions"`

	DurationDays   *int `gorm:"column:duration_days" json:"durationDays"`
	DurationNights *int `gorm:"column:duration_nights" json:"durationNights"`
	MaxGuests      *int `gorm:"column:max_guests" json:"maxGuests"`

	// ItemConfig stores per-item extras keyed by item type then id,
	// e.g. {"room": {"3": {"nights": 2}}, "food": {"7": {"quantity": 4}}}.
	ItemConfig datatypes.JSON `gorm:"column:item_config" json:"itemConfig"`

	Rooms []Room `gorm:"many2many:package_rooms" json:"rooms,omitempty"`
	Tours []Tour `gorm:"many2many:package_tours" json:"tours,omitempty"`
	Foods []Food `gorm:"many2many:package_foods" json:"foods,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CalculateOriginalPrice sums the itemized price of every linked item.
// Rooms count for one night each; per-item nights from ItemConfig are
// intentionally not folded in here, matching how the bundle is presented.
// Requires Rooms/Tours/Foods to be loaded.
func (p *Package) CalculateOriginalPrice() {
	total := decimal.Zero
	for _, t := range p.Tours {
		total = total.Add(t.Price)
	}
	for _, f := range p.Foods {
		total = total.Add(f.Price)
	}
	for _, r := range p.Rooms {
		total = total.Add(r.PricePerNight)
	}
	p.OriginalPrice = total.Round(2)
}

// CalculateDiscount derives the discount percentage from OriginalPrice and
// PackagePrice. No discount is claimed unless both prices are positive and
// the package price is strictly lower.
func (p *Package) CalculateDiscount() {
	if p.OriginalPrice.IsPositive() && p.PackagePrice.IsPositive() && p.OriginalPrice.GreaterThan(p.PackagePrice) {
		discount := p.OriginalPrice.Sub(p.PackagePrice).
			Div(p.OriginalPrice).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		if discount.IsNegative() {
			discount = decimal.Zero
		}
		p.DiscountPercentage = &discount
	} else {
		p.DiscountPercentage = nil
	}
}

// Savings is the absolute amount saved against the itemized total, never negative.
func (p *Package) Savings() decimal.Decimal {
	s := p.OriginalPrice.Sub(p.PackagePrice)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

func (p *Package) IsValid() bool {
	if p.Status != PackageStatusActive {
		return false
	}
	now := time.Now()
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false
	}
	if p.MaxRedemptions != nil && p.CurrentRedemptions >= *p.MaxRedemptions {
		return false
	}
	return true
}

// RemainingSlots returns nil for unlimited packages.
func (p *Package) RemainingSlots() *int {
	if p.MaxRedemptions == nil {
		return nil
	}
	left := *p.MaxRedemptions - p.CurrentRedemptions
	if left < 0 {
		left = 0
	}
	return &left
}

// ItemConfigFor looks up the extra attributes configured for one linked item.
func (p *Package) ItemConfigFor(itemType string, id uint) map[string]interface{} {
	if len(p.ItemConfig) == 0 {
		return map[string]interface{}{}
	}
	var configs map[string]map[string]map[string]interface{}
	if err := json.Unmarshal(p.ItemConfig, &configs); err != nil {
		return map[string]interface{}{}
	}
	byID, ok := configs[itemType]
	if !ok {
		return map[string]interface{}{}
	}
	cfg, ok := byID[strconv.FormatUint(uint64(id), 10)]
	if !ok {
		return map[string]interface{}{}
	}
	return cfg
}

func (p *Package) TotalItemsCount() int {
	return len(p.Rooms) + len(p.Tours) + len(p.Foods)
}

func (p *Package) DurationFormatted() string {
	parts := []string{}
	if p.DurationDays != nil && *p.DurationDays > 0 {
		parts = append(parts, fmt.Sprintf("%dD", *p.DurationDays))
	}
	if p.DurationNights != nil && *p.DurationNights > 0 {
		parts = append(parts, fmt.Sprintf("%dN", *p.DurationNights))
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, "/")
}

func (p *Package) GalleryImageList() []string {
	var images []string
	if len(p.GalleryImages) > 0 {
		_ = json.Unmarshal(p.GalleryImages, &images)
	}
	return images
}

func (p *Package) SetGalleryImageList(images []string) {
	b, _ := json.Marshal(images)
	p.GalleryImages = datatypes.JSON(b)
}

func (p *Package) AddGalleryImage(name string) {
	images := p.GalleryImageList()
	for _, img := range images {
		if img == name {
			return
		}
	}
	p.SetGalleryImageList(append(images, name))
}

func (p *Package) RemoveGalleryImage(name string) {
	images := p.GalleryImageList()
	kept := images[:0]
	for _, img := range images {
		if img != name {
			kept = append(kept, img)
		}
	}
	p.SetGalleryImageList(kept)
}
