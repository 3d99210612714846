package services

import (
	"fmt"
	"strings"
	"time"

	"resort-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PackageService เป็น wrapper รอบ *gorm.DB เพื่อแยก logic ของ package
type PackageService struct {
	DB     *gorm.DB
	Images *ImageService
}

func NewPackageService(db *gorm.DB, images *ImageService) *PackageService {
	return &PackageService{DB: db, Images: images}
}

// PackageInput carries everything needed to create or update a package. Item
// membership is expressed as id lists; unknown ids are rejected.
type PackageInput struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	PackagePrice decimal.Decimal  `json:"packagePrice"`
	Status       string           `json:"status"`
	PackageType  string           `json:"packageType"`
	IsFeatured   bool             `json:"isFeatured"`

	ValidFrom      *string `json:"validFrom"`
	ValidUntil     *string `json:"validUntil"`
	MaxRedemptions *int    `json:"maxRedemptions"`

	Terms      string `json:"terms"`
	Inclusions string `json:"inclusions"`
	Exclusions string `json:"exclusions"`

	DurationDays   *int `json:"durationDays"`
	DurationNights *int `json:"durationNights"`
	MaxGuests      *int `json:"maxGuests"`

	RoomIDs []uint `json:"roomIds"`
	TourIDs []uint `json:"tourIds"`
	FoodIDs []uint `json:"foodIds"`

	ItemConfig datatypes.JSON `json:"itemConfig"`
}

func (s *PackageService) resolveItems(input PackageInput) ([]models.Room, []models.Tour, []models.Food, error) {
	var rooms []models.Room
	if len(input.RoomIDs) > 0 {
		if err := s.DB.Find(&rooms, input.RoomIDs).Error; err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load rooms: %w", err)
		}
		if len(rooms) != len(input.RoomIDs) {
			return nil, nil, nil, validationErr("one or more rooms not found")
		}
	}

	var tours []models.Tour
	if len(input.TourIDs) > 0 {
		if err := s.DB.Find(&tours, input.TourIDs).Error; err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load tours: %w", err)
		}
		if len(tours) != len(input.TourIDs) {
			return nil, nil, nil, validationErr("one or more tours not found")
		}
	}

	var foods []models.Food
	if len(input.FoodIDs) > 0 {
		if err := s.DB.Find(&foods, input.FoodIDs).Error; err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load foods: %w", err)
		}
		if len(foods) != len(input.FoodIDs) {
			return nil, nil, nil, validationErr("one or more food items not found")
		}
	}

	return rooms, tours, foods, nil
}

func applyInput(pkg *models.Package, input PackageInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return validationErr("package name is required")
	}
	if input.PackagePrice.IsNegative() {
		return validationErr("package price cannot be negative")
	}

	pkg.Name = strings.TrimSpace(input.Name)
	pkg.Description = input.Description
	pkg.PackagePrice = input.PackagePrice.Round(2)
	pkg.PackageType = input.PackageType
	pkg.IsFeatured = input.IsFeatured
	pkg.TermsAndConditions = input.Terms
	pkg.Inclusions = input.Inclusions
	pkg.Exclusions = input.Exclusions
	pkg.DurationDays = input.DurationDays
	pkg.DurationNights = input.DurationNights
	pkg.MaxGuests = input.MaxGuests
	pkg.MaxRedemptions = input.MaxRedemptions
	pkg.ItemConfig = input.ItemConfig

	if input.Status != "" {
		pkg.Status = input.Status
	} else if pkg.Status == "" {
		pkg.Status = models.PackageStatusDraft
	}

	var err error
	if pkg.ValidFrom, err = parseOptionalDate(input.ValidFrom); err != nil {
		return validationErr("invalid valid-from date")
	}
	if pkg.ValidUntil, err = parseOptionalDate(input.ValidUntil); err != nil {
		return validationErr("invalid valid-until date")
	}
	return nil
}

// Create builds a new package, snapshots its component prices into
// OriginalPrice and derives the discount.
func (s *PackageService) Create(input PackageInput) (*models.Package, error) {
	rooms, tours, foods, err := s.resolveItems(input)
	if err != nil {
		return nil, err
	}

	pkg := models.Package{}
	if err := applyInput(&pkg, input); err != nil {
		return nil, err
	}
	pkg.Rooms = rooms
	pkg.Tours = tours
	pkg.Foods = foods
	pkg.CalculateOriginalPrice()
	pkg.CalculateDiscount()

	if err := s.DB.Create(&pkg).Error; err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return &pkg, nil
}

// Update replaces the package's fields and item membership, then recomputes
// original price and discount from the new composition.
func (s *PackageService) Update(id uint, input PackageInput) (*models.Package, error) {
	pkg, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	rooms, tours, foods, err := s.resolveItems(input)
	if err != nil {
		return nil, err
	}
	if err := applyInput(pkg, input); err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(pkg).Association("Rooms").Replace(rooms); err != nil {
			return fmt.Errorf("failed to replace rooms: %w", err)
		}
		if err := tx.Model(pkg).Association("Tours").Replace(tours); err != nil {
			return fmt.Errorf("failed to replace tours: %w", err)
		}
		if err := tx.Model(pkg).Association("Foods").Replace(foods); err != nil {
			return fmt.Errorf("failed to replace foods: %w", err)
		}

		pkg.Rooms = rooms
		pkg.Tours = tours
		pkg.Foods = foods
		pkg.CalculateOriginalPrice()
		pkg.CalculateDiscount()

		return tx.Save(pkg).Error
	})
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *PackageService) Get(id uint) (*models.Package, error) {
	var pkg models.Package
	err := s.DB.
		Preload("Rooms").
		Preload("Tours").
		Preload("Foods").
		First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// PackageFilters narrows the admin listing; zero values are ignored.
type PackageFilters struct {
	Status     string
	Type       string
	Featured   *bool
	ActiveOnly bool
}

func (s *PackageService) List(filters PackageFilters) ([]models.Package, error) {
	q := s.DB.Preload("Rooms").Preload("Tours").Preload("Foods")
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		q = q.Where("package_type = ?", filters.Type)
	}
	if filters.Featured != nil {
		q = q.Where("is_featured = ?", *filters.Featured)
	}
	if filters.ActiveOnly {
		q = q.Where("status = ?", models.PackageStatusActive)
	}

	var packages []models.Package
	err := q.Order("created_at DESC").Find(&packages).Error
	return packages, err
}

// Available returns the packages a guest can actually book right now.
func (s *PackageService) Available() ([]models.Package, error) {
	all, err := s.List(PackageFilters{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	available := make([]models.Package, 0, len(all))
	for _, pkg := range all {
		if pkg.IsValid() {
			available = append(available, pkg)
		}
	}
	return available, nil
}

// ToggleStatus flips a package between ACTIVE and INACTIVE. Draft packages
// are activated.
func (s *PackageService) ToggleStatus(id uint) (*models.Package, error) {
	pkg, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if pkg.Status == models.PackageStatusActive {
		pkg.Status = models.PackageStatusInactive
	} else {
		pkg.Status = models.PackageStatusActive
	}

	if err := s.DB.Model(pkg).Update("status", pkg.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle package status: %w", err)
	}
	return pkg, nil
}

func (s *PackageService) ToggleFeatured(id uint) (*models.Package, error) {
	pkg, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	pkg.IsFeatured = !pkg.IsFeatured
	if err := s.DB.Model(pkg).Update("is_featured", pkg.IsFeatured).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle featured flag: %w", err)
	}
	return pkg, nil
}

// Duplicate copies a package as a fresh draft. Item membership is carried
// over; images, per-item config and redemption counters are not.
func (s *PackageService) Duplicate(id uint) (*models.Package, error) {
	src, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	clone := models.Package{
		Name:               src.Name + " (Copy)",
		Description:        src.Description,
		PackagePrice:       src.PackagePrice,
		Status:             models.PackageStatusDraft,
		PackageType:        src.PackageType,
		TermsAndConditions: src.TermsAndConditions,
		Inclusions:         src.Inclusions,
		Exclusions:         src.Exclusions,
		DurationDays:       src.DurationDays,
		DurationNights:     src.DurationNights,
		MaxGuests:          src.MaxGuests,
		MaxRedemptions:     src.MaxRedemptions,
		ValidFrom:          src.ValidFrom,
		ValidUntil:         src.ValidUntil,
		Rooms:              src.Rooms,
		Tours:              src.Tours,
		Foods:              src.Foods,
	}
	clone.CalculateOriginalPrice()
	clone.CalculateDiscount()

	if err := s.DB.Create(&clone).Error; err != nil {
		return nil, fmt.Errorf("failed to duplicate package: %w", err)
	}
	return &clone, nil
}

// Delete soft-deletes the package and best-effort removes its stored images.
func (s *PackageService) Delete(id uint) error {
	pkg, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.DB.Delete(pkg).Error; err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	if s.Images != nil {
		if pkg.MainImage != "" {
			s.Images.DeleteImage(pkg.MainImage)
		}
		for _, img := range pkg.GalleryImageList() {
			s.Images.DeleteImage(img)
		}
	}
	return nil
}

// RemoveGalleryImage drops one image from the gallery and deletes the file.
func (s *PackageService) RemoveGalleryImage(id uint, imagePath string) (*models.Package, error) {
	pkg, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	found := false
	for _, img := range pkg.GalleryImageList() {
		if img == imagePath {
			found = true
			break
		}
	}
	if !found {
		return nil, validationErr("image not found in gallery")
	}

	pkg.RemoveGalleryImage(imagePath)
	if err := s.DB.Model(pkg).Update("gallery_images", pkg.GalleryImages).Error; err != nil {
		return nil, fmt.Errorf("failed to update gallery: %w", err)
	}
	if s.Images != nil {
		s.Images.DeleteImage(imagePath)
	}
	return pkg, nil
}

// PackageStats feeds the packages admin header.
type PackageStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Draft    int64 `json:"draft"`
	Featured int64 `json:"featured"`
}

func (s *PackageService) Stats() (*PackageStats, error) {
	stats := &PackageStats{}
	model := func() *gorm.DB { return s.DB.Model(&models.Package{}) }

	if err := model().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := model().Where("status = ?", models.PackageStatusActive).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := model().Where("status = ?", models.PackageStatusInactive).Count(&stats.Inactive).Error; err != nil {
		return nil, err
	}
	if err := model().Where("status = ?", models.PackageStatusDraft).Count(&stats.Draft).Error; err != nil {
		return nil, err
	}
	if err := model().Where("is_featured = ?", true).Count(&stats.Featured).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &t, nil
}
