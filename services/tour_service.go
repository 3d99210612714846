package services

import (
	"resort-backend/models"

	"gorm.io/gorm"
)

type TourService struct {
	DB *gorm.DB
}

func NewTourService(db *gorm.DB) *TourService {
	return &TourService{DB: db}
}

func (s *TourService) Create(tour *models.Tour) error {
	return s.DB.Create(tour).Error
}

func (s *TourService) GetAll() ([]models.Tour, error) {
	var tours []models.Tour
	err := s.DB.Order("name ASC").Find(&tours).Error
	return tours, err
}

// Available returns tours that are open and still have slots.
func (s *TourService) Available() ([]models.Tour, error) {
	var tours []models.Tour
	err := s.DB.
		Where("status = ? AND available_slots > 0", "ACTIVE").
		Order("schedule_date ASC").
		Find(&tours).Error
	return tours, err
}

func (s *TourService) GetByID(id uint) (*models.Tour, error) {
	var tour models.Tour
	if err := s.DB.First(&tour, id).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (s *TourService) Update(tour *models.Tour) error {
	return s.DB.Save(tour).Error
}

func (s *TourService) Delete(id uint) error {
	return s.DB.Delete(&models.Tour{}, id).Error
}
