package services

import (
	"resort-backend/models"

	"gorm.io/gorm"
)

type FoodService struct {
	DB *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{DB: db}
}

func (s *FoodService) Create(food *models.Food) error {
	return s.DB.Create(food).Error
}

func (s *FoodService) GetAll() ([]models.Food, error) {
	var foods []models.Food
	err := s.DB.Order("category ASC, name ASC").Find(&foods).Error
	return foods, err
}

// Available returns food items guests can order.
func (s *FoodService) Available() ([]models.Food, error) {
	var foods []models.Food
	err := s.DB.
		Where("status = ? AND available_stock > 0", "AVAILABLE").
		Order("category ASC, name ASC").
		Find(&foods).Error
	return foods, err
}

func (s *FoodService) GetByID(id uint) (*models.Food, error) {
	var food models.Food
	if err := s.DB.First(&food, id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Update(food *models.Food) error {
	return s.DB.Save(food).Error
}

func (s *FoodService) Delete(id uint) error {
	return s.DB.Delete(&models.Food{}, id).Error
}
