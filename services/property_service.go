package services

import (
	"errors"
	"fmt"

	"rental-backend/models"

	"gorm.io/gorm"
)

type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

func (s *PropertyService) Create(property *models.Property) error {
	var cat models.Category
	if err := s.DB.First(&cat, property.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category_not_found")
		}
		return fmt.Errorf("db error checking category: %w", err)
	}
	return s.DB.Create(property).Error
}

func (s *PropertyService) GetAll() ([]models.Property, error) {
	var list []models.Property
	err := s.DB.
		Preload("Category").
		Preload("Rooms").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.DB.
		Preload("Category").
		Preload("Rooms").
		Preload("Rooms.PeakSeasonRates").
		First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, err
	}
	return &property, nil
}

func (s *PropertyService) Update(property *models.Property) error {
	return s.DB.Model(&models.Property{}).Where("id = ?", property.ID).Updates(property).Error
}

func (s *PropertyService) Delete(id uint) error {
	return s.DB.Delete(&models.Property{}, id).Error
}
