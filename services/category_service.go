package services

import (
	"rental-backend/config"
	"rental-backend/models"
)

type CategoryService struct{}

func (s CategoryService) Create(category models.Category) error {
	return config.DB.Create(&category).Error
}

func (s CategoryService) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := config.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s CategoryService) Delete(id uint) error {
	return config.DB.Delete(&models.Category{}, id).Error
}
