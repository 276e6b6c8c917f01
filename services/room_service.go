package services

import (
	"errors"
	"fmt"

	"rental-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	var property models.Property
	if err := s.DB.First(&property, room.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("property_not_found")
		}
		return fmt.Errorf("db error checking property: %w", err)
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("Property").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.Preload("Property").Preload("PeakSeasonRates").First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Update(room *models.Room) error {
	return s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room).Error
}

func (s *RoomService) Delete(id uint) error {
	return s.DB.Delete(&models.Room{}, id).Error
}

// AddPeakSeasonRate attaches a seasonal adjustment to a room. The date
// range must be sane; overlap with existing rates is allowed on
// purpose, every covering rate applies.
func (s *RoomService) AddPeakSeasonRate(rate *models.PeakSeasonRate) error {
	if rate.RateType != models.RateTypeFixed && rate.RateType != models.RateTypePercentage {
		return errors.New("validation: rate_type must be FIXED or PERCENTAGE")
	}
	if rate.EndDate.Before(rate.StartDate) {
		return errors.New("validation: end_date before start_date")
	}
	if rate.Value < 0 {
		return errors.New("validation: value must not be negative")
	}
	var room models.Room
	if err := s.DB.First(&room, rate.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("room_not_found")
		}
		return fmt.Errorf("db error checking room: %w", err)
	}
	return s.DB.Create(rate).Error
}

func (s *RoomService) ListPeakSeasonRates(roomID uint) ([]models.PeakSeasonRate, error) {
	var rates []models.PeakSeasonRate
	err := s.DB.
		Where("room_id = ?", roomID).
		Order("start_date ASC, id ASC").
		Find(&rates).Error
	return rates, err
}

func (s *RoomService) DeletePeakSeasonRate(roomID, rateID uint) error {
	res := s.DB.Where("room_id = ?", roomID).Delete(&models.PeakSeasonRate{}, rateID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("rate_not_found")
	}
	return nil
}
