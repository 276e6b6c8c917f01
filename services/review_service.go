package services

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// CreateReview accepts a rating for a finished stay. One review per
// booking, only after the booking reached COMPLETED.
func (s *ReviewService) CreateReview(bookingID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("validation: rating must be between 1 and 5")
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.Status != models.BookingCompleted {
		return nil, errors.New("booking_not_completed")
	}

	review := models.Review{
		BookingID: bookingID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.DB.Create(&review).Error; err != nil {
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			return nil, errors.New("already_reviewed")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) ListForRoom(roomID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
