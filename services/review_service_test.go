package services

import (
	"strings"
	"testing"

	"rental-backend/models"
)

func TestCreateReview_OnlyAfterCompletion(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	bookingSvc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	booking, err := bookingSvc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	if _, err := svc.CreateReview(booking.ID, 5, "Nyaman sekali"); err == nil ||
		!strings.Contains(err.Error(), "booking_not_completed") {
		t.Fatalf("expected booking_not_completed, got %v", err)
	}

	if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.BookingCompleted).Error; err != nil {
		t.Fatalf("failed to complete booking: %v", err)
	}

	review, err := svc.CreateReview(booking.ID, 5, "Nyaman sekali")
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	if review.RoomID != roomID || review.UserID != userID {
		t.Fatalf("expected review bound to room %d / user %d, got %d / %d",
			roomID, userID, review.RoomID, review.UserID)
	}

	// one review per booking
	if _, err := svc.CreateReview(booking.ID, 4, "Kedua kali"); err == nil ||
		!strings.Contains(err.Error(), "already_reviewed") {
		t.Fatalf("expected already_reviewed, got %v", err)
	}

	reviews, err := svc.ListForRoom(roomID)
	if err != nil {
		t.Fatalf("ListForRoom failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
}

func TestCreateReview_RatingBounds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.CreateReview(1, rating, ""); err == nil ||
			!strings.Contains(err.Error(), "validation") {
			t.Fatalf("expected validation error for rating %d, got %v", rating, err)
		}
	}
}
