package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rental-backend/config"
	"rental-backend/models"
)

// setupTestDB opens a per-test in-memory sqlite database with the full
// schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateModels(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedRoom creates a guest user and one room (with its property chain)
// and returns their ids.
func seedRoom(t *testing.T, db *gorm.DB, basePrice float64, capacity int) (userID, roomID uint) {
	t.Helper()

	user := models.User{FullName: "Budi Santoso", Email: fmt.Sprintf("budi+%s@example.com", t.Name()), Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	category := models.Category{Name: "Villa " + t.Name()}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	property := models.Property{TenantID: user.ID, CategoryID: category.ID, Name: "Villa Pinus", City: "Bandung"}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
	room := models.Room{PropertyID: property.ID, Name: "Kamar A", BasePrice: basePrice, Capacity: capacity}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return user.ID, room.ID
}

func TestCreateBooking_PricesStayWithPeakRate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 1000000, 4)

	rate := models.PeakSeasonRate{
		RoomID:    roomID,
		StartDate: date(2025, 6, 1),
		EndDate:   date(2025, 6, 3),
		RateType:  models.RateTypePercentage,
		Value:     20,
	}
	if err := db.Create(&rate).Error; err != nil {
		t.Fatalf("failed to seed rate: %v", err)
	}

	booking, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 4), 2, nil)
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if booking.TotalPrice != 3600000 {
		t.Fatalf("expected total 3600000, got %f", booking.TotalPrice)
	}
	if booking.Status != models.BookingWaitingPayment {
		t.Fatalf("expected WAITING_PAYMENT, got %s", booking.Status)
	}
	until := time.Until(booking.PaymentDeadline)
	if until < 59*time.Minute || until > 61*time.Minute {
		t.Fatalf("expected ~1h payment deadline, got %s", until)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	if _, err := svc.CreateBooking(userID, roomID, date(2025, 6, 4), date(2025, 6, 4), 1, nil); err == nil ||
		!strings.Contains(err.Error(), "validation") {
		t.Fatalf("expected validation error for zero-night range, got %v", err)
	}
	if _, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 4), 3, nil); err == nil ||
		!strings.Contains(err.Error(), "capacity") {
		t.Fatalf("expected capacity error, got %v", err)
	}
	if _, err := svc.CreateBooking(userID, roomID+99, date(2025, 6, 1), date(2025, 6, 4), 1, nil); err == nil ||
		!strings.Contains(err.Error(), "room_not_found") {
		t.Fatalf("expected room_not_found, got %v", err)
	}
}

func TestAvailability_OverlapBlocked(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	first, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// the second request overlaps in every active status of the first
	for _, status := range models.ActiveBookingStatuses() {
		if err := db.Model(&models.Booking{}).Where("id = ?", first.ID).
			Update("status", status).Error; err != nil {
			t.Fatalf("failed to set status %s: %v", status, err)
		}
		available, err := svc.RoomAvailable(nil, roomID, date(2025, 6, 4), date(2025, 6, 6))
		if err != nil {
			t.Fatalf("RoomAvailable failed: %v", err)
		}
		if available {
			t.Fatalf("expected unavailable while first booking is %s", status)
		}
		if _, err := svc.CreateBooking(userID, roomID, date(2025, 6, 4), date(2025, 6, 6), 1, nil); err == nil ||
			!strings.Contains(err.Error(), "room_unavailable") {
			t.Fatalf("expected room_unavailable while first booking is %s, got %v", status, err)
		}
	}
}

func TestAvailability_CancelledDoesNotBlock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	first, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CancelBooking(first.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	available, err := svc.RoomAvailable(nil, roomID, date(2025, 6, 4), date(2025, 6, 6))
	if err != nil {
		t.Fatalf("RoomAvailable failed: %v", err)
	}
	if !available {
		t.Fatal("expected availability after cancellation")
	}
}

func TestAvailability_DisjointRangesCoexist(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	if _, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.CreateBooking(userID, roomID, date(2025, 6, 6), date(2025, 6, 8), 2, nil); err != nil {
		t.Fatalf("expected disjoint booking to succeed, got %v", err)
	}
}

func TestExpiry_CheckOnReadAndSweep(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	booking, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	overdue := time.Now().UTC().Add(-time.Minute)
	if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("payment_deadline", overdue).Error; err != nil {
		t.Fatalf("failed to backdate deadline: %v", err)
	}

	// an overdue WAITING_PAYMENT row must not block a new reservation
	available, err := svc.RoomAvailable(nil, roomID, date(2025, 6, 2), date(2025, 6, 4))
	if err != nil {
		t.Fatalf("RoomAvailable failed: %v", err)
	}
	if !available {
		t.Fatal("expected overdue booking not to block availability")
	}

	// check-on-read guard cancels it
	got, err := svc.GetBooking(booking.ID)
	if err != nil {
		t.Fatalf("GetBooking failed: %v", err)
	}
	if got.Status != models.BookingCancelled {
		t.Fatalf("expected CANCELLED after deadline, got %s", got.Status)
	}

	// sweep finds nothing left to do
	n, err := svc.ExpireOverdue()
	if err != nil {
		t.Fatalf("ExpireOverdue failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows from sweep, got %d", n)
	}
}

func TestManualTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	booking, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	got, err := svc.SubmitPaymentProof(booking.ID, "https://files.example.com/bukti.jpg")
	if err != nil {
		t.Fatalf("SubmitPaymentProof failed: %v", err)
	}
	if got.Status != models.BookingWaitingConfirmation {
		t.Fatalf("expected WAITING_CONFIRMATION, got %s", got.Status)
	}

	// second proof upload is no longer allowed
	if _, err := svc.SubmitPaymentProof(booking.ID, "https://files.example.com/bukti2.jpg"); err == nil ||
		!strings.Contains(err.Error(), "invalid_status_transition") {
		t.Fatalf("expected invalid_status_transition, got %v", err)
	}

	got, err = svc.ApproveBooking(booking.ID)
	if err != nil {
		t.Fatalf("ApproveBooking failed: %v", err)
	}
	if got.Status != models.BookingConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", got.Status)
	}

	// a CONFIRMED booking can no longer be cancelled
	if _, err := svc.CancelBooking(booking.ID); err == nil ||
		!strings.Contains(err.Error(), "invalid_status_transition") {
		t.Fatalf("expected invalid_status_transition for cancel after confirm, got %v", err)
	}

	// completion requires the stay to be over
	if _, err := svc.CompleteBooking(booking.ID); err == nil ||
		!strings.Contains(err.Error(), "stay_not_finished") {
		t.Fatalf("expected stay_not_finished, got %v", err)
	}
	if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("check_out", time.Now().UTC().Add(-24*time.Hour)).Error; err != nil {
		t.Fatalf("failed to backdate check_out: %v", err)
	}
	got, err = svc.CompleteBooking(booking.ID)
	if err != nil {
		t.Fatalf("CompleteBooking failed: %v", err)
	}
	if got.Status != models.BookingCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
}

func TestRejectBooking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	booking, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := svc.SubmitPaymentProof(booking.ID, "https://files.example.com/bukti.jpg"); err != nil {
		t.Fatalf("SubmitPaymentProof failed: %v", err)
	}

	got, err := svc.RejectBooking(booking.ID)
	if err != nil {
		t.Fatalf("RejectBooking failed: %v", err)
	}
	if got.Status != models.BookingCancelled {
		t.Fatalf("expected CANCELLED, got %s", got.Status)
	}
	if got.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be set")
	}
}

func TestCompleteElapsedSweep(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBookingService(db)
	userID, roomID := seedRoom(t, db, 500000, 2)

	booking, err := svc.CreateBooking(userID, roomID, date(2025, 6, 1), date(2025, 6, 5), 2, nil)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
		"status":    models.BookingConfirmed,
		"check_out": time.Now().UTC().Add(-time.Hour),
	}).Error; err != nil {
		t.Fatalf("failed to prime booking: %v", err)
	}

	n, err := svc.CompleteElapsed()
	if err != nil {
		t.Fatalf("CompleteElapsed failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 completed booking, got %d", n)
	}
}
