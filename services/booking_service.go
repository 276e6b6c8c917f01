// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"rental-backend/config"
	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentDeadlineWindow is how long a guest has to pay after creating a
// booking before it is cancelled automatically.
const PaymentDeadlineWindow = time.Hour

// BookingService wraps *gorm.DB and owns the booking lifecycle:
// availability, creation, expiry and manual state transitions.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// forUpdate adds a row lock on dialects that support it. SQLite (used
// by the tests) has no FOR UPDATE; its single-writer model covers us.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// RoomAvailable reports whether the room has no active booking whose
// range conflicts with [checkIn, checkOut]. WAITING_PAYMENT bookings
// past their payment deadline no longer count: that is the lazy-expiry
// guard, so stale rows never block a new reservation.
func (s *BookingService) RoomAvailable(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	if tx == nil {
		tx = s.DB
	}
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveBookingStatuses()).
		Where("NOT (status = ? AND payment_deadline <= ?)", models.BookingWaitingPayment, time.Now().UTC()).
		Where("check_in <= ? AND check_out >= ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return count == 0, nil
}

// ratesForStay loads the room's peak season rates touching the stay,
// ordered deterministically so percentage stacking is reproducible.
func (s *BookingService) ratesForStay(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) ([]models.PeakSeasonRate, error) {
	var rates []models.PeakSeasonRate
	err := tx.
		Where("room_id = ?", roomID).
		Where("start_date <= ? AND end_date >= ?", checkOut, checkIn).
		Order("start_date ASC, id ASC").
		Find(&rates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load peak season rates: %w", err)
	}
	return rates, nil
}

// CreateBooking validates the request, prices the stay and reserves the
// room in one transaction. The room row is locked first so two
// concurrent requests for the same room serialize instead of both
// passing the availability check.
func (s *BookingService) CreateBooking(
	userID uint,
	roomID uint,
	checkIn, checkOut time.Time,
	guests int,
	guestDetails []byte,
) (*models.Booking, error) {

	if !checkOut.After(checkIn) {
		return nil, errors.New("validation: check_out must be after check_in")
	}
	if guests <= 0 {
		guests = 1
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user_not_found")
		}
		return nil, fmt.Errorf("db error checking user: %w", err)
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := forUpdate(tx).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("room_not_found")
			}
			return fmt.Errorf("db error checking room: %w", err)
		}

		if guests > room.Capacity {
			return errors.New("validation: guests exceed room capacity")
		}

		available, err := s.RoomAvailable(tx, roomID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if !available {
			return errors.New("room_unavailable")
		}

		rates, err := s.ratesForStay(tx, roomID, checkIn, checkOut)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		booking = models.Booking{
			RoomID:          roomID,
			UserID:          userID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Guests:          guests,
			TotalPrice:      CalculateStayPrice(room.BasePrice, checkIn, checkOut, rates),
			Status:          models.BookingWaitingPayment,
			PaymentDeadline: now.Add(PaymentDeadlineWindow),
		}
		if len(guestDetails) > 0 {
			booking.GuestDetails = datatypes.JSON(guestDetails)
		}

		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Room").Preload("User").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}

	// best-effort notification, the reservation stands either way
	if mailErr := utils.SendBookingCreatedEmail(
		user.Email, user.FullName, booking.Room.Name,
		booking.CheckIn, booking.CheckOut, booking.PaymentDeadline, booking.TotalPrice,
	); mailErr != nil {
		log.Printf("warning: booking-created email for booking %d failed: %v", booking.ID, mailErr)
	}

	return &booking, nil
}

// expireIfOverdue applies the check-on-read guard on a single booking
// inside tx. Returns true when the booking got cancelled.
func expireIfOverdue(tx *gorm.DB, booking *models.Booking) (bool, error) {
	if booking.Status != models.BookingWaitingPayment {
		return false, nil
	}
	now := time.Now().UTC()
	if booking.PaymentDeadline.After(now) {
		return false, nil
	}
	if err := tx.Model(booking).Updates(map[string]interface{}{
		"status":       models.BookingCancelled,
		"cancelled_at": now,
	}).Error; err != nil {
		return false, fmt.Errorf("failed to expire booking %d: %w", booking.ID, err)
	}
	booking.Status = models.BookingCancelled
	booking.CancelledAt = &now
	return true, nil
}

// ExpireOverdue cancels every WAITING_PAYMENT booking whose deadline has
// passed. Driven by the sweep ticker in main.
func (s *BookingService) ExpireOverdue() (int64, error) {
	now := time.Now().UTC()
	res := s.DB.Model(&models.Booking{}).
		Where("status = ? AND payment_deadline <= ?", models.BookingWaitingPayment, now).
		Updates(map[string]interface{}{
			"status":       models.BookingCancelled,
			"cancelled_at": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire overdue bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CompleteElapsed moves CONFIRMED bookings whose stay is over to
// COMPLETED. Driven by the same sweep as ExpireOverdue.
func (s *BookingService) CompleteElapsed() (int64, error) {
	res := s.DB.Model(&models.Booking{}).
		Where("status = ? AND check_out <= ?", models.BookingConfirmed, time.Now().UTC()).
		Update("status", models.BookingCompleted)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to complete elapsed bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// GetBooking loads one booking with its relations, applying the
// check-on-read expiry guard first.
func (s *BookingService) GetBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		_, err := expireIfOverdue(tx, &booking)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Room").Preload("User").First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

// ListBookings sweeps overdue rows, then returns all bookings newest
// first.
func (s *BookingService) ListBookings() ([]models.Booking, error) {
	if _, err := s.ExpireOverdue(); err != nil {
		log.Printf("warning: expiry sweep during list failed: %v", err)
	}

	var list []models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// transition moves a locked booking to a new status, refusing anything
// the state machine does not allow.
func transition(tx *gorm.DB, booking *models.Booking, to string) error {
	if !models.CanTransitionBooking(booking.Status, to) {
		return errors.New("invalid_status_transition")
	}
	updates := map[string]interface{}{"status": to}
	if to == models.BookingCancelled {
		updates["cancelled_at"] = time.Now().UTC()
	}
	if err := tx.Model(booking).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = to
	return nil
}

// lockAndTransition is the shared body of the manual actions: load +
// lock, lazily expire, then apply the requested transition.
func (s *BookingService) lockAndTransition(bookingID uint, to string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		if expired, err := expireIfOverdue(tx, &booking); err != nil {
			return err
		} else if expired && to != models.BookingCancelled {
			return errors.New("booking_expired")
		}
		if booking.Status == to {
			return nil // idempotent
		}
		return transition(tx, &booking, to)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// SubmitPaymentProof attaches a proof-of-payment URL and parks the
// booking for tenant confirmation.
func (s *BookingService) SubmitPaymentProof(bookingID uint, proofURL string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		if expired, err := expireIfOverdue(tx, &booking); err != nil {
			return err
		} else if expired {
			return errors.New("booking_expired")
		}
		if booking.Status != models.BookingWaitingPayment {
			return errors.New("invalid_status_transition")
		}
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"payment_proof": proofURL,
			"status":        models.BookingWaitingConfirmation,
		}).Error; err != nil {
			return fmt.Errorf("failed to save payment proof: %w", err)
		}
		booking.PaymentProof = proofURL
		booking.Status = models.BookingWaitingConfirmation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ApproveBooking is the tenant's manual confirmation.
func (s *BookingService) ApproveBooking(bookingID uint) (*models.Booking, error) {
	booking, err := s.lockAndTransition(bookingID, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	s.notifyConfirmed(booking)
	return booking, nil
}

// RejectBooking is the tenant's manual rejection.
func (s *BookingService) RejectBooking(bookingID uint) (*models.Booking, error) {
	booking, err := s.lockAndTransition(bookingID, models.BookingCancelled)
	if err != nil {
		return nil, err
	}
	config.PublishBookingEvent(config.ExchangeBookingCancelled, config.BookingEvent{
		BookingID: booking.ID,
		Total:     booking.TotalPrice,
	})
	return booking, nil
}

// CancelBooking is the guest's own cancellation; same rules as a
// rejection.
func (s *BookingService) CancelBooking(bookingID uint) (*models.Booking, error) {
	return s.RejectBooking(bookingID)
}

// CompleteBooking closes out a CONFIRMED booking once the stay is over.
func (s *BookingService) CompleteBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		if booking.Status != models.BookingConfirmed {
			return errors.New("invalid_status_transition")
		}
		if booking.CheckOut.After(time.Now().UTC()) {
			return errors.New("stay_not_finished")
		}
		return transition(tx, &booking, models.BookingCompleted)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// notifyConfirmed sends the confirmation email and event. Both are
// best-effort: a mail or broker hiccup must never undo a confirmation.
func (s *BookingService) notifyConfirmed(booking *models.Booking) {
	var full models.Booking
	if err := s.DB.Preload("Room").Preload("User").First(&full, booking.ID).Error; err != nil {
		log.Printf("warning: failed to load booking %d for notification: %v", booking.ID, err)
		return
	}
	if mailErr := utils.SendBookingConfirmedEmail(
		full.User.Email, full.User.FullName, full.Room.Name, full.CheckIn, full.CheckOut,
	); mailErr != nil {
		log.Printf("warning: confirmation email for booking %d failed: %v", booking.ID, mailErr)
	}
	config.PublishBookingEvent(config.ExchangeBookingConfirmed, config.BookingEvent{
		BookingID: full.ID,
		Total:     full.TotalPrice,
	})
}
