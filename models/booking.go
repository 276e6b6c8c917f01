package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. The first three block availability for their room.
const (
	BookingWaitingPayment      = "WAITING_PAYMENT"
	BookingWaitingConfirmation = "WAITING_CONFIRMATION"
	BookingConfirmed           = "CONFIRMED"
	BookingCancelled           = "CANCELLED"
	BookingCompleted           = "COMPLETED"
)

// ActiveBookingStatuses are the statuses that make a booking count
// against room availability.
func ActiveBookingStatuses() []string {
	return []string{BookingWaitingPayment, BookingWaitingConfirmation, BookingConfirmed}
}

// IsTerminalBookingStatus reports whether no further payment-flow
// transition is allowed out of status.
func IsTerminalBookingStatus(status string) bool {
	switch status {
	case BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// CanTransitionBooking is the booking state machine guard.
func CanTransitionBooking(from, to string) bool {
	switch from {
	case BookingWaitingPayment:
		return to == BookingWaitingConfirmation || to == BookingConfirmed || to == BookingCancelled
	case BookingWaitingConfirmation:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		// completion is the one sanctioned exit once the stay is over
		return to == BookingCompleted
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID uint `gorm:"index;column:room_id" json:"room_id"`
	UserID uint `gorm:"index;column:user_id" json:"user_id"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`
	Guests   int       `gorm:"column:guests;default:1" json:"guests"`

	// TotalPrice is computed once at creation time and never
	// recalculated, even if peak season rates change afterwards.
	TotalPrice float64 `gorm:"column:total_price" json:"total_price"`

	Status          string     `gorm:"column:status;size:32;index" json:"status"`
	PaymentDeadline time.Time  `gorm:"column:payment_deadline" json:"payment_deadline"`
	PaymentProof    string     `gorm:"column:payment_proof;size:512" json:"payment_proof,omitempty"`
	CancelledAt     *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	GuestDetails datatypes.JSON `gorm:"column:guest_details" json:"guest_details,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
