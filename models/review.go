package models

import (
	"gorm.io/gorm"
)

// Review can only be written once its booking is COMPLETED; one review
// per booking.
type Review struct {
	gorm.Model

	BookingID uint `gorm:"uniqueIndex;column:booking_id" json:"booking_id"`
	RoomID    uint `gorm:"index;column:room_id" json:"room_id"`
	UserID    uint `gorm:"index;column:user_id" json:"user_id"`

	Rating  int    `gorm:"column:rating" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
}
