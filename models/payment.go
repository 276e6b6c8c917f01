package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment statuses as tracked locally; TransactionStatus/FraudStatus
// keep whatever the gateway last reported verbatim.
const (
	PaymentPending   = "PENDING"
	PaymentSettled   = "SETTLED"
	PaymentFailed    = "FAILED"
	PaymentExpired   = "EXPIRED"
	PaymentCancelled = "CANCELLED"
)

type Payment struct {
	gorm.Model

	BookingID uint   `gorm:"index;column:booking_id" json:"booking_id"`
	OrderID   string `gorm:"uniqueIndex;size:64;column:order_id" json:"order_id"`

	GrossAmount float64 `gorm:"column:gross_amount" json:"gross_amount"`
	Status      string  `gorm:"column:status;size:32" json:"status"`

	TransactionStatus string     `gorm:"column:transaction_status;size:32" json:"transaction_status,omitempty"`
	FraudStatus       string     `gorm:"column:fraud_status;size:32" json:"fraud_status,omitempty"`
	PaidAt            *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	// RawNotification keeps the last webhook payload for auditing.
	RawNotification datatypes.JSON `gorm:"column:raw_notification" json:"-"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}
