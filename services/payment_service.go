// services/payment_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentService owns gateway transactions and the webhook
// reconciliation flow.
type PaymentService struct {
	DB        *gorm.DB
	ServerKey string
}

func NewPaymentService(db *gorm.DB, serverKey string) *PaymentService {
	return &PaymentService{DB: db, ServerKey: serverKey}
}

// GatewayNotification is the webhook payload the gateway posts back.
type GatewayNotification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
}

// CreateTransaction opens a gateway transaction for a booking that is
// still waiting for payment. One PENDING payment per booking: repeated
// calls return the existing order instead of minting a new one.
func (s *PaymentService) CreateTransaction(bookingID uint) (*models.Payment, error) {
	var payment models.Payment
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
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

		err := tx.Where("booking_id = ? AND status = ?", bookingID, models.PaymentPending).
			First(&payment).Error
		if err == nil {
			return nil // reuse the open order
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing payment: %w", err)
		}

		payment = models.Payment{
			BookingID:   bookingID,
			OrderID:     "RENT-" + uuid.NewString(),
			GrossAmount: booking.TotalPrice,
			Status:      models.PaymentPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &payment, nil
}

// RedirectURL builds the hosted payment page link for an order.
func (s *PaymentService) RedirectURL(orderID string) string {
	base := strings.TrimRight(utils.EnvOrDefault("PAYMENT_REDIRECT_BASE", "https://pay.gateway.example"), "/")
	return fmt.Sprintf("%s/pay?order_id=%s", base, orderID)
}

// statusMapping translates a gateway transaction status into the local
// payment status and the booking status it implies. An empty booking
// status means "leave the booking alone".
func statusMapping(transactionStatus, fraudStatus string) (paymentStatus, bookingStatus string) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return models.PaymentSettled, models.BookingConfirmed
		}
		if fraudStatus == "challenge" {
			return models.PaymentPending, models.BookingWaitingConfirmation
		}
		return models.PaymentFailed, models.BookingCancelled
	case "settlement":
		return models.PaymentSettled, models.BookingConfirmed
	case "pending":
		return models.PaymentPending, models.BookingWaitingConfirmation
	case "deny":
		return models.PaymentFailed, models.BookingCancelled
	case "expire":
		return models.PaymentExpired, models.BookingCancelled
	case "cancel":
		return models.PaymentCancelled, models.BookingCancelled
	}
	return "", ""
}

// HandleNotification verifies and applies one gateway webhook. The
// payment record and booking move together in a single transaction;
// notifications for a booking already in a terminal state update the
// payment bookkeeping but never drag the booking back.
func (s *PaymentService) HandleNotification(n GatewayNotification) (*models.Payment, error) {
	if !utils.VerifyNotificationSignature(n.OrderID, n.StatusCode, n.GrossAmount, s.ServerKey, n.SignatureKey) {
		return nil, errors.New("invalid_signature")
	}

	paymentStatus, bookingStatus := statusMapping(n.TransactionStatus, n.FraudStatus)
	if paymentStatus == "" {
		return nil, errors.New("unknown_transaction_status")
	}

	var payment models.Payment
	var confirmed bool
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", n.OrderID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("payment_not_found")
			}
			return fmt.Errorf("failed to load payment: %w", err)
		}

		var booking models.Booking
		if err := forUpdate(tx).First(&booking, payment.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		raw, _ := json.Marshal(n)
		updates := map[string]interface{}{
			"status":             paymentStatus,
			"transaction_status": n.TransactionStatus,
			"fraud_status":       n.FraudStatus,
			"raw_notification":   datatypes.JSON(raw),
		}
		if paymentStatus == models.PaymentSettled && payment.PaidAt == nil {
			updates["paid_at"] = time.Now().UTC()
		}
		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		payment.Status = paymentStatus
		payment.TransactionStatus = n.TransactionStatus
		payment.FraudStatus = n.FraudStatus

		if bookingStatus != "" && booking.Status != bookingStatus {
			if models.CanTransitionBooking(booking.Status, bookingStatus) {
				if err := transition(tx, &booking, bookingStatus); err != nil {
					return err
				}
				confirmed = bookingStatus == models.BookingConfirmed
			} else {
				log.Printf("webhook: ignoring %s for booking %d in terminal status %s",
					n.TransactionStatus, booking.ID, booking.Status)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if confirmed {
		// best-effort, must never fail the webhook response
		bookingSvc := BookingService{DB: s.DB}
		bookingSvc.notifyConfirmed(&models.Booking{ID: payment.BookingID})
	}
	return &payment, nil
}
