// controllers/payment_controller.go
package controllers

import (
	"log"
	"net/http"
	"strings"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

// CreateTransaction opens (or returns the still-open) gateway order for
// a booking and hands the client the hosted payment page link.
func (ctrl *PaymentController) CreateTransaction(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	payment, err := ctrl.PaymentSvc.CreateTransaction(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"order_id":     payment.OrderID,
		"gross_amount": payment.GrossAmount,
		"status":       payment.Status,
		"redirect_url": ctrl.PaymentSvc.RedirectURL(payment.OrderID),
	})
}

// HandleNotification is the gateway webhook endpoint. Signature
// mismatches short-circuit with 401 before anything is trusted; once
// reconciled the gateway always gets a 200 so it stops retrying.
func (ctrl *PaymentController) HandleNotification(c *gin.Context) {
	var n services.GatewayNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Notifikasi tidak lengkap: "+err.Error())
		return
	}

	payment, err := ctrl.PaymentSvc.HandleNotification(n)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "invalid_signature"):
			log.Printf("webhook: rejected notification for order %s: bad signature", n.OrderID)
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidSignature", "Signature tidak valid")
		case strings.Contains(msg, "payment_not_found"), strings.Contains(msg, "booking_not_found"):
			utils.JSONError(c, http.StatusNotFound, "error.orderNotFound", "Order tidak ditemukan")
		case strings.Contains(msg, "unknown_transaction_status"):
			utils.JSONError(c, http.StatusBadRequest, "error.unknownStatus", "Status transaksi tidak dikenal")
		default:
			log.Printf("webhook error for order %s: %v", n.OrderID, err)
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Terjadi kesalahan pada server")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"order_id": payment.OrderID,
		"status":   payment.Status,
	})
}
