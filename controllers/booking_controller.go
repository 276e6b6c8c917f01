// controllers/booking_controller.go
package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID       uint            `json:"user_id" binding:"required"`
	RoomID       uint            `json:"room_id" binding:"required"`
	CheckIn      string          `json:"check_in" binding:"required"`
	CheckOut     string          `json:"check_out" binding:"required"`
	Guests       int             `json:"guests"`
	GuestDetails json.RawMessage `json:"guest_details,omitempty"`
}

type PaymentProofRequest struct {
	ProofURL string `json:"proof_url" binding:"required,url"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// parseDate accepts plain dates or RFC3339 timestamps, normalized to a
// UTC midnight calendar date.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidBookingId", "ID pemesanan tidak valid")
		return 0, false
	}
	return uint(id), true
}

// respondBookingError maps service sentinel errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "booking_not_found"):
		utils.JSONError(c, http.StatusNotFound, "error.bookingNotFound", "Pemesanan tidak ditemukan")
	case strings.Contains(msg, "room_not_found"):
		utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Kamar tidak ditemukan")
	case strings.Contains(msg, "user_not_found"):
		utils.JSONError(c, http.StatusNotFound, "error.userNotFound", "Pengguna tidak ditemukan")
	case strings.Contains(msg, "room_unavailable"):
		utils.JSONError(c, http.StatusBadRequest, "error.roomUnavailable", "Kamar tidak tersedia pada tanggal tersebut")
	case strings.Contains(msg, "validation"):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", msg)
	case strings.Contains(msg, "booking_expired"):
		utils.JSONError(c, http.StatusConflict, "error.bookingExpired", "Batas waktu pembayaran sudah lewat, pemesanan dibatalkan")
	case strings.Contains(msg, "stay_not_finished"):
		utils.JSONError(c, http.StatusConflict, "error.stayNotFinished", "Masa menginap belum berakhir")
	case strings.Contains(msg, "invalid_status_transition"):
		utils.JSONError(c, http.StatusConflict, "error.invalidStatusTransition", "Status pemesanan tidak memungkinkan aksi ini")
	default:
		log.Printf("booking error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Terjadi kesalahan pada server")
	}
}

// ---------------------------
// 1) Create & read
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data pemesanan tidak lengkap: "+err.Error())
		return
	}

	checkIn, ok := parseDate(payload.CheckIn)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Format check_in tidak valid (YYYY-MM-DD)")
		return
	}
	checkOut, ok := parseDate(payload.CheckOut)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Format check_out tidak valid (YYYY-MM-DD)")
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(
		payload.UserID, payload.RoomID, checkIn, checkOut, payload.Guests, payload.GuestDetails,
	)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.ListBookings()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.fetchBookings", "Tidak dapat mengambil daftar pemesanan")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ---------------------------
// 2) Availability
// ---------------------------

func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidRoomId", "ID kamar tidak valid")
		return
	}

	checkIn, ok := parseDate(c.Query("check_in"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Parameter check_in wajib diisi (YYYY-MM-DD)")
		return
	}
	checkOut, ok := parseDate(c.Query("check_out"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Parameter check_out wajib diisi (YYYY-MM-DD)")
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "error.validation", "check_out harus setelah check_in")
		return
	}

	available, err := ctrl.BookingSvc.RoomAvailable(nil, uint(roomID), checkIn, checkOut)
	if err != nil {
		log.Printf("CheckAvailability error for room %d: %v", roomID, err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat memeriksa ketersediaan")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"room_id":   roomID,
		"check_in":  checkIn.Format("2006-01-02"),
		"check_out": checkOut.Format("2006-01-02"),
		"available": available,
	})
}

// ---------------------------
// 3) Manual state transitions
// ---------------------------

func (ctrl *BookingController) SubmitPaymentProof(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload PaymentProofRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "proof_url wajib berupa URL yang valid")
		return
	}

	booking, err := ctrl.BookingSvc.SubmitPaymentProof(id, payload.ProofURL)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) ApproveBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.ApproveBooking(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.RejectBooking(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.CancelBooking(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.CompleteBooking(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
