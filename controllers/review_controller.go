package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(svc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: svc}
}

type ReviewPayload struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview rates a completed stay. Bound to the booking, not the
// room, so one stay can only be reviewed once.
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var payload ReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Rating wajib diisi (1-5)")
		return
	}

	review, err := ctrl.ReviewSvc.CreateReview(bookingID, payload.Rating, payload.Comment)
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "booking_not_found"):
			utils.JSONError(c, http.StatusNotFound, "error.bookingNotFound", "Pemesanan tidak ditemukan")
		case strings.Contains(msg, "booking_not_completed"):
			utils.JSONError(c, http.StatusConflict, "error.bookingNotCompleted", "Ulasan hanya bisa dibuat setelah menginap selesai")
		case strings.Contains(msg, "already_reviewed"):
			utils.JSONError(c, http.StatusConflict, "error.alreadyReviewed", "Pemesanan ini sudah diulas")
		case strings.Contains(msg, "validation"):
			utils.JSONError(c, http.StatusBadRequest, "error.validation", msg)
		default:
			log.Printf("CreateReview error: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menyimpan ulasan")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

func (ctrl *ReviewController) GetRoomReviews(c *gin.Context) {
	roomID, ok := idParam(c)
	if !ok {
		return
	}
	reviews, err := ctrl.ReviewSvc.ListForRoom(roomID)
	if err != nil {
		log.Printf("GetRoomReviews error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil ulasan")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviews)
}
