package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type RoomPayload struct {
	PropertyID  uint    `json:"property_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	BasePrice   float64 `json:"base_price" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Description string  `json:"description"`
}

type PeakSeasonRatePayload struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	RateType  string  `json:"rate_type" binding:"required,oneof=FIXED PERCENTAGE"`
	Value     float64 `json:"value" binding:"required,gte=0"`
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data kamar tidak lengkap: "+err.Error())
		return
	}

	room := models.Room{
		PropertyID:  payload.PropertyID,
		Name:        payload.Name,
		BasePrice:   payload.BasePrice,
		Capacity:    payload.Capacity,
		Description: payload.Description,
	}
	if err := ctrl.RoomSvc.Create(&room); err != nil {
		if strings.Contains(err.Error(), "property_not_found") {
			utils.JSONError(c, http.StatusBadRequest, "error.propertyNotFound", "Properti tidak ditemukan")
			return
		}
		log.Printf("CreateRoom error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menyimpan kamar")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		log.Printf("GetRooms error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil daftar kamar")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		if strings.Contains(err.Error(), "room_not_found") {
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Kamar tidak ditemukan")
			return
		}
		log.Printf("GetRoomByID error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil kamar")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data kamar tidak lengkap: "+err.Error())
		return
	}

	room := models.Room{
		PropertyID:  payload.PropertyID,
		Name:        payload.Name,
		BasePrice:   payload.BasePrice,
		Capacity:    payload.Capacity,
		Description: payload.Description,
	}
	room.ID = id
	if err := ctrl.RoomSvc.Update(&room); err != nil {
		log.Printf("UpdateRoom error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat memperbarui kamar")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(id); err != nil {
		log.Printf("DeleteRoom error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menghapus kamar")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// ---------------------------
// Peak season rates
// ---------------------------

func (ctrl *RoomController) AddPeakSeasonRate(c *gin.Context) {
	roomID, ok := idParam(c)
	if !ok {
		return
	}
	var payload PeakSeasonRatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data tarif musiman tidak lengkap: "+err.Error())
		return
	}

	start, err1 := time.Parse("2006-01-02", payload.StartDate)
	end, err2 := time.Parse("2006-01-02", payload.EndDate)
	if err1 != nil || err2 != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "Format tanggal tarif tidak valid (YYYY-MM-DD)")
		return
	}

	rate := models.PeakSeasonRate{
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		RateType:  payload.RateType,
		Value:     payload.Value,
	}
	if err := ctrl.RoomSvc.AddPeakSeasonRate(&rate); err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "room_not_found"):
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "Kamar tidak ditemukan")
		case strings.Contains(msg, "validation"):
			utils.JSONError(c, http.StatusBadRequest, "error.validation", msg)
		default:
			log.Printf("AddPeakSeasonRate error: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menyimpan tarif musiman")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rate)
}

func (ctrl *RoomController) GetPeakSeasonRates(c *gin.Context) {
	roomID, ok := idParam(c)
	if !ok {
		return
	}
	rates, err := ctrl.RoomSvc.ListPeakSeasonRates(roomID)
	if err != nil {
		log.Printf("GetPeakSeasonRates error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil tarif musiman")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rates)
}

func (ctrl *RoomController) DeletePeakSeasonRate(c *gin.Context) {
	roomID, ok := idParam(c)
	if !ok {
		return
	}
	rateID, err := strconv.ParseUint(c.Param("rateId"), 10, 64)
	if err != nil || rateID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "ID tarif tidak valid")
		return
	}
	if err := ctrl.RoomSvc.DeletePeakSeasonRate(roomID, uint(rateID)); err != nil {
		if strings.Contains(err.Error(), "rate_not_found") {
			utils.JSONError(c, http.StatusNotFound, "error.rateNotFound", "Tarif musiman tidak ditemukan")
			return
		}
		log.Printf("DeletePeakSeasonRate error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menghapus tarif musiman")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": rateID})
}
