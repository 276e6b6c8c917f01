package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type PropertyController struct {
	PropertySvc *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{PropertySvc: svc}
}

// isForeignKeyError detects MySQL FK violations (errno 1452).
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1452
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "foreign key") || strings.Contains(lower, "1452")
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "ID tidak valid")
		return 0, false
	}
	return uint(id), true
}

type PropertyPayload struct {
	TenantID    uint   `json:"tenant_id" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
}

func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var payload PropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data properti tidak lengkap: "+err.Error())
		return
	}

	property := models.Property{
		TenantID:    payload.TenantID,
		CategoryID:  payload.CategoryID,
		Name:        payload.Name,
		Description: payload.Description,
		Address:     payload.Address,
		City:        payload.City,
	}
	if err := ctrl.PropertySvc.Create(&property); err != nil {
		if strings.Contains(err.Error(), "category_not_found") {
			utils.JSONError(c, http.StatusBadRequest, "error.categoryNotFound", "Kategori tidak ditemukan")
			return
		}
		if isForeignKeyError(err) {
			utils.JSONError(c, http.StatusBadRequest, "error.foreignKey", "Referensi tenant/kategori tidak valid")
			return
		}
		log.Printf("CreateProperty error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menyimpan properti")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, property)
}

func (ctrl *PropertyController) GetProperties(c *gin.Context) {
	properties, err := ctrl.PropertySvc.GetAll()
	if err != nil {
		log.Printf("GetProperties error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil daftar properti")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

func (ctrl *PropertyController) GetPropertyByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	property, err := ctrl.PropertySvc.GetByID(id)
	if err != nil {
		if strings.Contains(err.Error(), "property_not_found") {
			utils.JSONError(c, http.StatusNotFound, "error.propertyNotFound", "Properti tidak ditemukan")
			return
		}
		log.Printf("GetPropertyByID error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil properti")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload PropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data properti tidak lengkap: "+err.Error())
		return
	}

	property := models.Property{
		TenantID:    payload.TenantID,
		CategoryID:  payload.CategoryID,
		Name:        payload.Name,
		Description: payload.Description,
		Address:     payload.Address,
		City:        payload.City,
	}
	property.ID = id
	if err := ctrl.PropertySvc.Update(&property); err != nil {
		log.Printf("UpdateProperty error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat memperbarui properti")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctrl.PropertySvc.Delete(id); err != nil {
		log.Printf("DeleteProperty error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menghapus properti")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
