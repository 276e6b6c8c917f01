package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

var categoryService services.CategoryService

func GetCategories(c *gin.Context) {
	categories, err := categoryService.GetAll()
	if err != nil {
		log.Printf("GetCategories error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat mengambil kategori")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, categories)
}

func CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Data kategori tidak lengkap: "+err.Error())
		return
	}
	if err := categoryService.Create(category); err != nil {
		log.Printf("CreateCategory error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menyimpan kategori")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, category)
}

func DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := categoryService.Delete(id); err != nil {
		log.Printf("DeleteCategory error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "Tidak dapat menghapus kategori")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
