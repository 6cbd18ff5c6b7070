package controllers

import (
	"net/http"

	"hotelsite-backend/config"
	"hotelsite-backend/models"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
)

type contactPayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ----------------------------------------------------
// 1. Public submission (POST /api/contact)
// ----------------------------------------------------

// CreateContactMessage accepts a visitor message. Visitors can only
// create; is_read stays false until an admin flips it.
func CreateContactMessage(c *gin.Context) {
	var payload contactPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	msg := models.ContactMessage{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	}
	if err := config.DB.Create(&msg).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ----------------------------------------------------
// 2. Admin console (/api/admin/messages)
// ----------------------------------------------------

func GetContactMessages(c *gin.Context) {
	var messages []models.ContactMessage
	if err := config.DB.Order("created_at DESC, id ASC").Find(&messages).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

func GetContactMessage(c *gin.Context) {
	var msg models.ContactMessage
	if err := config.DB.First(&msg, c.Param("id")).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "message not found")
		return
	}
	c.JSON(http.StatusOK, msg)
}

// UpdateContactMessage only toggles the is_read flag; the visitor's
// content is immutable.
func UpdateContactMessage(c *gin.Context) {
	var payload struct {
		IsRead *bool `json:"is_read" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "is_read required")
		return
	}

	var msg models.ContactMessage
	if err := config.DB.First(&msg, c.Param("id")).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "message not found")
		return
	}
	if err := config.DB.Model(&msg).Update("is_read", *payload.IsRead).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "update failed")
		return
	}
	c.JSON(http.StatusOK, msg)
}

func DeleteContactMessage(c *gin.Context) {
	result := config.DB.Where("id = ?", c.Param("id")).Delete(&models.ContactMessage{})
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete message")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "message not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message deleted successfully"})
}
