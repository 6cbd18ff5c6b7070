package controllers

import (
	"net/http"

	"hotelsite-backend/config"
	"hotelsite-backend/models"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Public listing (GET /api/team)
// ----------------------------------------------------

func GetTeamMembers(c *gin.Context) {
	var members []models.TeamMember
	if err := config.DB.Order("display_order ASC, id ASC").Find(&members).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list team members")
		return
	}
	c.JSON(http.StatusOK, members)
}

// ----------------------------------------------------
// 2. Admin CRUD (/api/admin/team)
// ----------------------------------------------------

type teamMemberPayload struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	ImageURL string `json:"image_url"`
	Order    uint   `json:"order"`
}

func CreateTeamMember(c *gin.Context) {
	var payload teamMemberPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	member := models.TeamMember{
		Name:     payload.Name,
		Role:     payload.Role,
		ImageURL: payload.ImageURL,
		Order:    payload.Order,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create team member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func UpdateTeamMember(c *gin.Context) {
	id := c.Param("id")

	var member models.TeamMember
	if err := config.DB.First(&member, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "team member not found")
		return
	}

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	delete(updates, "id")
	if v, ok := updates["order"]; ok {
		updates["display_order"] = v
		delete(updates, "order")
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&member).Updates(updates).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
			return
		}
	}
	c.JSON(http.StatusOK, member)
}

func DeleteTeamMember(c *gin.Context) {
	id := c.Param("id")
	result := config.DB.Where("id = ?", id).Delete(&models.TeamMember{})
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete team member")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "team member not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Team member deleted successfully"})
}
