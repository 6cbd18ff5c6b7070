package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"hotelsite-backend/config"
	"hotelsite-backend/models"
	"hotelsite-backend/services"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController is the admin-only user console.
type UserController struct {
	Auth *services.AuthService
}

func NewUserController(svc *services.AuthService) *UserController {
	return &UserController{Auth: svc}
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Profile").Order("id ASC").Find(&users).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users")
		return
	}
	out := make([]services.UserSnapshot, 0, len(users))
	for i := range users {
		out = append(out, ctrl.Auth.Snapshot(&users[i], c.Request))
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *UserController) GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.Preload("Profile").First(&user, c.Param("id")).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, ctrl.Auth.Snapshot(&user, c.Request))
}

type adminCreateUserPayload struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password" binding:"required"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// CreateUser provisions a user from the admin console. The profile is
// created in the same step, exactly as on self-registration.
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var payload adminCreateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user, fieldErrs, err := ctrl.Auth.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Printf("❌ Admin user create failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	if payload.IsStaff || payload.IsSuperuser {
		flags := map[string]any{"is_staff": payload.IsStaff, "is_superuser": payload.IsSuperuser}
		if err := config.DB.Model(user).Updates(flags).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to set role flags")
			return
		}
	}

	c.JSON(http.StatusCreated, ctrl.Auth.Snapshot(user, c.Request))
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	fieldErrs := map[string]string{}
	updates := map[string]any{}
	if v, ok := payload["username"].(string); ok {
		v = strings.TrimSpace(v)
		var count int64
		config.DB.Model(&models.User{}).Where("username = ? AND id <> ?", v, user.ID).Count(&count)
		if count > 0 {
			fieldErrs["username"] = "Username already taken."
		} else if v != "" {
			updates["username"] = v
		}
	}
	if v, ok := payload["email"].(string); ok {
		v = strings.TrimSpace(v)
		var count int64
		config.DB.Model(&models.User{}).Where("email = ? AND id <> ?", v, user.ID).Count(&count)
		if count > 0 {
			fieldErrs["email"] = "Email already in use."
		} else if v != "" {
			updates["email"] = v
		}
	}
	for _, flag := range []string{"is_staff", "is_superuser"} {
		if v, ok := payload[flag].(bool); ok {
			updates[flag] = v
		}
	}
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
			return
		}
	}
	c.JSON(http.StatusOK, ctrl.Auth.Snapshot(&user, c.Request))
}

// DeleteUser removes the user together with its profile and bookings.
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load user")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		log.Printf("❌ User delete failed (ID: %d): %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User deleted successfully"})
}
