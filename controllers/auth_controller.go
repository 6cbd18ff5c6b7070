package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"hotelsite-backend/config"
	"hotelsite-backend/middleware"
	"hotelsite-backend/models"
	"hotelsite-backend/services"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Username string `json:"username" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

type refreshPayload struct {
	Refresh string `json:"refresh" binding:"required"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Auth: svc}
}

// ----------------------------------------------------
// 1. Register (POST /api/auth/register)
// ----------------------------------------------------

// Register creates the user (and its profile) and immediately runs the
// login flow so the response already carries a session.
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user, fieldErrs, err := ctrl.Auth.Register(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Printf("❌ Register failed for %s: %v", payload.Username, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	session, err := ctrl.Auth.IssueSession(user, c.Request)
	if err != nil {
		log.Printf("❌ Token issuance failed for %s: %v", user.Username, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate tokens")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ----------------------------------------------------
// 2. Login (POST /api/auth/login)
// ----------------------------------------------------

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	session, err := ctrl.Auth.Login(payload.Username, payload.Password, c.Request)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// identical shape whether the identifier or the password was wrong
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Printf("❌ Login failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, session)
}

// ----------------------------------------------------
// 3. Refresh (POST /api/auth/token/refresh)
// ----------------------------------------------------

func (ctrl *AuthController) Refresh(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "refresh token required")
		return
	}

	userID, err := utils.ParseToken(payload.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}

	pair, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, pair)
}

// ----------------------------------------------------
// 4. Current user (GET|PUT|PATCH /api/auth/me)
// ----------------------------------------------------

func (ctrl *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, ctrl.Auth.Snapshot(user, c.Request))
}

// UpdateMe supports partial self-updates over JSON or multipart. An
// attached avatar file creates the profile when none exists yet.
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var username, email string
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		username = c.PostForm("username")
		email = c.PostForm("email")
	} else {
		var payload struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		}
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid payload")
			return
		}
		username = payload.Username
		email = payload.Email
	}

	fieldErrs := map[string]string{}
	updates := map[string]any{}
	if username = strings.TrimSpace(username); username != "" && username != user.Username {
		var count int64
		config.DB.Model(&models.User{}).Where("username = ? AND id <> ?", username, user.ID).Count(&count)
		if count > 0 {
			fieldErrs["username"] = "Username already taken."
		} else {
			updates["username"] = username
		}
	}
	if email = strings.TrimSpace(email); email != "" && email != user.Email {
		var count int64
		config.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count)
		if count > 0 {
			fieldErrs["email"] = "Email already in use."
		} else {
			updates["email"] = email
		}
	}
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	if len(updates) > 0 {
		if err := config.DB.Model(user).Updates(updates).Error; err != nil {
			log.Printf("❌ Profile update failed for user %d: %v", user.ID, err)
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
			return
		}
	}

	if avatar, err := c.FormFile("avatar"); err == nil && avatar != nil {
		profile, err := ctrl.Auth.GetOrCreateProfile(user.ID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "profile lookup failed")
			return
		}
		path, err := services.SaveUploadedFile(avatar, services.AvatarDir)
		if err != nil {
			log.Printf("warning: failed to store avatar for user %d: %v", user.ID, err)
		} else if err := config.DB.Model(profile).Update("avatar", path).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "avatar update failed")
			return
		}
	}

	var fresh models.User
	if err := config.DB.Preload("Profile").First(&fresh, user.ID).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "reload failed")
		return
	}
	c.JSON(http.StatusOK, ctrl.Auth.Snapshot(&fresh, c.Request))
}
