package middleware

import (
	"net/http"
	"strings"

	"hotelsite-backend/config"
	"hotelsite-backend/models"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// authenticate validates the bearer access token, loads the user and
// stores it in the context. Aborts the request and returns nil on any
// failure; never calls c.Next.
func authenticate(c *gin.Context) *models.User {
	var token string

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}

	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
		return nil
	}

	userID, err := utils.ParseToken(token, utils.TokenTypeAccess)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return nil
	}

	var user models.User
	if err := config.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return nil
	}

	c.Set(currentUserKey, &user)
	return &user
}

// RequireAuth gates a route on a valid access token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c) == nil {
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by the auth gate, or nil on an
// unauthenticated route.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
