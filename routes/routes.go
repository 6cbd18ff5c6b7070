package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotelsite-backend/controllers"
	"hotelsite-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires every resource group through the authorization
// policy table.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	uc *controllers.UserController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/token/refresh", ac.Refresh)

			me := auth.Group("/me")
			{
				me.GET("", middleware.Require("me", "read"), ac.Me)
				me.PUT("", middleware.Require("me", "write"), ac.UpdateMe)
				me.PATCH("", middleware.Require("me", "write"), ac.UpdateMe)
			}
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", middleware.Require("rooms", "read"), rc.GetRooms)
			rooms.GET("/:id", middleware.Require("rooms", "read"), rc.GetRoom)
			rooms.POST("", middleware.Require("rooms", "write"), rc.CreateRoom)
			rooms.PUT("/:id", middleware.Require("rooms", "write"), rc.UpdateRoom)
			rooms.PATCH("/:id", middleware.Require("rooms", "write"), rc.UpdateRoom)
			rooms.DELETE("/:id", middleware.Require("rooms", "write"), rc.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", middleware.Require("bookings", "read"), bc.GetMyBookings)
			bookings.POST("", middleware.Require("bookings", "write"), bc.CreateBooking)
			bookings.GET("/:id", middleware.Require("bookings", "read"), bc.GetMyBooking)
			bookings.PUT("/:id", middleware.Require("bookings", "write"), bc.UpdateMyBooking)
			bookings.PATCH("/:id", middleware.Require("bookings", "write"), bc.UpdateMyBooking)
			bookings.DELETE("/:id", middleware.Require("bookings", "write"), bc.DeleteMyBooking)
		}

		api.GET("/team", middleware.Require("team", "read"), controllers.GetTeamMembers)
		api.GET("/gallery", middleware.Require("gallery", "read"), controllers.GetGalleryImages)
		api.POST("/contact", middleware.Require("contact", "write"), controllers.CreateContactMessage)

		admin := api.Group("/admin")
		{
			adminRooms := admin.Group("/rooms", middleware.Require("admin/rooms", "write"))
			{
				adminRooms.GET("", rc.GetRooms)
				adminRooms.GET("/:id", rc.GetRoom)
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PUT("/:id", rc.UpdateRoom)
				adminRooms.PATCH("/:id", rc.UpdateRoom)
				adminRooms.DELETE("/:id", rc.DeleteRoom)
			}

			adminBookings := admin.Group("/bookings", middleware.Require("admin/bookings", "write"))
			{
				adminBookings.GET("", bc.GetAllBookings)
				adminBookings.GET("/:id", bc.GetBookingAdmin)
				adminBookings.PUT("/:id", bc.UpdateBookingAdmin)
				adminBookings.PATCH("/:id", bc.UpdateBookingAdmin)
				adminBookings.DELETE("/:id", bc.DeleteBookingAdmin)
			}

			adminGallery := admin.Group("/gallery", middleware.Require("admin/gallery", "write"))
			{
				adminGallery.GET("", controllers.GetGalleryImagesAdmin)
				adminGallery.POST("", controllers.CreateGalleryImage)
				adminGallery.PUT("/:id", controllers.UpdateGalleryImage)
				adminGallery.PATCH("/:id", controllers.UpdateGalleryImage)
				adminGallery.DELETE("/:id", controllers.DeleteGalleryImage)
			}

			adminTeam := admin.Group("/team", middleware.Require("admin/team", "write"))
			{
				adminTeam.GET("", controllers.GetTeamMembers)
				adminTeam.POST("", controllers.CreateTeamMember)
				adminTeam.PUT("/:id", controllers.UpdateTeamMember)
				adminTeam.PATCH("/:id", controllers.UpdateTeamMember)
				adminTeam.DELETE("/:id", controllers.DeleteTeamMember)
			}

			adminUsers := admin.Group("/users", middleware.Require("admin/users", "write"))
			{
				adminUsers.GET("", uc.GetUsers)
				adminUsers.GET("/:id", uc.GetUser)
				adminUsers.POST("", uc.CreateUser)
				adminUsers.PUT("/:id", uc.UpdateUser)
				adminUsers.PATCH("/:id", uc.UpdateUser)
				adminUsers.DELETE("/:id", uc.DeleteUser)
			}

			adminMessages := admin.Group("/messages", middleware.Require("admin/messages", "write"))
			{
				adminMessages.GET("", controllers.GetContactMessages)
				adminMessages.GET("/:id", controllers.GetContactMessage)
				adminMessages.PUT("/:id", controllers.UpdateContactMessage)
				adminMessages.PATCH("/:id", controllers.UpdateContactMessage)
				adminMessages.DELETE("/:id", controllers.DeleteContactMessage)
			}
		}
	}

	return r
}
