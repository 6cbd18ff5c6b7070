// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotelsite-backend/middleware"
	"hotelsite-backend/models"
	"hotelsite-backend/services"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createBookingPayload struct {
	Room     uint   `json:"room" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests" binding:"required,min=1"`
	// Owner and status fields sent by a client are ignored on purpose.
}

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Bookings: svc}
}

const bookingDateLayout = "2006-01-02"

func parseBookingDate(value string) (time.Time, error) {
	return time.Parse(bookingDateLayout, value)
}

func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return 0, false
	}
	return uint(id), true
}

func (ctrl *BookingController) serializeAll(c *gin.Context, bookings []models.Booking) []services.BookingResponse {
	out := make([]services.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ctrl.Bookings.Serialize(&bookings[i], c.Request))
	}
	return out
}

// ----------------------------------------------------
// Owner endpoints (/api/bookings)
// ----------------------------------------------------

func (ctrl *BookingController) GetMyBookings(c *gin.Context) {
	user := middleware.CurrentUser(c)
	bookings, err := ctrl.Bookings.ListForUser(user.ID)
	if err != nil {
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, ctrl.serializeAll(c, bookings))
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	checkIn, err := parseBookingDate(payload.CheckIn)
	if err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"check_in": "Date must be YYYY-MM-DD."})
		return
	}
	checkOut, err := parseBookingDate(payload.CheckOut)
	if err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"check_out": "Date must be YYYY-MM-DD."})
		return
	}

	booking, err := ctrl.Bookings.Create(user.ID, services.BookingInput{
		RoomID:   payload.Room,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   payload.Guests,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"check_out": "Must be after check_in."})
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"room": "Room does not exist."})
		default:
			log.Printf("❌ Booking create failed for user %d: %v", user.ID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, ctrl.Bookings.Serialize(&booking, c.Request))
}

func (ctrl *BookingController) GetMyBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.GetForUser(id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	c.JSON(http.StatusOK, ctrl.Bookings.Serialize(&booking, c.Request))
}

// bookingUpdates converts a JSON partial-update body into column updates,
// parsing date strings where needed.
func bookingUpdates(payload map[string]any) (map[string]any, map[string]string) {
	updates := map[string]any{}
	fieldErrs := map[string]string{}
	for key, v := range payload {
		switch key {
		case "room":
			if f, ok := v.(float64); ok && f >= 1 {
				updates["room_id"] = uint(f)
			} else {
				fieldErrs[key] = "Must be a room id."
			}
		case "check_in", "check_out":
			s, _ := v.(string)
			t, err := parseBookingDate(s)
			if err != nil {
				fieldErrs[key] = "Date must be YYYY-MM-DD."
				continue
			}
			updates[key] = t
		case "guests":
			if f, ok := v.(float64); ok && f >= 1 {
				updates[key] = int(f)
			} else {
				fieldErrs[key] = "Must be a positive number."
			}
		case "status":
			if s, ok := v.(string); ok {
				updates[key] = s
			}
		}
	}
	return updates, fieldErrs
}

func (ctrl *BookingController) UpdateMyBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	updates, fieldErrs := bookingUpdates(payload)
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	booking, err := ctrl.Bookings.UpdateForUser(id, user.ID, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"check_out": "Must be after check_in."})
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"room": "Room does not exist."})
		default:
			log.Printf("❌ Booking update failed (ID: %d): %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
		}
		return
	}
	c.JSON(http.StatusOK, ctrl.Bookings.Serialize(&booking, c.Request))
}

func (ctrl *BookingController) DeleteMyBooking(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := ctrl.Bookings.DeleteForUser(id, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking deleted successfully"})
}

// ----------------------------------------------------
// Admin collection (/api/admin/bookings)
// ----------------------------------------------------

func (ctrl *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := ctrl.Bookings.ListAll()
	if err != nil {
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, ctrl.serializeAll(c, bookings))
}

func (ctrl *BookingController) GetBookingAdmin(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, err := ctrl.Bookings.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	c.JSON(http.StatusOK, ctrl.Bookings.Serialize(&booking, c.Request))
}

func (ctrl *BookingController) UpdateBookingAdmin(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	updates, fieldErrs := bookingUpdates(payload)
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrs)
		return
	}

	booking, err := ctrl.Bookings.AdminUpdate(id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found")
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"status": "Must be pending, confirmed or cancelled."})
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"check_out": "Must be after check_in."})
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"room": "Room does not exist."})
		default:
			log.Printf("❌ Admin booking update failed (ID: %d): %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
		}
		return
	}
	c.JSON(http.StatusOK, ctrl.Bookings.Serialize(&booking, c.Request))
}

func (ctrl *BookingController) DeleteBookingAdmin(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := ctrl.Bookings.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking deleted successfully"})
}
