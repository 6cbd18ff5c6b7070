package controllers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hotelsite-backend/models"
	"hotelsite-backend/services"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Rooms: svc}
}

// roomPayload is accepted both as a JSON body and as a multipart form.
// Amenities and SpecialFeatures stay untyped: a JSON body delivers a
// native list, a multipart form delivers a JSON-encoded string, and the
// normalizer reconciles both.
type roomPayload struct {
	Number        string  `json:"number" form:"number" binding:"required"`
	RoomType      string  `json:"room_type" form:"room_type" binding:"required"`
	PricePerNight float64 `json:"price_per_night" form:"price_per_night"`
	Capacity      int     `json:"capacity" form:"capacity"`

	Description        string   `json:"description" form:"description"`
	BedPreference      string   `json:"bed_preference" form:"bed_preference"`
	Size               string   `json:"size" form:"size"`
	Floor              *int     `json:"floor" form:"floor"`
	View               string   `json:"view" form:"view"`
	CheckIn            string   `json:"check_in" form:"check_in"`
	CheckOut           string   `json:"check_out" form:"check_out"`
	Rating             *float64 `json:"rating" form:"rating"`
	ReviewsCount       int      `json:"reviews_count" form:"reviews_count"`
	CancellationPolicy string   `json:"cancellation_policy" form:"cancellation_policy"`
	RoomService        string   `json:"room_service" form:"room_service"`
	SmokingPolicy      string   `json:"smoking_policy" form:"smoking_policy"`
	Parking            string   `json:"parking" form:"parking"`

	IsAvailable       *bool `json:"is_available" form:"is_available"`
	BreakfastIncluded *bool `json:"breakfast_included" form:"breakfast_included"`
	PetsAllowed       *bool `json:"pets_allowed" form:"pets_allowed"`
	Accessible        *bool `json:"accessible" form:"accessible"`

	Amenities       any `json:"amenities" form:"-"`
	SpecialFeatures any `json:"special_features" form:"-"`
}

func validRoomType(roomType string) bool {
	switch roomType {
	case models.RoomTypeSingle, models.RoomTypeDouble, models.RoomTypeSuite, models.RoomTypeFamilySuite:
		return true
	}
	return false
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// roomFiles pulls the optional cover and gallery attachments from a
// multipart submission. Both are nil/empty on JSON bodies.
func roomFiles(c *gin.Context) (*multipart.FileHeader, []*multipart.FileHeader) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var cover *multipart.FileHeader
	if files := form.File["cover_image"]; len(files) > 0 {
		cover = files[0]
	}
	return cover, form.File["gallery_images"]
}

// ----------------------------------------------------
// 1. List rooms (GET /api/rooms, GET /api/admin/rooms)
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.GetAll()
	if err != nil {
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	out := make([]services.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, ctrl.Rooms.Serialize(&rooms[i], c.Request))
	}
	c.JSON(http.StatusOK, out)
}

// ----------------------------------------------------
// 2. Get one room (GET /api/rooms/:id)
// ----------------------------------------------------

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	room, err := ctrl.Rooms.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}
	c.JSON(http.StatusOK, ctrl.Rooms.Serialize(&room, c.Request))
}

// ----------------------------------------------------
// 3. Create room (POST /api/rooms, POST /api/admin/rooms)
// ----------------------------------------------------

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBind(&payload); err != nil {
		log.Printf("❌ BINDING ERROR (400): %v", err)
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if isMultipart(c) {
		payload.Amenities = c.PostForm("amenities")
		payload.SpecialFeatures = c.PostForm("special_features")
	}

	payload.Number = strings.TrimSpace(payload.Number)
	if payload.Number == "" {
		utils.JSONError(c, http.StatusBadRequest, "room number is required")
		return
	}
	if !validRoomType(payload.RoomType) {
		utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
			"room_type": fmt.Sprintf("%q is not a valid choice.", payload.RoomType),
		})
		return
	}

	room := models.Room{
		Number:             payload.Number,
		RoomType:           payload.RoomType,
		PricePerNight:      payload.PricePerNight,
		Capacity:           payload.Capacity,
		IsAvailable:        true,
		Description:        payload.Description,
		BedPreference:      payload.BedPreference,
		Size:               payload.Size,
		Floor:              payload.Floor,
		View:               payload.View,
		CheckIn:            payload.CheckIn,
		CheckOut:           payload.CheckOut,
		ReviewsCount:       payload.ReviewsCount,
		CancellationPolicy: payload.CancellationPolicy,
		RoomService:        payload.RoomService,
		SmokingPolicy:      payload.SmokingPolicy,
		Parking:            payload.Parking,
		BreakfastIncluded:  true,
		Accessible:         true,
	}
	if payload.IsAvailable != nil {
		room.IsAvailable = *payload.IsAvailable
	}
	if payload.BreakfastIncluded != nil {
		room.BreakfastIncluded = *payload.BreakfastIncluded
	}
	if payload.Accessible != nil {
		room.Accessible = *payload.Accessible
	}
	if payload.PetsAllowed != nil {
		room.PetsAllowed = *payload.PetsAllowed
	}
	if payload.Rating != nil {
		room.Rating = *payload.Rating
	}

	cover, gallery := roomFiles(c)
	if err := ctrl.Rooms.Create(&room, payload.Amenities, payload.SpecialFeatures, cover, gallery); err != nil {
		if errors.Is(err, services.ErrDuplicateRoomNumber) {
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
				"number": fmt.Sprintf("Room number %q already exists.", room.Number),
			})
			return
		}
		log.Printf("❌ DB ERROR: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}

	created, err := ctrl.Rooms.GetByID(room.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to reload room")
		return
	}
	c.JSON(http.StatusCreated, ctrl.Rooms.Serialize(&created, c.Request))
}

// ----------------------------------------------------
// 4. Update room (PUT|PATCH /api/rooms/:id)
// ----------------------------------------------------

// roomFormUpdates coerces multipart form values to the column types a
// partial update needs; only submitted keys appear.
func roomFormUpdates(form url.Values) map[string]any {
	updates := map[string]any{}
	for key, vals := range form {
		if len(vals) == 0 {
			continue
		}
		v := vals[0]
		switch key {
		case "price_per_night", "rating":
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				updates[key] = f
			}
		case "capacity", "reviews_count", "floor":
			if n, err := strconv.Atoi(v); err == nil {
				updates[key] = n
			}
		case "is_available", "breakfast_included", "pets_allowed", "accessible":
			if b, err := strconv.ParseBool(v); err == nil {
				updates[key] = b
			}
		case "number", "room_type", "description", "bed_preference", "size", "view",
			"check_in", "check_out", "cancellation_policy", "room_service",
			"smoking_policy", "parking", "amenities", "special_features":
			updates[key] = v
		}
	}
	return updates
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	var updates map[string]any
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid multipart payload")
			return
		}
		updates = roomFormUpdates(url.Values(form.Value))
	} else {
		if err := c.ShouldBindJSON(&updates); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
			return
		}
	}

	if v, ok := updates["room_type"]; ok {
		roomType, _ := v.(string)
		if !validRoomType(roomType) {
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
				"room_type": fmt.Sprintf("%q is not a valid choice.", roomType),
			})
			return
		}
	}

	cover, gallery := roomFiles(c)
	room, err := ctrl.Rooms.Update(uint(id), updates, cover, gallery)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrDuplicateRoomNumber):
			utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{
				"number": "Room number already exists.",
			})
		default:
			log.Printf("❌ Update Error for Room %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
		}
		return
	}

	c.JSON(http.StatusOK, ctrl.Rooms.Serialize(&room, c.Request))
}

// ----------------------------------------------------
// 5. Delete room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	if err := ctrl.Rooms.Delete(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("room with id %d not found", id))
			return
		}
		log.Printf("❌ DB Error during deletion (ID: %d): %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Room deleted successfully"})
}
