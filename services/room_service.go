// services/room_service.go
package services

import (
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"hotelsite-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrDuplicateRoomNumber = errors.New("room number already exists")

// RoomService wraps *gorm.DB with the room read/write rules: list-field
// normalization, the image/gallery resolver and the transactional write
// path for a room plus its attached gallery files.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// galleryOrder is the display order of room gallery images.
const galleryOrder = "created_at DESC, id ASC"

// NormalizeListField reconciles list-typed attributes that may arrive as a
// native list (JSON body) or a single string (multipart form). Policy:
// list passthrough, then JSON-array parse, then whole-string fallback
// (empty string means empty list). Anything else yields an empty list.
func NormalizeListField(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var parsed []string
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			return parsed
		}
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{}
	}
}

func listToJSON(values []string) datatypes.JSON {
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func jsonToList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

// RoomResponse is the read payload for a room. Image and Gallery are
// derived on every read, never stored.
type RoomResponse struct {
	ID                 uint     `json:"id"`
	Number             string   `json:"number"`
	RoomType           string   `json:"room_type"`
	PricePerNight      float64  `json:"price_per_night"`
	Capacity           int      `json:"capacity"`
	IsAvailable        bool     `json:"is_available"`
	Description        string   `json:"description"`
	BedPreference      string   `json:"bed_preference"`
	Amenities          []string `json:"amenities"`
	Size               string   `json:"size"`
	Floor              *int     `json:"floor"`
	View               string   `json:"view"`
	CheckIn            string   `json:"check_in"`
	CheckOut           string   `json:"check_out"`
	Rating             float64  `json:"rating"`
	ReviewsCount       int      `json:"reviews_count"`
	CancellationPolicy string   `json:"cancellation_policy"`
	RoomService        string   `json:"room_service"`
	BreakfastIncluded  bool     `json:"breakfast_included"`
	PetsAllowed        bool     `json:"pets_allowed"`
	SmokingPolicy      string   `json:"smoking_policy"`
	Parking            string   `json:"parking"`
	Accessible         bool     `json:"accessible"`
	SpecialFeatures    []string `json:"special_features"`
	Image              string   `json:"image"`
	Gallery            []string `json:"gallery"`
}

// ResolveImage returns the room's primary display image URL: the cover
// image when set, otherwise the first gallery image in display order,
// otherwise the empty string. Images must be preloaded in display order.
func ResolveImage(room *models.Room, r *http.Request) string {
	if room.CoverImage != "" {
		return AbsoluteURL(r, room.CoverImage)
	}
	if len(room.Images) > 0 {
		return AbsoluteURL(r, room.Images[0].Image)
	}
	return ""
}

// ResolveGallery returns the cover image URL first (when present) followed
// by every gallery image URL in display order. May be empty.
func ResolveGallery(room *models.Room, r *http.Request) []string {
	urls := make([]string, 0, len(room.Images)+1)
	if room.CoverImage != "" {
		urls = append(urls, AbsoluteURL(r, room.CoverImage))
	}
	for _, img := range room.Images {
		urls = append(urls, AbsoluteURL(r, img.Image))
	}
	return urls
}

// Serialize builds the read payload for one room.
func (s *RoomService) Serialize(room *models.Room, r *http.Request) RoomResponse {
	return RoomResponse{
		ID:                 room.ID,
		Number:             room.Number,
		RoomType:           room.RoomType,
		PricePerNight:      room.PricePerNight,
		Capacity:           room.Capacity,
		IsAvailable:        room.IsAvailable,
		Description:        room.Description,
		BedPreference:      room.BedPreference,
		Amenities:          jsonToList(room.Amenities),
		Size:               room.Size,
		Floor:              room.Floor,
		View:               room.View,
		CheckIn:            room.CheckIn,
		CheckOut:           room.CheckOut,
		Rating:             room.Rating,
		ReviewsCount:       room.ReviewsCount,
		CancellationPolicy: room.CancellationPolicy,
		RoomService:        room.RoomService,
		BreakfastIncluded:  room.BreakfastIncluded,
		PetsAllowed:        room.PetsAllowed,
		SmokingPolicy:      room.SmokingPolicy,
		Parking:            room.Parking,
		Accessible:         room.Accessible,
		SpecialFeatures:    jsonToList(room.SpecialFeatures),
		Image:              ResolveImage(room, r),
		Gallery:            ResolveGallery(room, r),
	}
}

func (s *RoomService) preloaded() *gorm.DB {
	return s.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order(galleryOrder)
	})
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.preloaded().Order("id ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	err := s.preloaded().First(&room, id).Error
	return room, err
}

// Create persists the room and one RoomImage row per attached gallery
// file inside a single transaction, so a partial failure cannot leave an
// image row pointing at a nonexistent room. Copying a single file is
// best-effort: a failed copy is logged and skipped, the room itself and
// the remaining images still persist.
func (s *RoomService) Create(room *models.Room, amenities, specialFeatures any, cover *multipart.FileHeader, gallery []*multipart.FileHeader) error {
	room.Amenities = listToJSON(NormalizeListField(amenities))
	room.SpecialFeatures = listToJSON(NormalizeListField(specialFeatures))

	if cover != nil {
		path, err := SaveUploadedFile(cover, RoomCoverDir)
		if err != nil {
			log.Printf("warning: failed to store cover image for room %s: %v", room.Number, err)
		} else {
			room.CoverImage = path
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for _, file := range gallery {
			path, err := SaveUploadedFile(file, RoomGalleryDir)
			if err != nil {
				log.Printf("warning: failed to store gallery image for room %s: %v", room.Number, err)
				continue
			}
			if err := tx.Create(&models.RoomImage{RoomID: room.ID, Image: path}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if isDuplicateErr(err) {
		return ErrDuplicateRoomNumber
	}
	return err
}

// updatableRoomColumns is the set of columns a partial update may touch.
// Anything else in the payload is dropped, so unknown or read-only keys
// (id, image, gallery, a client typo) never reach the database.
var updatableRoomColumns = map[string]bool{
	"number": true, "room_type": true, "price_per_night": true, "capacity": true,
	"is_available": true, "description": true, "bed_preference": true,
	"amenities": true, "size": true, "floor": true, "view": true,
	"check_in": true, "check_out": true, "rating": true, "reviews_count": true,
	"cancellation_policy": true, "room_service": true, "breakfast_included": true,
	"pets_allowed": true, "smoking_policy": true, "parking": true,
	"accessible": true, "special_features": true,
}

// Update applies a partial update: only columns present in updates change,
// list fields are normalized when present and left untouched when absent.
// Newly attached gallery files are appended; existing gallery rows are
// never replaced or removed here.
func (s *RoomService) Update(id uint, updates map[string]any, cover *multipart.FileHeader, gallery []*multipart.FileHeader) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return room, err
	}

	for col := range updates {
		if !updatableRoomColumns[col] {
			delete(updates, col)
		}
	}
	if v, ok := updates["amenities"]; ok {
		updates["amenities"] = listToJSON(NormalizeListField(v))
	}
	if v, ok := updates["special_features"]; ok {
		updates["special_features"] = listToJSON(NormalizeListField(v))
	}

	if cover != nil {
		path, err := SaveUploadedFile(cover, RoomCoverDir)
		if err != nil {
			log.Printf("warning: failed to store cover image for room %d: %v", id, err)
		} else {
			updates["cover_image"] = path
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		for _, file := range gallery {
			path, err := SaveUploadedFile(file, RoomGalleryDir)
			if err != nil {
				log.Printf("warning: failed to store gallery image for room %d: %v", id, err)
				continue
			}
			if err := tx.Create(&models.RoomImage{RoomID: id, Image: path}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if isDuplicateErr(err) {
		return room, ErrDuplicateRoomNumber
	}
	if err != nil {
		return room, err
	}
	return s.GetByID(id)
}

func (s *RoomService) Delete(id uint) error {
	result := s.DB.Select("Images").Delete(&models.Room{Model: gorm.Model{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
