// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotelsite-backend/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidDateRange = errors.New("check_out must be after check_in")
	ErrRoomNotFound     = errors.New("room does not exist")
)

// BookingService scopes reads and writes to the owning user, except for
// the admin collection which sees every row.
type BookingService struct {
	DB    *gorm.DB
	Auth  *AuthService
	Rooms *RoomService
}

func NewBookingService(db *gorm.DB, auth *AuthService, rooms *RoomService) *BookingService {
	return &BookingService{DB: db, Auth: auth, Rooms: rooms}
}

// BookingInput is what a caller may set when creating a booking. The
// owner and status are always forced server-side.
type BookingInput struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type BookingResponse struct {
	ID         uint         `json:"id"`
	User       UserSnapshot `json:"user"`
	Room       uint         `json:"room"`
	RoomDetail RoomResponse `json:"room_detail"`
	CheckIn    string       `json:"check_in"`
	CheckOut   string       `json:"check_out"`
	Guests     int          `json:"guests"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}

const bookingDateLayout = "2006-01-02"

func (s *BookingService) Serialize(booking *models.Booking, r *http.Request) BookingResponse {
	return BookingResponse{
		ID:         booking.ID,
		User:       s.Auth.Snapshot(&booking.User, r),
		Room:       booking.RoomID,
		RoomDetail: s.Rooms.Serialize(&booking.Room, r),
		CheckIn:    booking.CheckIn.Format(bookingDateLayout),
		CheckOut:   booking.CheckOut.Format(bookingDateLayout),
		Guests:     booking.Guests,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
}

func (s *BookingService) preloaded() *gorm.DB {
	return s.DB.
		Preload("User.Profile").
		Preload("Room.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(galleryOrder)
		}).
		Preload("Room")
}

// ListForUser returns only the caller's own bookings.
func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.preloaded().Where("user_id = ?", userID).Order("id ASC").Find(&bookings).Error
	return bookings, err
}

// GetForUser fetches one booking scoped to its owner. Another user's
// booking is indistinguishable from a missing one.
func (s *BookingService) GetForUser(id, userID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.preloaded().Where("id = ? AND user_id = ?", id, userID).First(&booking).Error
	return booking, err
}

// Create persists a booking owned by userID with status forced to
// pending, ignoring any client-supplied owner or status.
func (s *BookingService) Create(userID uint, input BookingInput) (models.Booking, error) {
	if !input.CheckOut.After(input.CheckIn) {
		return models.Booking{}, ErrInvalidDateRange
	}
	if err := s.roomExists(input.RoomID); err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		UserID:   userID,
		RoomID:   input.RoomID,
		CheckIn:  input.CheckIn,
		CheckOut: input.CheckOut,
		Guests:   input.Guests,
		Status:   models.BookingStatusPending,
	}
	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, err
	}
	return s.GetForUser(booking.ID, userID)
}

func (s *BookingService) roomExists(roomID uint) error {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("room lookup: %w", err)
	}
	return nil
}

// owner updates may touch the room, the dates and the guest count.
var ownerBookingColumns = map[string]bool{"room_id": true, "check_in": true, "check_out": true, "guests": true}

// checkUpdates validates the row the update would produce: the target
// room must exist and the resulting date range must stay ordered.
func (s *BookingService) checkUpdates(booking models.Booking, updates map[string]any) error {
	if v, ok := updates["room_id"].(uint); ok {
		if err := s.roomExists(v); err != nil {
			return err
		}
	}
	checkIn, checkOut := booking.CheckIn, booking.CheckOut
	if v, ok := updates["check_in"].(time.Time); ok {
		checkIn = v
	}
	if v, ok := updates["check_out"].(time.Time); ok {
		checkOut = v
	}
	if !checkOut.After(checkIn) {
		return ErrInvalidDateRange
	}
	return nil
}

// UpdateForUser applies a partial update to the caller's own booking.
// Status, owner and created_at never change on this path.
func (s *BookingService) UpdateForUser(id, userID uint, updates map[string]any) (models.Booking, error) {
	booking, err := s.GetForUser(id, userID)
	if err != nil {
		return booking, err
	}
	filtered := map[string]any{}
	for col, v := range updates {
		if ownerBookingColumns[col] {
			filtered[col] = v
		}
	}
	if len(filtered) > 0 {
		if err := s.checkUpdates(booking, filtered); err != nil {
			return booking, err
		}
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(filtered).Error; err != nil {
			return booking, err
		}
	}
	return s.GetForUser(id, userID)
}

func (s *BookingService) DeleteForUser(id, userID uint) error {
	result := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAll is the admin collection: every booking, every user.
func (s *BookingService) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.preloaded().Order("id ASC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) Get(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.preloaded().First(&booking, id).Error
	return booking, err
}

func validStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
		return true
	}
	return false
}

// AdminUpdate may additionally transition status.
func (s *BookingService) AdminUpdate(id uint, updates map[string]any) (models.Booking, error) {
	booking, err := s.Get(id)
	if err != nil {
		return booking, err
	}
	filtered := map[string]any{}
	for col, v := range updates {
		if ownerBookingColumns[col] {
			filtered[col] = v
		}
		if col == "status" {
			status, _ := v.(string)
			if !validStatus(status) {
				return booking, ErrInvalidStatus
			}
			filtered["status"] = status
		}
	}
	if len(filtered) > 0 {
		if err := s.checkUpdates(booking, filtered); err != nil {
			return booking, err
		}
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(filtered).Error; err != nil {
			return booking, err
		}
	}
	return s.Get(id)
}

func (s *BookingService) Delete(id uint) error {
	result := s.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
