package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;column:user_id" json:"-"`
	RoomID uint `gorm:"index;column:room_id" json:"room"`

	CheckIn  time.Time `gorm:"column:check_in" json:"-"`
	CheckOut time.Time `gorm:"column:check_out" json:"-"`
	Guests   int       `json:"guests"`
	Status   string    `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Room Room `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}
