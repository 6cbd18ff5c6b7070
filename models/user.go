package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:150" json:"username"`
	Email        string `gorm:"uniqueIndex;size:254" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool   `gorm:"default:false" json:"is_superuser"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Profile  *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Bookings []Booking `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Profile belongs to exactly one user and is created together with it,
// never on its own. Avatar holds a storage path under avatars/.
type Profile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex;column:user_id" json:"user_id"`
	Avatar string `gorm:"size:255" json:"avatar,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
