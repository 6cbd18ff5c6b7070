package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room type choices.
const (
	RoomTypeSingle      = "single"
	RoomTypeDouble      = "double"
	RoomTypeSuite       = "suite"
	RoomTypeFamilySuite = "family_suite"
)

type Room struct {
	gorm.Model

	Number   string `gorm:"column:number;uniqueIndex;size:10" json:"number"`
	RoomType string `gorm:"column:room_type;size:20" json:"room_type"`

	PricePerNight float64 `gorm:"column:price_per_night;type:decimal(8,2)" json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	IsAvailable   bool    `gorm:"column:is_available;default:true" json:"is_available"`

	Description        string         `gorm:"type:text" json:"description"`
	BedPreference      string         `gorm:"column:bed_preference;size:50;default:'Queen Size'" json:"bed_preference"`
	Amenities          datatypes.JSON `gorm:"column:amenities" json:"amenities"`
	Size               string         `gorm:"size:50;default:'28 sqm'" json:"size"`
	Floor              *int           `json:"floor"`
	View               string         `gorm:"size:100;default:'City View'" json:"view"`
	CheckIn            string         `gorm:"column:check_in;size:50;default:'2:00 PM'" json:"check_in"`
	CheckOut           string         `gorm:"column:check_out;size:50;default:'11:00 AM'" json:"check_out"`
	Rating             float64        `gorm:"type:decimal(3,1);default:4.5" json:"rating"`
	ReviewsCount       int            `gorm:"column:reviews_count;default:0" json:"reviews_count"`
	CancellationPolicy string         `gorm:"column:cancellation_policy;type:text" json:"cancellation_policy"`
	RoomService        string         `gorm:"column:room_service;size:100;default:'Available 24/7'" json:"room_service"`
	BreakfastIncluded  bool           `gorm:"column:breakfast_included;default:true" json:"breakfast_included"`
	PetsAllowed        bool           `gorm:"column:pets_allowed;default:false" json:"pets_allowed"`
	SmokingPolicy      string         `gorm:"column:smoking_policy;size:100;default:'Non-smoking'" json:"smoking_policy"`
	Parking            string         `gorm:"size:100;default:'On-site parking'" json:"parking"`
	Accessible         bool           `gorm:"default:true" json:"accessible"`
	SpecialFeatures    datatypes.JSON `gorm:"column:special_features" json:"special_features"`

	// Storage path under rooms/; resolved to a URL at read time, never
	// serialized raw.
	CoverImage string `gorm:"column:cover_image;size:255" json:"-"`

	Images []RoomImage `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

// RoomImage is one gallery photo of a room. Display order is newest-first.
type RoomImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"index;column:room_id" json:"room_id"`
	Image     string    `gorm:"size:255" json:"image"`
	CreatedAt time.Time `json:"created_at"`
}
