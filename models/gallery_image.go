package models

import "time"

// GalleryImage is a marketing photo. Listing order is featured-first,
// then newest-first.
type GalleryImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:150" json:"title"`
	Image      string    `gorm:"size:255" json:"-"`
	IsFeatured bool      `gorm:"column:is_featured;default:false" json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}
