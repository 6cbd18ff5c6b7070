package models

import "time"

// TeamMember backs the public About Us listing, sorted by Order then ID.
type TeamMember struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100" json:"name"`
	Role     string `gorm:"size:100" json:"role"`
	ImageURL string `gorm:"column:image_url;size:255" json:"image_url"`
	Order    uint   `gorm:"column:display_order;default:0" json:"order"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
