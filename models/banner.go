package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a storefront hero image managed from the admin back-office.
type Banner struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string         `json:"title"`
	ImageURL  string         `json:"image_url" gorm:"not null"`
	LinkURL   string         `json:"link_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
