package models

import "time"

// Review holds a customer product review. One review per user per product.
type Review struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"uniqueIndex:idx_product_user;index" json:"product_id"`
	UserID    string `gorm:"uniqueIndex:idx_product_user" json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
