package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"`                                 // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Cascade delete items if cart is deleted
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CartID           uint      `gorm:"index" json:"cart_id"` // Faster queries
	ProductID        uint      `json:"product_id"`
	ProductName      string    `json:"product_name"`
	ProductImage     string    `json:"product_image"`
	ProductStock     int       `json:"product_stock"`
	ProductBasePrice float64   `json:"product_base_price"`
	ProductPrice     float64   `json:"product_price"` // Final price snapshotted at add time
	WeightGrams      float64   `json:"weight_grams"`
	Quantity         int       `json:"quantity"`
	AddedAt          time.Time `json:"added_at"`
}
