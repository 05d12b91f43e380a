package models

import "time"

// GuestCart represents a cart for guest users
type GuestCart struct {
	CartID    uint            `gorm:"primaryKey" json:"cart_id"`
	GuestID   string          `gorm:"uniqueIndex" json:"guest_id"` // Enforces ONE cart per guest
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GuestCartItem represents items in the guest cart
type GuestCartItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CartID           uint      `gorm:"index" json:"cart_id"`
	ProductID        uint      `json:"product_id"`
	ProductName      string    `json:"product_name"`
	ProductImage     string    `json:"product_image"`
	ProductStock     int       `json:"product_stock"`
	ProductBasePrice float64   `json:"product_base_price"`
	ProductPrice     float64   `json:"product_price"`
	WeightGrams      float64   `json:"weight_grams"`
	Quantity         int       `json:"quantity"`
	AddedAt          time.Time `json:"added_at"`
}
