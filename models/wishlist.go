package models

import "time"

// Wishlist is created lazily on the first authenticated wishlist action.
type Wishlist struct {
	WishlistID uint           `gorm:"primaryKey" json:"wishlist_id"`
	UserID     string         `gorm:"uniqueIndex" json:"user_id"` // ONE wishlist per user
	Items      []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WishlistItem holds a saved product. The composite unique index keeps a
// product from appearing twice in the same wishlist.
type WishlistItem struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	WishlistID   uint `gorm:"uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID    uint `gorm:"uniqueIndex:idx_wishlist_product" json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	ProductPrice float64 `json:"product_price"`
	AddedAt      time.Time `json:"added_at"`
}
