package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `json:"description"`
	SKU           string  `gorm:"uniqueIndex" json:"sku"`
	Material      string  `json:"material"` // e.g. "gold_18k", "sterling_silver"
	Gemstone      string  `json:"gemstone"` // e.g. "diamond", "ruby", empty for plain pieces
	BasePrice     float64 `json:"base_price"`
	FinalPrice    float64 `gorm:"not null" json:"final_price"` // Price actually charged
	WeightGrams   float64 `json:"weight_grams"`
	Image         string  `gorm:"not null" json:"image"`
	Categories    []Category `gorm:"many2many:product_categories;" json:"categories"`
	StockQuantity int        `json:"stock_quantity"`
	Featured      bool       `json:"featured"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiscountPercent returns the rounded discount relative to the base price.
// base_price=100, final_price=80 -> 20.
func (p *Product) DiscountPercent() int {
	if p.BasePrice <= 0 || p.FinalPrice >= p.BasePrice {
		return 0
	}
	return int(math.Round((p.BasePrice - p.FinalPrice) / p.BasePrice * 100))
}
