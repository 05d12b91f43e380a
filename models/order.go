package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting payment
	OrderStatusConfirmed   OrderStatus = "confirmed"     // Payment completed, confirmed for fulfilment
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // Customer returned the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses. pending -> completed | failed, both terminal.
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded" // Admin-driven, after completion
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"not null" json:"user_id"`
	User            User          `gorm:"foreignKey:UserID" json:"user"`
	MerchantOrderID string        `gorm:"uniqueIndex;not null" json:"merchant_order_id"` // Correlates with the payment gateway transaction
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        float64       `json:"subtotal"`
	ShippingCost    float64       `json:"shipping_cost"`
	TotalAmount     float64       `json:"total_amount"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod   string        `json:"payment_method"` // e.g. "gateway", "cod"
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a cart line at order creation time.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index" json:"order_id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductImage  string  `json:"product_image"`
	UnitBasePrice float64 `json:"unit_base_price"`
	UnitPrice     float64 `json:"unit_price"` // Price charged per unit, taken from the products table
	WeightGrams   float64 `json:"weight_grams"`
	Quantity      int     `json:"quantity"`
}
