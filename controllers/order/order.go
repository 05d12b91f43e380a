package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// CheckoutGateway is the slice of the payment gateway that order placement
// needs: registering a checkout and getting back the hosted payment URL.
type CheckoutGateway interface {
	CreateCheckout(ctx context.Context, merchantOrderID string, amountMinor int64, description string) (string, error)
}

// Orders below this subtotal pay a flat shipping fee.
const (
	freeShippingThreshold = 500.0
	flatShippingFee       = 50.0
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusReadyToShip):
		return models.OrderStatusReadyToShip, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusReturned):
		return models.OrderStatusReturned, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusCompleted):
		return models.PaymentStatusCompleted, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// generateMerchantOrderID returns the identifier that correlates our order
// row with the gateway transaction. Example: 20250908130500-<uuid4>
func generateMerchantOrderID() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrZeroTotal         = errors.New("order total must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// -------- Core Logic --------

// CreatePendingOrder snapshots the user's cart into a new pending order.
// Prices always come from the products table, never from the client, so a
// tampered cart snapshot cannot change what is charged. The cart itself is
// left intact; it is cleared only when payment completes.
func CreatePendingOrder(db *gorm.DB, userID, paymentMethod string) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product no longer available: %s", item.ProductName)
				}
				return err
			}

			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w for product: %s", ErrInsufficientStock, product.Name)
			}

			subtotal += product.FinalPrice * float64(item.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:     product.ID,
				ProductName:   product.Name,
				ProductImage:  product.Image,
				UnitBasePrice: product.BasePrice,
				UnitPrice:     product.FinalPrice,
				WeightGrams:   product.WeightGrams,
				Quantity:      item.Quantity,
			})
		}

		if subtotal <= 0 {
			return ErrZeroTotal
		}

		shippingCost := 0.0
		if subtotal < freeShippingThreshold {
			shippingCost = flatShippingFee
		}

		order = models.Order{
			UserID:          userID,
			MerchantOrderID: generateMerchantOrderID(),
			Items:           orderItems,
			Subtotal:        subtotal,
			ShippingCost:    shippingCost,
			TotalAmount:     subtotal + shippingCost,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			PaymentMethod:   paymentMethod,
			CreatedAt:       time.Now(),
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// -------- Handlers --------

// PlaceOrderHandler creates a pending order from the caller's cart and asks
// the gateway for a checkout URL. A gateway failure after the order row is
// committed returns 502 and leaves the order pending; the client can retry
// payment against the same merchant order id.
func PlaceOrderHandler(db *gorm.DB, gw CheckoutGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PaymentMethod == "" {
			req.PaymentMethod = "gateway"
		}

		order, err := CreatePendingOrder(db, userID, req.PaymentMethod)
		if err != nil {
			switch {
			case errors.Is(err, ErrCartEmpty), errors.Is(err, ErrZeroTotal), errors.Is(err, ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		amountMinor := int64(math.Round(order.TotalAmount * 100))
		description := fmt.Sprintf("thejwel order %s", order.MerchantOrderID)

		paymentURL, err := gw.CreateCheckout(c.Request.Context(), order.MerchantOrderID, amountMinor, description)
		if err != nil {
			// Order stays pending; no rollback
			c.JSON(http.StatusBadGateway, gin.H{
				"error":             err.Error(),
				"merchant_order_id": order.MerchantOrderID,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"merchant_order_id": order.MerchantOrderID,
			"payment_url":       paymentURL,
			"total_amount":      order.TotalAmount,
		})
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// Get single order by ID or merchant order id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Where("id = ? OR merchant_order_id = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// Update order status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update payment status (admin, e.g. marking a refund)
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// Delete order
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
