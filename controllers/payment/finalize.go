package paymentControllers

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Abhraroy/thejwel-sub001/models"
)

var ErrOrderNotFound = errors.New("order not found")

// FinalizeOrder applies the side effects of a completed payment exactly
// once. The transaction locks the order row and re-checks payment_status,
// so concurrent webhook and poll deliveries race on the row lock and only
// the first one applies anything; the loser sees `completed` and returns
// applied=false. Stock is decremented in a single UPDATE that clamps at
// zero, and the user's cart is cleared in the same transaction.
func FinalizeOrder(db *gorm.DB, merchantOrderID string) (models.Order, bool, error) {
	var order models.Order
	applied := false

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			Preload("User").
			Where("merchant_order_id = ?", merchantOrderID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		// Idempotency guard: only a pending order transitions.
		if order.PaymentStatus != models.PaymentStatusPending {
			return nil
		}

		if err := tx.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusCompleted,
			"status":         models.OrderStatusConfirmed,
		}).Error; err != nil {
			return err
		}
		order.PaymentStatus = models.PaymentStatusCompleted
		order.Status = models.OrderStatusConfirmed

		// Decrement stock, clamped so inventory never goes negative.
		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr(
					"CASE WHEN stock_quantity >= ? THEN stock_quantity - ? ELSE 0 END",
					item.Quantity, item.Quantity,
				)).Error; err != nil {
				return err
			}
		}

		// The paid-for cart is spent.
		var cart models.Cart
		if err := tx.Where("user_id = ?", order.UserID).First(&cart).Error; err == nil {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		applied = true
		return nil
	})
	if err != nil {
		return order, false, err
	}

	return order, applied, nil
}

// MarkOrderFailed moves a pending order to the terminal failed state.
// Completed orders are never demoted.
func MarkOrderFailed(db *gorm.DB, merchantOrderID string) (models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("merchant_order_id = ?", merchantOrderID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.PaymentStatus != models.PaymentStatusPending {
			return nil
		}

		if err := tx.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusFailed,
			"status":         models.OrderStatusCancelled,
		}).Error; err != nil {
			return err
		}
		order.PaymentStatus = models.PaymentStatusFailed
		order.Status = models.OrderStatusCancelled
		return nil
	})

	return order, err
}
