package paymentControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Abhraroy/thejwel-sub001/controllers/order"
	"github.com/Abhraroy/thejwel-sub001/models"
	"github.com/Abhraroy/thejwel-sub001/pkg/gateway"
	"github.com/Abhraroy/thejwel-sub001/pkg/rabbitmq"
	"github.com/Abhraroy/thejwel-sub001/pkg/shipping"
)

// StatusGateway is the polling slice of the payment gateway.
type StatusGateway interface {
	OrderStatus(ctx context.Context, merchantOrderID string) (string, error)
}

// PaymentStatusHandler handles GET /payment/status/:merchantOrderID — the
// redirect-confirmation path. The client polls this after returning from
// the hosted checkout page. Orders already in a terminal state answer from
// the database without touching the gateway.
func PaymentStatusHandler(db *gorm.DB, gw StatusGateway, ship *shipping.Client, events *rabbitmq.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantOrderID := c.Param("merchantOrderID")
		if merchantOrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "merchantOrderID is required"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Where("merchant_order_id = ?", merchantOrderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}

		// Terminal states never re-trigger side effects.
		if order.PaymentStatus != models.PaymentStatusPending {
			c.JSON(http.StatusOK, gin.H{
				"merchant_order_id": merchantOrderID,
				"payment_status":    order.PaymentStatus,
				"order":             order,
			})
			return
		}

		state, err := gw.OrderStatus(c.Request.Context(), merchantOrderID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		switch state {
		case gateway.StateCompleted:
			finalized, applied, err := FinalizeOrder(db, merchantOrderID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize order"})
				return
			}
			if applied {
				applyPostPaymentEffects(ship, events, finalized)
			}
			order = finalized

		case gateway.StateFailed:
			failed, err := MarkOrderFailed(db, merchantOrderID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
			publishOrderEvent(events, "order_failed", failed)
			order = failed
		}

		c.JSON(http.StatusOK, gin.H{
			"merchant_order_id": merchantOrderID,
			"payment_status":    order.PaymentStatus,
			"order":             order,
		})
	}
}

// WebhookRequest is the gateway's server-to-server notification body.
type WebhookRequest struct {
	MerchantOrderID string `json:"merchantOrderId" binding:"required"`
	State           string `json:"state" binding:"required"`
	Amount          int64  `json:"amount"`
	TransactionID   string `json:"transactionId"`
}

// WebhookHandler handles POST /payment/webhook. The signature was already
// verified by middleware. This is the authoritative completion path; it
// shares FinalizeOrder with the polling endpoint, so a webhook landing
// after (or racing with) a client poll applies nothing twice.
func WebhookHandler(db *gorm.DB, ship *shipping.Client, events *rabbitmq.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req WebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload: " + err.Error()})
			return
		}

		log.Printf("Received payment webhook: order=%s state=%s", req.MerchantOrderID, req.State)

		switch req.State {
		case gateway.StateCompleted:
			order, applied, err := FinalizeOrder(db, req.MerchantOrderID)
			if err != nil {
				if errors.Is(err, ErrOrderNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize order"})
				return
			}
			if applied {
				applyPostPaymentEffects(ship, events, order)
			}
			c.JSON(http.StatusOK, gin.H{"message": "Order completed"})

		case gateway.StateFailed:
			order, err := MarkOrderFailed(db, req.MerchantOrderID)
			if err != nil {
				if errors.Is(err, ErrOrderNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
				return
			}
			publishOrderEvent(events, "order_failed", order)
			c.JSON(http.StatusOK, gin.H{"message": "Payment not successful"})

		default:
			c.JSON(http.StatusOK, gin.H{"message": "Payment still pending"})
		}
	}
}

// applyPostPaymentEffects runs the after-commit side effects of a completed
// payment. The shipping call is fire-and-forget: payment already succeeded,
// so a shipping partner outage must not fail the request.
func applyPostPaymentEffects(ship *shipping.Client, events *rabbitmq.Client, order models.Order) {
	if ship.Configured() {
		go func(o models.Order) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := ship.CreateShipment(ctx, o); err != nil {
				log.Printf("⚠️ Shipping partner call failed for order %s: %v", o.MerchantOrderID, err)
			}
		}(order)
	}

	orderControllers.BroadcastOrder(order)
	publishOrderEvent(events, "order_completed", order)
}

func publishOrderEvent(events *rabbitmq.Client, eventType string, order models.Order) {
	if events == nil {
		return
	}
	err := events.PublishOrderEvent(rabbitmq.OrderEvent{
		Type:            eventType,
		OrderID:         order.ID,
		MerchantOrderID: order.MerchantOrderID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
	})
	if err != nil {
		log.Printf("⚠️ Failed to publish %s event for order %s: %v", eventType, order.MerchantOrderID, err)
	}
}
