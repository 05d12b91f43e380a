package paymentControllers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	paymentControllers "github.com/Abhraroy/thejwel-sub001/controllers/payment"
	"github.com/Abhraroy/thejwel-sub001/models"
	"github.com/Abhraroy/thejwel-sub001/pkg/shipping"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

// seedPendingOrder writes a product with the given stock, a cart holding it,
// and a pending order for qty units of it.
func seedPendingOrder(t *testing.T, db *gorm.DB, stock, qty int) (models.Product, models.Order) {
	t.Helper()

	user := models.User{ID: "user-1", Email: "user@example.com", Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: stock, Image: "ring.jpg"}
	require.NoError(t, db.Create(&ring).Error)

	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:       cart.CartID,
		ProductID:    ring.ID,
		ProductName:  ring.Name,
		ProductPrice: ring.FinalPrice,
		Quantity:     qty,
	}).Error)

	order := models.Order{
		UserID:          user.ID,
		MerchantOrderID: "20250830120000-test-order",
		Items: []models.OrderItem{{
			ProductID:   ring.ID,
			ProductName: ring.Name,
			UnitPrice:   ring.FinalPrice,
			Quantity:    qty,
		}},
		Subtotal:      ring.FinalPrice * float64(qty),
		TotalAmount:   ring.FinalPrice*float64(qty) + 50,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)

	return ring, order
}

func TestFinalizeOrder_AppliesOnce(t *testing.T) {
	db := setupDB(t)
	ring, order := seedPendingOrder(t, db, 10, 2)

	finalized, applied, err := paymentControllers.FinalizeOrder(db, order.MerchantOrderID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.PaymentStatusCompleted, finalized.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, finalized.Status)

	var product models.Product
	require.NoError(t, db.First(&product, ring.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)

	// The paid-for cart was cleared
	var itemCount int64
	db.Model(&models.CartItem{}).Count(&itemCount)
	assert.EqualValues(t, 0, itemCount)
}

func TestFinalizeOrder_Idempotent(t *testing.T) {
	db := setupDB(t)
	ring, order := seedPendingOrder(t, db, 10, 2)

	_, applied, err := paymentControllers.FinalizeOrder(db, order.MerchantOrderID)
	require.NoError(t, err)
	require.True(t, applied)

	// Duplicate delivery: webhook landing after the client poll
	again, applied, err := paymentControllers.FinalizeOrder(db, order.MerchantOrderID)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.PaymentStatusCompleted, again.PaymentStatus)

	// Stock decremented exactly once
	var product models.Product
	require.NoError(t, db.First(&product, ring.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)
}

func TestFinalizeOrder_StockClampsAtZero(t *testing.T) {
	db := setupDB(t)
	ring, order := seedPendingOrder(t, db, 1, 3)

	_, applied, err := paymentControllers.FinalizeOrder(db, order.MerchantOrderID)
	require.NoError(t, err)
	assert.True(t, applied)

	var product models.Product
	require.NoError(t, db.First(&product, ring.ID).Error)
	assert.Equal(t, 0, product.StockQuantity)
}

func TestFinalizeOrder_NotFound(t *testing.T) {
	db := setupDB(t)

	_, _, err := paymentControllers.FinalizeOrder(db, "no-such-order")
	assert.ErrorIs(t, err, paymentControllers.ErrOrderNotFound)
}

func TestMarkOrderFailed_NeverDemotesCompleted(t *testing.T) {
	db := setupDB(t)
	_, order := seedPendingOrder(t, db, 10, 2)

	_, applied, err := paymentControllers.FinalizeOrder(db, order.MerchantOrderID)
	require.NoError(t, err)
	require.True(t, applied)

	// A stale FAILED notification must not undo the completion
	after, err := paymentControllers.MarkOrderFailed(db, order.MerchantOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, after.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, after.Status)
}

func TestMarkOrderFailed_Pending(t *testing.T) {
	db := setupDB(t)
	ring, order := seedPendingOrder(t, db, 10, 2)

	failed, err := paymentControllers.MarkOrderFailed(db, order.MerchantOrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, failed.PaymentStatus)
	assert.Equal(t, models.OrderStatusCancelled, failed.Status)

	// No stock was touched
	var product models.Product
	require.NoError(t, db.First(&product, ring.ID).Error)
	assert.Equal(t, 10, product.StockQuantity)
}

func TestWebhookHandler_CompletedThenDuplicate(t *testing.T) {
	db := setupDB(t)
	ring, order := seedPendingOrder(t, db, 10, 2)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment/webhook", paymentControllers.WebhookHandler(db, shipping.New("", ""), nil))

	payload := fmt.Sprintf(`{"merchantOrderId":%q,"state":"COMPLETED","amount":35000,"transactionId":"txn-1"}`, order.MerchantOrderID)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/payment/webhook", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Duplicate webhook did not decrement twice
	var product models.Product
	require.NoError(t, db.First(&product, ring.ID).Error)
	assert.Equal(t, 8, product.StockQuantity)
}

func TestWebhookHandler_UnknownOrder(t *testing.T) {
	db := setupDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment/webhook", paymentControllers.WebhookHandler(db, shipping.New("", ""), nil))

	req := httptest.NewRequest(http.MethodPost, "/payment/webhook",
		bytes.NewBufferString(`{"merchantOrderId":"no-such-order","state":"COMPLETED"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
