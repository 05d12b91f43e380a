package orderControllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	orderControllers "github.com/Abhraroy/thejwel-sub001/controllers/order"
	"github.com/Abhraroy/thejwel-sub001/models"
)

// MockCheckoutGateway is a mock implementation of orderControllers.CheckoutGateway
type MockCheckoutGateway struct {
	mock.Mock
}

func (m *MockCheckoutGateway) CreateCheckout(ctx context.Context, merchantOrderID string, amountMinor int64, description string) (string, error) {
	args := m.Called(ctx, merchantOrderID, amountMinor, description)
	return args.String(0), args.Error(1)
}

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
		&models.Order{},
		&models.OrderItem{},
	))

	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID string, products ...models.Product) models.Cart {
	t.Helper()

	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)

	for _, p := range products {
		require.NoError(t, db.Create(&models.CartItem{
			CartID:       cart.CartID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductPrice: p.FinalPrice,
			Quantity:     2,
		}).Error)
	}

	return cart
}

func placeOrder(t *testing.T, db *gorm.DB, gw orderControllers.CheckoutGateway, userID string) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/place", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, orderControllers.PlaceOrderHandler(db, gw))

	req := httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := setupDB(t)
	gw := new(MockCheckoutGateway)

	w := placeOrder(t, db, gw, "user-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No order row was written
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 0, count)

	gw.AssertNotCalled(t, "CreateCheckout")
}

func TestPlaceOrder_Success(t *testing.T) {
	db := setupDB(t)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: 10, Image: "ring.jpg"}
	require.NoError(t, db.Create(&ring).Error)

	// Cart snapshot lies about the price; the order must not believe it.
	cart := seedCart(t, db, "user-1", ring)
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("cart_id = ?", cart.CartID).
		Update("product_price", 1.0).Error)

	gw := new(MockCheckoutGateway)
	// 2 x 150 = 300 subtotal, below 500 so flat shipping applies: 350.00 -> 35000 minor units
	gw.On("CreateCheckout", mock.Anything, mock.AnythingOfType("string"), int64(35000), mock.AnythingOfType("string")).
		Return("https://pay.example.com/checkout/abc", nil).Once()

	w := placeOrder(t, db, gw, "user-1")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		MerchantOrderID string  `json:"merchant_order_id"`
		PaymentURL      string  `json:"payment_url"`
		TotalAmount     float64 `json:"total_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.MerchantOrderID)
	assert.Equal(t, "https://pay.example.com/checkout/abc", resp.PaymentURL)
	assert.Equal(t, 350.0, resp.TotalAmount)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("merchant_order_id = ?", resp.MerchantOrderID).First(&order).Error)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 300.0, order.Subtotal)
	assert.Equal(t, 50.0, order.ShippingCost)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 150.0, order.Items[0].UnitPrice) // from the products table, not the cart
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Stock is untouched until payment completes
	var product models.Product
	require.NoError(t, db.First(&product, ring.ID).Error)
	assert.Equal(t, 10, product.StockQuantity)

	// Cart survives order placement
	var itemCount int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&itemCount)
	assert.EqualValues(t, 1, itemCount)

	gw.AssertExpectations(t)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	db := setupDB(t)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: 1, Image: "ring.jpg"}
	require.NoError(t, db.Create(&ring).Error)

	seedCart(t, db, "user-1", ring) // asks for 2, only 1 in stock

	gw := new(MockCheckoutGateway)

	w := placeOrder(t, db, gw, "user-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPlaceOrder_GatewayFailureKeepsOrderPending(t *testing.T) {
	db := setupDB(t)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: 10, Image: "ring.jpg"}
	require.NoError(t, db.Create(&ring).Error)

	seedCart(t, db, "user-1", ring)

	gw := new(MockCheckoutGateway)
	gw.On("CreateCheckout", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("gateway timeout")).Once()

	w := placeOrder(t, db, gw, "user-1")

	assert.Equal(t, http.StatusBadGateway, w.Code)

	// The pending order row survives so payment can be retried
	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	var resp struct {
		MerchantOrderID string `json:"merchant_order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, order.MerchantOrderID, resp.MerchantOrderID)
}
