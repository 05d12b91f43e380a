package cartControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartControllers "github.com/Abhraroy/thejwel-sub001/controllers/cart"
	"github.com/Abhraroy/thejwel-sub001/models"
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
	))

	return db
}

func setupRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/cart/merge", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, cartControllers.MergeLocalCart(db))
	return r
}

func mergeRequest(t *testing.T, r *gin.Engine, body cartControllers.MergeCartRequest) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/user/cart/merge", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMergeLocalCart_FreshCart(t *testing.T) {
	db := setupDB(t)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: 10, Image: "ring.jpg"}
	chain := models.Product{Name: "Silver Chain", SKU: "CHAIN-1", BasePrice: 80, FinalPrice: 80, StockQuantity: 5, Image: "chain.jpg"}
	require.NoError(t, db.Create(&ring).Error)
	require.NoError(t, db.Create(&chain).Error)

	r := setupRouter(db, "user-1")

	w := mergeRequest(t, r, cartControllers.MergeCartRequest{
		Items: []cartControllers.LocalCartEntry{
			{ProductID: ring.ID, Quantity: 2},
			{ProductID: chain.ID, Quantity: 1},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	// Remote cart reproduces the local quantities exactly
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", "user-1").First(&cart).Error)
	require.Len(t, cart.Items, 2)

	byProduct := map[uint]models.CartItem{}
	for _, item := range cart.Items {
		byProduct[item.ProductID] = item
	}

	assert.Equal(t, 2, byProduct[ring.ID].Quantity)
	assert.Equal(t, 1, byProduct[chain.ID].Quantity)

	// Snapshot fields come from the products table
	assert.Equal(t, "Gold Ring", byProduct[ring.ID].ProductName)
	assert.Equal(t, 150.0, byProduct[ring.ID].ProductPrice)
	assert.Equal(t, 200.0, byProduct[ring.ID].ProductBasePrice)
}

func TestMergeLocalCart_QuantitiesAdd(t *testing.T) {
	db := setupDB(t)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: 10, Image: "ring.jpg"}
	require.NoError(t, db.Create(&ring).Error)

	cart := models.Cart{UserID: "user-1"}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:       cart.CartID,
		ProductID:    ring.ID,
		ProductName:  ring.Name,
		ProductPrice: ring.FinalPrice,
		Quantity:     1,
	}).Error)

	r := setupRouter(db, "user-1")

	w := mergeRequest(t, r, cartControllers.MergeCartRequest{
		Items: []cartControllers.LocalCartEntry{{ProductID: ring.ID, Quantity: 3}},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND product_id = ?", cart.CartID, ring.ID).First(&item).Error)
	assert.Equal(t, 4, item.Quantity)

	// Still a single row for the product
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMergeLocalCart_UnknownProductSkipped(t *testing.T) {
	db := setupDB(t)

	ring := models.Product{Name: "Gold Ring", SKU: "RING-1", BasePrice: 200, FinalPrice: 150, StockQuantity: 10, Image: "ring.jpg"}
	require.NoError(t, db.Create(&ring).Error)

	r := setupRouter(db, "user-1")

	w := mergeRequest(t, r, cartControllers.MergeCartRequest{
		Items: []cartControllers.LocalCartEntry{
			{ProductID: ring.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 2},
		},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Merged  int    `json:"merged"`
		Skipped []uint `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Merged)
	assert.Equal(t, []uint{9999}, resp.Skipped)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMergeLocalCart_InvalidPayload(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/user/cart/merge", bytes.NewBufferString(`{"items":[{"product_id":1,"quantity":0}]}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
