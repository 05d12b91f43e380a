package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/Abhraroy/thejwel-sub001/controllers/order"
	"github.com/Abhraroy/thejwel-sub001/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	orders := r.Group("/orders")
	{
		// Place an order for the authenticated user's cart
		orders.POST("/place", middleware.ValidateToken, orderControllers.PlaceOrderHandler(db, deps.Gateway))

		// Websocket endpoint for real-time order updates (admin dashboard)
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Fetch orders for the authenticated user
		orders.GET("/user/:userID", middleware.ValidateToken, orderControllers.GetUserOrdersHandler(db))
	}
}
