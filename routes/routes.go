package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/config"
	"github.com/Abhraroy/thejwel-sub001/pkg/gateway"
	"github.com/Abhraroy/thejwel-sub001/pkg/rabbitmq"
	"github.com/Abhraroy/thejwel-sub001/pkg/shipping"
	"github.com/Abhraroy/thejwel-sub001/pkg/storage"
)

// Deps collects the shared clients the route groups hand to their handlers.
type Deps struct {
	Config   config.Config
	Gateway  *gateway.Client
	Shipping *shipping.Client
	Storage  *storage.Client
	Events   *rabbitmq.Client
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Storefront routes (JWT-protected, plus public browse endpoints)
	SetupUserRoutes(r, db)

	// Admin back-office routes (API-key-protected)
	SetupAdminRoutes(r, db, deps)

	// Order routes
	SetupOrderRoutes(r, db, deps)

	// Payment gateway routes (status poll + webhook)
	SetupPaymentRoutes(r, db, deps)
}
