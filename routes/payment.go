package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	paymentControllers "github.com/Abhraroy/thejwel-sub001/controllers/payment"
	"github.com/Abhraroy/thejwel-sub001/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	payment := r.Group("/payment")
	{
		// Status poll: fallback for when the webhook is delayed
		payment.GET("/status/:merchantOrderID",
			paymentControllers.PaymentStatusHandler(db, deps.Gateway, deps.Shipping, deps.Events),
		)

		// Webhook endpoint: middleware handles signature verification
		payment.POST("/webhook",
			middleware.PaymentWebhookAuth(deps.Config.PayWebhookSecret, deps.Config.PayMode),
			paymentControllers.WebhookHandler(db, deps.Shipping, deps.Events),
		)
	}
}
