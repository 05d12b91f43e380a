package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Customer Google login (also merges any guest cart)
		authGroup.POST("/google-user", func(c *gin.Context) {
			auth.GoogleUserLoginHandler(c.Writer, c.Request, db)
		})

		// Back-office Google login
		authGroup.POST("/google-admin", func(c *gin.Context) {
			auth.GoogleAdminLoginHandler(c.Writer, c.Request, db)
		})

		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
