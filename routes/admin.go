package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/Abhraroy/thejwel-sub001/controllers/admin"
	cartControllers "github.com/Abhraroy/thejwel-sub001/controllers/cart"
	orderControllers "github.com/Abhraroy/thejwel-sub001/controllers/order"
	productcontroller "github.com/Abhraroy/thejwel-sub001/controllers/product"
	reviewControllers "github.com/Abhraroy/thejwel-sub001/controllers/review"
	userControllers "github.com/Abhraroy/thejwel-sub001/controllers/user"
	"github.com/Abhraroy/thejwel-sub001/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	uploadsDir := deps.Config.UploadsDir

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// Admin & user management
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, uploadsDir, deps.Storage))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, uploadsDir, deps.Storage))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db, uploadsDir, deps.Storage))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db, uploadsDir, deps.Storage))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// Review moderation
		reviewAdmin := adminGroup.Group("/reviews")
		{
			reviewAdmin.GET("", reviewControllers.GetAllReviews(db))
			reviewAdmin.DELETE("/:id", reviewControllers.AdminDeleteReview(db))
		}

		// Admin approval workflow
		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(db))
			adminMgmt.POST("/approve/:id", adminController.ApproveAdmin(db))
			adminMgmt.POST("/reject/:id", adminController.RejectAdmin(db))
		}

		bannerMgmt := adminGroup.Group("/banner")
		{
			bannerMgmt.POST("/upload", adminController.UploadBanner(db, uploadsDir, deps.Storage))
			bannerMgmt.GET("/", adminController.GetBanners(db))
			bannerMgmt.DELETE("/:id", adminController.DeleteBanner(db, deps.Storage))
		}

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("/", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}
	}

	// Public banners for the storefront hero
	r.GET("/banners", adminController.GetBanners(db))
}
