package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/Abhraroy/thejwel-sub001/controllers/cart"
	productcontroller "github.com/Abhraroy/thejwel-sub001/controllers/product"
	reviewControllers "github.com/Abhraroy/thejwel-sub001/controllers/review"
	userControllers "github.com/Abhraroy/thejwel-sub001/controllers/user"
	wishlistControllers "github.com/Abhraroy/thejwel-sub001/controllers/wishlist"
	"github.com/Abhraroy/thejwel-sub001/middleware"
)

// SetupUserRoutes registers the storefront endpoints: the JWT-protected
// "/user/*" group plus the public browse and guest-cart endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// Public browsing (no auth)
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))
	r.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(db))

	// Guest cart (guest_id query param, no login required)
	guestCart := r.Group("/guest/cart")
	{
		guestCart.GET("/", cartControllers.GetGuestCart(db))
		guestCart.POST("/", cartControllers.UpdateGuestCartItem(db))
		guestCart.DELETE("/:product_id", cartControllers.DeleteGuestCartItem(db))
		guestCart.DELETE("/", cartControllers.ClearGuestCart(db))
	}

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// Profile
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// Browse products and categories
		userGroup.GET("/products", productcontroller.GetProducts(db))
		userGroup.GET("/products/:id", productcontroller.GetProductByID(db))
		userGroup.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))
		userGroup.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))

		// Shopping cart
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))
			cartGroup.POST("/merge", cartControllers.MergeLocalCart(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}

		// Wishlist
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/", wishlistControllers.AddWishlistItem(db))
			wishlistGroup.POST("/sync", wishlistControllers.SyncWishlist(db))
			wishlistGroup.DELETE("/:product_id", wishlistControllers.DeleteWishlistItem(db))
			wishlistGroup.DELETE("/", wishlistControllers.ClearWishlist(db))
		}

		// Reviews
		userGroup.POST("/reviews", reviewControllers.UpsertReview(db))
		userGroup.DELETE("/reviews/:product_id", reviewControllers.DeleteOwnReview(db))
	}
}
