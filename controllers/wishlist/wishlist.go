package wishlistControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

type WishlistItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type SyncWishlistRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var wishlist models.Wishlist
		if err := db.Preload("Items").Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, []models.WishlistItem{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, wishlist.Items)
	}
}

// POST /user/wishlist
// Adding a product that is already saved is a no-op, not an error.
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input WishlistItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		wishlist, err := findOrCreateWishlist(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var item models.WishlistItem
		err = db.Where("wishlist_id = ? AND product_id = ?", wishlist.WishlistID, input.ProductID).
			First(&item).Error
		if err == nil {
			// Already saved
			c.JSON(http.StatusOK, item)
			return
		}
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist item"})
			return
		}

		item = models.WishlistItem{
			WishlistID:   wishlist.WishlistID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			ProductPrice: product.FinalPrice,
			AddedAt:      time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to wishlist"})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /user/wishlist/:product_id
func DeleteWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productIDUint, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var wishlist models.Wishlist
		if err := db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist not found"})
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", wishlist.WishlistID, uint(productIDUint)).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Wishlist item deleted"})
	}
}

// DELETE /user/wishlist
func ClearWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var wishlist models.Wishlist
		if err := db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		if err := db.Where("wishlist_id = ?", wishlist.WishlistID).Delete(&models.WishlistItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}

// SyncWishlist handles POST /user/wishlist/sync: the client sends the
// product ids it saved locally while signed out. Missing products are
// inserted; ones already present are left alone, so a product can never
// appear twice no matter how often the client re-syncs.
func SyncWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req SyncWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		wishlist, err := findOrCreateWishlist(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var added int
		var skipped []uint

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, productID := range req.ProductIDs {
				var product models.Product
				if err := tx.First(&product, "id = ?", productID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						skipped = append(skipped, productID)
						continue
					}
					return err
				}

				var existing models.WishlistItem
				lookupErr := tx.Where(
					"wishlist_id = ? AND product_id = ?",
					wishlist.WishlistID, productID,
				).First(&existing).Error

				if lookupErr == nil {
					continue // already saved
				}
				if lookupErr != gorm.ErrRecordNotFound {
					return lookupErr
				}

				item := models.WishlistItem{
					WishlistID:   wishlist.WishlistID,
					ProductID:    product.ID,
					ProductName:  product.Name,
					ProductImage: product.Image,
					ProductPrice: product.FinalPrice,
					AddedAt:      time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				added++
			}
			return nil
		})

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync wishlist"})
			return
		}

		var items []models.WishlistItem
		if err := db.Where("wishlist_id = ?", wishlist.WishlistID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"added":   added,
			"skipped": skipped,
			"items":   items,
		})
	}
}

func findOrCreateWishlist(db *gorm.DB, userID string) (models.Wishlist, error) {
	var wishlist models.Wishlist
	err := db.Where("user_id = ?", userID).First(&wishlist).Error
	if err == gorm.ErrRecordNotFound {
		wishlist = models.Wishlist{UserID: userID}
		if err := db.Create(&wishlist).Error; err != nil {
			return wishlist, err
		}
		return wishlist, nil
	}
	return wishlist, err
}
