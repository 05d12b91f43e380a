package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

type LocalCartEntry struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type MergeCartRequest struct {
	Items []LocalCartEntry `json:"items" binding:"required,dive"`
}

// MergeLocalCart handles POST /user/cart/merge: the client sends the cart it
// kept in browser-local storage while the customer was signed out. Entries
// whose product already sits in the remote cart have their quantities added;
// the rest are inserted as fresh snapshot rows. The whole merge runs in one
// transaction so a failure leaves the remote cart untouched. Unknown product
// ids are skipped and reported back rather than failing the merge.
func MergeLocalCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req MergeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := findOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		var merged int
		var skipped []uint

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, entry := range req.Items {
				var product models.Product
				if err := tx.First(&product, "id = ?", entry.ProductID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						skipped = append(skipped, entry.ProductID)
						continue
					}
					return err
				}

				var item models.CartItem
				lookupErr := tx.Where(
					"cart_id = ? AND product_id = ?",
					cart.CartID, entry.ProductID,
				).First(&item).Error

				if lookupErr == nil {
					// Product already in the remote cart: quantities add
					item.Quantity += entry.Quantity
					item.AddedAt = time.Now()
					if err := tx.Save(&item).Error; err != nil {
						return err
					}

				} else if lookupErr == gorm.ErrRecordNotFound {
					newItem := models.CartItem{
						CartID:           cart.CartID,
						ProductID:        product.ID,
						ProductName:      product.Name,
						ProductImage:     product.Image,
						ProductStock:     product.StockQuantity,
						ProductBasePrice: product.BasePrice,
						ProductPrice:     product.FinalPrice,
						WeightGrams:      product.WeightGrams,
						Quantity:         entry.Quantity,
						AddedAt:          time.Now(),
					}
					if err := tx.Create(&newItem).Error; err != nil {
						return err
					}

				} else {
					return lookupErr
				}

				merged++
			}
			return nil
		})

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}

		var items []models.CartItem
		if err := db.Where("cart_id = ?", cart.CartID).Order("added_at").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"merged":  merged,
			"skipped": skipped,
			"items":   items,
		})
	}
}
