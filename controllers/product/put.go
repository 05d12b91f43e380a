package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
	"github.com/Abhraroy/thejwel-sub001/pkg/storage"
)

// UpdateProduct updates an existing product by ID.
// Accepts the same fields as CreateProduct and an optional "image" file.
func UpdateProduct(db *gorm.DB, uploadsDir string, store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get product ID from URL
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		// Fetch existing product
		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		// Helper to parse float fields safely
		parseFloat := func(val string) *float64 {
			if val == "" {
				return nil
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return &f
			}
			return nil
		}

		// Helper to parse int fields safely
		parseInt := func(val string) *int {
			if val == "" {
				return nil
			}
			if i, err := strconv.Atoi(val); err == nil {
				return &i
			}
			return nil
		}

		// Parse form fields (optional updates)
		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := c.PostForm("sku"); v != "" {
			product.SKU = v
		}
		if v := c.PostForm("material"); v != "" {
			product.Material = v
		}
		if v := c.PostForm("gemstone"); v != "" {
			product.Gemstone = v
		}
		if v := parseFloat(c.PostForm("base_price")); v != nil {
			product.BasePrice = *v
		}
		if v := parseFloat(c.PostForm("final_price")); v != nil {
			product.FinalPrice = *v
		}
		if v := parseFloat(c.PostForm("weight_grams")); v != nil {
			product.WeightGrams = *v
		}
		if v := parseInt(c.PostForm("stock_quantity")); v != nil {
			product.StockQuantity = *v
		}
		if v := c.PostForm("featured"); v != "" {
			product.Featured = v == "true" || v == "1"
		}

		// Update categories if provided
		if categoryIDsStr := c.PostForm("category_ids"); categoryIDsStr != "" {
			idTokens := strings.Split(categoryIDsStr, ",")
			var parsedIDs []uint
			for _, tok := range idTokens {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				}
			}
			if len(parsedIDs) > 0 {
				var categories []models.Category
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err == nil {
					if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
						return
					}
				}
			}
		}

		// Handle optional image upload
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err := saveImage(c, file, uploadsDir, "products", store)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			product.Image = imageURL
		}

		// Save updated product
		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
