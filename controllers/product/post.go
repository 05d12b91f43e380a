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

// CreateProduct creates a new product with multiple categories + image upload.
func CreateProduct(db *gorm.DB, uploadsDir string, store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		name := c.PostForm("name")
		finalPriceStr := c.PostForm("final_price")
		if name == "" || finalPriceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and final_price are required"})
			return
		}

		// Optional fields
		description := c.PostForm("description")
		sku := c.PostForm("sku")
		material := c.PostForm("material")
		gemstone := c.PostForm("gemstone")
		basePriceStr := c.PostForm("base_price")
		weightStr := c.PostForm("weight_grams")
		stockStr := c.PostForm("stock_quantity")
		categoryIDsStr := c.PostForm("category_ids")

		// Convert numerics
		finalPrice, err := strconv.ParseFloat(finalPriceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid final_price"})
			return
		}

		var basePrice, weight float64
		var stock int
		if basePriceStr != "" {
			if bp, parseErr := strconv.ParseFloat(basePriceStr, 64); parseErr == nil {
				basePrice = bp
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base_price"})
				return
			}
		}
		if weightStr != "" {
			if w, parseErr := strconv.ParseFloat(weightStr, 64); parseErr == nil {
				weight = w
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid weight_grams"})
				return
			}
		}
		if stockStr != "" {
			if s, parseErr := strconv.Atoi(stockStr); parseErr == nil {
				stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock_quantity"})
				return
			}
		}

		// Categories
		var categories []models.Category
		if categoryIDsStr != "" {
			idTokens := strings.Split(categoryIDsStr, ",")
			var parsedIDs []uint
			for _, tok := range idTokens {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				} else {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_ids format"})
					return
				}
			}
			if len(parsedIDs) > 0 {
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
					return
				}
			}
		}

		// Image upload
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		imageURL, err := saveImage(c, file, uploadsDir, "products", store)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Transaction
		tx := db.Begin()
		if tx.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
			return
		}

		newProduct := models.Product{
			Name:          name,
			Description:   description,
			SKU:           sku,
			Material:      material,
			Gemstone:      gemstone,
			BasePrice:     basePrice,
			FinalPrice:    finalPrice,
			WeightGrams:   weight,
			StockQuantity: stock,
			Image:         imageURL,
			Categories:    categories,
		}

		if err := tx.Create(&newProduct).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		if err := tx.Commit().Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
