package reviewControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

type ReviewInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// POST /user/reviews
// A second review for the same product replaces the first one.
func UpsertReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input ReviewInput
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

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		var review models.Review
		err := db.Where("product_id = ? AND user_id = ?", input.ProductID, userID).First(&review).Error
		if err == gorm.ErrRecordNotFound {
			review = models.Review{
				ProductID: input.ProductID,
				UserID:    userID,
				UserName:  user.Name,
				Rating:    input.Rating,
				Title:     input.Title,
				Comment:   input.Comment,
			}
			if err := db.Create(&review).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
				return
			}
			c.JSON(http.StatusCreated, review)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
			return
		}

		review.Rating = input.Rating
		review.Title = input.Title
		review.Comment = input.Comment
		if err := db.Save(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}

// GET /user/products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var reviews []models.Review
		if err := db.Where("product_id = ?", uint(productID)).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		var avg float64
		if len(reviews) > 0 {
			var sum int
			for _, r := range reviews {
				sum += r.Rating
			}
			avg = float64(sum) / float64(len(reviews))
		}

		c.JSON(http.StatusOK, gin.H{
			"reviews":        reviews,
			"average_rating": avg,
			"count":          len(reviews),
		})
	}
}

// DELETE /user/reviews/:product_id
func DeleteOwnReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		result := db.Where("product_id = ? AND user_id = ?", uint(productID), userID).
			Delete(&models.Review{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}

// GET /admin/reviews
func GetAllReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// DELETE /admin/reviews/:id
func AdminDeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Review ID is required"})
			return
		}

		result := db.Where("id = ?", id).Delete(&models.Review{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
