package usercontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// GetUser returns the authenticated user's full profile including cart,
// wishlist and order history.
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.
			Preload("Cart.Items").
			Preload("Wishlist.Items").
			Preload("Orders", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("created_at DESC")
			}).
			Preload("Orders.Items").
			First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GetAllUsers lists registered customers for the admin dashboard.
// Only public profile fields are returned.
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "phone", "name", "picture", "provider", "created_at").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

type updateUserRequest struct {
	Phone   *string `json:"phone"`
	Name    *string `json:"name"`
	Address *struct {
		Country    *string `json:"country"`
		State      *string `json:"state"`
		City       *string `json:"city"`
		Street     *string `json:"street"`
		PostalCode *string `json:"postal_code"`
	} `json:"address"`
}

// UpdateUser patches the authenticated user's profile. Only fields
// present in the request body are changed.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Address != nil {
			if req.Address.Country != nil {
				user.Address.Country = *req.Address.Country
			}
			if req.Address.State != nil {
				user.Address.State = *req.Address.State
			}
			if req.Address.City != nil {
				user.Address.City = *req.Address.City
			}
			if req.Address.Street != nil {
				user.Address.Street = *req.Address.Street
			}
			if req.Address.PostalCode != nil {
				user.Address.PostalCode = *req.Address.PostalCode
			}
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}
