package admincontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// ListPendingAdmins returns admin accounts awaiting approval.
func ListPendingAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Admin
		if err := db.Where("approved = ?", false).Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending admins"})
			return
		}

		c.JSON(http.StatusOK, pending)
	}
}

// ApproveAdmin flips a pending admin account to approved.
func ApproveAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var admin models.Admin
		if err := db.First(&admin, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}

		if admin.Approved {
			c.JSON(http.StatusOK, gin.H{"message": "Admin already approved"})
			return
		}

		admin.Approved = true
		if err := db.Save(&admin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve admin"})
			return
		}

		log.Printf("✅ Admin approved: %s", admin.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Admin approved", "admin": admin})
	}
}

// RejectAdmin removes a pending admin account.
func RejectAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var admin models.Admin
		if err := db.First(&admin, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}

		if admin.Approved {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot reject an approved admin"})
			return
		}

		if err := db.Delete(&admin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject admin"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Admin rejected"})
	}
}
