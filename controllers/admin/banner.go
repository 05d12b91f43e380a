package admincontroller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
	"github.com/Abhraroy/thejwel-sub001/pkg/storage"
)

// UploadBanner creates a storefront banner from a multipart form.
func UploadBanner(db *gorm.DB, uploadsDir string, store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Banner image is required"})
			return
		}

		saveDir := filepath.Join(uploadsDir, "banners")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		filename := storage.SafeFilename(file.Filename)
		savePath := filepath.Join(saveDir, filename)

		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save banner image"})
			return
		}

		if store.Configured() {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				f, err := os.Open(savePath)
				if err != nil {
					log.Printf("⚠️ Failed to open %s for storage mirror: %v", savePath, err)
					return
				}
				defer f.Close()

				key := "banners/" + filename
				if _, err := store.Put(ctx, key, file.Header.Get("Content-Type"), f); err != nil {
					log.Printf("⚠️ Failed to mirror %s to object storage: %v", key, err)
				}
			}()
		}

		banner := models.Banner{
			Title:    c.PostForm("title"),
			ImageURL: fmt.Sprintf("/uploads/banners/%s", filename),
			LinkURL:  c.PostForm("link_url"),
		}

		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
			return
		}

		c.JSON(http.StatusCreated, banner)
	}
}

// GetBanners returns all active banners for the storefront.
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Order("created_at DESC").Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
			return
		}

		c.JSON(http.StatusOK, banners)
	}
}

// DeleteBanner removes a banner and best-effort deletes its mirrored object.
func DeleteBanner(db *gorm.DB, store *storage.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var banner models.Banner
		if err := db.First(&banner, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}

		if err := db.Delete(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
			return
		}

		if store.Configured() {
			if key, ok := strings.CutPrefix(banner.ImageURL, "/uploads/"); ok {
				go func() {
					ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
					defer cancel()

					if err := store.Delete(ctx, key); err != nil {
						log.Printf("⚠️ Failed to delete %s from object storage: %v", key, err)
					}
				}()
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
