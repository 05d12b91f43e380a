package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// ImportProductsFromExcel bulk-creates or updates catalog rows from an
// uploaded spreadsheet. Expected columns:
// ID | Name | SKU | Material | Gemstone | Description | BasePrice |
// FinalPrice | WeightGrams | Stock | Image | CategoryIDs
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			if len(row.Cells) < 12 {
				skippedCount++
				continue
			}

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			sku := get(2)
			material := get(3)
			gemstone := get(4)
			description := get(5)
			basePrice, _ := strconv.ParseFloat(get(6), 64)
			finalPrice, err1 := strconv.ParseFloat(get(7), 64)
			weight, _ := strconv.ParseFloat(get(8), 64)
			stock, _ := strconv.ParseFloat(get(9), 64)
			image := get(10)
			categoryIDStr := get(11)

			if name == "" || err1 != nil {
				skippedCount++
				continue
			}

			var categories []models.Category
			for _, part := range strings.Split(categoryIDStr, ",") {
				if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
					categories = append(categories, models.Category{ID: uint(id)})
				}
			}

			product := models.Product{
				Name:          name,
				SKU:           sku,
				Material:      material,
				Gemstone:      gemstone,
				Description:   description,
				BasePrice:     basePrice,
				FinalPrice:    finalPrice,
				WeightGrams:   weight,
				StockQuantity: int(stock),
				Image:         image,
				Categories:    categories,
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.Preload("Categories").First(&existing, id).Error; err == nil {
						existing.Name = product.Name
						existing.SKU = product.SKU
						existing.Material = product.Material
						existing.Gemstone = product.Gemstone
						existing.Description = product.Description
						existing.BasePrice = product.BasePrice
						existing.FinalPrice = product.FinalPrice
						existing.WeightGrams = product.WeightGrams
						existing.StockQuantity = product.StockQuantity
						existing.Image = product.Image

						// Replace categories
						if err := db.Model(&existing).Association("Categories").Replace(categories); err != nil {
							skippedCount++
							continue
						}

						if err := db.Save(&existing).Error; err == nil {
							updatedCount++
							continue
						}
					}
				}
			}

			// Insert new product
			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
