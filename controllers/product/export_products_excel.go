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

func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Categories").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"ID", "Name", "SKU", "Material", "Gemstone", "Description",
			"BasePrice", "FinalPrice", "WeightGrams", "Stock",
			"Image", "CategoryIDs", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.SKU)
			row.AddCell().SetValue(p.Material)
			row.AddCell().SetValue(p.Gemstone)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.BasePrice)
			row.AddCell().SetValue(p.FinalPrice)
			row.AddCell().SetValue(p.WeightGrams)
			row.AddCell().SetValue(p.StockQuantity)
			row.AddCell().SetValue(p.Image)

			var catIDs []string
			for _, cat := range p.Categories {
				catIDs = append(catIDs, strconv.Itoa(int(cat.ID)))
			}
			row.AddCell().SetValue(strings.Join(catIDs, ","))

			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		// Write file to response
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
