package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// GetProductByID returns a single product with variants and reviews, and bumps
// its view counter with a single atomic update.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.
			Preload("Variants").
			Preload("Reviews").
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to retrieve product"})
			return
		}

		if err := db.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("analytics_views", gorm.Expr("analytics_views + 1")).Error; err == nil {
			product.Analytics.Views++
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
