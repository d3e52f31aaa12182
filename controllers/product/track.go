package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// TrackInteraction bumps one of the product analytics counters. Each bump is a
// single atomic update, so concurrent trackers never lose increments.
func TrackInteraction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type string `json:"type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		var column string
		switch input.Type {
		case "addToCart":
			column = "analytics_add_to_cart"
		case "wishlist":
			column = "analytics_wishlist"
		case "purchase":
			column = "analytics_purchases"
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "type must be addToCart, wishlist or purchase"})
			return
		}

		res := db.Model(&models.Product{}).
			Where("id = ?", c.Param("id")).
			UpdateColumn(column, gorm.Expr(column+" + 1"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to track interaction"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Product not found"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product.Analytics})
	}
}
