package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// CreateProduct creates a new catalog entry (admin only).
func CreateProduct(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		if product.Name == "" || product.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "name and description are required"})
			return
		}
		if product.Price < 0 || product.OriginalPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "price must not be negative"})
			return
		}
		for _, v := range product.Variants {
			if v.Size == "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "variant size is required"})
				return
			}
			if v.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "variant stock must not be negative"})
				return
			}
		}

		// Reviews and aggregates are never accepted from the client.
		product.ID = 0
		product.Reviews = nil
		product.Rating = 0
		product.NumReviews = 0
		product.Analytics = models.Analytics{}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to create product"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), "/api/products")
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
	}
}
