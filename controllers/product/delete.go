package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// DeleteProduct removes a product (admin only). Existing orders keep their
// denormalized snapshot of it.
func DeleteProduct(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch product"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to delete product"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), "/api/products")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
