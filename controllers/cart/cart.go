package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

type CartItemInput struct {
	Product  uint   `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Size     string `json:"size"`
}

// GetCart returns the caller's cart items with product details.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.CartItem
		if err := db.
			Where("user_id = ?", c.GetUint("user_id")).
			Preload("Product").
			Preload("Product.Variants").
			Order("added_at DESC").
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "data": items})
	}
}

// UpsertCartItem adds a product to the cart or replaces the quantity of the
// existing (product, size) row.
func UpsertCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}
		userID := c.GetUint("user_id")

		var product models.Product
		if err := db.First(&product, input.Product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to validate product"})
			return
		}

		var item models.CartItem
		err := db.Where("user_id = ? AND product_id = ? AND size = ?", userID, input.Product, input.Size).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				Size:      input.Size,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch cart item"})
			return
		}

		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
	}
}

// DeleteCartItem removes one product (optionally narrowed by ?size=) from the
// caller's cart.
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("user_id = ? AND product_id = ?", c.GetUint("user_id"), c.Param("productId"))
		if size := c.Query("size"); size != "" {
			query = query.Where("size = ?", size)
		}

		res := query.Delete(&models.CartItem{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to delete item"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item deleted"})
	}
}

// ClearCart empties the caller's cart.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Where("user_id = ?", c.GetUint("user_id")).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
	}
}
