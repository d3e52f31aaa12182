package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// UpdateProductRequest carries partial updates; nil fields stay untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Price         *float64         `json:"price"`
	OriginalPrice *float64         `json:"originalPrice"`
	Images        []string         `json:"images"`
	Colors        []string         `json:"colors"`
	Sizes         []string         `json:"sizes"`
	Variants      []models.Variant `json:"variants"`
	InStock       *bool            `json:"inStock"`
	StockQuantity *int             `json:"stockQuantity"`
	IsNewArrival  *bool            `json:"isNewArrival"`
	Trending      *bool            `json:"trending"`
}

// UpdateProduct applies a partial update to an existing product (admin only).
// Supplying variants replaces the whole variant list.
func UpdateProduct(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}
		if req.Price != nil && *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "price must not be negative"})
			return
		}
		for _, v := range req.Variants {
			if v.Size == "" || v.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "invalid variant"})
				return
			}
		}

		var product models.Product
		if err := db.Preload("Variants").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch product"})
			return
		}

		if req.Name != nil {
			product.Name = *req.Name
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Category != nil {
			product.Category = *req.Category
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.OriginalPrice != nil {
			product.OriginalPrice = *req.OriginalPrice
		}
		if req.Images != nil {
			product.Images = req.Images
		}
		if req.Colors != nil {
			product.Colors = req.Colors
		}
		if req.Sizes != nil {
			product.Sizes = req.Sizes
		}
		if req.InStock != nil {
			product.InStock = *req.InStock
		}
		if req.StockQuantity != nil {
			product.StockQuantity = *req.StockQuantity
		}
		if req.IsNewArrival != nil {
			product.IsNewArrival = *req.IsNewArrival
		}
		if req.Trending != nil {
			product.Trending = *req.Trending
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.Variants != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.Variant{}).Error; err != nil {
					return err
				}
				for i := range req.Variants {
					req.Variants[i].ID = 0
					req.Variants[i].ProductID = product.ID
				}
				if len(req.Variants) > 0 {
					if err := tx.Create(&req.Variants).Error; err != nil {
						return err
					}
				}
				product.Variants = req.Variants
			}
			return tx.Omit("Variants", "Reviews").Save(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to update product"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), "/api/products")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
