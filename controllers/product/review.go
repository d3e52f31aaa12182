package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

type CreateReviewRequest struct {
	User    string `json:"user"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// recomputeReviewAggregate rewrites rating and numReviews from the current
// review rows. Must run in the same transaction as the review mutation so the
// aggregate never drifts from the rows it is derived from.
func recomputeReviewAggregate(tx *gorm.DB, productID uint) error {
	var agg struct {
		Count  int64
		Rating float64
	}
	if err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS rating").
		Where("product_id = ?", productID).
		Scan(&agg).Error; err != nil {
		return err
	}
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"rating":      agg.Rating,
			"num_reviews": agg.Count,
		}).Error
}

// CreateProductReview appends a review and recomputes the product's rating
// aggregate atomically with the insert.
func CreateProductReview(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}
		if req.User == "" {
			req.User = "Anonymous"
		}

		var product models.Product
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&product, "id = ?", c.Param("id")).Error; err != nil {
				return err
			}

			review := models.Review{
				ProductID: product.ID,
				User:      req.User,
				Rating:    req.Rating,
				Comment:   req.Comment,
				Verified:  true,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			return recomputeReviewAggregate(tx, product.ID)
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to add review"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), "/api/products")

		if err := db.Preload("Variants").Preload("Reviews").First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Review added", "data": product})
	}
}

// DeleteProductReview removes a review (admin only) and recomputes the
// aggregate in the same transaction. An emptied review list resets rating to 0.
func DeleteProductReview(db *gorm.DB, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&product, "id = ?", c.Param("id")).Error; err != nil {
				return err
			}

			res := tx.Where("id = ? AND product_id = ?", c.Param("reviewId"), product.ID).
				Delete(&models.Review{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return recomputeReviewAggregate(tx, product.ID)
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Review not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to remove review"})
			return
		}

		store.InvalidatePrefix(c.Request.Context(), "/api/products")

		if err := db.Preload("Variants").Preload("Reviews").First(&product, product.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review removed", "data": product})
	}
}
