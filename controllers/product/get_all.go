package productcontroller

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// GetProducts lists the catalog with category/search/price filters, sorting
// and pagination.
// Query params: category, search, minPrice, maxPrice, sort, page, limit.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if search := c.Query("search"); search != "" {
			// LOWER on both sides keeps the match case-insensitive on postgres
			// and sqlite alike.
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
		}
		if minPrice := c.Query("minPrice"); minPrice != "" {
			if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
				query = query.Where("price >= ?", v)
			}
		}
		if maxPrice := c.Query("maxPrice"); maxPrice != "" {
			if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
				query = query.Where("price <= ?", v)
			}
		}

		switch c.Query("sort") {
		case "price-low":
			query = query.Order("price ASC")
		case "price-high":
			query = query.Order("price DESC")
		case "rating":
			query = query.Order("rating DESC")
		default:
			query = query.Order("created_at DESC")
		}

		page, err := strconv.Atoi(c.Query("page"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.Query("limit"))
		if err != nil || limit < 1 {
			limit = 1000
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch products"})
			return
		}

		var products []models.Product
		if err := query.
			Preload("Variants").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   len(products),
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
			"data": products,
		})
	}
}
