package collectionControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

type CollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
	ProductIDs  []uint `json:"productIds"`
}

// GetCollections lists active collections with their products.
func GetCollections(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var collections []models.Collection
		if err := db.Where("is_active = ?", true).Preload("Products").Find(&collections).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch collections"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(collections), "data": collections})
	}
}

// GetCollection returns one collection with its products.
func GetCollection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var collection models.Collection
		if err := db.Preload("Products").First(&collection, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Collection not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch collection"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": collection})
	}
}

func applyProducts(db *gorm.DB, collection *models.Collection, productIDs []uint) error {
	if productIDs == nil {
		return nil
	}
	var products []models.Product
	if len(productIDs) > 0 {
		if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
	}
	return db.Model(collection).Association("Products").Replace(products)
}

// CreateCollection creates a collection (admin).
func CreateCollection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CollectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		collection := models.Collection{
			Name:        req.Name,
			Description: req.Description,
			Image:       req.Image,
			IsActive:    true,
		}
		if req.IsActive != nil {
			collection.IsActive = *req.IsActive
		}

		if err := db.Create(&collection).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to create collection"})
			return
		}
		if err := applyProducts(db, &collection, req.ProductIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to attach products"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": collection})
	}
}

// UpdateCollection updates a collection (admin).
func UpdateCollection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var collection models.Collection
		if err := db.First(&collection, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Collection not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch collection"})
			return
		}

		var req struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			Image       *string `json:"image"`
			IsActive    *bool   `json:"isActive"`
			ProductIDs  []uint  `json:"productIds"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		if req.Name != nil {
			collection.Name = *req.Name
		}
		if req.Description != nil {
			collection.Description = *req.Description
		}
		if req.Image != nil {
			collection.Image = *req.Image
		}
		if req.IsActive != nil {
			collection.IsActive = *req.IsActive
		}

		if err := db.Save(&collection).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to update collection"})
			return
		}
		if err := applyProducts(db, &collection, req.ProductIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to attach products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": collection})
	}
}

// DeleteCollection deletes a collection (admin). Products survive; only the
// grouping disappears.
func DeleteCollection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Collection{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to delete collection"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Collection not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
