package bannerControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// GetActiveBanner returns the newest enabled banner for the storefront hero.
func GetActiveBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		err := db.Where("enabled = ?", true).Order("created_at DESC").First(&banner).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch banner"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": banner})
	}
}

// GetAllBanners lists every banner (admin).
func GetAllBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Order("created_at DESC").Find(&banners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch banners"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(banners), "data": banners})
	}
}

// CreateBanner creates a banner (admin).
func CreateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		if err := c.ShouldBindJSON(&banner); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}
		if banner.Image == "" || banner.Title == "" || banner.Subtitle == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "image, title and subtitle are required"})
			return
		}
		banner.ID = 0
		if err := db.Create(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to create banner"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": banner})
	}
}

// UpdateBanner updates a banner (admin).
func UpdateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		if err := db.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch banner"})
			return
		}

		var input struct {
			Image    *string `json:"image"`
			Title    *string `json:"title"`
			Subtitle *string `json:"subtitle"`
			Link     *string `json:"link"`
			Enabled  *bool   `json:"enabled"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		if input.Image != nil {
			banner.Image = *input.Image
		}
		if input.Title != nil {
			banner.Title = *input.Title
		}
		if input.Subtitle != nil {
			banner.Subtitle = *input.Subtitle
		}
		if input.Link != nil {
			banner.Link = *input.Link
		}
		if input.Enabled != nil {
			banner.Enabled = *input.Enabled
		}

		if err := db.Save(&banner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to update banner"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": banner})
	}
}

// DeleteBanner deletes a banner (admin).
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Banner{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to delete banner"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Banner not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	}
}
