package complaintControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

type CreateComplaintRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Issue string `json:"issue" binding:"required"`
}

// GetComplaints lists complaints newest first (admin).
func GetComplaints(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var complaints []models.Complaint
		if err := db.Order("date DESC").Find(&complaints).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch complaints"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(complaints), "data": complaints})
	}
}

// CreateComplaint files a new complaint (public).
func CreateComplaint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateComplaintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		complaint := models.Complaint{
			Name:   req.Name,
			Email:  req.Email,
			Issue:  req.Issue,
			Status: models.ComplaintStatusPending,
			Date:   time.Now(),
		}
		if err := db.Create(&complaint).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to create complaint"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": complaint})
	}
}

// ResolveComplaint marks a complaint as resolved (admin).
func ResolveComplaint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var complaint models.Complaint
		if err := db.First(&complaint, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Complaint not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch complaint"})
			return
		}

		complaint.Status = models.ComplaintStatusResolved
		if err := db.Save(&complaint).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to update complaint"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": complaint})
	}
}
