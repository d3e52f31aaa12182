package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	complaintControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/complaint"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupComplaintRoutes registers all /api/complaints endpoints.
func SetupComplaintRoutes(r *gin.Engine, db *gorm.DB) {
	complaints := r.Group("/api/complaints")
	{
		complaints.POST("", complaintControllers.CreateComplaint(db))

		complaints.GET("", middleware.Protect, middleware.RequireAdmin, complaintControllers.GetComplaints(db))
		complaints.PUT("/:id/resolve", middleware.Protect, middleware.RequireAdmin, complaintControllers.ResolveComplaint(db))
	}
}
