package routes

import (
	"github.com/gin-gonic/gin"

	uploadControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/upload"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupUploadRoutes registers the image upload endpoint.
func SetupUploadRoutes(r *gin.Engine) {
	r.POST("/api/upload", middleware.Protect, middleware.RequireAdmin, uploadControllers.UploadImageHandler())
}
