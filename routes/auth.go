package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/auth"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupAuthRoutes registers all /api/auth endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authControllers.RegisterHandler(db))
		auth.POST("/login", authControllers.LoginHandler(db))
		auth.GET("/me", middleware.Protect, authControllers.MeHandler(db))
		auth.DELETE("/me", middleware.Protect, authControllers.DeleteAccountHandler(db))
	}
}
