package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/cart"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupCartRoutes registers all /api/cart endpoints (authenticated).
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.Protect)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.UpsertCartItem(db))
		cart.DELETE("/:productId", cartControllers.DeleteCartItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
