package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	collectionControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/collection"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupCollectionRoutes registers all /api/collections endpoints.
func SetupCollectionRoutes(r *gin.Engine, db *gorm.DB) {
	collections := r.Group("/api/collections")
	{
		collections.GET("", collectionControllers.GetCollections(db))
		collections.GET("/:id", collectionControllers.GetCollection(db))

		collections.POST("", middleware.Protect, middleware.RequireAdmin, collectionControllers.CreateCollection(db))
		collections.PUT("/:id", middleware.Protect, middleware.RequireAdmin, collectionControllers.UpdateCollection(db))
		collections.DELETE("/:id", middleware.Protect, middleware.RequireAdmin, collectionControllers.DeleteCollection(db))
	}
}
