package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	productcontroller "github.com/aryantuntune/Rivaya-Ecommerce/controllers/product"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupProductRoutes registers all /api/products endpoints. Public reads go
// through the optional response cache; admin writes invalidate it.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB, store *cache.Cache) {
	products := r.Group("/api/products")
	{
		products.GET("", store.Middleware(), productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
		products.POST("/:id/track", productcontroller.TrackInteraction(db))

		products.POST("", middleware.Protect, middleware.RequireAdmin, productcontroller.CreateProduct(db, store))
		products.PUT("/:id", middleware.Protect, middleware.RequireAdmin, productcontroller.UpdateProduct(db, store))
		products.DELETE("/:id", middleware.Protect, middleware.RequireAdmin, productcontroller.DeleteProduct(db, store))

		products.POST("/:id/reviews", middleware.Protect, productcontroller.CreateProductReview(db, store))
		products.DELETE("/:id/reviews/:reviewId", middleware.Protect, middleware.RequireAdmin, productcontroller.DeleteProductReview(db, store))
	}
}
