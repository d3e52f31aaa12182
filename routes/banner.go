package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bannerControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/banner"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupBannerRoutes registers all /api/banners endpoints.
func SetupBannerRoutes(r *gin.Engine, db *gorm.DB) {
	banners := r.Group("/api/banners")
	{
		banners.GET("/active", bannerControllers.GetActiveBanner(db))

		banners.GET("", middleware.Protect, middleware.RequireAdmin, bannerControllers.GetAllBanners(db))
		banners.POST("", middleware.Protect, middleware.RequireAdmin, bannerControllers.CreateBanner(db))
		banners.PUT("/:id", middleware.Protect, middleware.RequireAdmin, bannerControllers.UpdateBanner(db))
		banners.DELETE("/:id", middleware.Protect, middleware.RequireAdmin, bannerControllers.DeleteBanner(db))
	}
}
