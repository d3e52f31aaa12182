package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	paymentControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/payment"
)

// SetupRoutes is the single entry point that wires up every route group under
// /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pay *paymentControllers.Config, store *cache.Cache) {
	SetupAuthRoutes(r, db)
	SetupProductRoutes(r, db, store)
	SetupOrderRoutes(r, db, pay, store)
	SetupCartRoutes(r, db)
	SetupPaymentRoutes(r, pay)
	SetupBannerRoutes(r, db)
	SetupCollectionRoutes(r, db)
	SetupComplaintRoutes(r, db)
	SetupUploadRoutes(r)
}
