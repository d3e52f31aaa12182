package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	orderControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/order"
	paymentControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/payment"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupOrderRoutes registers all /api/orders endpoints. Every route requires
// authentication.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, pay *paymentControllers.Config, store *cache.Cache) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.Protect)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db, pay, store))
		orders.GET("/my-orders", orderControllers.GetMyOrdersHandler(db))

		orders.GET("", middleware.RequireAdmin, orderControllers.GetAllOrdersHandler(db))
		orders.GET("/export-excel", middleware.RequireAdmin, orderControllers.ExportOrdersToExcel(db))
		orders.GET("/ws", middleware.RequireAdmin, orderControllers.OrderFeedHandler)

		orders.GET("/:id", orderControllers.GetOrderHandler(db))
		orders.PUT("/:id/status", middleware.RequireAdmin, orderControllers.UpdateOrderStatusHandler(db))
	}
}
