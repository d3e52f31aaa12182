package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/payment"
	"github.com/aryantuntune/Rivaya-Ecommerce/middleware"
)

// SetupPaymentRoutes registers all /api/payment endpoints. The key endpoint is
// public; creation and verification require authentication.
func SetupPaymentRoutes(r *gin.Engine, pay *paymentControllers.Config) {
	payment := r.Group("/api/payment")
	{
		payment.POST("/create-order", middleware.Protect, paymentControllers.CreateOrderHandler(pay))
		payment.POST("/verify", middleware.Protect, paymentControllers.VerifyPaymentHandler(pay))
		payment.GET("/key", paymentControllers.KeyHandler(pay))
	}
}
