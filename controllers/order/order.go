package orderControllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	paymentControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/payment"
	"github.com/aryantuntune/Rivaya-Ecommerce/logger"
	"github.com/aryantuntune/Rivaya-Ecommerce/mailer"
	"github.com/aryantuntune/Rivaya-Ecommerce/metrics"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	Product  uint    `json:"product" binding:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Size     string  `json:"size"`
	Image    string  `json:"image"`
}

// PaymentInfo carries the gateway callback triple for prepaid checkouts. The
// signature is re-verified server-side; the client never dictates paid state.
type PaymentInfo struct {
	GatewayOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
}

type PlaceOrderRequest struct {
	Items           []OrderItemInput       `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod" binding:"required"`
	Payment         *PaymentInfo           `json:"payment"`
	Subtotal        float64                `json:"subtotal"`
	ShippingCost    float64                `json:"shippingCost"`
	Total           float64                `json:"total"`
	OrderNotes      string                 `json:"orderNotes"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus   models.OrderStatus   `json:"orderStatus"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// -------- Helpers --------

func validPaymentMethod(m models.PaymentMethod) bool {
	switch m {
	case models.PaymentMethodCOD, models.PaymentMethodUPI, models.PaymentMethodCard, models.PaymentMethodNetBanking:
		return true
	}
	return false
}

func validOrderStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s models.PaymentStatus) bool {
	switch s {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
		return true
	}
	return false
}

// validatePlaceOrder checks everything that does not need the database:
// required shipping sub-fields, the payment method enum, line quantities and
// the money columns. The server recomputes total from subtotal + shippingCost
// and rejects a client total that disagrees.
func validatePlaceOrder(req *PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return &ValidationError{Field: "items.quantity", Message: "quantity must be at least 1"}
		}
	}

	addr := req.ShippingAddress
	required := map[string]string{
		"shippingAddress.fullName":     addr.FullName,
		"shippingAddress.phone":        addr.Phone,
		"shippingAddress.addressLine1": addr.AddressLine1,
		"shippingAddress.city":         addr.City,
		"shippingAddress.state":        addr.State,
		"shippingAddress.pincode":      addr.Pincode,
	}
	for field, value := range required {
		if value == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
	}

	if !validPaymentMethod(req.PaymentMethod) {
		return &ValidationError{Field: "paymentMethod", Message: "must be one of COD, UPI, Card, NetBanking"}
	}
	if req.Payment != nil &&
		(req.Payment.GatewayOrderID == "" || req.Payment.PaymentID == "" || req.Payment.Signature == "") {
		return &ValidationError{Field: "payment", Message: "razorpay order id, payment id and signature are required"}
	}

	if req.Subtotal < 0 {
		return &ValidationError{Field: "subtotal", Message: "must not be negative"}
	}
	if req.ShippingCost < 0 {
		return &ValidationError{Field: "shippingCost", Message: "must not be negative"}
	}
	if math.Abs(req.Total-(req.Subtotal+req.ShippingCost)) > 0.009 {
		return &ValidationError{Field: "total", Message: "must equal subtotal + shippingCost"}
	}
	return nil
}

// -------- Core Logic --------

// PlaceOrder reserves stock for every line item and persists the order as one
// unit of work. If any item fails, nothing is decremented and no order exists.
// markPaid records the order as already paid; the caller must have verified the
// gateway signature first.
func PlaceOrder(db *gorm.DB, userID uint, req *PlaceOrderRequest, markPaid bool) (*models.Order, error) {
	if err := validatePlaceOrder(req); err != nil {
		return nil, err
	}

	paymentStatus := models.PaymentStatusPending
	if markPaid {
		paymentStatus = models.PaymentStatusPaid
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: in.Product,
			Name:      in.Name,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Size:      in.Size,
			Image:     in.Image,
		})
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   paymentStatus,
		OrderStatus:     models.OrderStatusPending,
		Subtotal:        req.Subtotal,
		ShippingCost:    req.ShippingCost,
		Total:           req.Subtotal + req.ShippingCost,
		OrderNotes:      req.OrderNotes,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := reserveStock(tx, req.Items); err != nil {
			return err
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// -------- Handlers --------

// PlaceOrderHandler creates a new order for the authenticated user. Orders
// start Pending unless the request carries a gateway payment triple whose
// signature verifies against the configured secret.
func PlaceOrderHandler(db *gorm.DB, pay *paymentControllers.Config, store *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		markPaid := false
		if req.Payment != nil {
			if pay == nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "code": "PAYMENT_NOT_CONFIGURED", "message": "Server payment configuration missing"})
				return
			}
			if !paymentControllers.VerifySignature(pay.KeySecret,
				req.Payment.GatewayOrderID, req.Payment.PaymentID, req.Payment.Signature) {
				logger.Warn().Str("gateway_order_id", req.Payment.GatewayOrderID).Msg("order placement with bad payment signature rejected")
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "INVALID_PAYMENT_SIGNATURE", "message": "Invalid payment signature"})
				return
			}
			markPaid = true
		}

		userID := c.GetUint("user_id")
		order, err := PlaceOrder(db, userID, &req, markPaid)
		if err != nil {
			respondError(c, err)
			return
		}

		store.InvalidatePrefix(c.Request.Context(), "/api/products")

		metrics.OrdersPlaced.Inc()
		logger.Info().
			Uint("order_id", order.ID).
			Uint("user_id", userID).
			Float64("total", order.Total).
			Msg("order placed")

		broadcastNewOrder(order)

		if email := c.GetString("email"); email != "" {
			go mailer.SendOrderConfirmation(order, email)
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
	}
}

// GetMyOrdersHandler returns the caller's orders, newest first.
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Where("user_id = ?", c.GetUint("user_id")).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "data": orders})
	}
}

// GetOrderHandler returns a single order. Only the owner or an admin may read it.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch order"})
			return
		}

		if order.UserID != c.GetUint("user_id") && c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "code": "FORBIDDEN", "message": "Not authorized to access this order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

// GetAllOrdersHandler returns every order (admin back-office).
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "data": orders})
	}
}

// UpdateOrderStatusHandler lets an admin move orderStatus and/or paymentStatus.
// These are the only order fields that ever change after creation.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}
		if req.OrderStatus == "" && req.PaymentStatus == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "orderStatus or paymentStatus is required"})
			return
		}
		if req.OrderStatus != "" && !validOrderStatus(req.OrderStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "invalid order status"})
			return
		}
		if req.PaymentStatus != "" && !validPaymentStatus(req.PaymentStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "invalid payment status"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to fetch order"})
			return
		}

		if req.OrderStatus != "" {
			order.OrderStatus = req.OrderStatus
		}
		if req.PaymentStatus != "" {
			order.PaymentStatus = req.PaymentStatus
		}
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
