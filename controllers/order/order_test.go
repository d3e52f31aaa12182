package orderControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	paymentControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/payment"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Variant{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedSizedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          "Classic Tee",
		Description:   "Plain cotton tee",
		Category:      "tshirts",
		Price:         499,
		StockQuantity: 8,
		InStock:       true,
		Variants: []models.Variant{
			{Size: "S", Stock: 5},
			{Size: "M", Stock: 3},
		},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedFlatProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          "Tote Bag",
		Description:   "Canvas tote",
		Category:      "accessories",
		Price:         299,
		StockQuantity: 4,
		InStock:       true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func placeRequest(productID uint, size string, quantity int) *PlaceOrderRequest {
	return &PlaceOrderRequest{
		Items: []OrderItemInput{
			{Product: productID, Name: "Classic Tee", Price: 499, Quantity: quantity, Size: size},
		},
		ShippingAddress: models.ShippingAddress{
			FullName:     "Asha Rao",
			Phone:        "9876543210",
			AddressLine1: "12 MG Road",
			City:         "Pune",
			State:        "Maharashtra",
			Pincode:      "411001",
		},
		PaymentMethod: models.PaymentMethodCOD,
		Subtotal:      float64(quantity) * 499,
		ShippingCost:  50,
		Total:         float64(quantity)*499 + 50,
	}
}

func variantStock(t *testing.T, db *gorm.DB, productID uint, size string) int {
	t.Helper()
	var variant models.Variant
	require.NoError(t, db.First(&variant, "product_id = ? AND size = ?", productID, size).Error)
	return variant.Stock
}

func TestPlaceOrderDecrementsVariantStock(t *testing.T) {
	db := newTestDB(t)
	product := seedSizedProduct(t, db)

	order, err := PlaceOrder(db, 1, placeRequest(product.ID, "M", 2), false)
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	assert.Equal(t, 1, variantStock(t, db, product.ID, "M"))
	assert.Equal(t, 5, variantStock(t, db, product.ID, "S"))

	var fresh models.Product
	require.NoError(t, db.First(&fresh, product.ID).Error)
	assert.Equal(t, 6, fresh.StockQuantity)
	assert.Equal(t, 2, fresh.Analytics.Purchases)

	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 1048.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "M", order.Items[0].Size)
}

func TestPlaceOrderRejectsWhenStockExhausted(t *testing.T) {
	db := newTestDB(t)
	product := seedSizedProduct(t, db)

	_, err := PlaceOrder(db, 1, placeRequest(product.ID, "M", 2), false)
	require.NoError(t, err)

	// 1 unit left; a second checkout for 2 must lose cleanly.
	_, err = PlaceOrder(db, 2, placeRequest(product.ID, "M", 2), false)
	var outOfStock *InsufficientStockError
	require.ErrorAs(t, err, &outOfStock)
	assert.Equal(t, "M", outOfStock.Size)
	assert.Equal(t, 2, outOfStock.Requested)
	assert.Equal(t, 1, outOfStock.Available)

	assert.Equal(t, 1, variantStock(t, db, product.ID, "M"))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderInvalidSize(t *testing.T) {
	db := newTestDB(t)
	product := seedSizedProduct(t, db)

	_, err := PlaceOrder(db, 1, placeRequest(product.ID, "XL", 1), false)
	var invalidSize *InvalidSizeError
	require.ErrorAs(t, err, &invalidSize)
	assert.Equal(t, "XL", invalidSize.Requested)
	assert.ElementsMatch(t, []string{"S", "M"}, invalidSize.Available)

	// Size matching is case-sensitive.
	_, err = PlaceOrder(db, 1, placeRequest(product.ID, "m", 1), false)
	require.ErrorAs(t, err, &invalidSize)

	assert.Equal(t, 3, variantStock(t, db, product.ID, "M"))
	assert.Equal(t, 5, variantStock(t, db, product.ID, "S"))
}

func TestPlaceOrderProductNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := PlaceOrder(db, 1, placeRequest(9999, "M", 1), false)
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.EqualValues(t, 9999, notFound.ProductID)
}

func TestPlaceOrderAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	tee := seedSizedProduct(t, db)
	tote := seedFlatProduct(t, db)

	req := placeRequest(tee.ID, "M", 2)
	req.Items = append(req.Items, OrderItemInput{
		Product:  tote.ID,
		Name:     tote.Name,
		Price:    tote.Price,
		Quantity: 10, // only 4 in stock
	})
	req.Subtotal = 2*499 + 10*299
	req.Total = req.Subtotal + req.ShippingCost

	_, err := PlaceOrder(db, 1, req, false)
	var outOfStock *InsufficientStockError
	require.ErrorAs(t, err, &outOfStock)

	// The first line's decrement must have rolled back with the rest.
	assert.Equal(t, 3, variantStock(t, db, tee.ID, "M"))

	var fresh models.Product
	require.NoError(t, db.First(&fresh, tote.ID).Error)
	assert.Equal(t, 4, fresh.StockQuantity)
	assert.Equal(t, 0, fresh.Analytics.Purchases)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderFlatStock(t *testing.T) {
	db := newTestDB(t)
	tote := seedFlatProduct(t, db)

	req := placeRequest(tote.ID, "", 3)
	req.Subtotal = 3 * 299
	req.Total = req.Subtotal + req.ShippingCost

	_, err := PlaceOrder(db, 1, req, false)
	require.NoError(t, err)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, tote.ID).Error)
	assert.Equal(t, 1, fresh.StockQuantity)
	assert.Equal(t, 3, fresh.Analytics.Purchases)

	// One unit left; asking for two must fail without going negative.
	req = placeRequest(tote.ID, "", 2)
	req.Subtotal = 2 * 299
	req.Total = req.Subtotal + req.ShippingCost
	_, err = PlaceOrder(db, 1, req, false)
	var outOfStock *InsufficientStockError
	require.ErrorAs(t, err, &outOfStock)
	assert.Empty(t, outOfStock.Size)

	require.NoError(t, db.First(&fresh, tote.ID).Error)
	assert.Equal(t, 1, fresh.StockQuantity)
}

func TestPlaceOrderConcurrentCheckouts(t *testing.T) {
	db := newTestDB(t)
	product := seedSizedProduct(t, db)

	// Stock M is 3; two simultaneous checkouts for 2 each cannot both win.
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := PlaceOrder(db, userID, placeRequest(product.ID, "M", 2), false)
			results <- err
		}(uint(i + 1))
	}
	wg.Wait()
	close(results)

	var failures []error
	for err := range results {
		if err != nil {
			failures = append(failures, err)
		}
	}
	require.Len(t, failures, 1)
	var outOfStock *InsufficientStockError
	require.ErrorAs(t, failures[0], &outOfStock)

	assert.Equal(t, 1, variantStock(t, db, product.ID, "M"))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func placeOrderRouter(db *gorm.DB, pay *paymentControllers.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Next()
	}, PlaceOrderHandler(db, pay, nil))
	return r
}

func postOrder(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func orderBody(productID uint, payment string) string {
	body := fmt.Sprintf(`{
		"items":[{"product":%d,"name":"Classic Tee","price":499,"quantity":1,"size":"S"}],
		"shippingAddress":{"fullName":"Asha Rao","phone":"9876543210","addressLine1":"12 MG Road","city":"Pune","state":"Maharashtra","pincode":"411001"},
		"paymentMethod":"UPI",
		"subtotal":499,"shippingCost":50,"total":549`, productID)
	if payment != "" {
		body += `,"payment":` + payment
	}
	return body + "}"
}

func TestPlaceOrderPaymentVerification(t *testing.T) {
	cfg := &paymentControllers.Config{KeyID: "rzp_test_abc", KeySecret: "shh"}

	t.Run("verified signature marks order paid", func(t *testing.T) {
		db := newTestDB(t)
		product := seedSizedProduct(t, db)
		r := placeOrderRouter(db, cfg)

		payment := fmt.Sprintf(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"%s"}`,
			sign(cfg.KeySecret, "order_1", "pay_1"))
		w := postOrder(r, orderBody(product.ID, payment))
		require.Equal(t, http.StatusCreated, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order).Error)
		assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	})

	t.Run("bad signature rejects the placement", func(t *testing.T) {
		db := newTestDB(t)
		product := seedSizedProduct(t, db)
		r := placeOrderRouter(db, cfg)

		payment := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"deadbeef"}`
		w := postOrder(r, orderBody(product.ID, payment))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_PAYMENT_SIGNATURE")

		// Nothing persisted, nothing decremented.
		var count int64
		require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.Equal(t, 5, variantStock(t, db, product.ID, "S"))
	})

	t.Run("no payment info stays pending", func(t *testing.T) {
		db := newTestDB(t)
		product := seedSizedProduct(t, db)
		r := placeOrderRouter(db, cfg)

		w := postOrder(r, orderBody(product.ID, ""))
		require.Equal(t, http.StatusCreated, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order).Error)
		assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	})

	t.Run("client paymentStatus field is ignored", func(t *testing.T) {
		db := newTestDB(t)
		product := seedSizedProduct(t, db)
		r := placeOrderRouter(db, cfg)

		body := orderBody(product.ID, "")
		body = strings.TrimSuffix(body, "}") + `,"paymentStatus":"Paid"}`
		w := postOrder(r, body)
		require.Equal(t, http.StatusCreated, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order).Error)
		assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	})

	t.Run("payment info without config fails closed", func(t *testing.T) {
		db := newTestDB(t)
		product := seedSizedProduct(t, db)
		r := placeOrderRouter(db, nil)

		payment := fmt.Sprintf(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"%s"}`,
			sign("shh", "order_1", "pay_1"))
		w := postOrder(r, orderBody(product.ID, payment))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "PAYMENT_NOT_CONFIGURED")
	})
}

func TestValidatePlaceOrder(t *testing.T) {
	base := func() *PlaceOrderRequest { return placeRequest(1, "M", 1) }

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validatePlaceOrder(base()))
	})

	t.Run("total mismatch", func(t *testing.T) {
		req := base()
		req.Total = req.Total + 100
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "total", verr.Field)
	})

	t.Run("missing address field", func(t *testing.T) {
		req := base()
		req.ShippingAddress.Pincode = ""
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "shippingAddress.pincode", verr.Field)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		req := base()
		req.PaymentMethod = "Cheque"
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "paymentMethod", verr.Field)
	})

	t.Run("zero quantity", func(t *testing.T) {
		req := base()
		req.Items[0].Quantity = 0
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "items.quantity", verr.Field)
	})

	t.Run("no items", func(t *testing.T) {
		req := base()
		req.Items = nil
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "items", verr.Field)
	})

	t.Run("negative subtotal", func(t *testing.T) {
		req := base()
		req.Subtotal = -10
		req.Total = req.Subtotal + req.ShippingCost
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "subtotal", verr.Field)
	})

	t.Run("negative shipping cost", func(t *testing.T) {
		req := base()
		req.ShippingCost = -5
		req.Total = req.Subtotal + req.ShippingCost
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "shippingCost", verr.Field)
	})

	t.Run("incomplete payment triple", func(t *testing.T) {
		req := base()
		req.Payment = &PaymentInfo{GatewayOrderID: "order_1", PaymentID: "pay_1"}
		err := validatePlaceOrder(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "payment", verr.Field)
	})

	t.Run("rounding tolerance", func(t *testing.T) {
		req := base()
		req.Subtotal = 99.99
		req.ShippingCost = 0.01
		req.Total = 100.004
		assert.NoError(t, validatePlaceOrder(req))
	})
}
