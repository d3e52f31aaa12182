package cartControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Variant{}, &models.CartItem{}))
	return db
}

// asUser stands in for the auth middleware during tests.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cart := r.Group("/api/cart", asUser(userID))
	{
		cart.GET("", GetCart(db))
		cart.POST("", UpsertCartItem(db))
		cart.DELETE("/:productId", DeleteCartItem(db))
		cart.DELETE("", ClearCart(db))
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        "Classic Tee",
		Description: "Plain cotton tee",
		Price:       499,
		Variants:    []models.Variant{{Size: "S", Stock: 5}, {Size: "M", Stock: 3}},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCartUpsert(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)
	r := newRouter(db, 7)

	body := fmt.Sprintf(`{"product":%d,"quantity":2,"size":"M"}`, product.ID)
	w := doJSON(r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same (product, size) replaces the quantity instead of adding a row.
	body = fmt.Sprintf(`{"product":%d,"quantity":5,"size":"M"}`, product.ID)
	w = doJSON(r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusOK, w.Code)

	// A different size is its own row.
	body = fmt.Sprintf(`{"product":%d,"quantity":1,"size":"S"}`, product.ID)
	w = doJSON(r, http.MethodPost, "/api/cart", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var items []models.CartItem
	require.NoError(t, db.Where("user_id = ?", 7).Order("size").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[1].Quantity) // size M
	assert.Equal(t, 1, items[0].Quantity) // size S

	t.Run("unknown product", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/cart", `{"product":9999,"quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero quantity", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/cart", fmt.Sprintf(`{"product":%d,"quantity":0}`, product.ID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetCartScopedToUser(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)

	mine := newRouter(db, 7)
	theirs := newRouter(db, 8)

	body := fmt.Sprintf(`{"product":%d,"quantity":2,"size":"M"}`, product.ID)
	require.Equal(t, http.StatusCreated, doJSON(mine, http.MethodPost, "/api/cart", body).Code)

	w := doJSON(mine, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count int               `json:"count"`
		Data  []models.CartItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Classic Tee", resp.Data[0].Product.Name)
	assert.Len(t, resp.Data[0].Product.Variants, 2)

	w = doJSON(theirs, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}

func TestDeleteCartItem(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)
	r := newRouter(db, 7)

	for _, size := range []string{"S", "M"} {
		body := fmt.Sprintf(`{"product":%d,"quantity":1,"size":"%s"}`, product.ID, size)
		require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/cart", body).Code)
	}

	// Narrowed by size, only that row goes.
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/cart/%d?size=M", product.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Without size, the rest of the product's rows go.
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", product.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/cart/%d", product.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db)
	r := newRouter(db, 7)

	body := fmt.Sprintf(`{"product":%d,"quantity":2,"size":"M"}`, product.ID)
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/cart", body).Code)

	w := doJSON(r, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&count).Error)
	assert.Zero(t, count)
}
