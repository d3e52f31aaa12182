package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aryantuntune/Rivaya-Ecommerce/metrics"
)

// ProductNotFoundError is returned when a line item references a product that
// does not exist (or was deleted).
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidSizeError is returned when the requested size does not match any
// variant of the product. Size matching is case-sensitive.
type InvalidSizeError struct {
	ProductID   uint
	ProductName string
	Requested   string
	Available   []string
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("size %s invalid for %s (available: %s)",
		e.Requested, e.ProductName, strings.Join(e.Available, ", "))
}

// InsufficientStockError is returned when the requested quantity exceeds the
// available stock. Size is empty for flat-stock products.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Size        string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.Size != "" {
		return fmt.Sprintf("%s (Size: %s) is out of stock: requested %d, available %d",
			e.ProductName, e.Size, e.Requested, e.Available)
	}
	return fmt.Sprintf("%s is out of stock: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// ValidationError is returned for a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// respondError maps a placement failure to a structured HTTP error payload
// with a stable machine-readable code. Internal details never reach clients.
func respondError(c *gin.Context, err error) {
	var (
		notFound     *ProductNotFoundError
		invalidSize  *InvalidSizeError
		outOfStock   *InsufficientStockError
		invalidField *ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		metrics.OrdersRejected.WithLabelValues("product_not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "PRODUCT_NOT_FOUND", "message": err.Error()})
	case errors.As(err, &invalidSize):
		metrics.OrdersRejected.WithLabelValues("invalid_size").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "INVALID_SIZE", "message": err.Error()})
	case errors.As(err, &outOfStock):
		metrics.OrdersRejected.WithLabelValues("insufficient_stock").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "INSUFFICIENT_STOCK", "message": err.Error()})
	case errors.As(err, &invalidField):
		metrics.OrdersRejected.WithLabelValues("validation").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
	default:
		metrics.OrdersRejected.WithLabelValues("internal").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to place order"})
	}
}
