package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aryantuntune/Rivaya-Ecommerce/logger"
)

const defaultAPIBase = "https://api.razorpay.com/v1"

// Config holds the gateway credentials, loaded once at startup. A nil *Config
// means payments are not configured: every payment endpoint then fails closed
// with 503 instead of falling back to a guessable default secret.
type Config struct {
	KeyID     string
	KeySecret string
	APIBase   string
	Client    *http.Client
}

// LoadConfig reads the Razorpay credentials from the environment. Returns nil
// when either key is missing.
func LoadConfig() *Config {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil
	}

	apiBase := os.Getenv("RAZORPAY_API_URL")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	return &Config{
		KeyID:     keyID,
		KeySecret: keySecret,
		APIBase:   apiBase,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func notConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "code": "PAYMENT_NOT_CONFIGURED", "message": "Server payment configuration missing"})
}

// GatewayOrder is the subset of the Razorpay order object the frontend needs.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// createGatewayOrder posts an order to the Razorpay API. Amount is in rupees;
// the gateway wants paise.
func createGatewayOrder(cfg *Config, amount float64) (*GatewayOrder, error) {
	payload := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": "INR",
		"receipt":  "receipt_" + uuid.NewString(),
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, cfg.APIBase+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(cfg.KeyID, cfg.KeySecret)

	resp, err := cfg.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach razorpay: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var gwErr gatewayError
		if json.Unmarshal(body, &gwErr) == nil && gwErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay error: %s", gwErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay API error (%d)", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay response: %w", err)
	}
	return &order, nil
}

// VerifySignature checks the client-reported payment signature:
// HMAC-SHA256(secret, orderID + "|" + paymentID), hex digest, compared in
// constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// -------- Handlers --------

// CreateOrderHandler creates a gateway order for the given amount.
func CreateOrderHandler(cfg *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg == nil {
			notConfigured(c)
			return
		}

		var input struct {
			Amount float64 `json:"amount" binding:"required,gt=0"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "Amount is required"})
			return
		}

		order, err := createGatewayOrder(cfg, input.Amount)
		if err != nil {
			logger.Error().Err(err).Float64("amount", input.Amount).Msg("razorpay order creation failed")
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "code": "GATEWAY_ERROR", "message": "Payment initiation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// VerifyPaymentHandler confirms a client-reported payment completion. On a bad
// signature the caller must not mark anything as paid.
func VerifyPaymentHandler(cfg *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg == nil {
			notConfigured(c)
			return
		}

		var input struct {
			OrderID   string `json:"razorpay_order_id" binding:"required"`
			PaymentID string `json:"razorpay_payment_id" binding:"required"`
			Signature string `json:"razorpay_signature" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		if !VerifySignature(cfg.KeySecret, input.OrderID, input.PaymentID, input.Signature) {
			logger.Warn().Str("gateway_order_id", input.OrderID).Msg("payment signature verification failed")
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "INVALID_PAYMENT_SIGNATURE", "message": "Invalid payment signature"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified successfully"})
	}
}

// KeyHandler returns the publishable key id for the frontend. The secret is
// never exposed.
func KeyHandler(cfg *Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg == nil {
			notConfigured(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"key": cfg.KeyID})
	}
}
