package authControllers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/logger"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
)

const bcryptCost = 12

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// issueJWT generates a signed token for a user, valid for 24 hours.
func issueJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// RegisterHandler creates a customer account and returns a fresh token.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "Email is already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to register"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to register"})
			return
		}

		user := models.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Name:      req.FirstName + " " + req.LastName,
			Email:     email,
			Password:  string(hash),
			Role:      models.RoleCustomer,
			Phone:     req.Phone,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to register"})
			return
		}

		token, err := issueJWT(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to issue token"})
			return
		}

		logger.Info().Uint("user_id", user.ID).Msg("user registered")
		c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
	}
}

// LoginHandler verifies the credentials and returns a token.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": err.Error()})
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "code": "UNAUTHORIZED", "message": "Invalid email or password"})
			return
		}

		token, err := issueJWT(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
	}
}

// MeHandler returns the authenticated user's profile.
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.Preload("Addresses").First(&user, c.GetUint("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "code": "NOT_FOUND", "message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// DeleteAccountHandler removes the caller's account. Orders are kept; the
// ledger never loses history.
func DeleteAccountHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Address{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, userID).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to delete account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
	}
}
