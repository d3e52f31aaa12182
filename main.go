package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aryantuntune/Rivaya-Ecommerce/cache"
	paymentControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/payment"
	uploadControllers "github.com/aryantuntune/Rivaya-Ecommerce/controllers/upload"
	"github.com/aryantuntune/Rivaya-Ecommerce/logger"
	"github.com/aryantuntune/Rivaya-Ecommerce/metrics"
	"github.com/aryantuntune/Rivaya-Ecommerce/models"
	"github.com/aryantuntune/Rivaya-Ecommerce/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger.Init("storefront-api", os.Getenv("APP_ENV") != "production")
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logger.SetLevel(level)
	}
	logger.Info().Msg("starting application")

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Variant{},
		&models.Review{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Banner{},
		&models.Collection{},
		&models.Complaint{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate failed")
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	// Serve uploaded images
	r.Static("/uploads", uploadControllers.UploadDir())

	// Payment gateway config; endpoints answer 503 until the keys are set.
	pay := paymentControllers.LoadConfig()
	if pay == nil {
		logger.Warn().Msg("razorpay keys not configured, payment endpoints disabled")
	}

	// Optional Redis response cache; nil store means caching is off.
	store := cache.New()

	// Setup routes
	routes.SetupRoutes(r, db, pay, store)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	logger.Info().Str("port", port).Msg("server listening")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			logger.Fatal().Err(err).Msg("db connection failed")
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	return db
}
