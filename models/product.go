package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is the catalog record. Per-size stock lives in Variants; StockQuantity
// is the legacy flat counter kept for products without variants and as a
// best-effort aggregate mirror for products with them.
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;index" json:"name"`
	Description   string         `gorm:"not null" json:"description"`
	Category      string         `gorm:"index" json:"category"`
	Price         float64        `gorm:"not null;index" json:"price"`
	OriginalPrice float64        `json:"originalPrice,omitempty"`
	Images        []string       `gorm:"serializer:json" json:"images"`
	Colors        []string       `gorm:"serializer:json" json:"colors"`
	Sizes         []string       `gorm:"serializer:json" json:"sizes"`
	Variants      []Variant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	InStock       bool           `gorm:"default:true" json:"inStock"`
	StockQuantity int            `json:"stockQuantity"`
	IsNewArrival  bool           `json:"isNewArrival"`
	Trending      bool           `json:"trending"`
	Rating        float64        `json:"rating"`
	Reviews       []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews"`
	NumReviews    int            `json:"numReviews"`
	Analytics     Analytics      `gorm:"embedded;embeddedPrefix:analytics_" json:"analytics"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Variant is a per-size stock keeping unit.
type Variant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"-"`
	Size      string `gorm:"not null" json:"size"`
	Stock     int    `gorm:"not null;default:0" json:"stock"`
	SKU       string `json:"sku,omitempty"`
}

// Analytics holds interaction counters, embedded into the products table.
type Analytics struct {
	Views     int `json:"views"`
	AddToCart int `json:"addToCart"`
	Wishlist  int `json:"wishlist"`
	Purchases int `json:"purchases"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"-"`
	User      string    `gorm:"not null" json:"user"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"not null" json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}
