package models

import "time"

// CartItem is a server-side cart row, one per (user, product, size).
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"-"`
	ProductID uint      `gorm:"not null" json:"product"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"productDetails"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Size      string    `json:"size,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}
