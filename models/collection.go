package models

import "time"

type Collection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	Products    []Product `gorm:"many2many:collection_products" json:"products"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
