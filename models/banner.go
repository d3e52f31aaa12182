package models

import "time"

type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     string    `gorm:"not null" json:"image"`
	Title     string    `gorm:"not null" json:"title"`
	Subtitle  string    `gorm:"not null" json:"subtitle"`
	Link      string    `gorm:"default:'/shop'" json:"link"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
