package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"not null" json:"firstName"`
	LastName  string     `gorm:"not null" json:"lastName"`
	Name      string     `json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	Phone     string     `gorm:"not null" json:"phone"`
	Addresses []Address  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	CartItems []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Address struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"index" json:"-"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	IsDefault    bool   `json:"isDefault"`
}
