package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"

	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"

	PaymentMethodCOD        PaymentMethod = "COD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCard       PaymentMethod = "Card"
	PaymentMethodNetBanking PaymentMethod = "NetBanking"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"userId"`
	User            User            `gorm:"foreignKey:UserID" json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20);not null" json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"paymentStatus"`
	OrderStatus     OrderStatus     `gorm:"type:VARCHAR(20);default:'Pending'" json:"orderStatus"`
	Subtotal        float64         `gorm:"not null" json:"subtotal"`
	ShippingCost    float64         `json:"shippingCost"`
	Total           float64         `gorm:"not null" json:"total"`
	OrderNotes      string          `json:"orderNotes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem is a denormalized snapshot of the product at purchase time. Products
// may be edited or deleted later; the order keeps what was bought.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Image     string  `json:"image,omitempty"`
}

type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}
