package models

import "time"

type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "Pending"
	ComplaintStatusResolved ComplaintStatus = "Resolved"
)

type Complaint struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	Name   string          `gorm:"not null" json:"name"`
	Email  string          `gorm:"not null" json:"email"`
	Issue  string          `gorm:"not null" json:"issue"`
	Status ComplaintStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	Date   time.Time       `json:"date"`
}
