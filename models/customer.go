package models

import (
	"time"
)

// Customer is identified by the (name, phone) pair. The composite unique
// index backs the atomic find-or-create in services.CustomerService.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_customer_identity" json:"name"`
	Phone     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_identity" json:"phone"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
