package models

import (
	"time"
)

// Reservation books a numbered table (1-15) for a customer at a specific
// date/time. Overlapping bookings at the same table and time are allowed.
type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CustomerID      uint      `gorm:"not null;index" json:"customer_id"`
	Customer        Customer  `gorm:"foreignKey:CustomerID" json:"customer"`
	TableNumber     int       `gorm:"not null" json:"table_number"`
	ReservationDate time.Time `gorm:"not null;index" json:"reservation_date"`
	GuestCount      int       `gorm:"not null;default:2" json:"guest_count"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
