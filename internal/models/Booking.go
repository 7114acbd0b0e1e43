package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
	BookingReturned  = "returned"
)

// Booking records one rental of a vehicle by a customer. While status is
// "active" the vehicle it references is held as "booked".
type Booking struct {
	gorm.Model
	CustomerID    uint      `json:"customer_id" gorm:"index"`
	VehicleID     uint      `json:"vehicle_id" gorm:"index"`
	RentStartDate time.Time `json:"rent_start_date"`
	RentEndDate   time.Time `json:"rent_end_date"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status" gorm:"default:active"`
}

// ValidBookingStatus reports whether s is one of active, cancelled, returned.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingActive, BookingCancelled, BookingReturned:
		return true
	}
	return false
}
