// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

const (
	VehicleAvailable = "available"
	VehicleBooked    = "booked"
)

type Vehicle struct {
	gorm.Model
	Name               string  `json:"vehicle_name"`
	Type               string  `json:"type"` // "car", "bike", "van", "SUV"
	RegistrationNumber string  `json:"registration_number" gorm:"unique"`
	DailyRentPrice     float64 `json:"daily_rent_price"`
	AvailabilityStatus string  `json:"availability_status" gorm:"default:available"`
}

// ValidVehicleType reports whether t is a supported vehicle type.
func ValidVehicleType(t string) bool {
	switch t {
	case "car", "bike", "van", "SUV":
		return true
	}
	return false
}

// ValidAvailabilityStatus reports whether s is "available" or "booked".
func ValidAvailabilityStatus(s string) bool {
	return s == VehicleAvailable || s == VehicleBooked
}
