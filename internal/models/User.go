package models

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"` // hashed; never serialized
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "admin" or "customer"
}

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}
