package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentwheels/internal/apperr"
	"rentwheels/internal/models"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Signup validates the input, rejects duplicate emails before writing, and
// stores the user with a bcrypt-hashed password. Role defaults to customer.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Phone == "" {
		return nil, apperr.InvalidInput("All fields are required")
	}
	if len(input.Password) < 6 {
		return nil, apperr.InvalidInput("Password must be at least 6 characters long")
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) {
		return nil, apperr.InvalidInput("Role must be 'admin' or 'customer'")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperr.InvalidInput("User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     input.Name,
		Email:    email,
		Password: string(hash),
		Phone:    input.Phone,
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Signin verifies credentials and returns the matching user. Token issuance
// stays with the HTTP layer.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperr.InvalidInput("Email and Password are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid password")
	}

	return &user, nil
}
