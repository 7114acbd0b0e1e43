package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rentwheels/internal/apperr"
	"rentwheels/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserPatch carries the updatable user fields; nil means "leave unchanged".
// Email and password are not updatable through this path.
type UserPatch struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies the provided subset of {name, phone, role}. Customers
// may only update their own record and may not change roles.
func (s *UserService) UpdateUser(ctx context.Context, id uint, patch UserPatch, actorID uint, actorRole string) (*models.User, error) {
	if actorRole != models.RoleAdmin && actorID != id {
		return nil, apperr.Forbidden("You can only update your own profile")
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return nil, apperr.InvalidInput("Invalid role. Must be 'admin' or 'customer'")
		}
		if actorRole != models.RoleAdmin {
			return nil, apperr.Forbidden("Only admins can change roles")
		}
		updates["role"] = *patch.Role
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

// DeleteUser removes a user unless they still own an active booking.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	var active int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("customer_id = ? AND status = ?", id, models.BookingActive).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return apperr.InvalidState("Cannot delete user with active bookings")
	}

	return s.db.WithContext(ctx).Delete(user).Error
}
