package services

import (
	"context"
	"errors"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentwheels/internal/apperr"
	"rentwheels/internal/cache"
	"rentwheels/internal/models"
)

type VehicleService struct {
	db    *gorm.DB
	cache *cache.VehicleCache // optional; nil means no caching
}

func NewVehicleService(db *gorm.DB, vehicleCache *cache.VehicleCache) *VehicleService {
	return &VehicleService{db: db, cache: vehicleCache}
}

type CreateVehicleInput struct {
	Name               string  `json:"vehicle_name"`
	Type               string  `json:"type"`
	RegistrationNumber string  `json:"registration_number"`
	DailyRentPrice     float64 `json:"daily_rent_price"`
	AvailabilityStatus string  `json:"availability_status"`
}

// VehiclePatch carries the optional fields of a partial update; nil means
// "leave unchanged".
type VehiclePatch struct {
	Name               *string  `json:"vehicle_name"`
	Type               *string  `json:"type"`
	RegistrationNumber *string  `json:"registration_number"`
	DailyRentPrice     *float64 `json:"daily_rent_price"`
	AvailabilityStatus *string  `json:"availability_status"`
}

func (s *VehicleService) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error) {
	if input.Name == "" || input.Type == "" || input.RegistrationNumber == "" ||
		input.DailyRentPrice == 0 || input.AvailabilityStatus == "" {
		return nil, apperr.InvalidInput("All fields are required")
	}
	if input.DailyRentPrice <= 0 {
		return nil, apperr.InvalidInput("Daily rent price must be positive")
	}
	if !models.ValidVehicleType(input.Type) {
		return nil, apperr.InvalidInput("Vehicle type must be one of 'car', 'bike', 'van', 'SUV'")
	}
	if !models.ValidAvailabilityStatus(input.AvailabilityStatus) {
		return nil, apperr.InvalidInput("Availability status must be 'available' or 'booked'")
	}

	vehicle := models.Vehicle{
		Name:               input.Name,
		Type:               input.Type,
		RegistrationNumber: input.RegistrationNumber,
		DailyRentPrice:     input.DailyRentPrice,
		AvailabilityStatus: input.AvailabilityStatus,
	}
	if err := s.db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return &vehicle, nil
}

// ListVehicles returns all vehicles newest first, serving from the cache
// when one is configured.
func (s *VehicleService) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if s.cache != nil {
		cached, err := s.cache.GetVehicles(ctx)
		if err != nil {
			logrus.WithError(err).Warn("vehicle cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	var vehicles []models.Vehicle
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&vehicles).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetVehicles(ctx, vehicles); err != nil {
			logrus.WithError(err).Warn("vehicle cache write failed")
		}
	}
	return vehicles, nil
}

func (s *VehicleService) GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vehicle not found")
		}
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle applies only the provided fields. A patch with nothing set
// returns the vehicle unchanged.
func (s *VehicleService) UpdateVehicle(ctx context.Context, id uint, patch VehiclePatch) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Type != nil {
		if !models.ValidVehicleType(*patch.Type) {
			return nil, apperr.InvalidInput("Vehicle type must be one of 'car', 'bike', 'van', 'SUV'")
		}
		updates["type"] = *patch.Type
	}
	if patch.RegistrationNumber != nil {
		updates["registration_number"] = *patch.RegistrationNumber
	}
	if patch.DailyRentPrice != nil {
		if *patch.DailyRentPrice <= 0 {
			return nil, apperr.InvalidInput("Daily rent price must be positive")
		}
		updates["daily_rent_price"] = *patch.DailyRentPrice
	}
	if patch.AvailabilityStatus != nil {
		if !models.ValidAvailabilityStatus(*patch.AvailabilityStatus) {
			return nil, apperr.InvalidInput("Availability status must be 'available' or 'booked'")
		}
		updates["availability_status"] = *patch.AvailabilityStatus
	}

	if len(updates) == 0 {
		return vehicle, nil
	}

	if err := s.db.WithContext(ctx).Model(vehicle).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.GetVehicleByID(ctx, id)
}

// DeleteVehicle removes a vehicle unless an active booking still references
// it.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id uint) error {
	vehicle, err := s.GetVehicleByID(ctx, id)
	if err != nil {
		return err
	}

	var active int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("vehicle_id = ? AND status = ?", id, models.BookingActive).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return apperr.InvalidState("Cannot delete vehicle with active bookings")
	}

	if err := s.db.WithContext(ctx).Delete(vehicle).Error; err != nil {
		return err
	}

	s.invalidateListing(ctx)
	return nil
}

func (s *VehicleService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("vehicle cache invalidation failed")
	}
}
