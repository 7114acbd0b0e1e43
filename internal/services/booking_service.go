package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentwheels/internal/apperr"
	"rentwheels/internal/cache"
	"rentwheels/internal/events"
	"rentwheels/internal/models"
)

// BookingService owns the booking lifecycle: creating bookings against
// available vehicles, pricing them, and moving booking and vehicle state
// together in one transaction.
type BookingService struct {
	db       *gorm.DB
	cache    *cache.VehicleCache // optional
	producer *events.Producer    // optional
}

type BookingOption func(*BookingService)

func WithVehicleCache(c *cache.VehicleCache) BookingOption {
	return func(s *BookingService) { s.cache = c }
}

func WithEventProducer(p *events.Producer) BookingOption {
	return func(s *BookingService) { s.producer = p }
}

func NewBookingService(db *gorm.DB, opts ...BookingOption) *BookingService {
	s := &BookingService{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateBookingInput struct {
	CustomerID    uint
	VehicleID     uint
	RentStartDate time.Time
	RentEndDate   time.Time
}

// rentalDays bills in whole 24h units, rounded up, never less than one day.
func rentalDays(start, end time.Time) int {
	span := end.Sub(start)
	if span < 0 {
		span = -span
	}
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// CreateBooking inserts an active booking and flips the vehicle to booked in
// one transaction. The flip is a compare-and-swap on availability_status, so
// of two concurrent attempts on the same vehicle only one can commit.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.CustomerID == 0 || input.VehicleID == 0 ||
		input.RentStartDate.IsZero() || input.RentEndDate.IsZero() {
		return nil, apperr.InvalidInput("All fields are required")
	}
	if !input.RentEndDate.After(input.RentStartDate) {
		return nil, apperr.InvalidInput("Rent end date must be after rent start date")
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, input.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Vehicle not found")
			}
			return err
		}
		if vehicle.AvailabilityStatus != models.VehicleAvailable {
			return apperr.InvalidState("Vehicle is not available for booking")
		}

		var customer models.User
		if err := tx.First(&customer, input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Customer not found")
			}
			return err
		}

		days := rentalDays(input.RentStartDate, input.RentEndDate)
		booking = models.Booking{
			CustomerID:    input.CustomerID,
			VehicleID:     input.VehicleID,
			RentStartDate: input.RentStartDate,
			RentEndDate:   input.RentEndDate,
			TotalPrice:    float64(days) * vehicle.DailyRentPrice,
			Status:        models.BookingActive,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		// Compare-and-swap: the earlier read is unlocked, so a concurrent
		// create may have taken the vehicle since. Zero rows means it did.
		res := tx.Model(&models.Vehicle{}).
			Where("id = ? AND availability_status = ?", input.VehicleID, models.VehicleAvailable).
			Update("availability_status", models.VehicleBooked)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("Vehicle is not available for booking")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.publish(ctx, events.EventBookingCreated, booking)
	return &booking, nil
}

// GetBookings returns all bookings newest-id-first; customers see only their
// own.
func (s *BookingService) GetBookings(ctx context.Context, userID uint, role string) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).Order("id DESC")
	if role == models.RoleCustomer && userID != 0 {
		query = query.Where("customer_id = ?", userID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingByID returns one booking; customers may only fetch their own.
func (s *BookingService) GetBookingByID(ctx context.Context, id uint, userID uint, role string) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == models.RoleCustomer && booking.CustomerID != userID {
		return nil, apperr.Forbidden("You can only view your own bookings")
	}
	return booking, nil
}

// UpdateBooking transitions a booking's status. Moving to cancelled or
// returned releases the vehicle in the same transaction; re-asserting active
// touches nothing else. Customers may only cancel before the rental starts.
func (s *BookingService) UpdateBooking(ctx context.Context, id uint, status string, userID uint, role string) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if role == models.RoleCustomer && booking.CustomerID != userID {
		return nil, apperr.Forbidden("You can only update your own bookings")
	}

	if status == "" {
		return nil, apperr.InvalidInput("Status is required")
	}
	if !models.ValidBookingStatus(status) {
		return nil, apperr.InvalidInput("Invalid status")
	}

	if role == models.RoleCustomer && status == models.BookingCancelled {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if !today.Before(booking.RentStartDate) {
			return nil, apperr.InvalidState("Cannot cancel booking: rental period has already started")
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(booking).Update("status", status).Error; err != nil {
			return err
		}

		if status == models.BookingCancelled || status == models.BookingReturned {
			if err := tx.Model(&models.Vehicle{}).
				Where("id = ?", booking.VehicleID).
				Update("availability_status", models.VehicleAvailable).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err = s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == models.BookingCancelled || status == models.BookingReturned {
		s.invalidateListing(ctx)
		eventType := events.EventBookingCancelled
		if status == models.BookingReturned {
			eventType = events.EventBookingReturned
		}
		s.publish(ctx, eventType, *booking)
	}
	return booking, nil
}

func (s *BookingService) findBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("vehicle cache invalidation failed")
	}
}

// publish emits a lifecycle event after commit. Event delivery never fails
// the request.
func (s *BookingService) publish(ctx context.Context, eventType string, booking models.Booking) {
	if s.producer == nil {
		return
	}
	event := events.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		VehicleID:  booking.VehicleID,
		Status:     booking.Status,
		TotalPrice: booking.TotalPrice,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, strconv.FormatUint(uint64(booking.ID), 10), event); err != nil {
		logrus.WithError(err).WithField("booking_id", booking.ID).Warn("booking event publish failed")
	}
}
