package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentwheels/internal/apperr"
	"rentwheels/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func vehicleStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var vehicle models.Vehicle
	require.NoError(t, db.First(&vehicle, id).Error)
	return vehicle.AvailabilityStatus
}

func TestCreateBookingFlipsAvailability(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: day(1),
		RentEndDate:   day(3),
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingActive, booking.Status)
	assert.Equal(t, 200.0, booking.TotalPrice) // 2 days at 100
	assert.Equal(t, models.VehicleBooked, vehicleStatus(t, db, vehicle.ID))
}

func TestCreateBookingPricingRoundsUp(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{"two exact days", day(1), day(3), 200},
		{"half day bills one day", day(1), day(1).Add(12 * time.Hour), 100},
		{"one second over a day bills two", day(1), day(2).Add(time.Second), 200},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vehicle := seedVehicle(t, db, "KAA 10"+string(rune('A'+i)), models.VehicleAvailable, 100)
			booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
				CustomerID:    customer.ID,
				VehicleID:     vehicle.ID,
				RentStartDate: tc.start,
				RentEndDate:   tc.end,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, booking.TotalPrice)
		})
	}
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

	for _, end := range []time.Time{day(1), day(1).Add(-time.Hour)} {
		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			CustomerID:    customer.ID,
			VehicleID:     vehicle.ID,
			RentStartDate: day(1),
			RentEndDate:   end,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
	}

	// Missing fields fail before any lookup
	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		VehicleID:     vehicle.ID,
		RentStartDate: day(1),
		RentEndDate:   day(2),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))
}

func TestCreateBookingMissingRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID,
		VehicleID:     vehicle.ID + 99,
		RentStartDate: day(1),
		RentEndDate:   day(2),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID + 99,
		VehicleID:     vehicle.ID,
		RentStartDate: day(1),
		RentEndDate:   day(2),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The failed attempts must leave no booking row and no availability flip
	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, models.VehicleAvailable, vehicleStatus(t, db, vehicle.ID))
}

func TestCreateBookingUnavailableVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleBooked, 100)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: day(1),
		RentEndDate:   day(2),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestGetBookingsScopedByRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", models.RoleCustomer)

	for i, customer := range []*models.User{alice, bob, alice} {
		vehicle := seedVehicle(t, db, "KAA 20"+string(rune('A'+i)), models.VehicleAvailable, 50)
		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			CustomerID:    customer.ID,
			VehicleID:     vehicle.ID,
			RentStartDate: day(1),
			RentEndDate:   day(2),
		})
		require.NoError(t, err)
	}

	own, err := svc.GetBookings(context.Background(), alice.ID, models.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, b := range own {
		assert.Equal(t, alice.ID, b.CustomerID)
	}
	// Newest id first
	assert.Greater(t, own[0].ID, own[1].ID)

	all, err := svc.GetBookings(context.Background(), 0, models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetBookingByIDOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    alice.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: day(1),
		RentEndDate:   day(2),
	})
	require.NoError(t, err)

	_, err = svc.GetBookingByID(context.Background(), booking.ID, bob.ID, models.RoleCustomer)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	got, err := svc.GetBookingByID(context.Background(), booking.ID, 0, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.GetBookingByID(context.Background(), booking.ID+99, 0, models.RoleAdmin)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateBookingReleasesVehicle(t *testing.T) {
	for _, status := range []string{models.BookingCancelled, models.BookingReturned} {
		t.Run(status, func(t *testing.T) {
			db := newTestDB(t)
			svc := NewBookingService(db)
			customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)
			vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

			booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
				CustomerID:    customer.ID,
				VehicleID:     vehicle.ID,
				RentStartDate: day(1),
				RentEndDate:   day(2),
			})
			require.NoError(t, err)
			require.Equal(t, models.VehicleBooked, vehicleStatus(t, db, vehicle.ID))

			updated, err := svc.UpdateBooking(context.Background(), booking.ID, status, 0, models.RoleAdmin)
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
			assert.Equal(t, models.VehicleAvailable, vehicleStatus(t, db, vehicle.ID))
		})
	}
}

func TestUpdateBookingActiveKeepsVehicleBooked(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: day(1),
		RentEndDate:   day(2),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBooking(context.Background(), booking.ID, models.BookingActive, 0, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.BookingActive, updated.Status)
	assert.Equal(t, models.VehicleBooked, vehicleStatus(t, db, vehicle.ID))
}

func TestUpdateBookingCancellationWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	customer := seedUser(t, db, "alice@example.com", models.RoleCustomer)

	// Rental already started yesterday: the customer may not cancel, the
	// admin may.
	started := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)
	startedBooking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID,
		VehicleID:     started.ID,
		RentStartDate: time.Now().Add(-24 * time.Hour),
		RentEndDate:   time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateBooking(context.Background(), startedBooking.ID, models.BookingCancelled, customer.ID, models.RoleCustomer)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	assert.Equal(t, models.VehicleBooked, vehicleStatus(t, db, started.ID))

	_, err = svc.UpdateBooking(context.Background(), startedBooking.ID, models.BookingCancelled, 0, models.RoleAdmin)
	require.NoError(t, err)

	// Rental starting in two days: the customer may still cancel.
	upcoming := seedVehicle(t, db, "KAA 002A", models.VehicleAvailable, 100)
	upcomingBooking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    customer.ID,
		VehicleID:     upcoming.ID,
		RentStartDate: time.Now().Add(48 * time.Hour),
		RentEndDate:   time.Now().Add(96 * time.Hour),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBooking(context.Background(), upcomingBooking.ID, models.BookingCancelled, customer.ID, models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
	assert.Equal(t, models.VehicleAvailable, vehicleStatus(t, db, upcoming.ID))
}

func TestUpdateBookingAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	alice := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", models.RoleCustomer)
	vehicle := seedVehicle(t, db, "KAA 001A", models.VehicleAvailable, 100)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		CustomerID:    alice.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: time.Now().Add(48 * time.Hour),
		RentEndDate:   time.Now().Add(96 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateBooking(context.Background(), booking.ID, models.BookingCancelled, bob.ID, models.RoleCustomer)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	_, err = svc.UpdateBooking(context.Background(), booking.ID, "", alice.ID, models.RoleCustomer)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))

	_, err = svc.UpdateBooking(context.Background(), booking.ID, "finished", alice.ID, models.RoleCustomer)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput))

	_, err = svc.UpdateBooking(context.Background(), booking.ID+99, models.BookingCancelled, 0, models.RoleAdmin)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
