package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rentwheels/internal/models"
)

// newTestDB opens a fresh in-memory database per test so every test owns its
// storage handle for its whole run.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Booking{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Phone:    "0700000000",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedVehicle(t *testing.T, db *gorm.DB, registration, status string, price float64) *models.Vehicle {
	t.Helper()

	vehicle := &models.Vehicle{
		Name:               "Test Vehicle",
		Type:               "car",
		RegistrationNumber: registration,
		DailyRentPrice:     price,
		AvailabilityStatus: status,
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}
