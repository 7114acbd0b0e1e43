package main

import (
	"log"
	"net/http"
	"time"

	"rentwheels/internal/cache"
	"rentwheels/internal/config"
	"rentwheels/internal/controllers"
	"rentwheels/internal/events"
	"rentwheels/internal/logger"
	"rentwheels/internal/middleware"
	"rentwheels/internal/routes"
	"rentwheels/internal/services"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis and Kafka are optional; without them the API serves straight
	// from postgres and skips event publishing.
	var vehicleCache *cache.VehicleCache
	if cfg.RedisAddr != "" {
		vehicleCache = cache.NewVehicleCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 5*time.Minute)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		defer producer.Close()
	}

	bookingOpts := []services.BookingOption{}
	if vehicleCache != nil {
		bookingOpts = append(bookingOpts, services.WithVehicleCache(vehicleCache))
	}
	if producer != nil {
		bookingOpts = append(bookingOpts, services.WithEventProducer(producer))
	}

	deps := routes.Deps{
		Auth:     controllers.NewAuthController(services.NewAuthService(db)),
		Users:    controllers.NewUserController(services.NewUserService(db)),
		Vehicles: controllers.NewVehicleController(services.NewVehicleService(db, vehicleCache)),
		Bookings: controllers.NewBookingController(services.NewBookingService(db, bookingOpts...)),
	}

	r := routes.SetupRouter(deps)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
