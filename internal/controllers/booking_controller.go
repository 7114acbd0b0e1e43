package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"rentwheels/internal/apperr"
	"rentwheels/internal/middleware"
	"rentwheels/internal/respond"
	"rentwheels/internal/services"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func (ct *BookingController) Create(c *gin.Context) {
	var body struct {
		CustomerID    uint   `json:"customer_id"`
		VehicleID     uint   `json:"vehicle_id"`
		RentStartDate string `json:"rent_start_date"`
		RentEndDate   string `json:"rent_end_date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid request body"))
		return
	}

	start, err := parseDate(body.RentStartDate)
	if err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid rent_start_date"))
		return
	}
	end, err := parseDate(body.RentEndDate)
	if err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid rent_end_date"))
		return
	}

	ident, _ := middleware.CurrentUser(c)
	customerID := body.CustomerID
	// Customers always book for themselves; only admins may book on behalf
	// of another customer.
	if !ident.IsAdmin() || customerID == 0 {
		customerID = ident.UserID
	}

	booking, err := ct.bookings.CreateBooking(c.Request.Context(), services.CreateBookingInput{
		CustomerID:    customerID,
		VehicleID:     body.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Created(c, "Booking created successfully", gin.H{"booking": booking})
}

func (ct *BookingController) List(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	bookings, err := ct.bookings.GetBookings(c.Request.Context(), ident.UserID, ident.Role)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Bookings retrieved successfully", bookings)
}

func (ct *BookingController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ident, _ := middleware.CurrentUser(c)
	booking, err := ct.bookings.GetBookingByID(c.Request.Context(), id, ident.UserID, ident.Role)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Booking retrieved successfully", gin.H{"booking": booking})
}

func (ct *BookingController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid request body"))
		return
	}

	ident, _ := middleware.CurrentUser(c)
	booking, err := ct.bookings.UpdateBooking(c.Request.Context(), id, body.Status, ident.UserID, ident.Role)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Booking updated successfully", gin.H{"booking": booking})
}

// parseDate accepts plain dates and RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
