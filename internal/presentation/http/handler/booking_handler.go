package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/application/service"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/request"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles recording a confirmed booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &service.CreateBookingInput{
		CustomerID:  req.CustomerID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		TotalAmount: req.TotalAmount,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// Get handles retrieving a single booking
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// List handles listing bookings, optionally filtered by status
func (h *BookingHandler) List(c *gin.Context) {
	result, err := h.bookingService.ListBookings(c.Request.Context(), paginationParams(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bookings retrieved successfully", result)
}

// Cancel handles cancelling a booking. Settled bookings cannot be
// cancelled; cancelling twice is a no-op.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking cancelled successfully", booking)
}
