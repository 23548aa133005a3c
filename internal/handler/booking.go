package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gqcars/internal/domain"
	"gqcars/internal/service"
)

// BookingHandler handles HTTP requests for bookings and fare quotes.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// LocationPayload is the HTTP representation of a location.
type LocationPayload struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	Pickup          LocationPayload        `json:"pickup"`
	Destination     LocationPayload        `json:"destination"`
	ServiceType     string                 `json:"service_type"`
	PriceEstimate   *domain.PriceBreakdown `json:"price_estimate"`
	PassengerCount  int                    `json:"passenger_count,omitempty"`
	SpecialRequests string                 `json:"special_requests,omitempty"`
	ScheduledTime   string                 `json:"scheduled_time,omitempty"`
}

// UpdateStatusRequest is the HTTP request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// AssignDriverRequest is the HTTP request body for assigning a driver.
type AssignDriverRequest struct {
	Driver domain.Driver `json:"driver"`
}

// CancelBookingRequest is the HTTP request body for cancelling a booking.
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// QuoteRequest is the HTTP request body for a fare quote.
type QuoteRequest struct {
	ServiceType     string  `json:"service_type"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMin     float64 `json:"duration_min"`
	SchedulingType  string  `json:"scheduling_type,omitempty"`
	SurgeMultiplier float64 `json:"surge_multiplier,omitempty"`
}

func toLocation(p LocationPayload) domain.Location {
	return domain.Location{
		Coordinates: domain.Coordinates{Lat: p.Lat, Lng: p.Lng},
		Address:     p.Address,
	}
}

// Quote handles POST /v1/quotes
func (h *BookingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	breakdown, err := service.CalculateFare(
		domain.ServiceType(req.ServiceType),
		req.DistanceKm,
		req.DurationMin,
		service.FareOptions{
			SchedulingType:  req.SchedulingType,
			SurgeMultiplier: req.SurgeMultiplier,
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, breakdown)
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), service.CreateBookingRequest{
		Pickup:          toLocation(req.Pickup),
		Destination:     toLocation(req.Destination),
		ServiceType:     domain.ServiceType(req.ServiceType),
		PriceEstimate:   req.PriceEstimate,
		PassengerCount:  req.PassengerCount,
		SpecialRequests: req.SpecialRequests,
		ScheduledTime:   req.ScheduledTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, booking)
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}

// GetCurrent handles GET /v1/bookings/current
func (h *BookingHandler) GetCurrent(c *gin.Context) {
	booking, err := h.bookingService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if booking == nil {
		respondError(c, service.ErrNoCurrentBooking)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}

// ClearCurrent handles DELETE /v1/bookings/current
func (h *BookingHandler) ClearCurrent(c *gin.Context) {
	if err := h.bookingService.ClearCurrent(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatus handles POST /v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status, err := service.ValidateStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	booking, err := h.bookingService.Transition(c.Request.Context(), c.Param("id"), status, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}

// AssignDriver handles POST /v1/bookings/:id/driver
func (h *BookingHandler) AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.AssignDriver(c.Request.Context(), c.Param("id"), &req.Driver)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, booking)
}

// GetHistory handles GET /v1/bookings
func (h *BookingHandler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	bookings, err := h.bookingService.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, bookings)
}
