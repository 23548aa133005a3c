package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gqcars/internal/repository"
	"gqcars/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrNoCurrentBooking):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingPickup),
		errors.Is(err, service.ErrMissingDestination),
		errors.Is(err, service.ErrMissingPriceEstimate),
		errors.Is(err, service.ErrInvalidServiceType),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrIncompleteAssessment),
		errors.Is(err, service.ErrInvalidRiskWeight),
		errors.Is(err, service.ErrMissingContactName),
		errors.Is(err, service.ErrInvalidPhoneNumber),
		errors.Is(err, service.ErrInvalidCardNumber),
		errors.Is(err, service.ErrInvalidExpiryDate),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPaymentMethodID):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrConcurrentUpdate),
		errors.Is(err, service.ErrPaymentDeclined):
		return http.StatusConflict

	// Service unavailable
	case errors.Is(err, service.ErrGatewayUnavailable),
		errors.Is(err, service.ErrLocationUnavailable),
		errors.Is(err, service.ErrSMSUnavailable),
		errors.Is(err, service.ErrCannotCall):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
