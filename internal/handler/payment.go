package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gqcars/internal/domain"
	"gqcars/internal/service"
)

// PaymentHandler handles HTTP requests for payment methods and charges.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// AddMethodRequest is the HTTP request body for storing a card.
type AddMethodRequest struct {
	CardNumber     string                `json:"card_number"`
	ExpMonth       int                   `json:"exp_month"`
	ExpYear        int                   `json:"exp_year"`
	BillingDetails domain.BillingDetails `json:"billing_details"`
	MakeDefault    bool                  `json:"make_default,omitempty"`
}

// AuthorizeRequest is the HTTP request body for a one-shot charge.
type AuthorizeRequest struct {
	PaymentMethodID  string `json:"payment_method_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Currency         string `json:"currency,omitempty"`
	Description      string `json:"description,omitempty"`
}

// ListMethods handles GET /v1/payment-methods
func (h *PaymentHandler) ListMethods(c *gin.Context) {
	methods, err := h.paymentService.ListMethods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, methods)
}

// AddMethod handles POST /v1/payment-methods
func (h *PaymentHandler) AddMethod(c *gin.Context) {
	var req AddMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	method, err := h.paymentService.AddMethod(c.Request.Context(), service.AddMethodRequest{
		CardNumber:     req.CardNumber,
		ExpMonth:       req.ExpMonth,
		ExpYear:        req.ExpYear,
		BillingDetails: req.BillingDetails,
		MakeDefault:    req.MakeDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, method)
}

// RemoveMethod handles DELETE /v1/payment-methods/:id
func (h *PaymentHandler) RemoveMethod(c *gin.Context) {
	if err := h.paymentService.RemoveMethod(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDefault handles POST /v1/payment-methods/:id/default
func (h *PaymentHandler) SetDefault(c *gin.Context) {
	if err := h.paymentService.SetDefault(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Authorize handles POST /v1/payments/authorize
func (h *PaymentHandler) Authorize(c *gin.Context) {
	var req AuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	auth, err := h.paymentService.Authorize(c.Request.Context(), service.AuthorizeRequest{
		PaymentMethodID:  req.PaymentMethodID,
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
		Description:      req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, auth)
}
