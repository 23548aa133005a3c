package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gqcars/internal/service"
)

// EmergencyHandler handles HTTP requests for emergency contacts and
// activations.
type EmergencyHandler struct {
	emergencyService *service.EmergencyService
}

// NewEmergencyHandler creates a new EmergencyHandler.
func NewEmergencyHandler(emergencyService *service.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyService: emergencyService,
	}
}

// AddContactRequest is the HTTP request body for adding an emergency contact.
type AddContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship,omitempty"`
}

// ActivateRequest is the HTTP request body for an emergency activation.
type ActivateRequest struct {
	CallEmergencyServices bool   `json:"call_emergency_services"`
	AlertContacts         bool   `json:"alert_contacts"`
	AlertDispatch         bool   `json:"alert_dispatch"`
	Template              string `json:"template,omitempty"`
	CustomMessage         string `json:"custom_message,omitempty"`
}

// EmergencyStatusResponse reports whether an emergency is active.
type EmergencyStatusResponse struct {
	Active bool `json:"active"`
}

// ListContacts handles GET /v1/emergency/contacts
func (h *EmergencyHandler) ListContacts(c *gin.Context) {
	contacts, err := h.emergencyService.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, contacts)
}

// AddContact handles POST /v1/emergency/contacts
func (h *EmergencyHandler) AddContact(c *gin.Context) {
	var req AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	contact, err := h.emergencyService.AddContact(c.Request.Context(), service.AddContactRequest{
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, contact)
}

// RemoveContact handles DELETE /v1/emergency/contacts/:id
func (h *EmergencyHandler) RemoveContact(c *gin.Context) {
	if err := h.emergencyService.RemoveContact(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTemplates handles GET /v1/emergency/templates
func (h *EmergencyHandler) GetTemplates(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.emergencyService.MessageTemplates())
}

// Activate handles POST /v1/emergency/activate
func (h *EmergencyHandler) Activate(c *gin.Context) {
	var req ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	activation, err := h.emergencyService.Activate(c.Request.Context(), service.ActivateOptions{
		CallEmergencyServices: req.CallEmergencyServices,
		AlertContacts:         req.AlertContacts,
		AlertDispatch:         req.AlertDispatch,
		Template:              req.Template,
		CustomMessage:         req.CustomMessage,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, activation)
}

// Deactivate handles POST /v1/emergency/deactivate
func (h *EmergencyHandler) Deactivate(c *gin.Context) {
	if err := h.emergencyService.Deactivate(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStatus handles GET /v1/emergency/status
func (h *EmergencyHandler) GetStatus(c *gin.Context) {
	active, err := h.emergencyService.IsActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EmergencyStatusResponse{Active: active})
}

// GetLastActivation handles GET /v1/emergency/last
func (h *EmergencyHandler) GetLastActivation(c *gin.Context) {
	activation, err := h.emergencyService.LastActivation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if activation == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no emergency activations"})
		return
	}

	respondJSON(c, http.StatusOK, activation)
}
