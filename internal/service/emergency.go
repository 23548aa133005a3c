package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"gqcars/internal/domain"
	"gqcars/internal/redis"
	"gqcars/internal/repository"
)

// Company dispatch and emergency service numbers.
const (
	dispatchPhone   = "+1-800-GQCARS"
	emergencyNumber = "911"
)

// Fan-out action names recorded in an activation.
const (
	ActionResolveLocation = "resolve_location"
	ActionCallEmergency   = "call_emergency_services"
	ActionSMSContact      = "sms_contact"
	ActionSMSDispatch     = "sms_dispatch"
)

// LocationProvider resolves the device's current position.
type LocationProvider interface {
	GetCurrentLocation(ctx context.Context) (domain.Coordinates, error)
}

// GeocodeProvider resolves coordinates to a display address.
type GeocodeProvider interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// MessagingGateway delivers SMS messages.
type MessagingGateway interface {
	SendSMS(ctx context.Context, phoneNumber, body string) error
}

// CallGateway places phone calls.
type CallGateway interface {
	PlaceCall(ctx context.Context, phoneNumber string) error
}

// messageTemplates are the canned emergency messages offered to the caller.
var messageTemplates = []domain.MessageTemplate{
	{ID: "general", Title: "General Emergency", Message: "I need immediate help! Please call emergency services and come to my location."},
	{ID: "medical", Title: "Medical Emergency", Message: "MEDICAL EMERGENCY! I need immediate medical assistance. Please call 911 and come to my location."},
	{ID: "safety", Title: "Safety Concern", Message: "I feel unsafe in my current location. Please check on me and contact authorities if needed."},
	{ID: "vehicle", Title: "Vehicle Emergency", Message: "I have a vehicle emergency or breakdown. Please send help to my location."},
	{ID: "custom", Title: "Custom Message", Message: ""},
}

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// EmergencyService manages emergency contacts and the emergency activation
// flow. Activation is a best-effort fan-out: every channel is attempted
// independently and no failure rolls back another channel's success.
type EmergencyService struct {
	contactRepo repository.ContactRepository
	state       redis.StateStoreInterface
	location    LocationProvider
	geocoder    GeocodeProvider
	messaging   MessagingGateway
	calls       CallGateway
	events      *EventBus
}

// NewEmergencyService creates a new EmergencyService.
func NewEmergencyService(
	contactRepo repository.ContactRepository,
	state redis.StateStoreInterface,
	location LocationProvider,
	geocoder GeocodeProvider,
	messaging MessagingGateway,
	calls CallGateway,
	events *EventBus,
) *EmergencyService {
	return &EmergencyService{
		contactRepo: contactRepo,
		state:       state,
		location:    location,
		geocoder:    geocoder,
		messaging:   messaging,
		calls:       calls,
		events:      events,
	}
}

// MessageTemplates returns the canned emergency messages.
func (s *EmergencyService) MessageTemplates() []domain.MessageTemplate {
	return messageTemplates
}

// AddContactRequest contains the parameters for adding an emergency contact.
type AddContactRequest struct {
	Name         string
	Phone        string
	Relationship string
}

// AddContact validates and persists a new emergency contact. Contacts are
// deliberately not deduplicated by phone number.
func (s *EmergencyService) AddContact(ctx context.Context, req AddContactRequest) (*domain.EmergencyContact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMissingContactName
	}
	if !ValidatePhoneNumber(req.Phone) {
		return nil, ErrInvalidPhoneNumber
	}

	relationship := req.Relationship
	if relationship == "" {
		relationship = "Emergency Contact"
	}

	contact := &domain.EmergencyContact{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        FormatPhoneNumber(req.Phone),
		Relationship: relationship,
		CreatedAt:    time.Now(),
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// RemoveContact deletes an emergency contact.
func (s *EmergencyService) RemoveContact(ctx context.Context, contactID string) error {
	return s.contactRepo.Delete(ctx, contactID)
}

// ListContacts returns all emergency contacts.
func (s *EmergencyService) ListContacts(ctx context.Context) ([]*domain.EmergencyContact, error) {
	return s.contactRepo.List(ctx)
}

// ValidatePhoneNumber accepts a phone number in common formats.
func ValidatePhoneNumber(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(phone)
	return phonePattern.MatchString(cleaned)
}

// FormatPhoneNumber normalizes a phone number to an E.164-like form.
func FormatPhoneNumber(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' || r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.HasPrefix(cleaned, "+"):
		return cleaned
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "1"):
		return "+" + cleaned
	case len(cleaned) == 10:
		return "+1" + cleaned
	default:
		return cleaned
	}
}

// ActivateOptions controls which channels an activation fans out to.
type ActivateOptions struct {
	CallEmergencyServices bool
	AlertContacts         bool
	AlertDispatch         bool
	Template              string
	CustomMessage         string
}

// Activate runs the emergency fan-out. Each channel is attempted
// independently; every outcome is recorded in the returned activation's
// Actions. Channel failure never fails the activation itself: in an
// emergency, maximizing the chance that some channel succeeds outweighs
// all-or-nothing semantics.
func (s *EmergencyService) Activate(ctx context.Context, opts ActivateOptions) (*domain.EmergencyActivation, error) {
	activation := &domain.EmergencyActivation{
		Timestamp: time.Now(),
	}

	// Location resolution always runs first so alerts can carry coordinates.
	// Failure degrades gracefully: alerts go out without a position.
	location, err := s.resolveLocation(ctx)
	if err != nil {
		activation.Actions = append(activation.Actions, domain.ActionResult{
			Action:  ActionResolveLocation,
			Success: false,
			Error:   err.Error(),
		})
	} else {
		activation.Location = location
		activation.Actions = append(activation.Actions, domain.ActionResult{
			Action:  ActionResolveLocation,
			Success: true,
		})
	}

	if opts.CallEmergencyServices {
		result := domain.ActionResult{Action: ActionCallEmergency, Success: true}
		if err := s.calls.PlaceCall(ctx, emergencyNumber); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		activation.Actions = append(activation.Actions, result)
	}

	message := s.buildAlertMessage(activation.Location, opts)

	if opts.AlertContacts {
		contacts, err := s.contactRepo.List(ctx)
		if err != nil {
			activation.Actions = append(activation.Actions, domain.ActionResult{
				Action:  ActionSMSContact,
				Success: false,
				Error:   err.Error(),
			})
		} else {
			for _, contact := range contacts {
				result := domain.ActionResult{
					Action:  fmt.Sprintf("%s:%s", ActionSMSContact, contact.Phone),
					Success: true,
				}
				if err := s.messaging.SendSMS(ctx, contact.Phone, message); err != nil {
					result.Success = false
					result.Error = err.Error()
				}
				activation.Actions = append(activation.Actions, result)
			}
		}
	}

	if opts.AlertDispatch {
		result := domain.ActionResult{Action: ActionSMSDispatch, Success: true}
		if err := s.messaging.SendSMS(ctx, dispatchPhone, message); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		activation.Actions = append(activation.Actions, result)
	}

	// Persist for offline recovery. A storage failure must not discard the
	// fan-out outcome, so it is recorded rather than returned.
	if err := s.state.SetJSON(ctx, redis.KeyLastEmergency, activation); err == nil {
		_ = s.state.Set(ctx, redis.KeyEmergencyActive, []byte("true"))
	}

	s.events.Publish(EventEmergencyActivated, activation)
	return activation, nil
}

// Deactivate clears the emergency-active flag. Idempotent.
func (s *EmergencyService) Deactivate(ctx context.Context) error {
	return s.state.Set(ctx, redis.KeyEmergencyActive, []byte("false"))
}

// IsActive reports whether an emergency is currently active.
func (s *EmergencyService) IsActive(ctx context.Context) (bool, error) {
	data, err := s.state.Get(ctx, redis.KeyEmergencyActive)
	if err != nil {
		return false, err
	}
	return string(data) == "true", nil
}

// LastActivation returns the most recent activation, or nil if none.
func (s *EmergencyService) LastActivation(ctx context.Context) (*domain.EmergencyActivation, error) {
	var activation domain.EmergencyActivation
	ok, err := s.state.GetJSON(ctx, redis.KeyLastEmergency, &activation)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &activation, nil
}

// resolveLocation fetches the current position and reverse-geocodes it.
// A geocoding failure still yields a usable location.
func (s *EmergencyService) resolveLocation(ctx context.Context) (*domain.Location, error) {
	coords, err := s.location.GetCurrentLocation(ctx)
	if err != nil {
		return nil, err
	}

	address, err := s.geocoder.ReverseGeocode(ctx, coords.Lat, coords.Lng)
	if err != nil {
		address = "Address unavailable"
	}

	return &domain.Location{Coordinates: coords, Address: address}, nil
}

// buildAlertMessage composes the SMS body from the location share block and
// the chosen template or custom message.
func (s *EmergencyService) buildAlertMessage(location *domain.Location, opts ActivateOptions) string {
	body := opts.CustomMessage
	if body == "" {
		body = messageTemplates[0].Message
		for _, t := range messageTemplates {
			if t.ID == opts.Template && t.Message != "" {
				body = t.Message
				break
			}
		}
	}

	if location == nil {
		return "EMERGENCY\n\n" + body + "\n\nSent via GQCars Safety App"
	}

	mapsURL := fmt.Sprintf("https://maps.google.com/?q=%f,%f", location.Coordinates.Lat, location.Coordinates.Lng)
	return fmt.Sprintf(
		"EMERGENCY\n\nI need help! My current location is:\n\n%s\n\nCoordinates: %.6f, %.6f\n\nView on map: %s\n\n%s\n\nSent via GQCars Safety App",
		location.Address,
		location.Coordinates.Lat,
		location.Coordinates.Lng,
		mapsURL,
		body,
	)
}
