package service

import (
	"context"
	"log"

	"gqcars/internal/domain"
)

// MockLocationProvider is a mock implementation of LocationProvider.
type MockLocationProvider struct {
	Coords domain.Coordinates
	Err    error
}

// NewMockLocationProvider creates a provider that always returns coords.
func NewMockLocationProvider(coords domain.Coordinates) *MockLocationProvider {
	return &MockLocationProvider{Coords: coords}
}

// GetCurrentLocation returns the configured position.
func (p *MockLocationProvider) GetCurrentLocation(ctx context.Context) (domain.Coordinates, error) {
	if p.Err != nil {
		return domain.Coordinates{}, p.Err
	}
	return p.Coords, nil
}

// MockGeocoder is a mock implementation of GeocodeProvider.
type MockGeocoder struct {
	Address string
	Err     error
}

// NewMockGeocoder creates a geocoder that always returns address.
func NewMockGeocoder(address string) *MockGeocoder {
	return &MockGeocoder{Address: address}
}

// ReverseGeocode returns the configured address.
func (g *MockGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	return g.Address, nil
}

// LogMessagingGateway is a MessagingGateway that logs instead of sending.
// Stands in for a Twilio-style SMS provider.
type LogMessagingGateway struct{}

// NewLogMessagingGateway creates a new LogMessagingGateway.
func NewLogMessagingGateway() *LogMessagingGateway {
	return &LogMessagingGateway{}
}

// SendSMS logs the outbound message.
func (g *LogMessagingGateway) SendSMS(ctx context.Context, phoneNumber, body string) error {
	log.Printf("[SMS] To=%s, Len=%d", phoneNumber, len(body))
	return nil
}

// LogCallGateway is a CallGateway that logs instead of dialing.
type LogCallGateway struct{}

// NewLogCallGateway creates a new LogCallGateway.
func NewLogCallGateway() *LogCallGateway {
	return &LogCallGateway{}
}

// PlaceCall logs the outbound call.
func (g *LogCallGateway) PlaceCall(ctx context.Context, phoneNumber string) error {
	log.Printf("[CALL] To=%s", phoneNumber)
	return nil
}
