package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusDriverAssigned BookingStatus = "driver_assigned"
	BookingStatusInProgress     BookingStatus = "in_progress"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusCancelled      BookingStatus = "cancelled"
)

// ServiceType represents the protection tier requested for a booking.
type ServiceType string

const (
	ServiceTypeEconomy   ServiceType = "economy"
	ServiceTypeComfort   ServiceType = "comfort"
	ServiceTypePremium   ServiceType = "premium"
	ServiceTypeExecutive ServiceType = "executive"
	ServiceTypeXL        ServiceType = "xl"
	ServiceTypeAirport   ServiceType = "airport"
	ServiceTypeEvent     ServiceType = "event"
)

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is a resolved place: coordinates plus a display address.
type Location struct {
	Coordinates Coordinates `json:"coordinates"`
	Address     string      `json:"address"`
}

// Vehicle describes the assigned driver's vehicle.
type Vehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

// Driver is the security driver assigned to a booking.
type Driver struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Rating  float64 `json:"rating"`
	Vehicle Vehicle `json:"vehicle"`
	ETAMin  int     `json:"eta_min"`
}

// StatusChange records a single booking status transition for the audit trail.
type StatusChange struct {
	From BookingStatus `json:"from"`
	To   BookingStatus `json:"to"`
	Note string        `json:"note,omitempty"`
	At   time.Time     `json:"at"`
}

// Booking represents a security-transport booking.
type Booking struct {
	ID              string          `json:"id"`
	Pickup          Location        `json:"pickup"`
	Destination     Location        `json:"destination"`
	ServiceType     ServiceType     `json:"serviceType"`
	Status          BookingStatus   `json:"status"`
	PriceEstimate   *PriceBreakdown `json:"priceEstimate"` // fixed at creation, never recomputed
	Driver          *Driver         `json:"driver,omitempty"`
	PassengerCount  int             `json:"passengerCount"`
	SpecialRequests string          `json:"specialRequests,omitempty"`
	ScheduledTime   string          `json:"scheduledTime,omitempty"` // "now" or an ISO timestamp
	CancelReason    string          `json:"cancelReason,omitempty"`
	History         []StatusChange  `json:"history,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Terminal reports whether the booking can no longer change state.
func (b *Booking) Terminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}
