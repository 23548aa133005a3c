package repository

import (
	"context"

	"gqcars/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error

	// ListHistory retrieves past bookings, most recent first.
	ListHistory(ctx context.Context, limit int) ([]*domain.Booking, error)
}
