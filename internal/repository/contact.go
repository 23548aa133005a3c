package repository

import (
	"context"

	"gqcars/internal/domain"
)

// ContactRepository defines the persistence operations for emergency contacts.
type ContactRepository interface {
	// Create persists a new emergency contact.
	Create(ctx context.Context, contact *domain.EmergencyContact) error

	// GetByID retrieves a contact by ID.
	GetByID(ctx context.Context, id string) (*domain.EmergencyContact, error)

	// List retrieves all contacts, oldest first.
	List(ctx context.Context) ([]*domain.EmergencyContact, error)

	// Delete removes a contact.
	Delete(ctx context.Context, id string) error
}
