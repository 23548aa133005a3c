package repository

import (
	"context"

	"gqcars/internal/domain"
)

// PaymentMethodRepository defines the persistence operations for payment methods.
type PaymentMethodRepository interface {
	// Create persists a new payment method.
	Create(ctx context.Context, method *domain.PaymentMethod) error

	// GetByID retrieves a payment method by ID.
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)

	// List retrieves all payment methods, default first.
	List(ctx context.Context) ([]*domain.PaymentMethod, error)

	// SetDefault marks the given method as default and clears the flag on
	// every other method in the same statement scope.
	SetDefault(ctx context.Context, id string) error

	// Delete removes a payment method.
	Delete(ctx context.Context, id string) error
}
