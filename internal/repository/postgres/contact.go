package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gqcars/internal/domain"
	"gqcars/internal/repository"
)

// ContactRepository is a PostgreSQL implementation of repository.ContactRepository.
type ContactRepository struct {
	q Querier
}

// NewContactRepository creates a new PostgreSQL contact repository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{q: db}
}

// Create persists a new emergency contact.
func (r *ContactRepository) Create(ctx context.Context, contact *domain.EmergencyContact) error {
	query := `
		INSERT INTO emergency_contacts (id, name, phone, relationship, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		contact.ID,
		contact.Name,
		contact.Phone,
		contact.Relationship,
		contact.CreatedAt,
	)

	return err
}

// GetByID retrieves a contact by ID.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.EmergencyContact, error) {
	query := `
		SELECT id, name, phone, relationship, created_at
		FROM emergency_contacts WHERE id = $1
	`

	var contact domain.EmergencyContact
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Phone,
		&contact.Relationship,
		&contact.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &contact, nil
}

// List retrieves all contacts, oldest first.
func (r *ContactRepository) List(ctx context.Context) ([]*domain.EmergencyContact, error) {
	query := `
		SELECT id, name, phone, relationship, created_at
		FROM emergency_contacts ORDER BY created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*domain.EmergencyContact
	for rows.Next() {
		var contact domain.EmergencyContact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Phone,
			&contact.Relationship,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, &contact)
	}

	return contacts, rows.Err()
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
