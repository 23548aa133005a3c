package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gqcars/internal/domain"
	"gqcars/internal/repository"
)

// PaymentMethodRepository is a PostgreSQL implementation of
// repository.PaymentMethodRepository.
type PaymentMethodRepository struct {
	db *sql.DB
}

// NewPaymentMethodRepository creates a new PostgreSQL payment method repository.
func NewPaymentMethodRepository(db *sql.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{db: db}
}

// Create persists a new payment method.
func (r *PaymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (id, type, card_brand, card_last4, card_exp_month, card_exp_year, billing_name, billing_line1, billing_city, billing_postal_code, billing_country, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		method.ID,
		method.Type,
		method.Card.Brand,
		method.Card.Last4,
		method.Card.ExpMonth,
		method.Card.ExpYear,
		method.BillingDetails.Name,
		method.BillingDetails.Line1,
		method.BillingDetails.City,
		method.BillingDetails.PostalCode,
		method.BillingDetails.Country,
		method.IsDefault,
		method.CreatedAt,
	)

	return err
}

// GetByID retrieves a payment method by ID.
func (r *PaymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	query := selectPaymentMethodColumns + ` FROM payment_methods WHERE id = $1`

	var method domain.PaymentMethod
	err := scanPaymentMethod(r.db.QueryRowContext(ctx, query, id), &method)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &method, nil
}

// List retrieves all payment methods, default first.
func (r *PaymentMethodRepository) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	query := selectPaymentMethodColumns + ` FROM payment_methods ORDER BY is_default DESC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []*domain.PaymentMethod
	for rows.Next() {
		var method domain.PaymentMethod
		if err := scanPaymentMethod(rows, &method); err != nil {
			return nil, err
		}
		methods = append(methods, &method)
	}

	return methods, rows.Err()
}

// SetDefault marks the given method as default and clears the flag on every
// other method. Runs in a single transaction so the exactly-one-default
// invariant holds even if the process dies between statements.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var result sql.Result
	result, err = tx.ExecContext(ctx, `UPDATE payment_methods SET is_default = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}

	var rows int64
	rows, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		err = repository.ErrNotFound
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE payment_methods SET is_default = FALSE WHERE id <> $1`, id)
	if err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

// Delete removes a payment method.
func (r *PaymentMethodRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
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

const selectPaymentMethodColumns = `
	SELECT id, type, card_brand, card_last4, card_exp_month, card_exp_year, billing_name, billing_line1, billing_city, billing_postal_code, billing_country, is_default, created_at`

func scanPaymentMethod(row rowScanner, method *domain.PaymentMethod) error {
	return row.Scan(
		&method.ID,
		&method.Type,
		&method.Card.Brand,
		&method.Card.Last4,
		&method.Card.ExpMonth,
		&method.Card.ExpYear,
		&method.BillingDetails.Name,
		&method.BillingDetails.Line1,
		&method.BillingDetails.City,
		&method.BillingDetails.PostalCode,
		&method.BillingDetails.Country,
		&method.IsDefault,
		&method.CreatedAt,
	)
}
