package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"gqcars/internal/domain"
	"gqcars/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, pickup_lat, pickup_lng, pickup_address, destination_lat, destination_lng, destination_address, service_type, status, price_estimate, driver, passenger_count, special_requests, scheduled_time, cancel_reason, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	priceEstimate, driver, history, err := marshalBookingJSON(booking)
	if err != nil {
		return err
	}

	var cancelReason sql.NullString
	if booking.CancelReason != "" {
		cancelReason = sql.NullString{String: booking.CancelReason, Valid: true}
	}

	_, err = r.q.ExecContext(ctx, query,
		booking.ID,
		booking.Pickup.Coordinates.Lat,
		booking.Pickup.Coordinates.Lng,
		booking.Pickup.Address,
		booking.Destination.Coordinates.Lat,
		booking.Destination.Coordinates.Lng,
		booking.Destination.Address,
		booking.ServiceType,
		booking.Status,
		priceEstimate,
		driver,
		booking.PassengerCount,
		booking.SpecialRequests,
		booking.ScheduledTime,
		cancelReason,
		history,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := selectBookingColumns + ` FROM bookings WHERE id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return booking, nil
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, price_estimate = $3, driver = $4, cancel_reason = $5, history = $6, updated_at = $7
		WHERE id = $1
	`

	priceEstimate, driver, history, err := marshalBookingJSON(booking)
	if err != nil {
		return err
	}

	var cancelReason sql.NullString
	if booking.CancelReason != "" {
		cancelReason = sql.NullString{String: booking.CancelReason, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.Status,
		priceEstimate,
		driver,
		cancelReason,
		history,
		booking.UpdatedAt,
	)
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

// ListHistory retrieves past bookings, most recent first.
func (r *BookingRepository) ListHistory(ctx context.Context, limit int) ([]*domain.Booking, error) {
	if limit <= 0 {
		limit = 100
	}

	query := selectBookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT $1`

	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

const selectBookingColumns = `
	SELECT id, pickup_lat, pickup_lng, pickup_address, destination_lat, destination_lng, destination_address, service_type, status, price_estimate, driver, passenger_count, special_requests, scheduled_time, cancel_reason, history, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var priceEstimate, driver, history []byte
	var cancelReason sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.Pickup.Coordinates.Lat,
		&booking.Pickup.Coordinates.Lng,
		&booking.Pickup.Address,
		&booking.Destination.Coordinates.Lat,
		&booking.Destination.Coordinates.Lng,
		&booking.Destination.Address,
		&booking.ServiceType,
		&booking.Status,
		&priceEstimate,
		&driver,
		&booking.PassengerCount,
		&booking.SpecialRequests,
		&booking.ScheduledTime,
		&cancelReason,
		&history,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelReason.Valid {
		booking.CancelReason = cancelReason.String
	}
	if len(priceEstimate) > 0 {
		if err := json.Unmarshal(priceEstimate, &booking.PriceEstimate); err != nil {
			return nil, err
		}
	}
	if len(driver) > 0 {
		if err := json.Unmarshal(driver, &booking.Driver); err != nil {
			return nil, err
		}
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &booking.History); err != nil {
			return nil, err
		}
	}

	return &booking, nil
}

func marshalBookingJSON(booking *domain.Booking) (priceEstimate, driver, history []byte, err error) {
	if booking.PriceEstimate != nil {
		priceEstimate, err = json.Marshal(booking.PriceEstimate)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if booking.Driver != nil {
		driver, err = json.Marshal(booking.Driver)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if len(booking.History) > 0 {
		history, err = json.Marshal(booking.History)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return priceEstimate, driver, history, nil
}
