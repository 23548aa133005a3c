package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gqcars/internal/domain"
	"gqcars/internal/redis"
	"gqcars/internal/repository"
)

// stateLockTTL bounds how long a read-modify-write cycle may hold the
// current-booking key.
const stateLockTTL = 5 * time.Second

// transitions is the booking state machine adjacency. Transitions are
// one-way; nothing ever reverts to an earlier state.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingStatusPending:        {domain.BookingStatusConfirmed, domain.BookingStatusCancelled},
	domain.BookingStatusConfirmed:      {domain.BookingStatusDriverAssigned, domain.BookingStatusCancelled},
	domain.BookingStatusDriverAssigned: {domain.BookingStatusInProgress, domain.BookingStatusCancelled},
	domain.BookingStatusInProgress:     {domain.BookingStatusCompleted},
	domain.BookingStatusCompleted:      {},
	domain.BookingStatusCancelled:      {},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateStatus checks that a status string is a known booking status.
func ValidateStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.BookingStatusPending, domain.BookingStatusConfirmed,
		domain.BookingStatusDriverAssigned, domain.BookingStatusInProgress,
		domain.BookingStatusCompleted, domain.BookingStatusCancelled:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// BookingService owns the booking lifecycle: creation, status transitions,
// the durable current-booking pointer, and the booking history.
type BookingService struct {
	bookingRepo repository.BookingRepository
	state       redis.StateStoreInterface
	locks       redis.LockStoreInterface
	events      *EventBus
	notifier    *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	state redis.StateStoreInterface,
	locks redis.LockStoreInterface,
	events *EventBus,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		state:       state,
		locks:       locks,
		events:      events,
		notifier:    notifier,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	Pickup          domain.Location
	Destination     domain.Location
	ServiceType     domain.ServiceType
	PriceEstimate   *domain.PriceBreakdown
	PassengerCount  int
	SpecialRequests string
	ScheduledTime   string
}

// Create validates the request and persists a new booking in pending state.
// Nothing is persisted and no event is published on validation failure.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	passengerCount := req.PassengerCount
	if passengerCount <= 0 {
		passengerCount = 1
	}

	scheduledTime := req.ScheduledTime
	if scheduledTime == "" {
		scheduledTime = "now"
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:              uuid.New().String(),
		Pickup:          req.Pickup,
		Destination:     req.Destination,
		ServiceType:     req.ServiceType,
		Status:          domain.BookingStatusPending,
		PriceEstimate:   req.PriceEstimate,
		PassengerCount:  passengerCount,
		SpecialRequests: req.SpecialRequests,
		ScheduledTime:   scheduledTime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.state.SetJSON(ctx, redis.KeyCurrentBooking, booking); err != nil {
		return nil, err
	}

	s.events.Publish(EventBookingCreated, booking)
	return booking, nil
}

// Transition moves a booking to newStatus. An attempted illegal transition
// always surfaces ErrInvalidTransition; it is never silently dropped.
func (s *BookingService) Transition(ctx context.Context, bookingID string, newStatus domain.BookingStatus, note string) (*domain.Booking, error) {
	return s.applyTransition(ctx, bookingID, newStatus, note, nil)
}

// AssignDriver transitions a booking to driver_assigned and attaches the
// driver record.
func (s *BookingService) AssignDriver(ctx context.Context, bookingID string, driver *domain.Driver) (*domain.Booking, error) {
	return s.applyTransition(ctx, bookingID, domain.BookingStatusDriverAssigned, "driver assigned", func(b *domain.Booking) {
		b.Driver = driver
	})
}

// Cancel transitions a booking to cancelled and records the reason. Fails
// with ErrInvalidTransition if the booking is in_progress, completed, or
// already cancelled.
func (s *BookingService) Cancel(ctx context.Context, bookingID, reason string) (*domain.Booking, error) {
	if reason == "" {
		reason = "user cancelled"
	}
	return s.applyTransition(ctx, bookingID, domain.BookingStatusCancelled, reason, func(b *domain.Booking) {
		b.CancelReason = reason
	})
}

// applyTransition runs the shared read-validate-mutate-persist cycle under
// the current-booking state lock.
func (s *BookingService) applyTransition(ctx context.Context, bookingID string, newStatus domain.BookingStatus, note string, mutate func(*domain.Booking)) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	acquired, err := s.locks.AcquireKeyLock(ctx, redis.KeyCurrentBooking, stateLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrConcurrentUpdate
	}
	defer func() {
		_ = s.locks.ReleaseKeyLock(ctx, redis.KeyCurrentBooking)
	}()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(booking.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	change := domain.StatusChange{
		From: booking.Status,
		To:   newStatus,
		Note: note,
		At:   time.Now(),
	}

	booking.Status = newStatus
	booking.UpdatedAt = change.At
	booking.History = append(booking.History, change)
	if mutate != nil {
		mutate(booking)
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.syncCurrentPointer(ctx, booking); err != nil {
		return nil, err
	}

	s.events.Publish(EventStatusUpdated, booking)

	if s.notifier != nil {
		switch newStatus {
		case domain.BookingStatusDriverAssigned:
			_ = s.notifier.NotifyDriverAssigned(ctx, booking)
		case domain.BookingStatusCompleted:
			_ = s.notifier.NotifyBookingCompleted(ctx, booking)
		case domain.BookingStatusCancelled:
			_ = s.notifier.NotifyBookingCancelled(ctx, booking, note)
		}
	}

	return booking, nil
}

// syncCurrentPointer keeps the durable current-booking pointer in step with
// the persisted row. A terminal booking stays in history but is detached
// from the pointer.
func (s *BookingService) syncCurrentPointer(ctx context.Context, booking *domain.Booking) error {
	var current domain.Booking
	ok, err := s.state.GetJSON(ctx, redis.KeyCurrentBooking, &current)
	if err != nil {
		return err
	}
	if !ok || current.ID != booking.ID {
		return nil
	}

	if booking.Terminal() {
		return s.state.Remove(ctx, redis.KeyCurrentBooking)
	}
	return s.state.SetJSON(ctx, redis.KeyCurrentBooking, booking)
}

// Get retrieves a booking by ID.
func (s *BookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// Current returns the active booking, or nil if none.
func (s *BookingService) Current(ctx context.Context) (*domain.Booking, error) {
	var booking domain.Booking
	ok, err := s.state.GetJSON(ctx, redis.KeyCurrentBooking, &booking)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

// ClearCurrent detaches the current-booking pointer without touching history.
func (s *BookingService) ClearCurrent(ctx context.Context) error {
	if err := s.state.Remove(ctx, redis.KeyCurrentBooking); err != nil {
		return err
	}
	s.events.Publish(EventBookingCleared, nil)
	return nil
}

// History returns past bookings, most recent first. Survives restarts.
func (s *BookingService) History(ctx context.Context, limit int) ([]*domain.Booking, error) {
	return s.bookingRepo.ListHistory(ctx, limit)
}

func (s *BookingService) validateCreateRequest(req CreateBookingRequest) error {
	if locationEmpty(req.Pickup) {
		return ErrMissingPickup
	}
	if locationEmpty(req.Destination) {
		return ErrMissingDestination
	}
	if _, ok := serviceRates[req.ServiceType]; !ok {
		return ErrInvalidServiceType
	}
	if req.PriceEstimate == nil {
		return ErrMissingPriceEstimate
	}
	return nil
}

func locationEmpty(loc domain.Location) bool {
	return loc.Address == "" && loc.Coordinates.Lat == 0 && loc.Coordinates.Lng == 0
}
