package tests

import (
	"context"
	"errors"
	"testing"

	"gqcars/internal/domain"
	"gqcars/internal/redis"
	"gqcars/internal/service"
)

func testPriceEstimate() *domain.PriceBreakdown {
	return &domain.PriceBreakdown{
		BaseFare:     5.00,
		DistanceCost: 6.00,
		TimeCost:     3.00,
		PlatformFee:  0.70,
		VAT:          2.94,
		Total:        17.64,
	}
}

func testCreateRequest() service.CreateBookingRequest {
	return service.CreateBookingRequest{
		Pickup: domain.Location{
			Coordinates: domain.Coordinates{Lat: 51.5074, Lng: -0.1278},
			Address:     "1 Mayfair Place, London",
		},
		Destination: domain.Location{
			Coordinates: domain.Coordinates{Lat: 51.4700, Lng: -0.4543},
			Address:     "Heathrow Terminal 5",
		},
		ServiceType:   domain.ServiceTypeComfort,
		PriceEstimate: testPriceEstimate(),
	}
}

func newBookingService(repo *MockBookingRepository, state *MockStateStore, locks *MockLockStore, events *service.EventBus) *service.BookingService {
	return service.NewBookingService(repo, state, locks, events, service.NewNotificationService())
}

func TestBooking_Create_SetsDefaultsAndCurrentPointer(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	state := NewMockStateStore()
	events := service.NewEventBus()
	svc := newBookingService(repo, state, NewMockLockStore(), events)

	var published int
	events.Subscribe(service.EventBookingCreated, func(event string, payload any) {
		published++
	})

	booking, err := svc.Create(context.Background(), testCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status %s, got %s", domain.BookingStatusPending, booking.Status)
	}
	if booking.PassengerCount != 1 {
		t.Errorf("expected default passenger count 1, got %d", booking.PassengerCount)
	}
	if booking.ScheduledTime != "now" {
		t.Errorf("expected default scheduled time %q, got %q", "now", booking.ScheduledTime)
	}
	if booking.ID == "" {
		t.Error("expected generated booking ID")
	}

	if repo.CountBookings() != 1 {
		t.Errorf("expected 1 persisted booking, got %d", repo.CountBookings())
	}
	if !state.Has(redis.KeyCurrentBooking) {
		t.Error("expected current booking pointer to be set")
	}
	if published != 1 {
		t.Errorf("expected 1 created event, got %d", published)
	}
}

func TestBooking_CreateMissingDestination_NothingPersisted(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	state := NewMockStateStore()
	events := service.NewEventBus()
	svc := newBookingService(repo, state, NewMockLockStore(), events)

	var published int
	events.Subscribe(service.EventBookingCreated, func(event string, payload any) {
		published++
	})

	req := testCreateRequest()
	req.Destination = domain.Location{}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, service.ErrMissingDestination) {
		t.Fatalf("expected ErrMissingDestination, got %v", err)
	}

	if repo.CountBookings() != 0 {
		t.Errorf("expected no persisted bookings, got %d", repo.CountBookings())
	}
	if state.Has(redis.KeyCurrentBooking) {
		t.Error("expected no current booking pointer")
	}
	if published != 0 {
		t.Errorf("expected no events, got %d", published)
	}
}

func TestBooking_CreateMissingPriceEstimate_Fails(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockStateStore(), NewMockLockStore(), service.NewEventBus())

	req := testCreateRequest()
	req.PriceEstimate = nil

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, service.ErrMissingPriceEstimate) {
		t.Fatalf("expected ErrMissingPriceEstimate, got %v", err)
	}
}

func TestBooking_CreateUnknownServiceType_Fails(t *testing.T) {
	t.Parallel()

	svc := newBookingService(NewMockBookingRepository(), NewMockStateStore(), NewMockLockStore(), service.NewEventBus())

	req := testCreateRequest()
	req.ServiceType = "submarine"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, service.ErrInvalidServiceType) {
		t.Fatalf("expected ErrInvalidServiceType, got %v", err)
	}
}

func TestBooking_FullLifecycle(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	state := NewMockStateStore()
	events := service.NewEventBus()
	svc := newBookingService(repo, state, NewMockLockStore(), events)

	ctx := context.Background()
	booking, err := svc.Create(ctx, testCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Transition(ctx, booking.ID, domain.BookingStatusConfirmed, ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	driver := &domain.Driver{ID: "drv-1", Name: "Marcus", Rating: 4.9}
	updated, err := svc.AssignDriver(ctx, booking.ID, driver)
	if err != nil {
		t.Fatalf("assign driver: %v", err)
	}
	if updated.Driver == nil || updated.Driver.ID != "drv-1" {
		t.Error("expected driver to be attached")
	}

	if _, err := svc.Transition(ctx, booking.ID, domain.BookingStatusInProgress, ""); err != nil {
		t.Fatalf("start: %v", err)
	}

	final, err := svc.Transition(ctx, booking.ID, domain.BookingStatusCompleted, "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if final.Status != domain.BookingStatusCompleted {
		t.Errorf("expected completed, got %s", final.Status)
	}

	// Four transitions recorded, oldest first.
	if len(final.History) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(final.History))
	}
	if final.History[0].From != domain.BookingStatusPending || final.History[3].To != domain.BookingStatusCompleted {
		t.Error("history does not cover pending through completed")
	}

	// Terminal booking detaches the current pointer but stays in history.
	if state.Has(redis.KeyCurrentBooking) {
		t.Error("expected current pointer cleared after completion")
	}
	history, err := svc.History(ctx, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected completed booking in history, got %d entries", len(history))
	}
}

func TestBooking_InvalidTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		from domain.BookingStatus
		to   domain.BookingStatus
	}{
		{"pending to in_progress", domain.BookingStatusPending, domain.BookingStatusInProgress},
		{"pending to completed", domain.BookingStatusPending, domain.BookingStatusCompleted},
		{"confirmed to in_progress", domain.BookingStatusConfirmed, domain.BookingStatusInProgress},
		{"in_progress to cancelled", domain.BookingStatusInProgress, domain.BookingStatusCancelled},
		{"completed to pending", domain.BookingStatusCompleted, domain.BookingStatusPending},
		{"completed to cancelled", domain.BookingStatusCompleted, domain.BookingStatusCancelled},
		{"cancelled to confirmed", domain.BookingStatusCancelled, domain.BookingStatusConfirmed},
		{"driver_assigned back to confirmed", domain.BookingStatusDriverAssigned, domain.BookingStatusConfirmed},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := NewMockBookingRepository()
			svc := newBookingService(repo, NewMockStateStore(), NewMockLockStore(), service.NewEventBus())

			repo.AddBooking(&domain.Booking{ID: "bk-1", Status: tc.from})

			_, err := svc.Transition(context.Background(), "bk-1", tc.to, "")
			if !errors.Is(err, service.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if repo.UpdateCallCount != 0 {
				t.Error("booking must not be persisted on a rejected transition")
			}
		})
	}
}

func TestBooking_CancelRecordsReason(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	svc := newBookingService(repo, NewMockStateStore(), NewMockLockStore(), service.NewEventBus())

	repo.AddBooking(&domain.Booking{ID: "bk-1", Status: domain.BookingStatusConfirmed})

	booking, err := svc.Cancel(context.Background(), "bk-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != domain.BookingStatusCancelled {
		t.Errorf("expected cancelled, got %s", booking.Status)
	}
	if booking.CancelReason != "user cancelled" {
		t.Errorf("expected default cancel reason, got %q", booking.CancelReason)
	}
}

func TestBooking_TransitionWhileLocked_ReturnsConcurrentUpdate(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	locks := NewMockLockStore()
	locks.FailAcquire = true
	svc := newBookingService(repo, NewMockStateStore(), locks, service.NewEventBus())

	repo.AddBooking(&domain.Booking{ID: "bk-1", Status: domain.BookingStatusPending})

	_, err := svc.Transition(context.Background(), "bk-1", domain.BookingStatusConfirmed, "")
	if !errors.Is(err, service.ErrConcurrentUpdate) {
		t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
	}
}

func TestBooking_CurrentSurvivesServiceRestart(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	state := NewMockStateStore()
	svc := newBookingService(repo, state, NewMockLockStore(), service.NewEventBus())

	ctx := context.Background()
	created, err := svc.Create(ctx, testCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh service over the same store sees the same current booking.
	restarted := newBookingService(repo, state, NewMockLockStore(), service.NewEventBus())
	current, err := restarted.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current == nil || current.ID != created.ID {
		t.Error("expected current booking to survive restart")
	}
}

func TestBooking_ClearCurrentKeepsHistory(t *testing.T) {
	t.Parallel()

	repo := NewMockBookingRepository()
	state := NewMockStateStore()
	events := service.NewEventBus()
	svc := newBookingService(repo, state, NewMockLockStore(), events)

	var cleared int
	events.Subscribe(service.EventBookingCleared, func(event string, payload any) {
		cleared++
	})

	ctx := context.Background()
	if _, err := svc.Create(ctx, testCreateRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.ClearCurrent(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current != nil {
		t.Error("expected no current booking after clear")
	}
	if repo.CountBookings() != 1 {
		t.Error("clearing the pointer must not delete history")
	}
	if cleared != 1 {
		t.Errorf("expected 1 cleared event, got %d", cleared)
	}
}
