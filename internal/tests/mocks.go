package tests

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"gqcars/internal/domain"
	"gqcars/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) ListHistory(ctx context.Context, limit int) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		copy := *b
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CountBookings returns the number of stored bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// GetBooking returns a booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK CONTACT REPOSITORY
// ──────────────────────────────────────────────

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mu       sync.RWMutex
	contacts []*domain.EmergencyContact

	// Counters for verification
	CreateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	ListError   error
}

// NewMockContactRepository creates a new mock contact repository.
func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{}
}

func (m *MockContactRepository) Create(ctx context.Context, contact *domain.EmergencyContact) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, contact)
	return nil
}

func (m *MockContactRepository) GetByID(ctx context.Context, id string) (*domain.EmergencyContact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.contacts {
		if c.ID == id {
			copy := *c
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockContactRepository) List(ctx context.Context) ([]*domain.EmergencyContact, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.EmergencyContact, 0, len(m.contacts))
	for _, c := range m.contacts {
		copy := *c
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.contacts {
		if c.ID == id {
			m.contacts = append(m.contacts[:i], m.contacts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// CountContacts returns the number of stored contacts.
func (m *MockContactRepository) CountContacts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.contacts)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT METHOD REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentMethodRepository is a mock implementation of PaymentMethodRepository.
type MockPaymentMethodRepository struct {
	mu      sync.RWMutex
	methods []*domain.PaymentMethod

	// Counters for verification
	CreateCallCount     int32
	SetDefaultCallCount int32

	// Error injection
	CreateError     error
	SetDefaultError error
}

// NewMockPaymentMethodRepository creates a new mock payment method repository.
func NewMockPaymentMethodRepository() *MockPaymentMethodRepository {
	return &MockPaymentMethodRepository{}
}

// AddMethod adds a payment method to the mock repository.
func (m *MockPaymentMethodRepository) AddMethod(method *domain.PaymentMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods = append(m.methods, method)
}

func (m *MockPaymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods = append(m.methods, method)
	return nil
}

func (m *MockPaymentMethodRepository) GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, pm := range m.methods {
		if pm.ID == id {
			copy := *pm
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockPaymentMethodRepository) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.PaymentMethod, 0, len(m.methods))
	for _, pm := range m.methods {
		copy := *pm
		result = append(result, &copy)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IsDefault && !result[j].IsDefault
	})
	return result, nil
}

func (m *MockPaymentMethodRepository) SetDefault(ctx context.Context, id string) error {
	atomic.AddInt32(&m.SetDefaultCallCount, 1)
	if m.SetDefaultError != nil {
		return m.SetDefaultError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for _, pm := range m.methods {
		if pm.ID == id {
			found = true
			break
		}
	}
	if !found {
		return repository.ErrNotFound
	}
	for _, pm := range m.methods {
		pm.IsDefault = pm.ID == id
	}
	return nil
}

func (m *MockPaymentMethodRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, pm := range m.methods {
		if pm.ID == id {
			m.methods = append(m.methods[:i], m.methods[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// CountDefaults returns how many methods carry the default flag.
func (m *MockPaymentMethodRepository) CountDefaults() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, pm := range m.methods {
		if pm.IsDefault {
			count++
		}
	}
	return count
}

// ──────────────────────────────────────────────
// MOCK STATE STORE
// ──────────────────────────────────────────────

// MockStateStore is an in-memory implementation of StateStoreInterface.
type MockStateStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// Error injection
	SetError error
	GetError error
}

// NewMockStateStore creates a new mock state store.
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		data: make(map[string][]byte),
	}
}

func (m *MockStateStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *MockStateStore) Set(ctx context.Context, key string, value []byte) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockStateStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockStateStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := m.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MockStateStore) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, data)
}

// Has reports whether a key is present.
func (m *MockStateStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// FailAcquire makes every acquisition attempt report contention.
	FailAcquire bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireKeyLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.FailAcquire {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) ReleaseKeyLock(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
	return nil
}

// ──────────────────────────────────────────────
// MOCK EMERGENCY GATEWAYS
// ──────────────────────────────────────────────

// SentMessage records one SMS handed to the mock messaging gateway.
type SentMessage struct {
	Phone string
	Body  string
}

// MockMessagingGateway is a mock implementation of MessagingGateway.
type MockMessagingGateway struct {
	mu       sync.Mutex
	messages []SentMessage

	// SendError fails every send when set.
	SendError error
}

// NewMockMessagingGateway creates a new mock messaging gateway.
func NewMockMessagingGateway() *MockMessagingGateway {
	return &MockMessagingGateway{}
}

func (m *MockMessagingGateway) SendSMS(ctx context.Context, phoneNumber, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendError != nil {
		return m.SendError
	}
	m.messages = append(m.messages, SentMessage{Phone: phoneNumber, Body: body})
	return nil
}

// Messages returns all recorded sends.
func (m *MockMessagingGateway) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.messages...)
}

// MockCallGateway is a mock implementation of CallGateway.
type MockCallGateway struct {
	mu    sync.Mutex
	calls []string

	// CallError fails every call when set.
	CallError error
}

// NewMockCallGateway creates a new mock call gateway.
func NewMockCallGateway() *MockCallGateway {
	return &MockCallGateway{}
}

func (m *MockCallGateway) PlaceCall(ctx context.Context, phoneNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CallError != nil {
		return m.CallError
	}
	m.calls = append(m.calls, phoneNumber)
	return nil
}

// Calls returns all recorded call targets.
func (m *MockCallGateway) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockPaymentGateway is a mock implementation of PaymentGateway.
type MockPaymentGateway struct {
	// Decline makes the gateway reject every charge.
	Decline bool

	// ChargeError simulates an unreachable provider.
	ChargeError error

	// Counters for verification
	ChargeCallCount int32
}

// NewMockPaymentGateway creates a new mock payment gateway.
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) Charge(ctx context.Context, paymentMethodID string, amountMinorUnits int64, description string) (string, bool, error) {
	atomic.AddInt32(&m.ChargeCallCount, 1)
	if m.ChargeError != nil {
		return "", false, m.ChargeError
	}
	if m.Decline {
		return "", false, nil
	}
	return "txn_test", true, nil
}
