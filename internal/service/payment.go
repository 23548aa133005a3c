package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gqcars/internal/domain"
	"gqcars/internal/repository"
)

// PaymentGateway is the interface for a payment service provider.
type PaymentGateway interface {
	// Charge attempts to capture amountMinorUnits against a stored method.
	// A decline returns (false, nil); an unreachable provider returns an error.
	Charge(ctx context.Context, paymentMethodID string, amountMinorUnits int64, description string) (transactionID string, approved bool, err error)
}

// MockGateway is a mock implementation of PaymentGateway.
type MockGateway struct{}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// Charge simulates a capture. Always approves.
func (g *MockGateway) Charge(ctx context.Context, paymentMethodID string, amountMinorUnits int64, description string) (string, bool, error) {
	return "txn_" + uuid.New().String(), true, nil
}

// PaymentService manages stored payment methods and one-shot authorizations.
type PaymentService struct {
	methodRepo repository.PaymentMethodRepository
	gateway    PaymentGateway
	notifier   *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(methodRepo repository.PaymentMethodRepository, gateway PaymentGateway, notifier *NotificationService) *PaymentService {
	return &PaymentService{
		methodRepo: methodRepo,
		gateway:    gateway,
		notifier:   notifier,
	}
}

// ListMethods returns all stored payment methods, default first.
func (s *PaymentService) ListMethods(ctx context.Context) ([]*domain.PaymentMethod, error) {
	return s.methodRepo.List(ctx)
}

// AddMethodRequest contains the parameters for storing a card.
type AddMethodRequest struct {
	CardNumber     string
	ExpMonth       int
	ExpYear        int
	BillingDetails domain.BillingDetails
	MakeDefault    bool
}

// AddMethod validates the card, stores a tokenized method (brand and last
// four only, never the full number), and optionally promotes it to default.
func (s *PaymentService) AddMethod(ctx context.Context, req AddMethodRequest) (*domain.PaymentMethod, error) {
	number := normalizeCardNumber(req.CardNumber)
	if !ValidateCardNumber(number) {
		return nil, ErrInvalidCardNumber
	}
	if !validateExpiry(req.ExpMonth, req.ExpYear, time.Now()) {
		return nil, ErrInvalidExpiryDate
	}

	method := &domain.PaymentMethod{
		ID:   uuid.New().String(),
		Type: domain.PaymentMethodTypeCard,
		Card: domain.Card{
			Brand:    DetectCardBrand(number),
			Last4:    number[len(number)-4:],
			ExpMonth: req.ExpMonth,
			ExpYear:  req.ExpYear,
		},
		BillingDetails: req.BillingDetails,
		IsDefault:      req.MakeDefault,
		CreatedAt:      time.Now(),
	}

	if err := s.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}

	if req.MakeDefault {
		if err := s.methodRepo.SetDefault(ctx, method.ID); err != nil {
			return nil, err
		}
	}

	return method, nil
}

// RemoveMethod deletes a stored payment method.
func (s *PaymentService) RemoveMethod(ctx context.Context, methodID string) error {
	if methodID == "" {
		return ErrInvalidPaymentMethodID
	}
	return s.methodRepo.Delete(ctx, methodID)
}

// SetDefault marks a method as the default. Exactly one method is default at
// a time; promoting one demotes the rest in the same transaction.
func (s *PaymentService) SetDefault(ctx context.Context, methodID string) error {
	if methodID == "" {
		return ErrInvalidPaymentMethodID
	}
	return s.methodRepo.SetDefault(ctx, methodID)
}

// AuthorizeRequest contains the parameters for a one-shot charge.
type AuthorizeRequest struct {
	PaymentMethodID  string
	AmountMinorUnits int64
	Currency         string
	Description      string
}

// Authorize runs a single charge attempt against the gateway. No retries: a
// decline means the method should be changed, an unavailable gateway means
// try again later, and the two are surfaced as distinct errors.
func (s *PaymentService) Authorize(ctx context.Context, req AuthorizeRequest) (*domain.Authorization, error) {
	if req.PaymentMethodID == "" {
		return nil, ErrInvalidPaymentMethodID
	}
	if req.AmountMinorUnits <= 0 {
		return nil, ErrInvalidAmount
	}

	method, err := s.methodRepo.GetByID(ctx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "GBP"
	}

	txnID, approved, err := s.gateway.Charge(ctx, method.ID, req.AmountMinorUnits, req.Description)
	if err != nil {
		return nil, ErrGatewayUnavailable
	}
	if !approved {
		if s.notifier != nil {
			_ = s.notifier.NotifyPaymentFailed(ctx, req.AmountMinorUnits)
		}
		return nil, ErrPaymentDeclined
	}

	auth := &domain.Authorization{
		ID:               uuid.New().String(),
		PaymentMethodID:  method.ID,
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         currency,
		Description:      req.Description,
		Status:           domain.AuthorizationStatusSucceeded,
		TransactionID:    txnID,
		CreatedAt:        time.Now(),
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyPaymentSuccess(ctx, auth)
	}

	return auth, nil
}

// ValidateCardNumber runs the Luhn check over a card number.
func ValidateCardNumber(number string) bool {
	number = normalizeCardNumber(number)
	if len(number) < 13 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// DetectCardBrand identifies the card network from the number prefix.
func DetectCardBrand(number string) string {
	number = normalizeCardNumber(number)
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case hasPrefixInRange(number, 51, 55) || hasPrefixInRange(number, 2221, 2720):
		return "mastercard"
	case strings.HasPrefix(number, "34") || strings.HasPrefix(number, "37"):
		return "amex"
	case strings.HasPrefix(number, "6011") || strings.HasPrefix(number, "65"):
		return "discover"
	default:
		return "unknown"
	}
}

func normalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func hasPrefixInRange(number string, lo, hi int) bool {
	width := len(strconv.Itoa(lo))
	if len(number) < width {
		return false
	}
	prefix, err := strconv.Atoi(number[:width])
	if err != nil {
		return false
	}
	return prefix >= lo && prefix <= hi
}

// validateExpiry checks that month/year form a valid, non-past expiry. Cards
// remain valid through the last day of the expiry month.
func validateExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < 100 {
		year += 2000
	}
	if year < now.Year() {
		return false
	}
	if year == now.Year() && time.Month(month) < now.Month() {
		return false
	}
	return true
}
