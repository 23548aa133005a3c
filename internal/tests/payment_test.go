package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"gqcars/internal/domain"
	"gqcars/internal/repository"
	"gqcars/internal/service"
)

func validAddMethodRequest() service.AddMethodRequest {
	return service.AddMethodRequest{
		CardNumber: "4242 4242 4242 4242",
		ExpMonth:   12,
		ExpYear:    time.Now().Year() + 2,
		BillingDetails: domain.BillingDetails{
			Name:       "Victoria Ashford",
			Line1:      "12 Berkeley Square",
			City:       "London",
			PostalCode: "W1J 6BS",
			Country:    "GB",
		},
	}
}

func TestPayment_AddMethod_StoresBrandAndLast4(t *testing.T) {
	t.Parallel()

	repo := NewMockPaymentMethodRepository()
	svc := service.NewPaymentService(repo, NewMockPaymentGateway(), nil)

	method, err := svc.AddMethod(context.Background(), validAddMethodRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method.Card.Brand != "visa" {
		t.Errorf("expected brand visa, got %s", method.Card.Brand)
	}
	if method.Card.Last4 != "4242" {
		t.Errorf("expected last4 4242, got %s", method.Card.Last4)
	}
	if method.Type != domain.PaymentMethodTypeCard {
		t.Errorf("expected type card, got %s", method.Type)
	}
}

func TestPayment_AddMethod_RejectsInvalidCards(t *testing.T) {
	t.Parallel()

	svc := service.NewPaymentService(NewMockPaymentMethodRepository(), NewMockPaymentGateway(), nil)
	ctx := context.Background()

	req := validAddMethodRequest()
	req.CardNumber = "4242424242424241" // fails Luhn
	if _, err := svc.AddMethod(ctx, req); !errors.Is(err, service.ErrInvalidCardNumber) {
		t.Errorf("expected ErrInvalidCardNumber, got %v", err)
	}

	req = validAddMethodRequest()
	req.ExpYear = time.Now().Year() - 1
	if _, err := svc.AddMethod(ctx, req); !errors.Is(err, service.ErrInvalidExpiryDate) {
		t.Errorf("expected ErrInvalidExpiryDate, got %v", err)
	}

	req = validAddMethodRequest()
	req.ExpMonth = 13
	if _, err := svc.AddMethod(ctx, req); !errors.Is(err, service.ErrInvalidExpiryDate) {
		t.Errorf("expected ErrInvalidExpiryDate, got %v", err)
	}
}

func TestPayment_CardBrandDetection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		number string
		brand  string
	}{
		{"4242424242424242", "visa"},
		{"5555555555554444", "mastercard"},
		{"2223003122003222", "mastercard"},
		{"378282246310005", "amex"},
		{"6011111111111117", "discover"},
	}

	for _, tc := range cases {
		if got := service.DetectCardBrand(tc.number); got != tc.brand {
			t.Errorf("DetectCardBrand(%s) = %s, want %s", tc.number, got, tc.brand)
		}
	}
}

func TestPayment_SetDefault_ExactlyOneDefault(t *testing.T) {
	t.Parallel()

	repo := NewMockPaymentMethodRepository()
	svc := service.NewPaymentService(repo, NewMockPaymentGateway(), nil)

	ctx := context.Background()
	first, err := svc.AddMethod(ctx, validAddMethodRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetDefault(ctx, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := validAddMethodRequest()
	req.CardNumber = "5555555555554444"
	second, err := svc.AddMethod(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetDefault(ctx, second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.CountDefaults() != 1 {
		t.Errorf("expected exactly one default method, got %d", repo.CountDefaults())
	}

	methods, err := svc.ListMethods(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	// Default first.
	if methods[0].ID != second.ID || !methods[0].IsDefault {
		t.Error("expected the newly promoted method listed first as default")
	}
}

func TestPayment_SetDefault_UnknownMethod(t *testing.T) {
	t.Parallel()

	svc := service.NewPaymentService(NewMockPaymentMethodRepository(), NewMockPaymentGateway(), nil)

	if err := svc.SetDefault(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPayment_Authorize_Success(t *testing.T) {
	t.Parallel()

	repo := NewMockPaymentMethodRepository()
	gateway := NewMockPaymentGateway()
	svc := service.NewPaymentService(repo, gateway, nil)

	ctx := context.Background()
	method, err := svc.AddMethod(ctx, validAddMethodRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	auth, err := svc.Authorize(ctx, service.AuthorizeRequest{
		PaymentMethodID:  method.ID,
		AmountMinorUnits: 1764,
		Description:      "Comfort booking",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if auth.Status != domain.AuthorizationStatusSucceeded {
		t.Errorf("expected status %s, got %s", domain.AuthorizationStatusSucceeded, auth.Status)
	}
	if auth.TransactionID == "" {
		t.Error("expected a gateway transaction ID")
	}
	if auth.Currency != "GBP" {
		t.Errorf("expected default currency GBP, got %s", auth.Currency)
	}
	if gateway.ChargeCallCount != 1 {
		t.Errorf("expected exactly 1 charge attempt, got %d", gateway.ChargeCallCount)
	}
}

func TestPayment_Authorize_DeclinedIsNotRetried(t *testing.T) {
	t.Parallel()

	repo := NewMockPaymentMethodRepository()
	gateway := NewMockPaymentGateway()
	gateway.Decline = true
	svc := service.NewPaymentService(repo, gateway, nil)

	ctx := context.Background()
	method, err := svc.AddMethod(ctx, validAddMethodRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Authorize(ctx, service.AuthorizeRequest{
		PaymentMethodID:  method.ID,
		AmountMinorUnits: 1764,
	})
	if !errors.Is(err, service.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}
	if gateway.ChargeCallCount != 1 {
		t.Errorf("declined charge must not be retried, got %d attempts", gateway.ChargeCallCount)
	}
}

func TestPayment_Authorize_GatewayUnavailable(t *testing.T) {
	t.Parallel()

	repo := NewMockPaymentMethodRepository()
	gateway := NewMockPaymentGateway()
	gateway.ChargeError = errors.New("connection refused")
	svc := service.NewPaymentService(repo, gateway, nil)

	ctx := context.Background()
	method, err := svc.AddMethod(ctx, validAddMethodRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Authorize(ctx, service.AuthorizeRequest{
		PaymentMethodID:  method.ID,
		AmountMinorUnits: 1764,
	})
	if !errors.Is(err, service.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if errors.Is(err, service.ErrPaymentDeclined) {
		t.Error("gateway outage must be distinct from a decline")
	}
}

func TestPayment_Authorize_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewPaymentService(NewMockPaymentMethodRepository(), NewMockPaymentGateway(), nil)
	ctx := context.Background()

	_, err := svc.Authorize(ctx, service.AuthorizeRequest{PaymentMethodID: "", AmountMinorUnits: 100})
	if !errors.Is(err, service.ErrInvalidPaymentMethodID) {
		t.Errorf("expected ErrInvalidPaymentMethodID, got %v", err)
	}

	_, err = svc.Authorize(ctx, service.AuthorizeRequest{PaymentMethodID: "pm-1", AmountMinorUnits: 0})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = svc.Authorize(ctx, service.AuthorizeRequest{PaymentMethodID: "missing", AmountMinorUnits: 100})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
