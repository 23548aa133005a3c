package domain

import "time"

// PaymentMethodType represents the kind of payment method.
type PaymentMethodType string

const (
	PaymentMethodTypeCard PaymentMethodType = "card"
)

// Card holds the stored, non-sensitive card details.
type Card struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
}

// BillingDetails holds the cardholder's billing information.
type BillingDetails struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentMethod is a stored payment instrument.
// Invariant: at most one method per set has IsDefault true.
type PaymentMethod struct {
	ID             string            `json:"id"`
	Type           PaymentMethodType `json:"type"`
	Card           Card              `json:"card"`
	BillingDetails BillingDetails    `json:"billingDetails"`
	IsDefault      bool              `json:"isDefault"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// AuthorizationStatus represents the outcome of a charge authorization.
type AuthorizationStatus string

const (
	AuthorizationStatusSucceeded AuthorizationStatus = "SUCCEEDED"
	AuthorizationStatusDeclined  AuthorizationStatus = "DECLINED"
)

// Authorization records a single charge authorization against a booking total.
type Authorization struct {
	ID               string              `json:"id"`
	PaymentMethodID  string              `json:"paymentMethodId"`
	AmountMinorUnits int64               `json:"amountMinorUnits"`
	Currency         string              `json:"currency"`
	Description      string              `json:"description"`
	Status           AuthorizationStatus `json:"status"`
	TransactionID    string              `json:"transactionId,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
}
