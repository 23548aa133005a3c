package service

import "errors"

var (
	// ErrMissingPickup is returned when a booking request has no pickup location.
	ErrMissingPickup = errors.New("pickup location is required")

	// ErrMissingDestination is returned when a booking request has no destination.
	ErrMissingDestination = errors.New("destination location is required")

	// ErrMissingPriceEstimate is returned when a booking request has no price estimate.
	ErrMissingPriceEstimate = errors.New("price estimate is required")

	// ErrInvalidServiceType is returned when the service tier is unknown.
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidBookingID is returned when a booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidStatus is returned when a booking status value is unknown.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition is returned when a status change does not follow the
	// booking state machine. Never auto-corrected.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrNoCurrentBooking is returned when an operation needs a current booking
	// and none is active.
	ErrNoCurrentBooking = errors.New("no current booking")

	// ErrConcurrentUpdate is returned when another mutation already holds the
	// state lock for the same key.
	ErrConcurrentUpdate = errors.New("concurrent update in progress")

	// ErrInvalidDistance is returned when distance is negative.
	ErrInvalidDistance = errors.New("distance must not be negative")

	// ErrInvalidDuration is returned when duration is negative.
	ErrInvalidDuration = errors.New("duration must not be negative")

	// ErrIncompleteAssessment is returned when the questionnaire is not fully answered.
	ErrIncompleteAssessment = errors.New("assessment answers incomplete")

	// ErrInvalidRiskWeight is returned when an answer carries a weight outside 1..5.
	ErrInvalidRiskWeight = errors.New("answer risk weight out of range")

	// ErrMissingContactName is returned when an emergency contact has no name.
	ErrMissingContactName = errors.New("contact name is required")

	// ErrInvalidPhoneNumber is returned when a phone number fails validation.
	ErrInvalidPhoneNumber = errors.New("invalid phone number format")

	// ErrInvalidCardNumber is returned when a card number fails the Luhn check.
	ErrInvalidCardNumber = errors.New("invalid card number")

	// ErrInvalidExpiryDate is returned when a card expiry is malformed or past.
	ErrInvalidExpiryDate = errors.New("invalid or expired card expiry date")

	// ErrInvalidAmount is returned when a charge amount is not positive.
	ErrInvalidAmount = errors.New("invalid charge amount")

	// ErrInvalidPaymentMethodID is returned when a payment method ID is empty.
	ErrInvalidPaymentMethodID = errors.New("invalid payment method id")

	// ErrPaymentDeclined is returned when the gateway declines a charge.
	// Distinct from ErrGatewayUnavailable so the caller can offer "change
	// method" rather than "retry".
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrGatewayUnavailable is returned when the payment gateway cannot be reached.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrLocationUnavailable is returned when the current location cannot be resolved.
	ErrLocationUnavailable = errors.New("current location unavailable")

	// ErrCannotCall is returned when the device cannot place calls.
	ErrCannotCall = errors.New("device cannot place calls")

	// ErrSMSUnavailable is returned when SMS delivery is unavailable.
	ErrSMSUnavailable = errors.New("sms unavailable")
)
