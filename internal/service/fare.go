package service

import (
	"math"

	"gqcars/internal/domain"
)

// ServiceRate holds the per-tier pricing inputs.
type ServiceRate struct {
	BaseFare  float64
	PerKm     float64
	PerMinute float64
}

// serviceRates is the single canonical rate table, keyed by service tier.
var serviceRates = map[domain.ServiceType]ServiceRate{
	domain.ServiceTypeEconomy:   {BaseFare: 2.50, PerKm: 1.00, PerMinute: 0.15},
	domain.ServiceTypeComfort:   {BaseFare: 5.00, PerKm: 1.20, PerMinute: 0.20},
	domain.ServiceTypePremium:   {BaseFare: 7.50, PerKm: 1.80, PerMinute: 0.30},
	domain.ServiceTypeExecutive: {BaseFare: 10.00, PerKm: 2.50, PerMinute: 0.40},
	domain.ServiceTypeXL:        {BaseFare: 7.00, PerKm: 1.60, PerMinute: 0.28},
	domain.ServiceTypeAirport:   {BaseFare: 15.00, PerKm: 1.40, PerMinute: 0.25},
	domain.ServiceTypeEvent:     {BaseFare: 20.00, PerKm: 2.00, PerMinute: 0.35},
}

// Fixed fee rates.
const (
	platformFeeRate = 0.05
	vatRate         = 0.20
	schedulingFee   = 2.50
)

const schedulingTypeScheduled = "scheduled"

// FareOptions carries the optional pricing modifiers.
type FareOptions struct {
	// SchedulingType is "scheduled" for a pre-booked trip; anything else
	// (including empty) means on-demand.
	SchedulingType string

	// SurgeMultiplier is a >1 demand scalar. Zero or 1 means no surge.
	SurgeMultiplier float64
}

// BaseFare returns the base fare for a tier.
func BaseFare(serviceType domain.ServiceType) (float64, error) {
	rate, ok := serviceRates[serviceType]
	if !ok {
		return 0, ErrInvalidServiceType
	}
	return rate.BaseFare, nil
}

// CalculateFare computes a price breakdown for a trip. Intermediate values
// keep full precision; only the final fields are rounded to 2 decimals.
//
// VAT is charged on the fee-inclusive subtotal (subtotal + platform fee), not
// the bare fare. Scheduling and surge fees are added after VAT.
func CalculateFare(serviceType domain.ServiceType, distanceKm, durationMin float64, opts FareOptions) (*domain.PriceBreakdown, error) {
	rate, ok := serviceRates[serviceType]
	if !ok {
		return nil, ErrInvalidServiceType
	}
	if distanceKm < 0 {
		return nil, ErrInvalidDistance
	}
	if durationMin < 0 {
		return nil, ErrInvalidDuration
	}

	distanceCost := distanceKm * rate.PerKm
	timeCost := durationMin * rate.PerMinute
	subtotal := rate.BaseFare + distanceCost + timeCost

	var schedFee float64
	if opts.SchedulingType == schedulingTypeScheduled {
		schedFee = schedulingFee
	}

	var surgeFee float64
	if opts.SurgeMultiplier > 1 {
		surgeFee = subtotal * (opts.SurgeMultiplier - 1)
	}

	platformFee := subtotal * platformFeeRate
	vat := (subtotal + platformFee) * vatRate
	total := subtotal + platformFee + vat + schedFee + surgeFee

	return &domain.PriceBreakdown{
		BaseFare:      round2(rate.BaseFare),
		DistanceCost:  round2(distanceCost),
		TimeCost:      round2(timeCost),
		SchedulingFee: round2(schedFee),
		SurgeFee:      round2(surgeFee),
		PlatformFee:   round2(platformFee),
		VAT:           round2(vat),
		Total:         round2(total),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
