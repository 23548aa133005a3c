package service

import (
	"errors"
	"math"
	"testing"

	"gqcars/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestCalculateFare_ComfortTrip(t *testing.T) {
	t.Parallel()

	// 5 km, 15 min comfort: 5.00 + 5*1.20 + 15*0.20 = 14.00 subtotal,
	// platform 0.70, VAT (14.00+0.70)*0.20 = 2.94, total 17.64.
	breakdown, err := CalculateFare(domain.ServiceTypeComfort, 5, 15, FareOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(breakdown.BaseFare, 5.00) {
		t.Errorf("base fare = %.2f, want 5.00", breakdown.BaseFare)
	}
	if !almostEqual(breakdown.DistanceCost, 6.00) {
		t.Errorf("distance cost = %.2f, want 6.00", breakdown.DistanceCost)
	}
	if !almostEqual(breakdown.TimeCost, 3.00) {
		t.Errorf("time cost = %.2f, want 3.00", breakdown.TimeCost)
	}
	if !almostEqual(breakdown.PlatformFee, 0.70) {
		t.Errorf("platform fee = %.2f, want 0.70", breakdown.PlatformFee)
	}
	if !almostEqual(breakdown.VAT, 2.94) {
		t.Errorf("VAT = %.2f, want 2.94", breakdown.VAT)
	}
	if !almostEqual(breakdown.Total, 17.64) {
		t.Errorf("total = %.2f, want 17.64", breakdown.Total)
	}
}

func TestCalculateFare_SchedulingFee(t *testing.T) {
	t.Parallel()

	onDemand, err := CalculateFare(domain.ServiceTypeComfort, 5, 15, FareOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scheduled, err := CalculateFare(domain.ServiceTypeComfort, 5, 15, FareOptions{SchedulingType: "scheduled"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(scheduled.SchedulingFee, 2.50) {
		t.Errorf("scheduling fee = %.2f, want 2.50", scheduled.SchedulingFee)
	}
	if !almostEqual(scheduled.Total-onDemand.Total, 2.50) {
		t.Errorf("scheduled total should exceed on-demand by 2.50, diff = %.2f", scheduled.Total-onDemand.Total)
	}

	// Any other scheduling type is on-demand.
	other, err := CalculateFare(domain.ServiceTypeComfort, 5, 15, FareOptions{SchedulingType: "asap"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.SchedulingFee != 0 {
		t.Errorf("unexpected scheduling fee %.2f for non-scheduled trip", other.SchedulingFee)
	}
}

func TestCalculateFare_SurgeMultiplier(t *testing.T) {
	t.Parallel()

	// Surge 1.5 on a 14.00 subtotal adds 14.00 * 0.5 = 7.00.
	surged, err := CalculateFare(domain.ServiceTypeComfort, 5, 15, FareOptions{SurgeMultiplier: 1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(surged.SurgeFee, 7.00) {
		t.Errorf("surge fee = %.2f, want 7.00", surged.SurgeFee)
	}

	// Multiplier at or below 1 contributes nothing.
	for _, m := range []float64{0, 0.5, 1} {
		breakdown, err := CalculateFare(domain.ServiceTypeComfort, 5, 15, FareOptions{SurgeMultiplier: m})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if breakdown.SurgeFee != 0 {
			t.Errorf("surge fee = %.2f for multiplier %.1f, want 0", breakdown.SurgeFee, m)
		}
	}
}

func TestCalculateFare_BreakdownSumsToTotal(t *testing.T) {
	t.Parallel()

	tiers := []domain.ServiceType{
		domain.ServiceTypeEconomy,
		domain.ServiceTypeComfort,
		domain.ServiceTypePremium,
		domain.ServiceTypeExecutive,
		domain.ServiceTypeXL,
		domain.ServiceTypeAirport,
		domain.ServiceTypeEvent,
	}

	for _, tier := range tiers {
		breakdown, err := CalculateFare(tier, 12.3, 27.8, FareOptions{SchedulingType: "scheduled", SurgeMultiplier: 1.3})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tier, err)
		}

		sum := breakdown.BaseFare + breakdown.DistanceCost + breakdown.TimeCost +
			breakdown.SchedulingFee + breakdown.SurgeFee + breakdown.PlatformFee + breakdown.VAT
		if math.Abs(sum-breakdown.Total) > 0.011 {
			t.Errorf("%s: breakdown sums to %.4f, total is %.4f", tier, sum, breakdown.Total)
		}
		if breakdown.Total < breakdown.BaseFare {
			t.Errorf("%s: total %.2f below base fare %.2f", tier, breakdown.Total, breakdown.BaseFare)
		}
	}
}

func TestCalculateFare_ZeroDistanceStillChargesBase(t *testing.T) {
	t.Parallel()

	breakdown, err := CalculateFare(domain.ServiceTypeEconomy, 0, 0, FareOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2.50 base, 0.125 platform, VAT 0.525, total 3.15.
	if !almostEqual(breakdown.Total, 3.15) {
		t.Errorf("total = %.2f, want 3.15", breakdown.Total)
	}
	if breakdown.Total < breakdown.BaseFare {
		t.Error("total must never drop below the base fare")
	}
}

func TestCalculateFare_Validation(t *testing.T) {
	t.Parallel()

	if _, err := CalculateFare("hovercraft", 5, 15, FareOptions{}); !errors.Is(err, ErrInvalidServiceType) {
		t.Errorf("expected ErrInvalidServiceType, got %v", err)
	}
	if _, err := CalculateFare(domain.ServiceTypeComfort, -1, 15, FareOptions{}); !errors.Is(err, ErrInvalidDistance) {
		t.Errorf("expected ErrInvalidDistance, got %v", err)
	}
	if _, err := CalculateFare(domain.ServiceTypeComfort, 5, -1, FareOptions{}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestCalculateFare_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := CalculateFare(domain.ServiceTypePremium, 8.4, 22, FareOptions{SurgeMultiplier: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CalculateFare(domain.ServiceTypePremium, 8.4, 22, FareOptions{SurgeMultiplier: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *first != *second {
		t.Error("same inputs must produce the same breakdown")
	}
}
