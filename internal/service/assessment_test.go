package service

import (
	"errors"
	"testing"

	"gqcars/internal/domain"
)

func answersWithRisks(risks [6]int) map[int]domain.Answer {
	answers := make(map[int]domain.Answer, len(risks))
	for i, r := range risks {
		answers[i+1] = domain.Answer{Value: "test", Risk: r}
	}
	return answers
}

func TestScore_MinimumAnswersAreLowRisk(t *testing.T) {
	t.Parallel()

	assessment, err := Score(answersWithRisks([6]int{1, 1, 1, 1, 1, 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.RiskScore != 6 {
		t.Errorf("risk score = %d, want 6", assessment.RiskScore)
	}
	if assessment.RiskPercentage != 20 {
		t.Errorf("risk percentage = %d, want 20", assessment.RiskPercentage)
	}
	if assessment.RiskLevel != domain.RiskLevelLow {
		t.Errorf("risk level = %s, want %s", assessment.RiskLevel, domain.RiskLevelLow)
	}
}

func TestScore_HighRiskProfile(t *testing.T) {
	t.Parallel()

	assessment, err := Score(answersWithRisks([6]int{5, 5, 5, 5, 4, 1}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.RiskScore != 25 {
		t.Errorf("risk score = %d, want 25", assessment.RiskScore)
	}
	if assessment.RiskPercentage != 83 {
		t.Errorf("risk percentage = %d, want 83", assessment.RiskPercentage)
	}
	if assessment.RiskLevel != domain.RiskLevelHigh {
		t.Errorf("risk level = %s, want %s", assessment.RiskLevel, domain.RiskLevelHigh)
	}
}

func TestScore_ThresholdsAreStrict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		risks [6]int
		score int
		pct   int
		level domain.RiskLevel
	}{
		// 40% exactly stays LOW; 70% exactly stays MEDIUM.
		{"exactly 40 percent", [6]int{2, 2, 2, 2, 2, 2}, 12, 40, domain.RiskLevelLow},
		{"just above 40 percent", [6]int{3, 2, 2, 2, 2, 2}, 13, 43, domain.RiskLevelMedium},
		{"exactly 70 percent", [6]int{5, 5, 5, 4, 1, 1}, 21, 70, domain.RiskLevelMedium},
		{"just above 70 percent", [6]int{5, 5, 5, 4, 2, 1}, 22, 73, domain.RiskLevelHigh},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assessment, err := Score(answersWithRisks(tc.risks))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if assessment.RiskScore != tc.score {
				t.Errorf("risk score = %d, want %d", assessment.RiskScore, tc.score)
			}
			if assessment.RiskPercentage != tc.pct {
				t.Errorf("risk percentage = %d, want %d", assessment.RiskPercentage, tc.pct)
			}
			if assessment.RiskLevel != tc.level {
				t.Errorf("risk level = %s, want %s", assessment.RiskLevel, tc.level)
			}
		})
	}
}

func TestScore_IncompleteAnswers(t *testing.T) {
	t.Parallel()

	answers := answersWithRisks([6]int{1, 1, 1, 1, 1, 1})
	delete(answers, 4)

	if _, err := Score(answers); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("expected ErrIncompleteAssessment, got %v", err)
	}

	if _, err := Score(map[int]domain.Answer{}); !errors.Is(err, ErrIncompleteAssessment) {
		t.Errorf("expected ErrIncompleteAssessment for empty answers, got %v", err)
	}
}

func TestScore_RejectsOutOfRangeWeights(t *testing.T) {
	t.Parallel()

	if _, err := Score(answersWithRisks([6]int{0, 1, 1, 1, 1, 1})); !errors.Is(err, ErrInvalidRiskWeight) {
		t.Errorf("expected ErrInvalidRiskWeight for 0, got %v", err)
	}
	if _, err := Score(answersWithRisks([6]int{6, 1, 1, 1, 1, 1})); !errors.Is(err, ErrInvalidRiskWeight) {
		t.Errorf("expected ErrInvalidRiskWeight for 6, got %v", err)
	}
}

func TestScore_Deterministic(t *testing.T) {
	t.Parallel()

	risks := [6]int{3, 4, 2, 5, 1, 2}
	first, err := Score(answersWithRisks(risks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Score(answersWithRisks(risks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.RiskScore != second.RiskScore ||
		first.RiskPercentage != second.RiskPercentage ||
		first.RiskLevel != second.RiskLevel {
		t.Error("same answers must produce the same assessment")
	}
}

func TestQuestions_FixedSetWithBoundedWeights(t *testing.T) {
	t.Parallel()

	svc := NewAssessmentService(nil, NewEventBus())

	qs := svc.Questions()
	if len(qs) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(qs))
	}
	for _, q := range qs {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", q.ID, len(q.Options))
		}
		for _, opt := range q.Options {
			if opt.Risk < 1 || opt.Risk > maxRiskPerQuestion {
				t.Errorf("question %d option %s: risk %d out of range", q.ID, opt.Value, opt.Risk)
			}
		}
	}
}
