package service

import (
	"context"
	"math"
	"time"

	"gqcars/internal/domain"
	"gqcars/internal/redis"
)

// Risk level thresholds on the 0-100 percentage scale. Strict comparisons:
// boundary values resolve to the lower-risk bucket.
const (
	highRiskThreshold   = 70
	mediumRiskThreshold = 40
	maxRiskPerQuestion  = 5
)

// questions is the fixed security questionnaire. Option risk weights are
// baked in; scoring is a pure function of the chosen options.
var questions = []domain.Question{
	{
		ID:   1,
		Text: "What is your primary reason for requiring security transport?",
		Options: []domain.QuestionOption{
			{Value: "executive", Label: "Executive Protection", Risk: 3},
			{Value: "diplomatic", Label: "Diplomatic Mission", Risk: 5},
			{Value: "personal", Label: "Personal Security Concern", Risk: 2},
			{Value: "event", Label: "High-Profile Event", Risk: 4},
		},
	},
	{
		ID:   2,
		Text: "Have you received any recent security threats?",
		Options: []domain.QuestionOption{
			{Value: "none", Label: "No known threats", Risk: 1},
			{Value: "verbal", Label: "Verbal threats received", Risk: 3},
			{Value: "written", Label: "Written/digital threats", Risk: 4},
			{Value: "physical", Label: "Physical intimidation", Risk: 5},
		},
	},
	{
		ID:   3,
		Text: "What is the nature of your public profile?",
		Options: []domain.QuestionOption{
			{Value: "private", Label: "Private individual", Risk: 1},
			{Value: "business", Label: "Business executive", Risk: 2},
			{Value: "public", Label: "Public figure", Risk: 4},
			{Value: "celebrity", Label: "High-profile celebrity/politician", Risk: 5},
		},
	},
	{
		ID:   4,
		Text: "Which areas will you be traveling to?",
		Options: []domain.QuestionOption{
			{Value: "low", Label: "Low-risk residential areas", Risk: 1},
			{Value: "commercial", Label: "Commercial districts", Risk: 2},
			{Value: "high_traffic", Label: "High-traffic public areas", Risk: 3},
			{Value: "high_risk", Label: "Known high-risk locations", Risk: 5},
		},
	},
	{
		ID:   5,
		Text: "What time of day will most travel occur?",
		Options: []domain.QuestionOption{
			{Value: "day", Label: "Daytime hours (9 AM - 6 PM)", Risk: 1},
			{Value: "evening", Label: "Evening hours (6 PM - 10 PM)", Risk: 2},
			{Value: "night", Label: "Night hours (10 PM - 6 AM)", Risk: 3},
			{Value: "varied", Label: "Varied/unpredictable times", Risk: 4},
		},
	},
	{
		ID:   6,
		Text: "How many people will require protection?",
		Options: []domain.QuestionOption{
			{Value: "solo", Label: "Just myself", Risk: 1},
			{Value: "small", Label: "2-3 people", Risk: 2},
			{Value: "medium", Label: "4-6 people", Risk: 3},
			{Value: "large", Label: "7+ people", Risk: 4},
		},
	},
}

// AssessmentService scores the security questionnaire and tracks completion
// across restarts.
type AssessmentService struct {
	store  redis.StateStoreInterface
	events *EventBus
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(store redis.StateStoreInterface, events *EventBus) *AssessmentService {
	return &AssessmentService{
		store:  store,
		events: events,
	}
}

// Questions returns the fixed questionnaire.
func (s *AssessmentService) Questions() []domain.Question {
	return questions
}

// Score computes a RiskAssessment from a complete answer set. Scoring is pure
// and deterministic: the same answers always produce the same assessment.
func Score(answers map[int]domain.Answer) (*domain.RiskAssessment, error) {
	if len(answers) != len(questions) {
		return nil, ErrIncompleteAssessment
	}

	riskScore := 0
	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			return nil, ErrIncompleteAssessment
		}
		if answer.Risk < 1 || answer.Risk > maxRiskPerQuestion {
			return nil, ErrInvalidRiskWeight
		}
		riskScore += answer.Risk
	}

	maxRisk := len(questions) * maxRiskPerQuestion
	percentage := int(math.Round(float64(riskScore) / float64(maxRisk) * 100))

	level := domain.RiskLevelLow
	switch {
	case percentage > highRiskThreshold:
		level = domain.RiskLevelHigh
	case percentage > mediumRiskThreshold:
		level = domain.RiskLevelMedium
	}

	return &domain.RiskAssessment{
		Answers:        answers,
		RiskScore:      riskScore,
		RiskPercentage: percentage,
		RiskLevel:      level,
		CompletedAt:    time.Now(),
	}, nil
}

// Complete scores the answers, persists the assessment, and publishes the
// completion event.
func (s *AssessmentService) Complete(ctx context.Context, answers map[int]domain.Answer) (*domain.RiskAssessment, error) {
	assessment, err := Score(answers)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetJSON(ctx, redis.KeyAssessment, assessment); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, redis.KeyAssessmentCompleted, []byte("true")); err != nil {
		return nil, err
	}

	s.events.Publish(EventAssessmentCompleted, assessment)
	return assessment, nil
}

// Current returns the stored assessment, or nil if none has been completed.
func (s *AssessmentService) Current(ctx context.Context) (*domain.RiskAssessment, error) {
	var assessment domain.RiskAssessment
	ok, err := s.store.GetJSON(ctx, redis.KeyAssessment, &assessment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &assessment, nil
}

// IsCompleted reports whether an assessment has been completed.
func (s *AssessmentService) IsCompleted(ctx context.Context) (bool, error) {
	data, err := s.store.Get(ctx, redis.KeyAssessmentCompleted)
	if err != nil {
		return false, err
	}
	return string(data) == "true", nil
}

// Reset discards the stored assessment and completion flag.
func (s *AssessmentService) Reset(ctx context.Context) error {
	if err := s.store.Remove(ctx, redis.KeyAssessment); err != nil {
		return err
	}
	return s.store.Remove(ctx, redis.KeyAssessmentCompleted)
}
