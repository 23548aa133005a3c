package domain

import "time"

// RiskLevel buckets an assessment score.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// Answer is one questionnaire answer: the chosen option value and its
// baked-in risk weight (1..5).
type Answer struct {
	Value string `json:"value"`
	Risk  int    `json:"risk"`
}

// RiskAssessment is the scored result of a completed questionnaire.
// Immutable once created; a reset discards it entirely.
type RiskAssessment struct {
	Answers        map[int]Answer `json:"answers"`
	RiskScore      int            `json:"riskScore"`
	RiskPercentage int            `json:"riskPercentage"`
	RiskLevel      RiskLevel      `json:"riskLevel"`
	CompletedAt    time.Time      `json:"completedAt"`
}

// QuestionOption is one selectable option with its risk weight.
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Risk  int    `json:"risk"`
}

// Question is one entry of the fixed security questionnaire.
type Question struct {
	ID      int              `json:"id"`
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options"`
}
