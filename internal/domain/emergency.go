package domain

import "time"

// EmergencyContact is a person alerted during an emergency activation.
// Contacts are not deduplicated by phone number and Relationship is free text.
type EmergencyContact struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"` // normalized, E.164-like
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ActionResult records the outcome of one fan-out channel during activation.
type ActionResult struct {
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// EmergencyActivation captures a single emergency fan-out and every channel's
// outcome. Persisted for offline recovery until explicitly deactivated.
type EmergencyActivation struct {
	Timestamp time.Time      `json:"timestamp"`
	Location  *Location      `json:"location,omitempty"` // may fail to resolve
	Actions   []ActionResult `json:"actions"`
}

// MessageTemplate is a canned emergency message.
type MessageTemplate struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
