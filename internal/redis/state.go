package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Well-known state keys.
const (
	KeyCurrentBooking      = "state:current_booking"
	KeyLastEmergency       = "state:last_emergency"
	KeyEmergencyActive     = "state:emergency_active"
	KeyAssessment          = "state:security_assessment"
	KeyAssessmentCompleted = "state:security_assessment_completed"
)

// StateStore is a durable key-value store for per-session state that must
// survive process restarts: the current booking pointer, the emergency-active
// flag, the last activation record, and the completed assessment.
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a new StateStore.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Get retrieves the raw value for key. Returns (nil, nil) on a missing key.
func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Set stores the raw value for key. Values have no TTL; they are cleared
// explicitly by the owning service.
func (s *StateStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Remove deletes the value for key. Removing a missing key is not an error.
func (s *StateStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// GetJSON retrieves and unmarshals the value for key into dest.
// Returns (false, nil) on a missing key without touching dest.
func (s *StateStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals value and stores it under key.
func (s *StateStore) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
