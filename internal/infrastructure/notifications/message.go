package notifications

import (
	"encoding/json"
	"time"
)

// Message is the envelope every notifier publishes.
type Message struct {
	UserID   string         `json:"user_id"`
	Template string         `json:"template"`
	Payload  map[string]any `json:"payload,omitempty"`
	SentAt   time.Time      `json:"sent_at"`
}

func encode(userID, template string, payload map[string]any, now time.Time) ([]byte, error) {
	return json.Marshal(Message{UserID: userID, Template: template, Payload: payload, SentAt: now.UTC()})
}
