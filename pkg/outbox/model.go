package outbox

import (
	"encoding/json"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusSent       Status = "sent"
	StatusFailed     Status = "failed"
)

type Event struct {
	ID            int64
	AggregateType string
	AggregateID   string
	Type          string
	Payload       []byte
	Headers       map[string]string
	Traceparent   string
	CreatedAt     time.Time
	Status        Status
	RelayID       string
	RetryCount    int
	LastError     *string
}

// Message is the part of an Event a repository writes next to the aggregate
// in the same transaction.
type Message struct {
	Type        string
	Payload     []byte
	Headers     map[string]string
	Traceparent string
}

func NewMessage(eventType string, v any, headers map[string]string, traceparent string) (Message, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return Message{Type: eventType, Payload: payload, Headers: headers, Traceparent: traceparent}, nil
}
