// Package events defines the event payloads exchanged over Kafka.
package events

import "time"

// SMSReceived is the inbound message event published by the SMS gateway
// bridge and consumed by the smsworker.
type SMSReceived struct {
	MessageID   string    `json:"message_id"`
	PhoneNumber string    `json:"phone_number"`
	Body        string    `json:"body"`
	ReceivedAt  time.Time `json:"received_at"`
}

// ActivityRecorded is emitted when a message has been parsed and stored.
type ActivityRecorded struct {
	ActivityID   string    `json:"activity_id"`
	PhoneNumber  string    `json:"phone_number"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	DurationMin  *int      `json:"duration_min,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Confidence   float64   `json:"confidence"`
	RecordedAt   time.Time `json:"recorded_at"`
	Version      string    `json:"version"`
}

// ActivityStateChanged tracks sync-state transitions for downstream
// consumers.
type ActivityStateChanged struct {
	ActivityID  string    `json:"activity_id"`
	PhoneNumber string    `json:"phone_number"`
	State       string    `json:"state"`
	OccurredAt  time.Time `json:"occurred_at"`
	Reason      string    `json:"reason,omitempty"`
}
