package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"example.com/activitytracker/internal/domain"
	"example.com/activitytracker/internal/events"
	"example.com/activitytracker/internal/observability"
	"example.com/activitytracker/internal/parser"
)

// SMSHandler turns inbound SMS events into persisted activities.
type SMSHandler struct {
	service *domain.Service
	logger  *log.Logger
}

// NewSMSHandler constructs an SMSHandler.
func NewSMSHandler(service *domain.Service) *SMSHandler {
	return &SMSHandler{
		service: service,
		logger:  log.New(log.Writer(), "[sms] ", log.LstdFlags),
	}
}

// Handle decodes an sms.received event and runs it through the parsing
// pipeline. Unparseable messages are dropped with a metric rather than
// retried, since redelivery cannot fix a malformed body.
func (h *SMSHandler) Handle(ctx context.Context, msg Message) error {
	var event events.SMSReceived
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode sms.received: %w", err)
	}
	if event.PhoneNumber == "" {
		observability.RecordParseRejected()
		h.logger.Printf("dropping message with no phone number (offset=%d)", msg.Offset)
		return nil
	}

	raw := parser.RawMessage{
		MessageID:   event.MessageID,
		PhoneNumber: event.PhoneNumber,
		Body:        event.Body,
		ReceivedAt:  event.ReceivedAt,
	}

	aggregate, replay, err := h.service.ProcessMessage(ctx, raw)
	if errors.Is(err, parser.ErrEmptyMessage) {
		observability.RecordParseRejected()
		h.logger.Printf("dropping empty message %s", event.MessageID)
		return nil
	}
	if err != nil {
		return err
	}

	if replay {
		h.logger.Printf("message %s already processed as activity %s", event.MessageID, aggregate.ID)
		return nil
	}

	observability.RecordParse(string(aggregate.ActivityType), aggregate.Confidence)
	return nil
}
