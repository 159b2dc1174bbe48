package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/activitytracker/internal/domain"
	"example.com/activitytracker/internal/events"
	"example.com/activitytracker/internal/parser"
)

type memoryRepo struct {
	created   []domain.ActivityAggregate
	createErr error
}

func (m *memoryRepo) FindByMessageID(_ context.Context, messageID string) (*domain.ActivityAggregate, error) {
	for i := range m.created {
		if m.created[i].RawMessageID == messageID {
			return &m.created[i], nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) Create(_ context.Context, aggregate domain.ActivityAggregate) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, aggregate)
	return nil
}

func (m *memoryRepo) Get(context.Context, string) (*domain.ActivityAggregate, error) {
	return nil, nil
}

func (m *memoryRepo) ListByPhone(context.Context, string, *domain.Cursor, int) ([]domain.ActivityAggregate, *domain.Cursor, error) {
	return nil, nil, nil
}

func (m *memoryRepo) ListSince(context.Context, string, time.Time) ([]domain.ActivityAggregate, error) {
	return nil, nil
}

func smsMessage(t *testing.T, event events.SMSReceived) Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return Message{
		Topic:     "sms_inbound",
		Offset:    1,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func TestSMSHandlerPersistsActivity(t *testing.T) {
	repo := &memoryRepo{}
	handler := NewSMSHandler(domain.NewService(repo, parser.New()))

	msg := smsMessage(t, events.SMSReceived{
		MessageID:   "m-100",
		PhoneNumber: "+15550001000",
		Body:        "EXERCISE morning run for 30 minutes at the park",
		ReceivedAt:  time.Now().UTC(),
	})

	require.NoError(t, handler.Handle(context.Background(), msg))

	require.Len(t, repo.created, 1)
	require.Equal(t, parser.TypeExercise, repo.created[0].ActivityType)
	require.Equal(t, "m-100", repo.created[0].RawMessageID)
}

func TestSMSHandlerDropsEmptyBody(t *testing.T) {
	repo := &memoryRepo{}
	handler := NewSMSHandler(domain.NewService(repo, parser.New()))

	msg := smsMessage(t, events.SMSReceived{
		MessageID:   "m-101",
		PhoneNumber: "+15550001001",
		Body:        "   ",
	})

	// Empty bodies cannot be fixed by redelivery, so the handler swallows
	// the parse failure and lets the processor commit.
	require.NoError(t, handler.Handle(context.Background(), msg))
	require.Empty(t, repo.created)
}

func TestSMSHandlerDropsMissingPhoneNumber(t *testing.T) {
	repo := &memoryRepo{}
	handler := NewSMSHandler(domain.NewService(repo, parser.New()))

	msg := smsMessage(t, events.SMSReceived{
		MessageID: "m-102",
		Body:      "WORK standup",
	})

	require.NoError(t, handler.Handle(context.Background(), msg))
	require.Empty(t, repo.created)
}

func TestSMSHandlerReturnsPersistenceErrors(t *testing.T) {
	repo := &memoryRepo{createErr: errors.New("connection refused")}
	handler := NewSMSHandler(domain.NewService(repo, parser.New()))

	msg := smsMessage(t, events.SMSReceived{
		MessageID:   "m-103",
		PhoneNumber: "+15550001002",
		Body:        "MEAL lunch at the deli",
	})

	err := handler.Handle(context.Background(), msg)
	require.Error(t, err)
	require.Empty(t, repo.created)
}

func TestSMSHandlerIgnoresRedelivery(t *testing.T) {
	repo := &memoryRepo{}
	handler := NewSMSHandler(domain.NewService(repo, parser.New()))

	msg := smsMessage(t, events.SMSReceived{
		MessageID:   "m-104",
		PhoneNumber: "+15550001003",
		Body:        "STUDY reading for 45 minutes",
		ReceivedAt:  time.Now().UTC(),
	})

	require.NoError(t, handler.Handle(context.Background(), msg))
	require.NoError(t, handler.Handle(context.Background(), msg))

	require.Len(t, repo.created, 1)
}
