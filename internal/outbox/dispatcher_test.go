package outbox

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	written map[string][]kafka.Message
	err     error
}

func (s *stubWriter) WriteMessages(_ context.Context, topic string, msgs ...kafka.Message) error {
	if s.err != nil {
		return s.err
	}
	if s.written == nil {
		s.written = make(map[string][]kafka.Message)
	}
	s.written[topic] = append(s.written[topic], msgs...)
	return nil
}

type stubRegistry struct {
	calls map[string]int
	id    int
}

func (s *stubRegistry) EnsureSchema(_ context.Context, subject string, _ string) (int, error) {
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[subject]++
	return s.id, nil
}

func TestEncodeWireFormat(t *testing.T) {
	frame := encodeWireFormat(42, []byte(`{"a":1}`))

	require.Equal(t, byte(0), frame[0])
	require.Equal(t, uint32(42), binary.BigEndian.Uint32(frame[1:5]))
	require.Equal(t, `{"a":1}`, string(frame[5:]))
}

func TestDeliverFramesAndBatchesByTopic(t *testing.T) {
	writer := &stubWriter{}
	registry := &stubRegistry{id: 7}
	d := NewDispatcher(nil, writer, registry, 0, 10)

	messages := []Message{
		{
			EventID:       1,
			AggregateID:   "a-1",
			EventType:     "activity.recorded",
			Topic:         "activity_events",
			SchemaSubject: "activity_recorded-value",
			PartitionKey:  "+15550001111",
			Payload:       []byte(`{"activity_id":"a-1"}`),
		},
		{
			EventID:       2,
			AggregateID:   "a-1",
			EventType:     "activity.state_changed",
			Topic:         "activity_events",
			SchemaSubject: "activity_state_changed-value",
			PartitionKey:  "+15550001111",
			Payload:       []byte(`{"activity_id":"a-1","state":"pending"}`),
		},
	}

	require.NoError(t, d.deliver(context.Background(), messages))

	require.Len(t, writer.written["activity_events"], 2)
	first := writer.written["activity_events"][0]
	require.Equal(t, "+15550001111", string(first.Key))
	require.Equal(t, uint32(7), binary.BigEndian.Uint32(first.Value[1:5]))
	require.Equal(t, 1, registry.calls["activity_recorded-value"])
	require.Equal(t, 1, registry.calls["activity_state_changed-value"])
}

func TestDeliverCachesSchemaIDs(t *testing.T) {
	writer := &stubWriter{}
	registry := &stubRegistry{id: 3}
	d := NewDispatcher(nil, writer, registry, 0, 10)

	msg := Message{
		EventID:       1,
		AggregateID:   "a-1",
		EventType:     "activity.recorded",
		Topic:         "activity_events",
		SchemaSubject: "activity_recorded-value",
		PartitionKey:  "+15550002222",
		Payload:       []byte(`{}`),
	}

	require.NoError(t, d.deliver(context.Background(), []Message{msg}))
	require.NoError(t, d.deliver(context.Background(), []Message{msg}))

	require.Equal(t, 1, registry.calls["activity_recorded-value"])
}

func TestDeliverUnknownEventType(t *testing.T) {
	d := NewDispatcher(nil, &stubWriter{}, &stubRegistry{}, 0, 10)

	err := d.deliver(context.Background(), []Message{{EventType: "activity.archived"}})
	require.Error(t, err)
}

func TestDeliverPropagatesWriteFailure(t *testing.T) {
	writer := &stubWriter{err: errors.New("broker unavailable")}
	d := NewDispatcher(nil, writer, &stubRegistry{id: 1}, 0, 10)

	err := d.deliver(context.Background(), []Message{{
		EventType:     "activity.recorded",
		Topic:         "activity_events",
		SchemaSubject: "activity_recorded-value",
		Payload:       []byte(`{}`),
	}})
	require.Error(t, err)
}
