// Package domain defines the business logic for the activity tracker.
package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"example.com/activitytracker/internal/parser"
)

var (
	// ErrActivityNotFound is returned when an activity cannot be located.
	ErrActivityNotFound = errors.New("activity not found")
)

// ActivityRepository captures persistence operations.
type ActivityRepository interface {
	FindByMessageID(ctx context.Context, messageID string) (*ActivityAggregate, error)
	Create(ctx context.Context, aggregate ActivityAggregate) error
	Get(ctx context.Context, activityID string) (*ActivityAggregate, error)
	ListByPhone(ctx context.Context, phoneNumber string, cursor *Cursor, limit int) ([]ActivityAggregate, *Cursor, error)
	ListSince(ctx context.Context, phoneNumber string, since time.Time) ([]ActivityAggregate, error)
}

// Service orchestrates message processing and activity lookups.
type Service struct {
	repo   ActivityRepository
	parser *parser.Parser
}

// NewService constructs a Service around the given repository and parsing
// engine.
func NewService(repo ActivityRepository, engine *parser.Parser) *Service {
	return &Service{repo: repo, parser: engine}
}

// ProcessMessage parses a raw inbound message into an activity and persists
// it. SMS carriers may redeliver, so the raw message id doubles as an
// idempotency key: a message already on record returns the stored aggregate
// with replay=true. Parse failures surface unchanged; the caller decides
// whether to answer with formatting suggestions.
func (s *Service) ProcessMessage(ctx context.Context, raw parser.RawMessage) (*ActivityAggregate, bool, error) {
	existing, err := s.repo.FindByMessageID(ctx, raw.MessageID)
	if err != nil {
		return nil, false, fmt.Errorf("idempotency lookup for message %q: %w", raw.MessageID, err)
	}
	if existing != nil {
		return existing, true, nil
	}

	result, err := s.parser.Parse(raw)
	if err != nil {
		return nil, false, err
	}

	parsed := enhance(result.Activity)

	recordedAt := raw.ReceivedAt.UTC()
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	now := time.Now().UTC()
	aggregate := ActivityAggregate{
		ID:           uuid.NewString(),
		PhoneNumber:  parsed.PhoneNumber,
		ActivityType: parsed.ActivityType,
		Description:  parsed.Description,
		DurationMin:  parsed.DurationMinutes,
		Location:     parsed.Location,
		RawMessageID: parsed.RawMessageID,
		SourceText:   parsed.SourceText,
		Confidence:   result.Confidence,
		State:        ActivityStatePending,
		RecordedAt:   recordedAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, aggregate); err != nil {
		return nil, false, err
	}

	return &aggregate, false, nil
}

// Suggest returns formatting advice for a message body without committing a
// parse.
func (s *Service) Suggest(text string) []parser.Suggestion {
	return s.parser.Suggest(text)
}

// GetActivity fetches by ID.
func (s *Service) GetActivity(ctx context.Context, activityID string) (*ActivityAggregate, error) {
	agg, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		return nil, ErrActivityNotFound
	}
	return agg, nil
}

// ListActivities fetches a user's activities with cursor pagination.
func (s *Service) ListActivities(ctx context.Context, phoneNumber string, cursor *Cursor, limit int) ([]ActivityAggregate, *Cursor, error) {
	return s.repo.ListByPhone(ctx, phoneNumber, cursor, limit)
}
