package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/activitytracker/internal/domain"
	"example.com/activitytracker/internal/events"
	"example.com/activitytracker/internal/observability"
)

// Repository provides Postgres-backed persistence for activities and outbox
// events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const activityColumns = `activity_id, phone_number, activity_type, description, duration_min, location,
        raw_message_id, source_text, confidence, processing_state, recorded_at, created_at, updated_at`

func scanActivity(row pgx.Row) (*domain.ActivityAggregate, error) {
	var agg domain.ActivityAggregate
	err := row.Scan(&agg.ID, &agg.PhoneNumber, &agg.ActivityType, &agg.Description, &agg.DurationMin,
		&agg.Location, &agg.RawMessageID, &agg.SourceText, &agg.Confidence, &agg.State,
		&agg.RecordedAt, &agg.CreatedAt, &agg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// FindByMessageID checks whether a raw message was already processed. SMS
// gateways redeliver, so the message id acts as the idempotency key.
func (r *Repository) FindByMessageID(ctx context.Context, messageID string) (*domain.ActivityAggregate, error) {
	if messageID == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM activities WHERE raw_message_id=$1`, activityColumns)

	agg, err := scanActivity(r.pool.QueryRow(ctx, query, messageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// Create persists the aggregate and records outbox events inside a single
// transaction.
func (r *Repository) Create(ctx context.Context, aggregate domain.ActivityAggregate) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	insertActivity := fmt.Sprintf(`INSERT INTO activities (%s)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`, activityColumns)

	_, err = tx.Exec(ctx, insertActivity,
		aggregate.ID,
		aggregate.PhoneNumber,
		aggregate.ActivityType,
		aggregate.Description,
		aggregate.DurationMin,
		aggregate.Location,
		aggregate.RawMessageID,
		aggregate.SourceText,
		aggregate.Confidence,
		aggregate.State,
		aggregate.RecordedAt,
		aggregate.CreatedAt,
		aggregate.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err = r.insertOutbox(ctx, tx, aggregate, "activity.recorded", events.ActivityRecorded{
		ActivityID:   aggregate.ID,
		PhoneNumber:  aggregate.PhoneNumber,
		ActivityType: string(aggregate.ActivityType),
		Description:  aggregate.Description,
		DurationMin:  aggregate.DurationMin,
		Location:     aggregate.Location,
		Confidence:   aggregate.Confidence,
		RecordedAt:   aggregate.RecordedAt,
		Version:      "v1",
	}); err != nil {
		return err
	}

	if err = r.insertOutbox(ctx, tx, aggregate, "activity.state_changed", events.ActivityStateChanged{
		ActivityID:  aggregate.ID,
		PhoneNumber: aggregate.PhoneNumber,
		State:       string(aggregate.State),
		OccurredAt:  aggregate.UpdatedAt,
	}); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}
	observability.RecordActivityPersisted(aggregate.UpdatedAt)
	return nil
}

func (r *Repository) insertOutbox(ctx context.Context, tx pgx.Tx, aggregate domain.ActivityAggregate, eventType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	meta, ok := eventCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	dedupeKey := fmt.Sprintf("%s:%s", aggregate.ID, eventType)

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err = tx.Exec(ctx, stmt,
		"activity",
		aggregate.ID,
		eventType,
		meta.Topic,
		meta.SchemaSubject,
		aggregate.PhoneNumber,
		body,
		dedupeKey,
	)
	return err
}

// Get retrieves an activity by ID.
func (r *Repository) Get(ctx context.Context, activityID string) (*domain.ActivityAggregate, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE activity_id=$1`, activityColumns)

	agg, err := scanActivity(r.pool.QueryRow(ctx, query, activityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// ListByPhone returns a page of activities for a phone number, newest first.
func (r *Repository) ListByPhone(ctx context.Context, phoneNumber string, cursor *domain.Cursor, limit int) ([]domain.ActivityAggregate, *domain.Cursor, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error
	if cursor == nil {
		query := fmt.Sprintf(`SELECT %s FROM activities
            WHERE phone_number=$1
            ORDER BY recorded_at DESC, activity_id DESC
            LIMIT $2`, activityColumns)
		rows, err = r.pool.Query(ctx, query, phoneNumber, limit+1)
	} else {
		query := fmt.Sprintf(`SELECT %s FROM activities
            WHERE phone_number=$1 AND (recorded_at, activity_id) < ($2, $3)
            ORDER BY recorded_at DESC, activity_id DESC
            LIMIT $4`, activityColumns)
		rows, err = r.pool.Query(ctx, query, phoneNumber, cursor.RecordedAt, cursor.ID, limit+1)
	}
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	items := make([]domain.ActivityAggregate, 0, limit)
	for rows.Next() {
		agg, scanErr := scanActivity(rows)
		if scanErr != nil {
			return nil, nil, scanErr
		}
		items = append(items, *agg)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &domain.Cursor{RecordedAt: last.RecordedAt, ID: last.ID}
	}
	return items, next, nil
}

// ListSince returns all of a user's activities recorded at or after the
// given instant, for statistics windows.
func (r *Repository) ListSince(ctx context.Context, phoneNumber string, since time.Time) ([]domain.ActivityAggregate, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities
        WHERE phone_number=$1 AND recorded_at >= $2
        ORDER BY recorded_at ASC`, activityColumns)

	rows, err := r.pool.Query(ctx, query, phoneNumber, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.ActivityAggregate, 0)
	for rows.Next() {
		agg, scanErr := scanActivity(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, *agg)
	}
	return items, rows.Err()
}

// MarkSynced flips the given activities to the synced state after their
// outbox events have been published.
func (r *Repository) MarkSynced(ctx context.Context, activityIDs []string) error {
	if len(activityIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE activities SET processing_state='synced', updated_at=NOW()
         WHERE activity_id = ANY($1) AND processing_state='pending'`,
		activityIDs)
	return err
}

// eventCatalog maps event types to their Kafka routing metadata.
var eventCatalog = map[string]struct {
	Topic         string
	SchemaSubject string
}{
	"activity.recorded":      {Topic: "activity_events", SchemaSubject: "activity_recorded-value"},
	"activity.state_changed": {Topic: "activity_events", SchemaSubject: "activity_state_changed-value"},
}
