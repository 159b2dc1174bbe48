package domain

import (
	"time"

	"example.com/activitytracker/internal/parser"
)

// ActivityState represents the downstream sync status of an activity.
type ActivityState string

const (
	ActivityStatePending ActivityState = "pending"
	ActivityStateSynced  ActivityState = "synced"
	ActivityStateFailed  ActivityState = "failed"
)

// ActivityAggregate is the stored activity record: the parser's output plus
// the persistence identity this layer assigns.
type ActivityAggregate struct {
	ID           string
	PhoneNumber  string
	ActivityType parser.ActivityType
	Description  string
	DurationMin  *int
	Location     *string
	RawMessageID string
	SourceText   string
	Confidence   float64
	State        ActivityState
	RecordedAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Cursor models the pagination token for activity listings.
type Cursor struct {
	RecordedAt time.Time
	ID         string
}
