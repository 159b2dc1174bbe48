// Package parser turns free-form SMS text into structured activity records.
//
// The engine is a pure text transform: it holds no mutable state, performs
// no I/O, and is safe to call concurrently. A parse runs four stages in
// sequence (normalize, extract, classify, score); each stage consumes the
// previous stage's output.
package parser

import (
	"errors"
	"time"
)

// ActivityType is the closed set of trackable activity categories.
type ActivityType string

const (
	TypeWork     ActivityType = "work"
	TypeExercise ActivityType = "exercise"
	TypeMeal     ActivityType = "meal"
	TypeStudy    ActivityType = "study"
	TypeSocial   ActivityType = "social"
	TypeTravel   ActivityType = "travel"
	// TypeOther is the universal fallback and always a legal result.
	TypeOther ActivityType = "other"
)

// ErrEmptyMessage is returned when a message carries no text to parse after
// normalization. It is the parser's only failure mode; every other input
// succeeds, possibly as a low-confidence TypeOther result.
var ErrEmptyMessage = errors.New("message body is empty")

// Signal identifies a structured field the parser managed to extract.
type Signal string

const (
	SignalExplicitTag Signal = "EXPLICIT_TAG"
	SignalDuration    Signal = "DURATION"
	SignalLocation    Signal = "LOCATION"
	SignalKeywordHit  Signal = "KEYWORD_HIT"
)

// RawMessage is an inbound SMS as handed over by the transport layer. The
// transport owns it; the parser only reads Body and copies the identifying
// fields into the result.
type RawMessage struct {
	MessageID   string
	PhoneNumber string
	Body        string
	ReceivedAt  time.Time
}

// ParsedActivity is the structured record produced by one parse call.
// Persistence identity (record id, stored timestamps) belongs to the
// storage layer; the parser never assigns one.
type ParsedActivity struct {
	ActivityType    ActivityType
	Description     string
	DurationMinutes *int
	Location        *string
	PhoneNumber     string
	RawMessageID    string
	SourceText      string
}

// ParseResult wraps a ParsedActivity with derived quality signals.
// Confidence and Signals are recomputed on every call, never cached.
type ParseResult struct {
	Activity   ParsedActivity
	Confidence float64
	Signals    map[Signal]struct{}
}

// Suggestion is an advisory ranking entry for an alternative classification.
// Suggestions are never persisted.
type Suggestion struct {
	CandidateType ActivityType
	Score         int
	Reason        string
}
