package parser

import "fmt"

// Parser is the message-to-activity engine. The zero value is not usable;
// construct with New. A single Parser may be shared by any number of
// goroutines since every field is read-only after construction.
type Parser struct {
	weights Weights
}

// Option configures optional behaviour for the Parser.
type Option func(*Parser)

// WithWeights overrides the default confidence policy.
func WithWeights(w Weights) Option {
	return func(p *Parser) {
		p.weights = w
	}
}

// New constructs a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse turns a raw message into a structured activity with a confidence
// score. It fails only with ErrEmptyMessage, when the normalized body is
// empty and no explicit tag was given; any other input succeeds, falling
// back to TypeOther with whatever signals were found.
func (p *Parser) Parse(raw RawMessage) (ParseResult, error) {
	text, tag, hasTag := normalize(raw.Body)
	if !hasTag && text == "" {
		return ParseResult{}, fmt.Errorf("message %q: %w", raw.MessageID, ErrEmptyMessage)
	}

	duration, afterDuration, hasDuration := extractDuration(text)
	location, remainder, hasLocation := extractLocation(afterDuration)

	description := remainder
	if description == "" {
		// Everything was consumed by extraction; keep the full normalized
		// text so the description is never empty.
		description = text
	}

	activityType := tag
	hits := 0
	if !hasTag {
		winner := classify(text)
		activityType = winner.activityType
		hits = winner.hits
	}
	if description == "" {
		// Tag-only message such as "WORK": nothing remains to describe, so
		// label the record by its type.
		description = string(activityType) + " activity"
	}

	signals := make(map[Signal]struct{})
	if hasTag {
		signals[SignalExplicitTag] = struct{}{}
	}
	if hasDuration {
		signals[SignalDuration] = struct{}{}
	}
	if hasLocation {
		signals[SignalLocation] = struct{}{}
	}
	if hits > 0 {
		signals[SignalKeywordHit] = struct{}{}
	}

	activity := ParsedActivity{
		ActivityType: activityType,
		Description:  description,
		PhoneNumber:  raw.PhoneNumber,
		RawMessageID: raw.MessageID,
		SourceText:   raw.Body,
	}
	if hasDuration {
		activity.DurationMinutes = &duration
	}
	if hasLocation {
		activity.Location = &location
	}

	return ParseResult{
		Activity:   activity,
		Confidence: p.weights.score(hasTag, hasDuration, hasLocation, hits),
		Signals:    signals,
	}, nil
}
