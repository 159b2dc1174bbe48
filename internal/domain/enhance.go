package domain

import (
	"strings"

	"example.com/activitytracker/internal/parser"
)

// defaultDurations are fallback estimates per activity type, applied when a
// message names no duration.
var defaultDurations = map[parser.ActivityType]int{
	parser.TypeWork:     60,
	parser.TypeExercise: 45,
	parser.TypeMeal:     30,
	parser.TypeStudy:    90,
	parser.TypeSocial:   120,
	parser.TypeTravel:   30,
	parser.TypeOther:    60,
}

// acronyms restores casing that the title-case pass flattens.
var acronyms = map[string]string{
	"Hq":  "HQ",
	"Usa": "USA",
	"Nyc": "NYC",
	"La":  "LA",
	"Sf":  "SF",
}

// genericPhrases are descriptions too vague to stand alone.
var genericPhrases = map[string]struct{}{
	"activity": {},
	"session":  {},
	"time":     {},
	"stuff":    {},
}

// enhance applies presentation and inference rules on top of the parser's
// raw output: duration inference, location cleanup, and description polish.
// The parser stays a pure text transform; anything opinionated lives here.
func enhance(activity parser.ParsedActivity) parser.ParsedActivity {
	if activity.DurationMinutes == nil {
		if inferred := inferDuration(activity.ActivityType, activity.Description); inferred > 0 {
			activity.DurationMinutes = &inferred
		}
	}
	if activity.Location != nil {
		cleaned := cleanLocation(*activity.Location)
		activity.Location = &cleaned
	}
	activity.Description = polishDescription(activity.ActivityType, activity.Description)
	return activity
}

// inferDuration estimates a duration from the activity type and description
// hints. Returns 0 when nothing sensible can be inferred.
func inferDuration(activityType parser.ActivityType, description string) int {
	fallback := defaultDurations[activityType]
	lower := strings.ToLower(description)

	if containsAny(lower, "quick", "brief", "short") {
		if fallback > 15 {
			return 15
		}
		return fallback
	}
	if containsAny(lower, "long", "extended", "all day") {
		return fallback * 2
	}

	if activityType == parser.TypeMeal {
		switch {
		case strings.Contains(lower, "breakfast"):
			return 20
		case strings.Contains(lower, "lunch"):
			return 45
		case strings.Contains(lower, "dinner"):
			return 60
		case strings.Contains(lower, "snack"):
			return 10
		}
	}

	if activityType == parser.TypeExercise {
		switch {
		case containsAny(lower, "walk", "walking"):
			return 30
		case containsAny(lower, "run", "running", "jog", "jogging"):
			return 45
		case strings.Contains(lower, "gym"):
			return 90
		}
	}

	return fallback
}

// cleanLocation title-cases the location and restores common acronyms.
func cleanLocation(location string) string {
	words := strings.Fields(location)
	for i, word := range words {
		words[i] = capitalize(word)
		if fixed, ok := acronyms[words[i]]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// polishDescription capitalizes the description and prefixes overly generic
// ones with the activity type.
func polishDescription(activityType parser.ActivityType, description string) string {
	description = strings.TrimSpace(description)
	if _, generic := genericPhrases[strings.ToLower(description)]; generic {
		description = string(activityType) + " " + strings.ToLower(description)
	}
	return capitalize(description)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
