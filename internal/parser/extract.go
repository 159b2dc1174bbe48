package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// durationRE matches "for <number> <unit>" phrases. Number words (a, an) are
// validated separately: they only combine with singular units.
var durationRE = regexp.MustCompile(`\bfor (a|an|\d+) (minutes?|mins?|hours?|hrs?|h)\b`)

// prepositionRE marks the start of a location phrase.
var prepositionRE = regexp.MustCompile(`\b(?:at|in)\b`)

// durationMatch is one validated duration phrase found in the text.
type durationMatch struct {
	start   int
	end     int
	minutes int
}

// firstDuration returns the leftmost valid duration phrase, if any. Invalid
// candidates ("for 0 minutes", "for an hours") are skipped, not errors.
func firstDuration(text string) (durationMatch, bool) {
	for _, idx := range durationRE.FindAllStringSubmatchIndex(text, -1) {
		amount := text[idx[2]:idx[3]]
		unit := text[idx[4]:idx[5]]

		var value int
		if amount == "a" || amount == "an" {
			// "for an hour", "for a minute"; plural units make no sense here.
			if strings.HasSuffix(unit, "s") {
				continue
			}
			value = 1
		} else {
			n, err := strconv.Atoi(amount)
			if err != nil || n <= 0 {
				continue
			}
			value = n
		}

		if strings.HasPrefix(unit, "h") {
			value *= 60
		}
		return durationMatch{start: idx[0], end: idx[1], minutes: value}, true
	}
	return durationMatch{}, false
}

// extractDuration removes the first duration phrase (including "for") from
// the text and reports its value in minutes. Hour units are converted.
func extractDuration(text string) (minutes int, remainder string, ok bool) {
	m, found := firstDuration(text)
	if !found {
		return 0, text, false
	}
	remainder = collapse(text[:m.start] + " " + text[m.end:])
	return m.minutes, remainder, true
}

// extractLocation removes an "(at|in) <phrase>" clause from the text. The
// phrase runs from the token after the earliest preposition to the end of
// the string or the start of the next recognized duration phrase, whichever
// comes first. Duration is extracted before location precisely so that
// "for 30 minutes" is never mistaken for a place.
func extractLocation(text string) (location string, remainder string, ok bool) {
	loc := prepositionRE.FindStringIndex(text)
	if loc == nil {
		return "", text, false
	}

	boundary := len(text)
	if m, found := firstDuration(text[loc[1]:]); found {
		boundary = loc[1] + m.start
	}

	phrase := collapse(text[loc[1]:boundary])
	if phrase == "" {
		// A dangling preposition carries no location.
		return "", text, false
	}

	remainder = collapse(text[:loc[0]] + " " + text[boundary:])
	return phrase, remainder, true
}
