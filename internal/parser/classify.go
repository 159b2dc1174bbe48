package parser

import (
	"sort"
	"strings"
)

// typeScore pairs a candidate type with its keyword hit count and the
// distinct keywords that produced it.
type typeScore struct {
	activityType ActivityType
	hits         int
	matched      []string
}

// tokenize splits normalized text into whole words. Punctuation separates
// words so "gym," still counts as a gym hit.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

// scoreKeywords counts whole-word keyword occurrences for every non-OTHER
// type, returned in fixed priority order so callers inherit deterministic
// tie-breaking. Matched keywords are listed in the order they first appear
// in the text, not table order.
func scoreKeywords(text string) []typeScore {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, word := range tokenize(text) {
		if counts[word] == 0 {
			firstSeen[word] = i
		}
		counts[word]++
	}

	scores := make([]typeScore, 0, len(classifyOrder))
	for _, t := range classifyOrder {
		score := typeScore{activityType: t}
		for _, keyword := range keywordTable[t] {
			if n := counts[keyword]; n > 0 {
				score.hits += n
				score.matched = append(score.matched, keyword)
			}
		}
		sort.Slice(score.matched, func(i, j int) bool {
			return firstSeen[score.matched[i]] < firstSeen[score.matched[j]]
		})
		scores = append(scores, score)
	}
	return scores
}

// classify picks the type with the strictly highest keyword count. Ties on
// a nonzero count resolve to the earliest type in classifyOrder; an all-zero
// board falls back to TypeOther.
func classify(text string) typeScore {
	best := typeScore{activityType: TypeOther}
	for _, score := range scoreKeywords(text) {
		if score.hits > best.hits {
			best = score
		}
	}
	return best
}
