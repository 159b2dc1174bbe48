package parser

import (
	"sort"
	"strings"
)

// noMatchAdvice is returned when no keyword scores above zero.
const noMatchAdvice = "no activity keywords matched; start the message with a type tag " +
	"like WORK or EXERCISE, or include clearer keywords"

// Suggest is an advisory query over raw text, independent of any committed
// parse. It ranks the non-OTHER types by keyword hit count, highest first,
// ties broken by the fixed classification priority. Types with zero hits
// are omitted; if nothing matches at all, a single formatting hint is
// returned. Suggest never fails, even on an empty string.
func (p *Parser) Suggest(text string) []Suggestion {
	normalized := collapse(strings.ToLower(text))

	suggestions := make([]Suggestion, 0)
	for _, score := range scoreKeywords(normalized) {
		if score.hits == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			CandidateType: score.activityType,
			Score:         score.hits,
			Reason:        "matched keywords: " + strings.Join(score.matched, ", "),
		})
	}

	if len(suggestions) == 0 {
		return []Suggestion{{CandidateType: TypeOther, Reason: noMatchAdvice}}
	}

	// scoreKeywords emits priority order, so a stable sort on the count
	// alone preserves the documented tie-break.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}
