package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfidenceWeights(t *testing.T) {
	w := DefaultWeights()

	require.Equal(t, 0.0, w.score(false, false, false, 0))
	require.Equal(t, 0.5, w.score(true, false, false, 0))
	require.InDelta(t, 0.7, w.score(true, true, false, 0), 1e-9)
	require.InDelta(t, 0.85, w.score(true, true, true, 0), 1e-9)
	require.InDelta(t, 0.1, w.score(false, false, false, 2), 1e-9)
}

func TestConfidenceKeywordHitsSaturate(t *testing.T) {
	w := DefaultWeights()

	three := w.score(false, false, false, 3)
	ten := w.score(false, false, false, 10)
	require.InDelta(t, 0.15, three, 1e-9)
	require.Equal(t, three, ten)
}

func TestConfidenceIsMonotone(t *testing.T) {
	w := DefaultWeights()

	// Flipping any signal on never lowers the score.
	for _, tag := range []bool{false, true} {
		for _, dur := range []bool{false, true} {
			for _, loc := range []bool{false, true} {
				for hits := 0; hits < 5; hits++ {
					base := w.score(tag, dur, loc, hits)
					require.GreaterOrEqual(t, w.score(true, dur, loc, hits), base)
					require.GreaterOrEqual(t, w.score(tag, true, loc, hits), base)
					require.GreaterOrEqual(t, w.score(tag, dur, true, hits), base)
					require.GreaterOrEqual(t, w.score(tag, dur, loc, hits+1), base)
				}
			}
		}
	}
}

func TestConfidenceIsBounded(t *testing.T) {
	// Deliberately oversized weights must still clamp to 1.
	w := Weights{ExplicitTag: 0.9, Duration: 0.9, Location: 0.9, KeywordHit: 0.5, KeywordHitCap: 2}

	got := w.score(true, true, true, 10)
	require.Equal(t, 1.0, got)
}

func TestParserWithCustomWeights(t *testing.T) {
	p := New(WithWeights(Weights{Duration: 0.4}))

	result, err := p.Parse(msg("something for 10 minutes"))
	require.NoError(t, err)
	require.InDelta(t, 0.4, result.Confidence, 1e-9)
}
