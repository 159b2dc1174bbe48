package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestRanksByHitCount(t *testing.T) {
	p := New()

	got := p.Suggest("coding on the project, then coffee")

	require.Len(t, got, 2)
	require.Equal(t, TypeWork, got[0].CandidateType)
	require.Equal(t, 2, got[0].Score)
	require.Equal(t, "matched keywords: coding, project", got[0].Reason)
	require.Equal(t, TypeSocial, got[1].CandidateType)
	require.Equal(t, 1, got[1].Score)
	require.Equal(t, "matched keywords: coffee", got[1].Reason)
}

func TestSuggestReasonListsKeywordsInTextOrder(t *testing.T) {
	p := New()

	got := p.Suggest("standup then meeting at the office")

	require.Len(t, got, 1)
	require.Equal(t, TypeWork, got[0].CandidateType)
	require.Equal(t, "matched keywords: standup, meeting, office", got[0].Reason)
}

func TestSuggestTieBreakFollowsPriorityOrder(t *testing.T) {
	p := New()

	got := p.Suggest("lunch with friends")

	require.Len(t, got, 2)
	require.Equal(t, TypeMeal, got[0].CandidateType)
	require.Equal(t, TypeSocial, got[1].CandidateType)
}

func TestSuggestOmitsZeroScores(t *testing.T) {
	p := New()

	for _, s := range p.Suggest("gym session") {
		require.Greater(t, s.Score, 0)
	}
}

func TestSuggestNoMatches(t *testing.T) {
	p := New()

	for _, text := range []string{"", "completely unrelated words", "   "} {
		got := p.Suggest(text)
		require.Len(t, got, 1, "text %q", text)
		require.Equal(t, TypeOther, got[0].CandidateType)
		require.Zero(t, got[0].Score)
		require.Equal(t, noMatchAdvice, got[0].Reason)
	}
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	p := New()

	got := p.Suggest("GYM and Yoga")
	require.Len(t, got, 1)
	require.Equal(t, TypeExercise, got[0].CandidateType)
	require.Equal(t, 2, got[0].Score)
}
