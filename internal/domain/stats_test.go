package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/activitytracker/internal/parser"
)

func TestGetStatisticsAggregates(t *testing.T) {
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	loc := "Office"
	park := "Park"
	d30, d60 := 30, 60

	repo := newStubRepo()
	repo.since = []ActivityAggregate{
		{ActivityType: parser.TypeWork, DurationMin: &d60, Location: &loc, RecordedAt: base},
		{ActivityType: parser.TypeWork, DurationMin: &d30, Location: &loc, RecordedAt: base.Add(2 * time.Hour)},
		{ActivityType: parser.TypeExercise, DurationMin: &d30, Location: &park, RecordedAt: base.AddDate(0, 0, 1)},
		{ActivityType: parser.TypeOther, RecordedAt: base.AddDate(0, 0, 1)},
	}

	service := NewService(repo, parser.New())
	stats, err := service.GetStatistics(context.Background(), "+12025550123", 7)
	require.NoError(t, err)

	require.Equal(t, 4, stats.TotalActivities)
	require.Equal(t, 7, stats.Days)
	require.Equal(t, map[string]int{"work": 2, "exercise": 1, "other": 1}, stats.ByType)
	require.Equal(t, 120, stats.TotalDurationMinutes)
	require.Equal(t, 3, stats.WithDuration)
	require.InDelta(t, 40.0, stats.AverageDurationMinutes, 1e-9)
	require.Equal(t, 3, stats.WithLocation)
	require.Equal(t, []string{"Office", "Park"}, stats.UniqueLocations)
	require.Equal(t, "2026-03-10", stats.MostActiveDay)
	require.NotEmpty(t, stats.Insights)
}

func TestGetStatisticsEmptyWindow(t *testing.T) {
	service := NewService(newStubRepo(), parser.New())

	stats, err := service.GetStatistics(context.Background(), "+12025550123", 30)
	require.NoError(t, err)
	require.Zero(t, stats.TotalActivities)
	require.Equal(t, []string{"No activities recorded in the selected period."}, stats.Insights)
}

func TestGenerateInsightsDominantType(t *testing.T) {
	stats := Statistics{
		Days:            7,
		TotalActivities: 10,
		ByType:          map[string]int{"work": 8, "meal": 2},
	}

	insights := generateInsights(stats)
	require.Contains(t, insights, "Your most tracked activity type is work (8 activities, 80.0%)")
	require.Contains(t, insights, "Consider diversifying your tracked activities for better balance.")
}
