package domain

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Statistics summarises a user's activity history over a window.
type Statistics struct {
	PhoneNumber            string
	Days                   int
	TotalActivities        int
	ByType                 map[string]int
	TotalDurationMinutes   int
	AverageDurationMinutes float64
	WithDuration           int
	WithLocation           int
	UniqueLocations        []string
	DailyCounts            map[string]int
	MostActiveDay          string
	Insights               []string
}

// GetStatistics aggregates a user's activities over the trailing window and
// derives human-readable insights.
func (s *Service) GetStatistics(ctx context.Context, phoneNumber string, days int) (Statistics, error) {
	if days <= 0 {
		days = 30
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	activities, err := s.repo.ListSince(ctx, phoneNumber, since)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		PhoneNumber: phoneNumber,
		Days:        days,
		ByType:      make(map[string]int),
		DailyCounts: make(map[string]int),
	}

	locations := make(map[string]struct{})
	for _, activity := range activities {
		stats.TotalActivities++
		stats.ByType[string(activity.ActivityType)]++

		if activity.DurationMin != nil {
			stats.TotalDurationMinutes += *activity.DurationMin
			stats.WithDuration++
		}
		if activity.Location != nil {
			stats.WithLocation++
			locations[*activity.Location] = struct{}{}
		}

		day := activity.RecordedAt.Format("2006-01-02")
		stats.DailyCounts[day]++
		if stats.MostActiveDay == "" || stats.DailyCounts[day] > stats.DailyCounts[stats.MostActiveDay] {
			stats.MostActiveDay = day
		}
	}

	if stats.WithDuration > 0 {
		stats.AverageDurationMinutes = float64(stats.TotalDurationMinutes) / float64(stats.WithDuration)
	}

	stats.UniqueLocations = make([]string, 0, len(locations))
	for loc := range locations {
		stats.UniqueLocations = append(stats.UniqueLocations, loc)
	}
	sort.Strings(stats.UniqueLocations)

	stats.Insights = generateInsights(stats)
	return stats, nil
}

// generateInsights turns aggregate numbers into short, user-facing
// observations about tracking habits.
func generateInsights(stats Statistics) []string {
	if stats.TotalActivities == 0 {
		return []string{"No activities recorded in the selected period."}
	}

	insights := make([]string, 0, 6)

	perDay := float64(stats.TotalActivities) / float64(stats.Days)
	switch {
	case perDay >= 3:
		insights = append(insights, "You're very active! Recording 3+ activities per day on average.")
	case perDay >= 1:
		insights = append(insights, "You're consistently tracking activities daily.")
	default:
		insights = append(insights, "Consider tracking more activities to get better insights.")
	}

	if top, count, ok := mostCommonType(stats.ByType); ok {
		pct := float64(count) / float64(stats.TotalActivities) * 100
		insights = append(insights, fmt.Sprintf(
			"Your most tracked activity type is %s (%d activities, %.1f%%)", top, count, pct))
		if pct > 70 {
			insights = append(insights, "Consider diversifying your tracked activities for better balance.")
		}
	}

	if avg := stats.AverageDurationMinutes; avg > 0 {
		hours := int(avg) / 60
		minutes := int(avg) % 60
		if hours > 0 {
			insights = append(insights, fmt.Sprintf("Average activity duration: %dh %dm", hours, minutes))
		} else {
			insights = append(insights, fmt.Sprintf("Average activity duration: %d minutes", minutes))
		}
		if avg > 120 {
			insights = append(insights, "You tend to engage in longer activities.")
		} else if avg < 30 {
			insights = append(insights, "You prefer shorter, focused activities.")
		}
	}

	if n := len(stats.UniqueLocations); n > 5 {
		insights = append(insights, fmt.Sprintf("You're quite mobile! Active in %d different locations.", n))
	} else if n == 1 {
		insights = append(insights, "You tend to do activities in the same location.")
	}

	return insights
}

// mostCommonType picks the highest-count type; ties resolve alphabetically
// so repeated calls agree.
func mostCommonType(byType map[string]int) (string, int, bool) {
	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)

	var top string
	var count int
	for _, name := range names {
		if byType[name] > count {
			top = name
			count = byType[name]
		}
	}
	return top, count, top != ""
}
