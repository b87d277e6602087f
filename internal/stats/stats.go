package stats

import (
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/streak"
)

type UserStats struct {
	TodayStatus   bool `json:"todayStatus"`
	DaysThisWeek  int  `json:"daysThisWeek"`
	DaysThisMonth int  `json:"daysThisMonth"`
	DaysThisYear  int  `json:"daysThisYear"`
	TotalDays     int  `json:"totalDays"`
	CurrentStreak int  `json:"currentStreak"`
	LongestStreak int  `json:"longestStreak"`
}

// Build aggregates a user's full activity history into the profile
// stats card. Week starts on Monday.
func Build(activities []*activity.Activity, now time.Time) *UserStats {
	today := activity.Midnight(now)
	weekStart := startOfWeek(today)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	seen := make(map[string]bool)
	s := &UserStats{}

	for _, a := range activities {
		if a == nil || a.Status != activity.StatusCompleted {
			continue
		}
		day := activity.Midnight(a.Date)
		key := day.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true

		s.TotalDays++
		if day.Equal(today) {
			s.TodayStatus = true
		}
		if !day.Before(weekStart) && !day.After(today) {
			s.DaysThisWeek++
		}
		if !day.Before(monthStart) && !day.After(today) {
			s.DaysThisMonth++
		}
		if !day.Before(yearStart) && !day.After(today) {
			s.DaysThisYear++
		}
	}

	sd := streak.Calculate(activities, now)
	s.CurrentStreak = sd.CurrentStreak
	s.LongestStreak = sd.LongestStreak

	return s
}

func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
