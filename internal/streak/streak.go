package streak

import (
	"sort"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
)

type Status string

const (
	StatusActive Status = "active"
	StatusBroken Status = "broken"
	StatusNone   Status = "none"
)

type Data struct {
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
	StreakStatus     Status     `json:"streakStatus"`
}

// Calculate derives the current and longest streak from an unordered
// activity history. Only COMPLETED activities count; dates are
// normalized to midnight and deduplicated, so multiple rows on one
// calendar day collapse to a single day.
//
// The current streak is seeded from today when today has a completion
// (status "active"), or from yesterday when only yesterday does
// (status "broken" — the chain is intact up to yesterday but not
// extended today, so CurrentStreak can be non-zero while broken). Any
// older most-recent completion leaves CurrentStreak at zero.
func Calculate(activities []*activity.Activity, now time.Time) *Data {
	dates := completedDates(activities)
	if len(dates) == 0 {
		return &Data{StreakStatus: StatusNone}
	}

	today := activity.Midnight(now)
	yesterday := today.AddDate(0, 0, -1)

	data := &Data{StreakStatus: StatusBroken}
	last := dates[0]
	data.LastActivityDate = &last

	idx := 0
	var expected time.Time

	switch {
	case dates[0].Equal(today):
		data.CurrentStreak = 1
		data.StreakStatus = StatusActive
		idx = 1
		expected = yesterday
	case dates[0].Equal(yesterday):
		data.CurrentStreak = 1
		idx = 1
		expected = yesterday.AddDate(0, 0, -1)
	}

	for idx < len(dates) && data.CurrentStreak > 0 {
		if !dates[idx].Equal(expected) {
			break
		}
		data.CurrentStreak++
		expected = expected.AddDate(0, 0, -1)
		idx++
	}

	// Longest run of consecutive days, single pass over the
	// descending date list.
	run := 0
	for i, d := range dates {
		if i == 0 || dates[i-1].Equal(d.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > data.LongestStreak {
			data.LongestStreak = run
		}
	}

	return data
}

// completedDates filters to COMPLETED, normalizes to midnight, sorts
// newest first and removes duplicate days.
func completedDates(activities []*activity.Activity) []time.Time {
	dates := make([]time.Time, 0, len(activities))
	for _, a := range activities {
		if a == nil || a.Status != activity.StatusCompleted {
			continue
		}
		dates = append(dates, activity.Midnight(a.Date))
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	deduped := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if len(deduped) == 0 || !d.Equal(deduped[len(deduped)-1]) {
			deduped = append(deduped, d)
		}
	}
	return deduped
}
