package calendar

import (
	"math"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
)

type CalendarDay struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	IsToday   bool      `json:"isToday"`
}

type CalendarResponse struct {
	Year           int            `json:"year"`
	Month          int            `json:"month"`
	Days           []*CalendarDay `json:"days"`
	CompletedDays  int            `json:"completedDays"`
	CompletionRate int            `json:"completionRate"`
}

// MonthRange returns the first and last day of the month, both at
// midnight UTC, for an inclusive store filter.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// BuildMonth reduces a month's activities to a day grid for the
// calendar view. Completion rate is the share of days in the month
// with a COMPLETED activity, rounded to the nearest percent.
func BuildMonth(year int, month time.Month, activities []*activity.Activity, now time.Time) *CalendarResponse {
	start, end := MonthRange(year, month)

	completed := make(map[string]bool)
	for _, a := range activities {
		if a == nil || a.Status != activity.StatusCompleted {
			continue
		}
		day := activity.Midnight(a.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		completed[day.Format("2006-01-02")] = true
	}

	today := activity.Midnight(now).Format("2006-01-02")

	var days []*CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		days = append(days, &CalendarDay{
			Date:      d,
			Completed: completed[key],
			IsToday:   key == today,
		})
	}

	resp := &CalendarResponse{
		Year:          year,
		Month:         int(month),
		Days:          days,
		CompletedDays: len(completed),
	}
	resp.CompletionRate = int(math.Round(float64(len(completed)) / float64(len(days)) * 100))
	return resp
}
