package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
)

var now = time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

func completedOn(t time.Time) *activity.Activity {
	return &activity.Activity{Date: t, Status: activity.StatusCompleted}
}

func daysAgo(n int) time.Time {
	return activity.Midnight(now).AddDate(0, 0, -n)
}

func TestCalculateEmptyHistory(t *testing.T) {
	data := Calculate(nil, now)

	assert.Equal(t, 0, data.CurrentStreak)
	assert.Equal(t, 0, data.LongestStreak)
	assert.Nil(t, data.LastActivityDate)
	assert.Equal(t, StatusNone, data.StreakStatus)
}

func TestCalculateActiveStreak(t *testing.T) {
	history := []*activity.Activity{
		completedOn(daysAgo(0)),
		completedOn(daysAgo(1)),
		completedOn(daysAgo(2)),
	}

	data := Calculate(history, now)

	assert.Equal(t, 3, data.CurrentStreak)
	assert.Equal(t, 3, data.LongestStreak)
	assert.Equal(t, StatusActive, data.StreakStatus)
	require.NotNil(t, data.LastActivityDate)
	assert.True(t, data.LastActivityDate.Equal(daysAgo(0)))
}

func TestCalculateBrokenButGraced(t *testing.T) {
	// Chain ends yesterday: broken status but a non-zero current
	// streak (the grace period case).
	history := []*activity.Activity{
		completedOn(daysAgo(1)),
		completedOn(daysAgo(2)),
	}

	data := Calculate(history, now)

	assert.Equal(t, 2, data.CurrentStreak)
	assert.Equal(t, StatusBroken, data.StreakStatus)
}

func TestCalculateYesterdayOnly(t *testing.T) {
	data := Calculate([]*activity.Activity{completedOn(daysAgo(1))}, now)

	assert.Equal(t, 1, data.CurrentStreak)
	assert.Equal(t, StatusBroken, data.StreakStatus)
	assert.Equal(t, 1, data.LongestStreak)
}

func TestCalculateStaleHistory(t *testing.T) {
	data := Calculate([]*activity.Activity{completedOn(daysAgo(5))}, now)

	assert.Equal(t, 0, data.CurrentStreak)
	assert.Equal(t, StatusBroken, data.StreakStatus)
	assert.Equal(t, 1, data.LongestStreak)
	require.NotNil(t, data.LastActivityDate)
	assert.True(t, data.LastActivityDate.Equal(daysAgo(5)))
}

func TestCalculateStopsAtGap(t *testing.T) {
	history := []*activity.Activity{
		completedOn(daysAgo(0)),
		completedOn(daysAgo(1)),
		// Gap on day 2.
		completedOn(daysAgo(3)),
		completedOn(daysAgo(4)),
		completedOn(daysAgo(5)),
		completedOn(daysAgo(6)),
	}

	data := Calculate(history, now)

	assert.Equal(t, 2, data.CurrentStreak)
	assert.Equal(t, StatusActive, data.StreakStatus)
	assert.Equal(t, 4, data.LongestStreak)
}

func TestCalculateLongestAtLeastCurrent(t *testing.T) {
	histories := [][]*activity.Activity{
		nil,
		{completedOn(daysAgo(0))},
		{completedOn(daysAgo(0)), completedOn(daysAgo(1)), completedOn(daysAgo(3))},
		{completedOn(daysAgo(1)), completedOn(daysAgo(2)), completedOn(daysAgo(10))},
		{completedOn(daysAgo(7)), completedOn(daysAgo(8)), completedOn(daysAgo(9))},
	}

	for _, h := range histories {
		data := Calculate(h, now)
		assert.GreaterOrEqual(t, data.LongestStreak, data.CurrentStreak)
	}
}

func TestCalculateDuplicateDaysCollapse(t *testing.T) {
	// Two rows for the same calendar day count as one.
	history := []*activity.Activity{
		completedOn(daysAgo(0)),
		completedOn(daysAgo(0).Add(3 * time.Hour)),
		completedOn(daysAgo(1)),
	}

	data := Calculate(history, now)

	assert.Equal(t, 2, data.CurrentStreak)
	assert.Equal(t, 2, data.LongestStreak)
}

func TestCalculateIgnoresNonCompleted(t *testing.T) {
	history := []*activity.Activity{
		{Date: daysAgo(0), Status: activity.Status("SKIPPED")},
	}

	data := Calculate(history, now)

	assert.Equal(t, StatusNone, data.StreakStatus)
	assert.Equal(t, 0, data.CurrentStreak)
}

func TestCalculateDeterministic(t *testing.T) {
	history := []*activity.Activity{
		completedOn(daysAgo(0)),
		completedOn(daysAgo(1)),
		completedOn(daysAgo(4)),
	}

	first := Calculate(history, now)
	second := Calculate(history, now)

	assert.Equal(t, first, second)
}

func TestCalculateUnorderedInput(t *testing.T) {
	history := []*activity.Activity{
		completedOn(daysAgo(2)),
		completedOn(daysAgo(0)),
		completedOn(daysAgo(1)),
	}

	data := Calculate(history, now)

	assert.Equal(t, 3, data.CurrentStreak)
	assert.Equal(t, StatusActive, data.StreakStatus)
}
