package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/streak"
	"github.com/kami8ma8810/ichizen-app/internal/user"
	"github.com/kami8ma8810/ichizen-app/store"
)

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = time.Now })
}

func syncTestUser(t *testing.T, db store.Store, firebaseUID string) *user.User {
	t.Helper()
	u, err := NewUserService(db).SyncUser(context.Background(), &user.SyncUserRequest{
		FirebaseUID: firebaseUID,
		Email:       "test@example.com",
	})
	require.NoError(t, err)
	return u
}

func TestCreateActivityValidation(t *testing.T) {
	svc := NewActivityService(store.NewMemoryStore())
	ctx := context.Background()

	cases := []*activity.CreateActivityRequest{
		{Date: "2025-03-15", CustomTitle: "x"},               // no user
		{UserID: "u", CustomTitle: "x"},                      // no date
		{UserID: "u", Date: "2025-03-15"},                    // neither template nor custom title
	}

	for _, req := range cases {
		_, err := svc.CreateActivity(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestCreateActivityUnknownUser(t *testing.T) {
	svc := NewActivityService(store.NewMemoryStore())

	_, err := svc.CreateActivity(context.Background(), &activity.CreateActivityRequest{
		UserID:      "nobody",
		Date:        "2025-03-15",
		CustomTitle: "x",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateActivityDefaultsAndConflict(t *testing.T) {
	db := store.NewMemoryStore()
	svc := NewActivityService(db)
	ctx := context.Background()
	syncTestUser(t, db, "firebase_abc")

	created, err := svc.CreateActivity(ctx, &activity.CreateActivityRequest{
		UserID:      "firebase_abc",
		Date:        "2025-03-15T09:30:00Z",
		CustomTitle: "席を譲った",
	})
	require.NoError(t, err)

	assert.Equal(t, activity.StatusCompleted, created.Status)
	assert.Equal(t, activity.MoodGood, created.Mood)
	assert.True(t, created.Date.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))

	// Second submission for the same day must be rejected.
	_, err = svc.CreateActivity(ctx, &activity.CreateActivityRequest{
		UserID:      "firebase_abc",
		Date:        "2025-03-15T21:00:00Z",
		CustomTitle: "another",
	})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestCreateActivityBadDate(t *testing.T) {
	db := store.NewMemoryStore()
	svc := NewActivityService(db)
	syncTestUser(t, db, "firebase_bad")

	_, err := svc.CreateActivity(context.Background(), &activity.CreateActivityRequest{
		UserID:      "firebase_bad",
		Date:        "15/03/2025",
		CustomTitle: "x",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetTodayActivity(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	db := store.NewMemoryStore()
	svc := NewActivityService(db)
	ctx := context.Background()
	syncTestUser(t, db, "firebase_today")

	today, err := svc.GetTodayActivity(ctx, "firebase_today")
	require.NoError(t, err)
	assert.Nil(t, today)

	_, err = svc.CreateActivity(ctx, &activity.CreateActivityRequest{
		UserID:      "firebase_today",
		Date:        "2025-03-15",
		CustomTitle: "x",
	})
	require.NoError(t, err)

	today, err = svc.GetTodayActivity(ctx, "firebase_today")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, "x", today.CustomTitle)
}

func TestGetStreakFlow(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	db := store.NewMemoryStore()
	svc := NewActivityService(db)
	ctx := context.Background()
	syncTestUser(t, db, "firebase_streak")

	for _, day := range []string{"2025-03-15", "2025-03-14", "2025-03-13"} {
		_, err := svc.CreateActivity(ctx, &activity.CreateActivityRequest{
			UserID:      "firebase_streak",
			Date:        day,
			CustomTitle: "deed",
		})
		require.NoError(t, err)
	}

	data, err := svc.GetStreak(ctx, "firebase_streak")
	require.NoError(t, err)

	assert.Equal(t, 3, data.CurrentStreak)
	assert.Equal(t, 3, data.LongestStreak)
	assert.Equal(t, streak.StatusActive, data.StreakStatus)
}

func TestGetCalendarFlow(t *testing.T) {
	now := time.Date(2025, 4, 28, 10, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	db := store.NewMemoryStore()
	svc := NewActivityService(db)
	ctx := context.Background()
	syncTestUser(t, db, "firebase_cal")

	for day := 1; day <= 21; day++ {
		_, err := svc.CreateActivity(ctx, &activity.CreateActivityRequest{
			UserID:      "firebase_cal",
			Date:        time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			CustomTitle: "deed",
		})
		require.NoError(t, err)
	}

	cal, err := svc.GetCalendar(ctx, "firebase_cal", 2025, time.April)
	require.NoError(t, err)

	assert.Equal(t, 21, cal.CompletedDays)
	assert.Equal(t, 70, cal.CompletionRate)

	_, err = svc.GetCalendar(ctx, "firebase_cal", 2025, time.Month(13))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCalendarDefaultsFromClock(t *testing.T) {
	fixedNow(t, time.Date(2025, 4, 28, 10, 0, 0, 0, time.UTC))

	db := store.NewMemoryStore()
	svc := NewActivityService(db)
	ctx := context.Background()
	syncTestUser(t, db, "firebase_cal_default")

	// Zero year/month resolve against the service clock, not wall time.
	cal, err := svc.GetCalendar(ctx, "firebase_cal_default", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, 4, cal.Month)
	assert.Len(t, cal.Days, 30)
}
