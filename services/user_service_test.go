package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/user"
	"github.com/kami8ma8810/ichizen-app/store"
)

func TestSyncUserRequiresUID(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())

	_, err := svc.SyncUser(context.Background(), &user.SyncUserRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSyncUserCreatesThenUpdates(t *testing.T) {
	svc := NewUserService(store.NewMemoryStore())
	ctx := context.Background()

	created, err := svc.SyncUser(ctx, &user.SyncUserRequest{
		FirebaseUID: "firebase_sync",
		Email:       "first@example.com",
		Name:        "Taro",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", created.Timezone)
	assert.Equal(t, "ja", created.Language)
	assert.True(t, created.IsActive)

	// Second sync is an update and keeps the internal ID.
	updated, err := svc.SyncUser(ctx, &user.SyncUserRequest{
		FirebaseUID: "firebase_sync",
		Name:        "Taro Yamada",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Taro Yamada", updated.Name)
	assert.Equal(t, "first@example.com", updated.Email)
}

func TestGetUserStats(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	fixedNow(t, now)

	db := store.NewMemoryStore()
	userSvc := NewUserService(db)
	activitySvc := NewActivityService(db)
	ctx := context.Background()

	_, err := userSvc.SyncUser(ctx, &user.SyncUserRequest{FirebaseUID: "firebase_stats"})
	require.NoError(t, err)

	for _, day := range []string{"2025-03-15", "2025-03-14"} {
		_, err := activitySvc.CreateActivity(ctx, &activity.CreateActivityRequest{
			UserID:      "firebase_stats",
			Date:        day,
			CustomTitle: "deed",
		})
		require.NoError(t, err)
	}

	stats, err := userSvc.GetUserStats(ctx, "firebase_stats")
	require.NoError(t, err)

	assert.True(t, stats.TodayStatus)
	assert.Equal(t, 2, stats.TotalDays)
	assert.Equal(t, 2, stats.CurrentStreak)

	_, err = userSvc.GetUserStats(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
