package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthEnabledWithoutCredentials(t *testing.T) {
	assert.False(t, AuthEnabled())
}

func TestFirebaseAuthMiddlewareUnconfigured(t *testing.T) {
	// Strict verification must refuse requests outright when no auth
	// client is configured, rather than waving them through.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/seed/templates", nil)
	rr := httptest.NewRecorder()

	FirebaseAuthMiddleware(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestOptionalAuthMiddlewarePassesThrough(t *testing.T) {
	var gotUID string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, gotOK = GetFirebaseUID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities?userId=u1", nil)
	rr := httptest.NewRecorder()

	OptionalAuthMiddleware(next).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, gotOK)
	assert.Empty(t, gotUID)
}

func TestGetFirebaseUID(t *testing.T) {
	ctx := context.WithValue(context.Background(), FirebaseUIDKey, "firebase_123")

	uid, ok := GetFirebaseUID(ctx)
	require.True(t, ok)
	assert.Equal(t, "firebase_123", uid)

	_, ok = GetFirebaseUID(context.Background())
	assert.False(t, ok)
}
