package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type contextKey string

const FirebaseUIDKey contextKey = "firebaseUID"

var authClient *auth.Client

// InitFirebaseAuth initializes the firebase-admin auth client. It
// first attempts Base64-encoded credentials from the
// FIREBASE_SERVICE_ACCOUNT_JSON environment variable and falls back to
// a local service account key file.
func InitFirebaseAuth(ctx context.Context, localFilePath string) error {
	var opt option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return fmt.Errorf("failed to decode base64 firebase credentials from FIREBASE_SERVICE_ACCOUNT_JSON: %v", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("Firebase auth: initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable.")
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return fmt.Errorf("local firebase file not found: %s, and FIREBASE_SERVICE_ACCOUNT_JSON environment variable is not set", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
		log.Printf("Firebase auth: initializing from local file: %s.", localFilePath)
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	authClient, err = app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error getting auth client: %v", err)
	}

	return nil
}

// AuthEnabled reports whether token verification is configured.
func AuthEnabled() bool {
	return authClient != nil
}

// FirebaseAuthMiddleware validates Firebase ID tokens and puts the
// verified UID in the request context.
func FirebaseAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authClient == nil {
			respondWithError(w, http.StatusServiceUnavailable, "Authentication is not configured")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <token>'")
			return
		}

		verified, err := authClient.VerifyIDToken(r.Context(), token)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired Firebase ID token")
			return
		}

		ctx := context.WithValue(r.Context(), FirebaseUIDKey, verified.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware verifies a token when one is supplied and
// verification is configured, and lets the request through either way.
// Handlers fall back to the userId parameter when no verified UID is
// in the context.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authClient != nil && authHeader != "" {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			verified, err := authClient.VerifyIDToken(r.Context(), token)
			if err == nil {
				ctx := context.WithValue(r.Context(), FirebaseUIDKey, verified.UID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetFirebaseUID extracts the verified Firebase UID from context.
func GetFirebaseUID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(FirebaseUIDKey).(string)
	return uid, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
