package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/user"
	"github.com/kami8ma8810/ichizen-app/middleware"
	"github.com/kami8ma8810/ichizen-app/services"
	"github.com/kami8ma8810/ichizen-app/store"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SyncUser upserts the user record after a Firebase sign-in.
func (h *UserHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.SyncUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A verified token always wins over the body field.
	if uid, ok := middleware.GetFirebaseUID(ctx); ok {
		req.FirebaseUID = uid
	}

	if req.FirebaseUID == "" {
		respondWithError(w, http.StatusBadRequest, "Firebase UIDが必要です")
		return
	}

	u, err := h.userService.SyncUser(ctx, &req)
	if err != nil {
		log.Printf("User sync error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "ユーザー同期に失敗しました")
		return
	}

	respondWithJSON(w, http.StatusOK, user.SyncUserResponse{
		ID:          u.ID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		Name:        u.Name,
		Image:       u.Image,
	})
}

// GetUserStats returns the aggregate stats card for a user.
func (h *UserHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	firebaseUID := requestUserID(r)
	if firebaseUID == "" {
		respondWithError(w, http.StatusBadRequest, "ユーザーIDが必要です")
		return
	}

	userStats, err := h.userService.GetUserStats(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "ユーザーが見つかりません")
			return
		}
		log.Printf("User stats error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "統計情報の取得に失敗しました")
		return
	}

	respondWithJSON(w, http.StatusOK, userStats)
}

// requestUserID resolves the acting user: the verified Firebase UID
// from the auth middleware when present, otherwise the userId query
// parameter.
func requestUserID(r *http.Request) string {
	if uid, ok := middleware.GetFirebaseUID(r.Context()); ok {
		return uid
	}
	return r.URL.Query().Get("userId")
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
