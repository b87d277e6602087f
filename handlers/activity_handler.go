package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/middleware"
	"github.com/kami8ma8810/ichizen-app/services"
	"github.com/kami8ma8810/ichizen-app/store"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetActivities lists a user's activities, newest first, optionally
// restricted to a startDate/endDate range.
func (h *ActivityHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	firebaseUID := requestUserID(r)
	if firebaseUID == "" {
		respondWithError(w, http.StatusBadRequest, "ユーザーIDが必要です")
		return
	}

	activities, err := h.activityService.ListActivities(
		ctx,
		firebaseUID,
		r.URL.Query().Get("startDate"),
		r.URL.Query().Get("endDate"),
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "ユーザーが見つかりません")
		default:
			log.Printf("Activities fetch error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "活動履歴の取得に失敗しました")
		}
		return
	}

	if activities == nil {
		activities = []*activity.Activity{}
	}
	respondWithJSON(w, http.StatusOK, activities)
}

// CreateActivity records today's good deed. A second submission for
// the same day is rejected with 409.
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req activity.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if uid, ok := middleware.GetFirebaseUID(ctx); ok {
		req.UserID = uid
	}

	created, err := h.activityService.CreateActivity(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			respondWithError(w, http.StatusBadRequest, "必須項目が不足しています（ユーザーID、日付、テンプレートIDまたはカスタムタイトルが必要）")
		case errors.Is(err, store.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "ユーザーが見つかりません。再ログインしてください。")
		case errors.Is(err, store.ErrConflict):
			respondWithError(w, http.StatusConflict, "今日の善行は既に記録されています")
		default:
			log.Printf("Activity creation error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "活動の記録に失敗しました")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GetTodayActivity returns the single activity for the current day,
// or JSON null when none exists yet.
func (h *ActivityHandler) GetTodayActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	firebaseUID := requestUserID(r)
	if firebaseUID == "" {
		respondWithError(w, http.StatusBadRequest, "ユーザーIDが必要です")
		return
	}

	today, err := h.activityService.GetTodayActivity(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "ユーザーが見つかりません")
			return
		}
		log.Printf("Today activity fetch error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "今日の活動取得に失敗しました")
		return
	}

	respondWithJSON(w, http.StatusOK, today)
}

// GetStreak returns current/longest streak statistics.
func (h *ActivityHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	firebaseUID := requestUserID(r)
	if firebaseUID == "" {
		respondWithError(w, http.StatusBadRequest, "ユーザーIDが必要です")
		return
	}

	data, err := h.activityService.GetStreak(ctx, firebaseUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "ユーザーが見つかりません")
			return
		}
		log.Printf("Streak fetch error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "ストリークの取得に失敗しました")
		return
	}

	respondWithJSON(w, http.StatusOK, data)
}

// GetCalendar returns the month grid of completed days.
func (h *ActivityHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	firebaseUID := requestUserID(r)
	if firebaseUID == "" {
		respondWithError(w, http.StatusBadRequest, "ユーザーIDが必要です")
		return
	}

	// Zero values mean "current year/month"; the service fills them in.
	var year, month int
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid year parameter")
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid month parameter")
			return
		}
		month = parsed
	}

	cal, err := h.activityService.GetCalendar(ctx, firebaseUID, year, time.Month(month))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "ユーザーが見つかりません")
		default:
			log.Printf("Calendar fetch error: %v", err)
			respondWithError(w, http.StatusInternalServerError, "カレンダーの取得に失敗しました")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, cal)
}
