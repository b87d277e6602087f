package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/template"
	"github.com/kami8ma8810/ichizen-app/services"
	"github.com/kami8ma8810/ichizen-app/store"
)

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// GetTemplates lists the active catalog, least-used first.
func (h *TemplateHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	templates, err := h.templateService.ListActiveTemplates(ctx)
	if err != nil {
		log.Printf("Templates fetch error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "テンプレートの取得に失敗しました")
		return
	}

	if templates == nil {
		templates = []*template.GoodDeedTemplate{}
	}
	respondWithJSON(w, http.StatusOK, templates)
}

// GetDailyTemplate returns today's deterministically selected deed.
func (h *TemplateHandler) GetDailyTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	selected, err := h.templateService.GetDailyTemplate(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoTemplates) {
			respondWithError(w, http.StatusNotFound, "テンプレートが見つかりませんでした")
			return
		}
		log.Printf("Daily template fetch error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "今日のテンプレート取得に失敗しました")
		return
	}

	respondWithJSON(w, http.StatusOK, selected)
}

// GetRecommendations returns a random sample of up to five templates.
func (h *TemplateHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	recommendations, err := h.templateService.GetRecommendations(ctx)
	if err != nil {
		log.Printf("Recommendations fetch error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "おすすめテンプレートの取得に失敗しました")
		return
	}

	if recommendations == nil {
		recommendations = []*template.GoodDeedTemplate{}
	}
	respondWithJSON(w, http.StatusOK, recommendations)
}

// ReseedTemplates replaces the whole catalog with the built-in set.
func (h *TemplateHandler) ReseedTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := h.templateService.ReseedTemplates(ctx)
	if err != nil {
		log.Printf("Seed error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "シードに失敗しました")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"message": "データベースが正常にシードされました",
		"count":   count,
	})
}
