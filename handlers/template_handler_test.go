package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kami8ma8810/ichizen-app/internal/template"
)

func TestGetTemplatesReturnsSeededCatalog(t *testing.T) {
	_, _, templateHandler := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil)
	rr := httptest.NewRecorder()

	templateHandler.GetTemplates(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var templates []*template.GoodDeedTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &templates))
	assert.NotEmpty(t, templates)
	for _, tmpl := range templates {
		assert.True(t, tmpl.IsActive)
		assert.NotEmpty(t, tmpl.Title)
	}
}

func TestGetDailyTemplateStable(t *testing.T) {
	_, _, templateHandler := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/daily", nil)
	rr := httptest.NewRecorder()

	templateHandler.GetDailyTemplate(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var first template.GoodDeedTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))

	// Polling again the same day must return the same template.
	rr = httptest.NewRecorder()
	templateHandler.GetDailyTemplate(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var second template.GoodDeedTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)
}

func TestGetRecommendationsCapped(t *testing.T) {
	_, _, templateHandler := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/templates/recommendations", nil)
	rr := httptest.NewRecorder()

	templateHandler.GetRecommendations(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var recommendations []*template.GoodDeedTemplate
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recommendations))
	assert.NotEmpty(t, recommendations)
	assert.LessOrEqual(t, len(recommendations), 5)
}

func TestReseedTemplates(t *testing.T) {
	_, _, templateHandler := setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/seed/templates", nil)
	rr := httptest.NewRecorder()

	templateHandler.ReseedTemplates(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "データベースが正常にシードされました", resp.Message)
	assert.Greater(t, resp.Count, 0)
}
