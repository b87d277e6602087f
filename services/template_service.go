package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/kami8ma8810/ichizen-app/internal/seed"
	"github.com/kami8ma8810/ichizen-app/internal/template"
	"github.com/kami8ma8810/ichizen-app/store"
)

const recommendationCount = 5

type TemplateService struct {
	db store.Store

	// Daily pick cache. Guarantees the same template for every caller
	// on one calendar day, and charges the usage counter once per day
	// instead of once per request.
	mu       sync.Mutex
	dailyDay string
	dailyID  string
}

func NewTemplateService(db store.Store) *TemplateService {
	return &TemplateService{db: db}
}

func (s *TemplateService) ListActiveTemplates(ctx context.Context) ([]*template.GoodDeedTemplate, error) {
	return s.db.ListActiveTemplates(ctx)
}

// GetDailyTemplate returns the template deterministically assigned to
// today: active templates ordered by ascending usage count, indexed by
// day-of-year modulo catalog length. The first selection of the day
// increments the template's usage counter.
func (s *TemplateService) GetDailyTemplate(ctx context.Context) (*template.GoodDeedTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := timeNow()
	day := now.Format("2006-01-02")

	if s.dailyDay == day {
		t, err := s.db.GetTemplateByID(ctx, s.dailyID)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		// Catalog was reseeded since the pick; fall through and
		// select again.
	}

	templates, err := s.db.ListActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, store.ErrNoTemplates
	}

	selected := templates[now.YearDay()%len(templates)]

	if err := s.db.IncrementTemplateUsage(ctx, selected.ID); err != nil {
		return nil, fmt.Errorf("failed to increment template usage: %w", err)
	}
	selected.UsageCount++

	s.dailyDay = day
	s.dailyID = selected.ID

	return selected, nil
}

// GetRecommendations returns a random sample of up to five active
// templates.
func (s *TemplateService) GetRecommendations(ctx context.Context) ([]*template.GoodDeedTemplate, error) {
	templates, err := s.db.ListActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	rand.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})

	if len(templates) > recommendationCount {
		templates = templates[:recommendationCount]
	}
	return templates, nil
}

// EnsureSeeded populates the catalog with the built-in set when it is
// empty, so a fresh database serves templates without a manual seed
// call. Returns the number of templates inserted, zero when the
// catalog already had entries.
func (s *TemplateService) EnsureSeeded(ctx context.Context) (int, error) {
	count, err := s.db.CountTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	return s.ReseedTemplates(ctx)
}

// ReseedTemplates replaces the catalog with the built-in set.
func (s *TemplateService) ReseedTemplates(ctx context.Context) (int, error) {
	s.mu.Lock()
	s.dailyDay = ""
	s.dailyID = ""
	s.mu.Unlock()

	return s.db.ReplaceTemplates(ctx, seed.Catalog())
}
