package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/seed"
	"github.com/kami8ma8810/ichizen-app/internal/template"
	"github.com/kami8ma8810/ichizen-app/internal/user"
)

// MemoryStore is the transient fallback backend for runs without a
// DATABASE_URL. State lives in process-local maps and does not survive
// a restart; that is an accepted limitation, not a bug.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[string]*user.User
	usersByUID map[string]string

	templates map[string]*template.GoodDeedTemplate

	activities         map[string]*activity.Activity
	activityByUserDate map[string]string
}

// NewMemoryStore builds an empty store pre-seeded with the built-in
// good deed catalog.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		users:              make(map[string]*user.User),
		usersByUID:         make(map[string]string),
		templates:          make(map[string]*template.GoodDeedTemplate),
		activities:         make(map[string]*activity.Activity),
		activityByUserDate: make(map[string]string),
	}
	s.seedTemplates(seed.Catalog())
	return s
}

func (s *MemoryStore) seedTemplates(templates []*template.GoodDeedTemplate) {
	now := time.Now().UTC()
	for _, t := range templates {
		c := *t
		c.ID = uuid.New().String()
		c.CreatedAt = now
		c.UpdatedAt = now
		s.templates[c.ID] = &c
	}
}

func (s *MemoryStore) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByUID[firebaseUID]
	if !ok {
		return nil, ErrNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByUID[u.FirebaseUID]; ok {
		return nil, ErrConflict
	}

	c := *u
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.users[c.ID] = &c
	s.usersByUID[c.FirebaseUID] = c.ID

	out := c
	return &out, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, firebaseUID string, req *user.SyncUserRequest) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usersByUID[firebaseUID]
	if !ok {
		return nil, ErrNotFound
	}

	u := s.users[id]
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Image != "" {
		u.Image = req.Image
	}
	u.UpdatedAt = time.Now().UTC()

	out := *u
	return &out, nil
}

func (s *MemoryStore) ListActiveTemplates(ctx context.Context) ([]*template.GoodDeedTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var templates []*template.GoodDeedTemplate
	for _, t := range s.templates {
		if !t.IsActive {
			continue
		}
		c := *t
		templates = append(templates, &c)
	}

	// Usage ascending, ID as tie-breaker so the order is stable
	// across calls (map iteration is not).
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].UsageCount != templates[j].UsageCount {
			return templates[i].UsageCount < templates[j].UsageCount
		}
		return templates[i].ID < templates[j].ID
	})

	return templates, nil
}

func (s *MemoryStore) GetTemplateByID(ctx context.Context, id string) (*template.GoodDeedTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *t
	return &c, nil
}

func (s *MemoryStore) IncrementTemplateUsage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return ErrNotFound
	}
	t.UsageCount++
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) ReplaceTemplates(ctx context.Context, templates []*template.GoodDeedTemplate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.templates = make(map[string]*template.GoodDeedTemplate)
	s.seedTemplates(templates)
	return len(templates), nil
}

func (s *MemoryStore) CountTemplates(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates), nil
}

func activityDayKey(userID string, date time.Time) string {
	return userID + "|" + activity.Midnight(date).Format("2006-01-02")
}

func (s *MemoryStore) CreateActivity(ctx context.Context, a *activity.Activity) (*activity.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := activityDayKey(a.UserID, a.Date)
	if _, ok := s.activityByUserDate[key]; ok {
		return nil, ErrConflict
	}

	c := *a
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.Date = activity.Midnight(c.Date)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Template = s.templateSummaryLocked(c.TemplateID)

	s.activities[c.ID] = &c
	s.activityByUserDate[key] = c.ID

	out := c
	return &out, nil
}

func (s *MemoryStore) GetActivityByUserAndDate(ctx context.Context, userID string, date time.Time) (*activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.activityByUserDate[activityDayKey(userID, date)]
	if !ok {
		return nil, ErrNotFound
	}

	a := *s.activities[id]
	a.Template = s.templateSummaryLocked(a.TemplateID)
	return &a, nil
}

func (s *MemoryStore) ListActivitiesByUser(ctx context.Context, userID string, from, to *time.Time) ([]*activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var activities []*activity.Activity
	for _, a := range s.activities {
		if a.UserID != userID {
			continue
		}
		if from != nil && a.Date.Before(*from) {
			continue
		}
		if to != nil && a.Date.After(*to) {
			continue
		}
		c := *a
		c.Template = s.templateSummaryLocked(c.TemplateID)
		activities = append(activities, &c)
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})

	return activities, nil
}

// templateSummaryLocked inlines the referenced template; callers must
// hold at least a read lock.
func (s *MemoryStore) templateSummaryLocked(templateID string) *template.Summary {
	if templateID == "" {
		return nil
	}
	t, ok := s.templates[templateID]
	if !ok {
		return nil
	}
	return &template.Summary{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Difficulty:  t.Difficulty,
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() {}
