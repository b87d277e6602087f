package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/calendar"
	"github.com/kami8ma8810/ichizen-app/internal/streak"
	"github.com/kami8ma8810/ichizen-app/store"
)

type ActivityService struct {
	db store.Store
}

func NewActivityService(db store.Store) *ActivityService {
	return &ActivityService{db: db}
}

// CreateActivity records one good deed for a single calendar day. The
// (user, date) uniqueness check happens atomically in the store; a
// duplicate day surfaces as store.ErrConflict.
func (s *ActivityService) CreateActivity(ctx context.Context, req *activity.CreateActivityRequest) (*activity.Activity, error) {
	if req.UserID == "" || req.Date == "" || (req.TemplateID == "" && req.CustomTitle == "") {
		return nil, fmt.Errorf("%w: userId, date and either templateId or customTitle are required", ErrValidation)
	}

	u, err := s.db.GetUserByFirebaseUID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, req.Date)
	}

	mood := activity.Mood(req.Mood)
	if mood == "" {
		mood = activity.MoodGood
	}

	return s.db.CreateActivity(ctx, &activity.Activity{
		UserID:      u.ID,
		TemplateID:  req.TemplateID,
		CustomTitle: req.CustomTitle,
		Date:        date,
		Status:      activity.StatusCompleted,
		Note:        req.Note,
		Mood:        mood,
	})
}

// ListActivities returns a user's activities newest first. The date
// filter applies only when both bounds are supplied.
func (s *ActivityService) ListActivities(ctx context.Context, firebaseUID, startDate, endDate string) ([]*activity.Activity, error) {
	if firebaseUID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	u, err := s.db.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	var from, to *time.Time
	if startDate != "" && endDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startDate %q", ErrValidation, startDate)
		}
		end, err := parseDate(endDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endDate %q", ErrValidation, endDate)
		}
		from, to = &start, &end
	}

	return s.db.ListActivitiesByUser(ctx, u.ID, from, to)
}

// GetTodayActivity returns today's activity, or nil when the user has
// not recorded one yet.
func (s *ActivityService) GetTodayActivity(ctx context.Context, firebaseUID string) (*activity.Activity, error) {
	if firebaseUID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	u, err := s.db.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	a, err := s.db.GetActivityByUserAndDate(ctx, u.ID, activity.Midnight(timeNow()))
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

// GetStreak computes streak statistics over the last three months of
// history, matching the window the dashboard shows.
func (s *ActivityService) GetStreak(ctx context.Context, firebaseUID string) (*streak.Data, error) {
	if firebaseUID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	u, err := s.db.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	from := activity.Midnight(now).AddDate(0, -3, 0)
	to := activity.Midnight(now)

	activities, err := s.db.ListActivitiesByUser(ctx, u.ID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return streak.Calculate(activities, now), nil
}

// GetCalendar returns the month grid with completed days highlighted.
// A zero year or month defaults to the current date.
func (s *ActivityService) GetCalendar(ctx context.Context, firebaseUID string, year int, month time.Month) (*calendar.CalendarResponse, error) {
	if firebaseUID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	now := timeNow()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month %d", ErrValidation, month)
	}

	u, err := s.db.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	from, to := calendar.MonthRange(year, month)
	activities, err := s.db.ListActivitiesByUser(ctx, u.ID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return calendar.BuildMonth(year, month, activities, timeNow()), nil
}

// parseDate accepts RFC 3339 timestamps (what the client sends) or
// plain YYYY-MM-DD, normalized to midnight UTC either way.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return activity.Midnight(t), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return activity.Midnight(t), nil
}
