package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/kami8ma8810/ichizen-app/internal/stats"
	"github.com/kami8ma8810/ichizen-app/internal/user"
	"github.com/kami8ma8810/ichizen-app/store"
)

type UserService struct {
	db store.Store
}

func NewUserService(db store.Store) *UserService {
	return &UserService{db: db}
}

// SyncUser upserts the user record keyed by the external Firebase UID.
// Called by the client after every successful sign-in, so it must be
// idempotent.
func (s *UserService) SyncUser(ctx context.Context, req *user.SyncUserRequest) (*user.User, error) {
	if req.FirebaseUID == "" {
		return nil, fmt.Errorf("%w: firebaseUid is required", ErrValidation)
	}

	if _, err := s.db.GetUserByFirebaseUID(ctx, req.FirebaseUID); err == nil {
		return s.db.UpdateUser(ctx, req.FirebaseUID, req)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	created, err := s.db.CreateUser(ctx, &user.User{
		ID:          uuid.New().String(),
		FirebaseUID: req.FirebaseUID,
		Email:       req.Email,
		Name:        req.Name,
		Image:       req.Image,
		Timezone:    "Asia/Tokyo",
		Language:    "ja",
		IsActive:    true,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost a sync race; the record exists now.
			return s.db.UpdateUser(ctx, req.FirebaseUID, req)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("Created user %s (firebase uid %s)", created.ID, created.FirebaseUID)
	return created, nil
}

func (s *UserService) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*user.User, error) {
	if firebaseUID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return s.db.GetUserByFirebaseUID(ctx, firebaseUID)
}

// GetUserStats aggregates the full activity history into the profile
// stats card.
func (s *UserService) GetUserStats(ctx context.Context, firebaseUID string) (*stats.UserStats, error) {
	u, err := s.GetUserByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	activities, err := s.db.ListActivitiesByUser(ctx, u.ID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	return stats.Build(activities, timeNow()), nil
}
