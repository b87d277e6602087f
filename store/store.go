// Package store is the persistence layer. Two backends implement the
// same Store interface: Postgres for durable deployments and an
// in-memory map store for demo/dev runs without a database. The
// backend is chosen once at startup from DATABASE_URL; there is no
// per-call fallback.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/template"
	"github.com/kami8ma8810/ichizen-app/internal/user"
)

var (
	// ErrNotFound signals a lookup that matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a violated uniqueness constraint, i.e. a
	// second activity for the same (user, date).
	ErrConflict = errors.New("record already exists")
	// ErrNoTemplates signals an empty active template catalog.
	ErrNoTemplates = errors.New("no templates available")
)

type Store interface {
	// Users.
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) (*user.User, error)
	// UpdateUser merges non-empty fields into the existing record.
	UpdateUser(ctx context.Context, firebaseUID string, req *user.SyncUserRequest) (*user.User, error)

	// Templates. ListActiveTemplates orders by ascending usage count.
	ListActiveTemplates(ctx context.Context) ([]*template.GoodDeedTemplate, error)
	GetTemplateByID(ctx context.Context, id string) (*template.GoodDeedTemplate, error)
	IncrementTemplateUsage(ctx context.Context, id string) error
	// ReplaceTemplates clears the catalog and inserts the given set.
	ReplaceTemplates(ctx context.Context, templates []*template.GoodDeedTemplate) (int, error)
	CountTemplates(ctx context.Context) (int, error)

	// Activities. CreateActivity must fail atomically with ErrConflict
	// when a row for (UserID, Date) already exists — no
	// check-then-insert.
	CreateActivity(ctx context.Context, a *activity.Activity) (*activity.Activity, error)
	GetActivityByUserAndDate(ctx context.Context, userID string, date time.Time) (*activity.Activity, error)
	// ListActivitiesByUser returns activities newest first, template
	// summary inlined, optionally restricted to [from, to] inclusive.
	ListActivitiesByUser(ctx context.Context, userID string, from, to *time.Time) ([]*activity.Activity, error)

	Ping(ctx context.Context) error
	Close()
}
