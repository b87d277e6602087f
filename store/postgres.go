package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kami8ma8810/ichizen-app/internal/activity"
	"github.com/kami8ma8810/ichizen-app/internal/template"
	"github.com/kami8ma8810/ichizen-app/internal/user"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a pgx pool against dbURL and verifies the
// connection.
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the tables and the (user_id, date) unique index
// if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		firebase_uid TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT 'Asia/Tokyo',
		language TEXT NOT NULL DEFAULT 'ja',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS good_deed_templates (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		difficulty TEXT NOT NULL DEFAULT 'EASY',
		tags TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		usage_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS activities (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		template_id UUID REFERENCES good_deed_templates(id) ON DELETE SET NULL,
		custom_title TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'COMPLETED',
		note TEXT NOT NULL DEFAULT '',
		mood TEXT NOT NULL DEFAULT 'GOOD',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, date)
	);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*user.User, error) {
	query := `
	SELECT id, firebase_uid, email, name, image, timezone, language, is_active, created_at, updated_at
	FROM users
	WHERE firebase_uid = $1
	`

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, firebaseUID).Scan(
		&u.ID,
		&u.FirebaseUID,
		&u.Email,
		&u.Name,
		&u.Image,
		&u.Timezone,
		&u.Language,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	query := `
	INSERT INTO users (id, firebase_uid, email, name, image, timezone, language, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	RETURNING id, firebase_uid, email, name, image, timezone, language, is_active, created_at, updated_at
	`

	created := &user.User{}
	err := s.pool.QueryRow(
		ctx,
		query,
		u.ID,
		u.FirebaseUID,
		u.Email,
		u.Name,
		u.Image,
		u.Timezone,
		u.Language,
		u.IsActive,
	).Scan(
		&created.ID,
		&created.FirebaseUID,
		&created.Email,
		&created.Name,
		&created.Image,
		&created.Timezone,
		&created.Language,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, firebaseUID string, req *user.SyncUserRequest) (*user.User, error) {
	query := `
	UPDATE users
	SET
		email = COALESCE(NULLIF($2, ''), email),
		name = COALESCE(NULLIF($3, ''), name),
		image = COALESCE(NULLIF($4, ''), image),
		updated_at = NOW()
	WHERE firebase_uid = $1
	RETURNING id, firebase_uid, email, name, image, timezone, language, is_active, created_at, updated_at
	`

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, firebaseUID, req.Email, req.Name, req.Image).Scan(
		&u.ID,
		&u.FirebaseUID,
		&u.Email,
		&u.Name,
		&u.Image,
		&u.Timezone,
		&u.Language,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

func (s *PostgresStore) ListActiveTemplates(ctx context.Context) ([]*template.GoodDeedTemplate, error) {
	query := `
	SELECT id, title, description, category, difficulty, tags, is_active, usage_count, created_at, updated_at
	FROM good_deed_templates
	WHERE is_active = TRUE
	ORDER BY usage_count ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*template.GoodDeedTemplate
	for rows.Next() {
		t := &template.GoodDeedTemplate{}
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Category,
			&t.Difficulty,
			&t.Tags,
			&t.IsActive,
			&t.UsageCount,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (s *PostgresStore) GetTemplateByID(ctx context.Context, id string) (*template.GoodDeedTemplate, error) {
	query := `
	SELECT id, title, description, category, difficulty, tags, is_active, usage_count, created_at, updated_at
	FROM good_deed_templates
	WHERE id = $1
	`

	t := &template.GoodDeedTemplate{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Category,
		&t.Difficulty,
		&t.Tags,
		&t.IsActive,
		&t.UsageCount,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return t, nil
}

func (s *PostgresStore) IncrementTemplateUsage(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE good_deed_templates SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment template usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ReplaceTemplates(ctx context.Context, templates []*template.GoodDeedTemplate) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM good_deed_templates`); err != nil {
		return 0, fmt.Errorf("failed to clear templates: %w", err)
	}

	query := `
	INSERT INTO good_deed_templates (id, title, description, category, difficulty, tags, is_active, usage_count, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 0, NOW(), NOW())
	`

	for _, t := range templates {
		id := t.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.Exec(ctx, query, id, t.Title, t.Description, t.Category, t.Difficulty, t.Tags, t.IsActive); err != nil {
			return 0, fmt.Errorf("failed to insert template: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit templates: %w", err)
	}

	return len(templates), nil
}

func (s *PostgresStore) CountTemplates(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM good_deed_templates`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CreateActivity(ctx context.Context, a *activity.Activity) (*activity.Activity, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	query := `
	INSERT INTO activities (id, user_id, template_id, custom_title, date, status, note, mood, created_at, updated_at)
	VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, NOW(), NOW())
	RETURNING id, user_id, COALESCE(template_id::text, ''), custom_title, date, status, note, mood, created_at, updated_at
	`

	created := &activity.Activity{}
	err := s.pool.QueryRow(
		ctx,
		query,
		a.ID,
		a.UserID,
		a.TemplateID,
		a.CustomTitle,
		a.Date,
		a.Status,
		a.Note,
		a.Mood,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.TemplateID,
		&created.CustomTitle,
		&created.Date,
		&created.Status,
		&created.Note,
		&created.Mood,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	if created.TemplateID != "" {
		t, err := s.GetTemplateByID(ctx, created.TemplateID)
		if err == nil {
			created.Template = &template.Summary{
				Title:       t.Title,
				Description: t.Description,
				Category:    t.Category,
				Difficulty:  t.Difficulty,
			}
		}
	}

	return created, nil
}

func (s *PostgresStore) GetActivityByUserAndDate(ctx context.Context, userID string, date time.Time) (*activity.Activity, error) {
	query := activitySelect + `
	WHERE a.user_id = $1 AND a.date = $2
	`

	rows, err := s.pool.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	defer rows.Close()

	activities, err := scanActivities(rows)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, ErrNotFound
	}
	return activities[0], nil
}

func (s *PostgresStore) ListActivitiesByUser(ctx context.Context, userID string, from, to *time.Time) ([]*activity.Activity, error) {
	query := activitySelect + `
	WHERE a.user_id = $1
	`
	args := []any{userID}

	if from != nil && to != nil {
		query += ` AND a.date >= $2 AND a.date <= $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY a.date DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

const activitySelect = `
	SELECT
		a.id, a.user_id, COALESCE(a.template_id::text, ''), a.custom_title,
		a.date, a.status, a.note, a.mood, a.created_at, a.updated_at,
		COALESCE(t.title, ''), COALESCE(t.description, ''), COALESCE(t.category, ''), COALESCE(t.difficulty, '')
	FROM activities a
	LEFT JOIN good_deed_templates t ON t.id = a.template_id
`

func scanActivities(rows pgx.Rows) ([]*activity.Activity, error) {
	var activities []*activity.Activity
	for rows.Next() {
		a := &activity.Activity{}
		var tTitle, tDescription, tCategory, tDifficulty string
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.TemplateID,
			&a.CustomTitle,
			&a.Date,
			&a.Status,
			&a.Note,
			&a.Mood,
			&a.CreatedAt,
			&a.UpdatedAt,
			&tTitle,
			&tDescription,
			&tCategory,
			&tDifficulty,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if a.TemplateID != "" {
			a.Template = &template.Summary{
				Title:       tTitle,
				Description: tDescription,
				Category:    template.Category(tCategory),
				Difficulty:  template.Difficulty(tDifficulty),
			}
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
