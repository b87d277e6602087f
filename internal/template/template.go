package template

import "time"

type Category string

const (
	CategoryKindness    Category = "KINDNESS"
	CategoryEnvironment Category = "ENVIRONMENT"
	CategoryCommunity   Category = "COMMUNITY"
	CategoryFamily      Category = "FAMILY"
	CategoryHealth      Category = "HEALTH"
	CategoryWork        Category = "WORK"
	CategoryPersonal    Category = "PERSONAL"
	CategoryCharity     Category = "CHARITY"
	CategoryEducation   Category = "EDUCATION"
	CategoryOther       Category = "OTHER"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type GoodDeedTemplate struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Tags        string     `json:"tags,omitempty"`
	IsActive    bool       `json:"isActive"`
	UsageCount  int        `json:"usageCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Summary is the slimmed-down template shape inlined into activity
// responses.
type Summary struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
}
