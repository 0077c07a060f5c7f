package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a row does not exist. Handlers map it to a
// 404; everything else is a 500.
var ErrNotFound = errors.New("not found")

const (
	RoleUser   = "viuser"
	RoleVendor = "vivendor"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	PostalCode   string     `json:"postal_code,omitempty"`
	Role         string     `json:"role"`

	LastLogin        *time.Time `json:"last_login,omitempty"`
	LastNotification *time.Time `json:"last_notification,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Answer is one submitted questionnaire answer. Resubmitting a question
// replaces the previous row; only the latest answer per question feeds a
// score.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	ReceivedAt time.Time `json:"time_received"`
}

// Result is one computed score. Components carry the section subtotals and
// their leaves; both levels are persisted so past reports survive table
// changes.
type Result struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	GeneratedAt    time.Time `json:"time_generated"`
	Points         int       `json:"points"`
	MaxPoints      int       `json:"maxpoints"`
	MaxForAnswered int       `json:"maxforanswered"`

	Components []*ResultComponent `json:"components,omitempty"`
}

type ResultComponent struct {
	ID             uuid.UUID `json:"id"`
	ResultID       uuid.UUID `json:"-"`
	Name           string    `json:"name"`
	Points         int       `json:"points"`
	MaxPoints      int       `json:"maxpoints"`
	MaxForAnswered int       `json:"maxforanswered"`

	SubComponents []*ResultSubComponent `json:"subcomponents,omitempty"`
}

type ResultSubComponent struct {
	ID             uuid.UUID `json:"id"`
	ComponentID    uuid.UUID `json:"-"`
	Name           string    `json:"name"`
	Points         int       `json:"points"`
	MaxPoints      int       `json:"maxpoints"`
	MaxForAnswered int       `json:"maxforanswered"`
}

// Recommendation is the advice text shown when a subcomponent scores
// poorly, keyed by the subcomponent name. An empty text suppresses the
// subcomponent from recommendation output.
type Recommendation struct {
	SubComponent string `json:"subcomponent"`
	Text         string `json:"text"`
}

// StatisticsFilter narrows the population for aggregate queries. Ages are
// inclusive bounds in whole years; nil means unbounded.
type StatisticsFilter struct {
	Gender string
	MinAge *int
	MaxAge *int
}

type ComponentStats struct {
	Name              string  `json:"name"`
	AvgPoints         float64 `json:"avg_points"`
	AvgMaxForAnswered float64 `json:"avg_maxforanswered"`
}

// Statistics aggregates each matching user's most recent result.
type Statistics struct {
	Users             int               `json:"users"`
	AvgPoints         float64           `json:"avg_points"`
	AvgMaxForAnswered float64           `json:"avg_maxforanswered"`
	Components        []*ComponentStats `json:"components"`
}

type Store interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateLastNotification(ctx context.Context, id uuid.UUID, at time.Time) error

	UpsertAnswers(ctx context.Context, userID uuid.UUID, answers []*Answer) error
	GetLatestAnswers(ctx context.Context, userID uuid.UUID) ([]*Answer, error)

	CreateResult(ctx context.Context, result *Result, answerIDs []uuid.UUID) error
	GetResult(ctx context.Context, id uuid.UUID) (*Result, error)
	ListResults(ctx context.Context, userID uuid.UUID, limit int) ([]*Result, error)
	GetResultAnswers(ctx context.Context, resultID uuid.UUID) ([]*Answer, error)

	UpsertRecommendations(ctx context.Context, recs []*Recommendation) error
	Recommendations(ctx context.Context) (map[string]string, error)

	Statistics(ctx context.Context, filter StatisticsFilter) (*Statistics, error)

	Close() error
}
