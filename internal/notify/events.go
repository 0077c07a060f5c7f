package notify

import "time"

// ResultGeneratedEvent announces a freshly computed score. PreviousPoints
// is nil for a user's first result.
type ResultGeneratedEvent struct {
	ResultID       string    `json:"result_id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name,omitempty"`
	Points         int       `json:"points"`
	MaxForAnswered int       `json:"maxforanswered"`
	PreviousPoints *int      `json:"previous_points,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type UserCreatedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
