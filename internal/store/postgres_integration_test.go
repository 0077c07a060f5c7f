//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		// Truncate in dependency order
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_recommendations CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_answer_results CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_result_subcomponents CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_result_components CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_results CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_answers CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE vitality_users CASCADE")
		s.Close()
	})

	return s
}

func createTestUser(t *testing.T, s *PostgresStore, email string) *User {
	t.Helper()
	birth := time.Date(1980, time.April, 2, 0, 0, 0, 0, time.UTC)
	u := &User{
		Email:        email,
		PasswordHash: "$2a$10$test",
		FirstName:    "Test",
		BirthDate:    &birth,
		Gender:       "Female",
		Role:         RoleUser,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, s, "roundtrip@example.com")
	if u.ID == uuid.Nil {
		t.Fatal("expected non-nil user ID after create")
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, err := s.GetUserByEmail(ctx, "roundtrip@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("expected id %s, got %s", u.ID, got.ID)
	}
	if got.Gender != "Female" || got.Role != RoleUser {
		t.Errorf("unexpected profile: %+v", got)
	}

	if _, err := s.GetUser(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertAnswersReplaces(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, s, "answers@example.com")

	first := []*Answer{
		{Question: "OverallHealth", Answer: "3"},
		{Question: "SleepTime", Answer: "2"},
	}
	if err := s.UpsertAnswers(ctx, u.ID, first); err != nil {
		t.Fatalf("UpsertAnswers failed: %v", err)
	}

	// Resubmitting a question replaces it instead of adding a row.
	second := []*Answer{{Question: "OverallHealth", Answer: "5"}}
	if err := s.UpsertAnswers(ctx, u.ID, second); err != nil {
		t.Fatalf("UpsertAnswers failed: %v", err)
	}

	answers, err := s.GetLatestAnswers(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetLatestAnswers failed: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	byQuestion := map[string]string{}
	for _, a := range answers {
		byQuestion[a.Question] = a.Answer
	}
	if byQuestion["OverallHealth"] != "5" {
		t.Errorf("expected replaced answer 5, got %s", byQuestion["OverallHealth"])
	}
}

func TestCreateResultRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, s, "results@example.com")

	answers := []*Answer{{Question: "OverallHealth", Answer: "2"}}
	if err := s.UpsertAnswers(ctx, u.ID, answers); err != nil {
		t.Fatalf("UpsertAnswers failed: %v", err)
	}

	result := &Result{
		UserID:         u.ID,
		Points:         16,
		MaxPoints:      970,
		MaxForAnswered: 20,
		Components: []*ResultComponent{
			{
				Name: "PERCEPTION", Points: 16, MaxPoints: 80, MaxForAnswered: 20,
				SubComponents: []*ResultSubComponent{
					{Name: "PERCEIVEDHEALTH", Points: 16, MaxPoints: 20, MaxForAnswered: 20},
				},
			},
		},
	}
	if err := s.CreateResult(ctx, result, []uuid.UUID{answers[0].ID}); err != nil {
		t.Fatalf("CreateResult failed: %v", err)
	}
	if result.ID == uuid.Nil {
		t.Fatal("expected non-nil result ID")
	}

	got, err := s.GetResult(ctx, result.ID)
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if got.Points != 16 || got.MaxPoints != 970 {
		t.Errorf("unexpected result: %+v", got)
	}
	if len(got.Components) != 1 || got.Components[0].Name != "PERCEPTION" {
		t.Fatalf("unexpected components: %+v", got.Components)
	}
	if len(got.Components[0].SubComponents) != 1 {
		t.Fatalf("expected 1 subcomponent, got %d", len(got.Components[0].SubComponents))
	}

	linked, err := s.GetResultAnswers(ctx, result.ID)
	if err != nil {
		t.Fatalf("GetResultAnswers failed: %v", err)
	}
	if len(linked) != 1 || linked[0].Question != "OverallHealth" {
		t.Errorf("unexpected linked answers: %+v", linked)
	}

	results, err := s.ListResults(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("ListResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestRecommendationsRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	recs := []*Recommendation{
		{SubComponent: "BMI", Text: "Work toward a healthy body mass index."},
		{SubComponent: "SLEEPHOURS", Text: "Aim for seven to ten hours of sleep."},
	}
	if err := s.UpsertRecommendations(ctx, recs); err != nil {
		t.Fatalf("UpsertRecommendations failed: %v", err)
	}

	// Upserting again replaces the text instead of adding a row.
	update := []*Recommendation{{SubComponent: "BMI", Text: ""}}
	if err := s.UpsertRecommendations(ctx, update); err != nil {
		t.Fatalf("UpsertRecommendations failed: %v", err)
	}

	catalog, err := s.Recommendations(ctx)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(catalog))
	}
	if catalog["BMI"] != "" {
		t.Errorf("expected replaced empty text, got %q", catalog["BMI"])
	}
	if catalog["SLEEPHOURS"] != "Aim for seven to ten hours of sleep." {
		t.Errorf("unexpected text: %q", catalog["SLEEPHOURS"])
	}
}

func TestStatisticsLatestPerUser(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, s, "stats@example.com")

	for _, pts := range []int{10, 30} {
		r := &Result{
			UserID: u.ID, Points: pts, MaxPoints: 970, MaxForAnswered: 100,
			Components: []*ResultComponent{
				{Name: "MEDICAL", Points: pts, MaxPoints: 220, MaxForAnswered: 100},
			},
		}
		if err := s.CreateResult(ctx, r, nil); err != nil {
			t.Fatalf("CreateResult failed: %v", err)
		}
	}

	stats, err := s.Statistics(ctx, StatisticsFilter{Gender: "Female"})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.Users != 1 {
		t.Errorf("expected 1 user, got %d", stats.Users)
	}
	// Only the latest result counts.
	if stats.AvgPoints != 30 {
		t.Errorf("expected avg 30, got %f", stats.AvgPoints)
	}

	// A gender filter that matches nobody.
	empty, err := s.Statistics(ctx, StatisticsFilter{Gender: "Male"})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if empty.Users != 0 {
		t.Errorf("expected 0 users, got %d", empty.Users)
	}
}
