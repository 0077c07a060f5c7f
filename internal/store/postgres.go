package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const userColumns = `id, email, password_hash, first_name, birth_date, gender,
	postal_code, role, last_login, last_notification, created_at, updated_at`

func (s *PostgresStore) CreateUser(ctx context.Context, user *User) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO vitality_users (email, password_hash, first_name, birth_date,
			gender, postal_code, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.FirstName, user.BirthDate,
		user.Gender, user.PostalCode, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (s *PostgresStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM vitality_users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM vitality_users WHERE email = $1`, email))
}

func (s *PostgresStore) scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.BirthDate, &u.Gender,
		&u.PostalCode, &u.Role, &u.LastLogin, &u.LastNotification,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *PostgresStore) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE vitality_users SET last_login = $2, updated_at = now()
		WHERE id = $1`, id, at)
	return err
}

func (s *PostgresStore) UpdateLastNotification(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE vitality_users SET last_notification = $2, updated_at = now()
		WHERE id = $1`, id, at)
	return err
}

// UpsertAnswers replaces any previous answer to the same question, keeping
// one current row per (user, question). All answers in the batch share one
// transaction.
func (s *PostgresStore) UpsertAnswers(ctx context.Context, userID uuid.UUID, answers []*Answer) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range answers {
		a.UserID = userID
		err := tx.QueryRow(ctx, `
			INSERT INTO vitality_answers (user_id, question, answer, time_received)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id, question)
			DO UPDATE SET answer = EXCLUDED.answer, time_received = now()
			RETURNING id, time_received`,
			userID, a.Question, a.Answer,
		).Scan(&a.ID, &a.ReceivedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetLatestAnswers(ctx context.Context, userID uuid.UUID) ([]*Answer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, question, answer, time_received
		FROM vitality_answers WHERE user_id = $1
		ORDER BY question ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnswers(rows)
}

// CreateResult persists the result row, its component and subcomponent rows
// and the links to the answers that produced it, all in one transaction.
func (s *PostgresStore) CreateResult(ctx context.Context, result *Result, answerIDs []uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO vitality_results (user_id, points, maxpoints, maxforanswered, time_generated)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, time_generated`,
		result.UserID, result.Points, result.MaxPoints, result.MaxForAnswered,
	).Scan(&result.ID, &result.GeneratedAt)
	if err != nil {
		return err
	}

	for _, c := range result.Components {
		c.ResultID = result.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO vitality_result_components (result_id, name, points, maxpoints, maxforanswered)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			result.ID, c.Name, c.Points, c.MaxPoints, c.MaxForAnswered,
		).Scan(&c.ID)
		if err != nil {
			return err
		}
		for _, sc := range c.SubComponents {
			sc.ComponentID = c.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO vitality_result_subcomponents (component_id, name, points, maxpoints, maxforanswered)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				c.ID, sc.Name, sc.Points, sc.MaxPoints, sc.MaxForAnswered,
			).Scan(&sc.ID)
			if err != nil {
				return err
			}
		}
	}

	for _, answerID := range answerIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO vitality_answer_results (answer_id, result_id)
			VALUES ($1, $2)`, answerID, result.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetResult(ctx context.Context, id uuid.UUID) (*Result, error) {
	r := &Result{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, points, maxpoints, maxforanswered, time_generated
		FROM vitality_results WHERE id = $1`, id,
	).Scan(&r.ID, &r.UserID, &r.Points, &r.MaxPoints, &r.MaxForAnswered, &r.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, result_id, name, points, maxpoints, maxforanswered
		FROM vitality_result_components WHERE result_id = $1
		ORDER BY name ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := map[uuid.UUID]*ResultComponent{}
	for rows.Next() {
		c := &ResultComponent{}
		if err := rows.Scan(&c.ID, &c.ResultID, &c.Name, &c.Points, &c.MaxPoints, &c.MaxForAnswered); err != nil {
			return nil, err
		}
		r.Components = append(r.Components, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := s.pool.Query(ctx, `
		SELECT sc.id, sc.component_id, sc.name, sc.points, sc.maxpoints, sc.maxforanswered
		FROM vitality_result_subcomponents sc
		JOIN vitality_result_components c ON c.id = sc.component_id
		WHERE c.result_id = $1
		ORDER BY sc.name ASC`, id)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		sc := &ResultSubComponent{}
		if err := subRows.Scan(&sc.ID, &sc.ComponentID, &sc.Name, &sc.Points, &sc.MaxPoints, &sc.MaxForAnswered); err != nil {
			return nil, err
		}
		if parent, ok := byID[sc.ComponentID]; ok {
			parent.SubComponents = append(parent.SubComponents, sc)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *PostgresStore) ListResults(ctx context.Context, userID uuid.UUID, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, points, maxpoints, maxforanswered, time_generated
		FROM vitality_results WHERE user_id = $1
		ORDER BY time_generated DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*Result
	for rows.Next() {
		r := &Result{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.Points, &r.MaxPoints, &r.MaxForAnswered, &r.GeneratedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *PostgresStore) GetResultAnswers(ctx context.Context, resultID uuid.UUID) ([]*Answer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.question, a.answer, a.time_received
		FROM vitality_answers a
		JOIN vitality_answer_results ar ON ar.answer_id = a.id
		WHERE ar.result_id = $1
		ORDER BY a.question ASC`, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnswers(rows)
}

// UpsertRecommendations replaces the advice text for each named
// subcomponent, all in one transaction.
func (s *PostgresStore) UpsertRecommendations(ctx context.Context, recs []*Recommendation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, rec := range recs {
		_, err := tx.Exec(ctx, `
			INSERT INTO vitality_recommendations (sub_component, text)
			VALUES ($1, $2)
			ON CONFLICT (sub_component)
			DO UPDATE SET text = EXCLUDED.text`,
			rec.SubComponent, rec.Text)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Recommendations loads the full advice catalog keyed by subcomponent name.
func (s *PostgresStore) Recommendations(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sub_component, text FROM vitality_recommendations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalog := map[string]string{}
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, err
		}
		catalog[name] = text
	}
	return catalog, rows.Err()
}

// Statistics averages the most recent result of every user matching the
// filter, overall and per component.
func (s *PostgresStore) Statistics(ctx context.Context, filter StatisticsFilter) (*Statistics, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Gender != "" {
		n++
		where += fmt.Sprintf(" AND u.gender = $%d", n)
		args = append(args, filter.Gender)
	}
	if filter.MinAge != nil {
		n++
		where += fmt.Sprintf(" AND u.birth_date <= now() - make_interval(years => $%d)", n)
		args = append(args, *filter.MinAge)
	}
	if filter.MaxAge != nil {
		n++
		where += fmt.Sprintf(" AND u.birth_date > now() - make_interval(years => $%d + 1)", n)
		args = append(args, *filter.MaxAge)
	}

	latest := `
		SELECT DISTINCT ON (r.user_id) r.id, r.points, r.maxforanswered
		FROM vitality_results r
		JOIN vitality_users u ON u.id = r.user_id
		` + where + `
		ORDER BY r.user_id, r.time_generated DESC`

	stats := &Statistics{}
	err := s.pool.QueryRow(ctx, `
		SELECT count(*),
			coalesce(avg(points), 0),
			coalesce(avg(maxforanswered), 0)
		FROM (`+latest+`) latest`, args...,
	).Scan(&stats.Users, &stats.AvgPoints, &stats.AvgMaxForAnswered)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT c.name, avg(c.points), avg(c.maxforanswered)
		FROM vitality_result_components c
		JOIN (`+latest+`) latest ON latest.id = c.result_id
		GROUP BY c.name
		ORDER BY c.name ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		cs := &ComponentStats{}
		if err := rows.Scan(&cs.Name, &cs.AvgPoints, &cs.AvgMaxForAnswered); err != nil {
			return nil, err
		}
		stats.Components = append(stats.Components, cs)
	}
	return stats, rows.Err()
}

func scanAnswers(rows pgx.Rows) ([]*Answer, error) {
	var answers []*Answer
	for rows.Next() {
		a := &Answer{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.Question, &a.Answer, &a.ReceivedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
