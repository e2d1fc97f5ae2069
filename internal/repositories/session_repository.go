package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/speakbright/backend/internal/models"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{
		db: db,
	}
}

// Create appends a new session record. Sessions are never updated after
// creation.
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	feedback, err := json.Marshal(session.Feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	query := `
		INSERT INTO sessions (id, user_id, category, module, level, transcript, example_text, feedback, overall_score, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.Category,
		session.Module,
		session.Level,
		session.Transcript,
		session.ExampleText,
		feedback,
		session.OverallScore,
		session.Completed,
		session.CreatedAt,
		session.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// CountCompletedOnDay counts completed sessions for a user on a calendar day
func (r *sessionRepository) CountCompletedOnDay(ctx context.Context, userID int, day string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE user_id = ? AND completed = 1 AND DATE(created_at) = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

// CountDistinctCategoriesOnDay counts the distinct lesson categories a
// user practiced on a calendar day
func (r *sessionRepository) CountDistinctCategoriesOnDay(ctx context.Context, userID int, day string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT category)
		FROM sessions
		WHERE user_id = ? AND completed = 1 AND DATE(created_at) = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct categories: %w", err)
	}

	return count, nil
}

// CountWithMinScoreOnDay counts completed sessions at or above a score
// for a user on a calendar day
func (r *sessionRepository) CountWithMinScoreOnDay(ctx context.Context, userID int, day string, minScore int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE user_id = ? AND completed = 1 AND DATE(created_at) = ? AND overall_score >= ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, day, minScore).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions with min score: %w", err)
	}

	return count, nil
}

// CountPerfectScores counts a user's sessions with a perfect overall score
func (r *sessionRepository) CountPerfectScores(ctx context.Context, userID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE user_id = ? AND overall_score = 100
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count perfect scores: %w", err)
	}

	return count, nil
}

// GetActivityDates retrieves the distinct calendar days with at least one
// completed session, newest first, limited to the most recent limit days
func (r *sessionRepository) GetActivityDates(ctx context.Context, userID int, limit int) ([]time.Time, error) {
	query := `
		SELECT DISTINCT DATE(created_at) AS activity_date
		FROM sessions
		WHERE user_id = ? AND completed = 1
		ORDER BY activity_date DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan activity date: %w", err)
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return dates, nil
}

// GetRecentByUser retrieves a user's most recent sessions
func (r *sessionRepository) GetRecentByUser(ctx context.Context, userID, limit int) ([]models.Session, error) {
	query := `
		SELECT id, user_id, category, module, level, transcript, example_text, feedback, overall_score, completed, created_at, completed_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var session models.Session
		var feedback []byte
		var completed int
		err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Category,
			&session.Module,
			&session.Level,
			&session.Transcript,
			&session.ExampleText,
			&feedback,
			&session.OverallScore,
			&completed,
			&session.CreatedAt,
			&session.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		session.Completed = completed == 1

		if len(feedback) > 0 {
			if err := json.Unmarshal(feedback, &session.Feedback); err != nil {
				return nil, fmt.Errorf("failed to decode feedback: %w", err)
			}
		}

		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sessions, nil
}
