package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/speakbright/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new user progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Upsert records an attempt on a lesson. The write is conditional so
// that concurrent submissions can never regress best_score or un-set
// completed: completed only ORs upward and best_score takes the greatest
// value seen.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	query := `
		INSERT INTO user_progress (user_id, category, module, level, completed, best_score, last_attempted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			completed = completed OR VALUES(completed),
			best_score = GREATEST(best_score, VALUES(best_score)),
			last_attempted_at = VALUES(last_attempted_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.Category,
		progress.Module,
		progress.Level,
		progress.Completed,
		progress.BestScore,
		progress.LastAttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

// ListByUser retrieves all progress rows for a user
func (r *progressRepository) ListByUser(ctx context.Context, userID int) ([]models.UserProgress, error) {
	query := `
		SELECT user_id, category, module, level, completed, best_score, last_attempted_at
		FROM user_progress
		WHERE user_id = ?
		ORDER BY category, module, level
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var items []models.UserProgress
	for rows.Next() {
		var p models.UserProgress
		var completed int
		err := rows.Scan(
			&p.UserID,
			&p.Category,
			&p.Module,
			&p.Level,
			&completed,
			&p.BestScore,
			&p.LastAttemptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		p.Completed = completed == 1
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// CountCompleted counts the lessons a user has completed
func (r *progressRepository) CountCompleted(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM user_progress WHERE user_id = ? AND completed = 1`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return count, nil
}

// AverageBestScore returns the user's average best score across attempted
// lessons, or 0 when the user has no progress rows
func (r *progressRepository) AverageBestScore(ctx context.Context, userID int) (float64, error) {
	query := `SELECT COALESCE(AVG(best_score), 0) FROM user_progress WHERE user_id = ?`

	var avg float64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average score: %w", err)
	}

	return avg, nil
}

// WeakestCategory returns the attempted category with the lowest average
// best score, or an empty string when the user has no progress rows
func (r *progressRepository) WeakestCategory(ctx context.Context, userID int) (string, error) {
	query := `
		SELECT category
		FROM user_progress
		WHERE user_id = ?
		GROUP BY category
		ORDER BY AVG(best_score) ASC
		LIMIT 1
	`

	var category string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&category)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find weakest category: %w", err)
	}

	return category, nil
}
