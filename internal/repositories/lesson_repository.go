// Package repositories implements data access against MySQL
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/speakbright/backend/internal/models"
)

// ErrLessonNotFound is returned when a lesson does not exist
var ErrLessonNotFound = errors.New("lesson not found")

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByCoords retrieves a lesson by its (category, module, level) coordinates
func (r *lessonRepository) GetByCoords(ctx context.Context, category string, module, level int) (*models.Lesson, error) {
	query := `
		SELECT id, category, module, level, title, explanation, prompt, duration_seconds, focus_areas
		FROM lessons
		WHERE category = ? AND module = ? AND level = ?
		LIMIT 1
	`

	var lesson models.Lesson
	var focusAreas []byte
	err := r.db.QueryRowContext(ctx, query, category, module, level).Scan(
		&lesson.ID,
		&lesson.Category,
		&lesson.Module,
		&lesson.Level,
		&lesson.Title,
		&lesson.Explanation,
		&lesson.Prompt,
		&lesson.DurationSeconds,
		&focusAreas,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if len(focusAreas) > 0 {
		if err := json.Unmarshal(focusAreas, &lesson.FocusAreas); err != nil {
			return nil, fmt.Errorf("failed to decode focus areas: %w", err)
		}
	}

	return &lesson, nil
}

// ListByCategory retrieves all lessons in a category with the user's
// completion status, sorted by module and level
func (r *lessonRepository) ListByCategory(ctx context.Context, category string, userID int) ([]models.LessonListItem, error) {
	query := `
		SELECT
			l.category,
			l.module,
			l.level,
			l.title,
			COALESCE(up.completed, 0) AS completed,
			COALESCE(up.best_score, 0) AS best_score
		FROM lessons l
		LEFT JOIN user_progress up
			ON up.category = l.category AND up.module = l.module AND up.level = l.level AND up.user_id = ?
		WHERE l.category = ?
		ORDER BY l.module, l.level
	`

	rows, err := r.db.QueryContext(ctx, query, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.LessonListItem
	for rows.Next() {
		var lesson models.LessonListItem
		var completed int
		err := rows.Scan(
			&lesson.Category,
			&lesson.Module,
			&lesson.Level,
			&lesson.Title,
			&completed,
			&lesson.BestScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lesson.Completed = completed == 1
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}
