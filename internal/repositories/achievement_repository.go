package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/speakbright/backend/internal/models"
)

type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db *sql.DB) *achievementRepository {
	return &achievementRepository{
		db: db,
	}
}

// Unlock records an achievement unlock. The primary key on (user_id,
// achievement_key) makes the insert idempotent: the first write wins and
// repeats are ignored. The boolean result reports whether this call
// created the record.
func (r *achievementRepository) Unlock(ctx context.Context, userID int, achievement models.Achievement, unlockedAt time.Time) (bool, error) {
	query := `
		INSERT IGNORE INTO user_achievements (user_id, achievement_key, tier, xp_reward, unlocked_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		userID,
		achievement.Key,
		achievement.Tier,
		achievement.XPReward,
		unlockedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to unlock achievement: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// GetOwnedKeys retrieves the set of achievement keys a user has unlocked
func (r *achievementRepository) GetOwnedKeys(ctx context.Context, userID int) (map[string]bool, error) {
	query := `SELECT achievement_key FROM user_achievements WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	owned := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan achievement key: %w", err)
		}
		owned[key] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return owned, nil
}

// ListByUser retrieves a user's unlocked achievements, newest first
func (r *achievementRepository) ListByUser(ctx context.Context, userID int) ([]models.UserAchievement, error) {
	query := `
		SELECT user_id, achievement_key, tier, xp_reward, unlocked_at
		FROM user_achievements
		WHERE user_id = ?
		ORDER BY unlocked_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.UserAchievement
	for rows.Next() {
		var a models.UserAchievement
		err := rows.Scan(&a.UserID, &a.Key, &a.Tier, &a.XPReward, &a.UnlockedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return achievements, nil
}
