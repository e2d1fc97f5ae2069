package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/speakbright/backend/internal/models"
)

type gamificationRepository struct {
	db *sql.DB
}

// NewGamificationRepository creates a new gamification repository
func NewGamificationRepository(db *sql.DB) *gamificationRepository {
	return &gamificationRepository{
		db: db,
	}
}

// Get retrieves a user's gamification row. A user with no row yet is
// reported as a fresh zero-XP state, not an error.
func (r *gamificationRepository) Get(ctx context.Context, userID int) (*models.UserGamification, error) {
	query := `SELECT user_id, total_xp, level FROM user_gamification WHERE user_id = ? LIMIT 1`

	var g models.UserGamification
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&g.UserID, &g.TotalXP, &g.Level)
	if err == sql.ErrNoRows {
		return &models.UserGamification{UserID: userID, TotalXP: 0, Level: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gamification state: %w", err)
	}

	return &g, nil
}

// AddXP atomically adds delta XP for a user, creating the row lazily on
// first award, and returns the new total. The single-statement increment
// serializes concurrent awards at the row level; assignments are
// evaluated left to right, so level sees the updated total_xp.
func (r *gamificationRepository) AddXP(ctx context.Context, userID, delta int, now time.Time) (int, error) {
	query := `
		INSERT INTO user_gamification (user_id, total_xp, level, updated_at)
		VALUES (?, ?, FLOOR(? / 100) + 1, ?)
		ON DUPLICATE KEY UPDATE
			total_xp = total_xp + VALUES(total_xp),
			level = FLOOR(total_xp / 100) + 1,
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query, userID, delta, delta, now)
	if err != nil {
		return 0, fmt.Errorf("failed to add xp: %w", err)
	}

	var total int
	err = r.db.QueryRowContext(ctx, `SELECT total_xp FROM user_gamification WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to read total xp: %w", err)
	}

	return total, nil
}

// Leaderboard retrieves the top users by total XP
func (r *gamificationRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT user_id, total_xp, level
		FROM user_gamification
		ORDER BY total_xp DESC, user_id ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.TotalXP, &e.Level); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
