package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/speakbright/backend/internal/models"
)

type questRepository struct {
	db *sql.DB
}

// NewQuestRepository creates a new daily quest repository
func NewQuestRepository(db *sql.DB) *questRepository {
	return &questRepository{
		db: db,
	}
}

// GetByUserAndDate retrieves a user's quests for a calendar day, ordered by slot
func (r *questRepository) GetByUserAndDate(ctx context.Context, userID int, date string) ([]models.DailyQuest, error) {
	query := `
		SELECT id, user_id, quest_date, slot, quest_type, description, target, xp_reward, completed, completed_at
		FROM daily_quests
		WHERE user_id = ? AND quest_date = ?
		ORDER BY slot
	`

	rows, err := r.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query quests: %w", err)
	}
	defer rows.Close()

	var quests []models.DailyQuest
	for rows.Next() {
		var q models.DailyQuest
		var target []byte
		var completed int
		var questDate time.Time
		err := rows.Scan(
			&q.ID,
			&q.UserID,
			&questDate,
			&q.Slot,
			&q.Type,
			&q.Description,
			&target,
			&q.XPReward,
			&completed,
			&q.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		q.QuestDate = questDate.Format("2006-01-02")
		q.Completed = completed == 1

		if err := json.Unmarshal(target, &q.Target); err != nil {
			return nil, fmt.Errorf("failed to decode quest target: %w", err)
		}

		quests = append(quests, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return quests, nil
}

// InsertBatch inserts a day's quests. The unique key on (user_id,
// quest_date, slot) makes the insert race-safe: when two requests race
// on the first load of the day, the loser's rows are ignored and the
// caller re-reads the winner's set.
func (r *questRepository) InsertBatch(ctx context.Context, quests []models.DailyQuest) error {
	query := `
		INSERT IGNORE INTO daily_quests (user_id, quest_date, slot, quest_type, description, target, xp_reward, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
	`

	for _, q := range quests {
		target, err := json.Marshal(q.Target)
		if err != nil {
			return fmt.Errorf("failed to encode quest target: %w", err)
		}

		_, err = r.db.ExecContext(ctx, query,
			q.UserID,
			q.QuestDate,
			q.Slot,
			q.Type,
			q.Description,
			target,
			q.XPReward,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quest: %w", err)
		}
	}

	return nil
}

// MarkCompleted marks a quest completed. The write is conditional on
// completed = 0, so completing an already-completed quest is a no-op;
// the boolean result reports whether this call won the write.
func (r *questRepository) MarkCompleted(ctx context.Context, questID int, completedAt time.Time) (bool, error) {
	query := `
		UPDATE daily_quests
		SET completed = 1, completed_at = ?
		WHERE id = ? AND completed = 0
	`

	result, err := r.db.ExecContext(ctx, query, completedAt, questID)
	if err != nil {
		return false, fmt.Errorf("failed to mark quest completed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}
