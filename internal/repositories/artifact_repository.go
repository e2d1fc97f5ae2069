package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/speakbright/backend/internal/models"
)

// ErrArtifactNotOwned is returned when equipping an artifact the user does not have
var ErrArtifactNotOwned = errors.New("artifact not owned")

type artifactRepository struct {
	db *sql.DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *sql.DB) *artifactRepository {
	return &artifactRepository{
		db: db,
	}
}

// Grant records ownership of an artifact. Idempotent: re-granting an
// already-owned artifact is a no-op.
func (r *artifactRepository) Grant(ctx context.Context, userID int, artifact models.Artifact, acquiredAt time.Time) error {
	query := `
		INSERT IGNORE INTO user_artifacts (user_id, artifact_key, category, equipped, acquired_at)
		VALUES (?, ?, ?, 0, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userID, artifact.Key, artifact.Category, acquiredAt)
	if err != nil {
		return fmt.Errorf("failed to grant artifact: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's owned artifacts
func (r *artifactRepository) ListByUser(ctx context.Context, userID int) ([]models.UserArtifact, error) {
	query := `
		SELECT user_id, artifact_key, equipped, acquired_at
		FROM user_artifacts
		WHERE user_id = ?
		ORDER BY acquired_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []models.UserArtifact
	for rows.Next() {
		var a models.UserArtifact
		err := rows.Scan(&a.UserID, &a.ArtifactKey, &a.Equipped, &a.AcquiredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return artifacts, nil
}

// Equip marks one owned artifact as equipped and unequips any other
// artifact in the same category. Both writes run in one transaction so
// the one-per-category rule holds even under concurrent requests.
func (r *artifactRepository) Equip(ctx context.Context, userID int, artifactKey string, category string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	clearQuery := `
		UPDATE user_artifacts
		SET equipped = 0
		WHERE user_id = ? AND category = ? AND equipped = 1
	`
	if _, err := tx.ExecContext(ctx, clearQuery, userID, category); err != nil {
		return fmt.Errorf("failed to unequip category: %w", err)
	}

	equipQuery := `
		UPDATE user_artifacts
		SET equipped = 1
		WHERE user_id = ? AND artifact_key = ?
	`
	result, err := tx.ExecContext(ctx, equipQuery, userID, artifactKey)
	if err != nil {
		return fmt.Errorf("failed to equip artifact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrArtifactNotOwned
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
