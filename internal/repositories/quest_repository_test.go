package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/speakbright/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuestTestRepository creates a quest repository with a mock database
func setupQuestTestRepository(t *testing.T) (*questRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewQuestRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func intPtr(v int) *int {
	return &v
}

func TestQuestRepository_GetByUserAndDate(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedLen   int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "quest_date", "slot", "quest_type", "description", "target", "xp_reward", "completed", "completed_at"}).
					AddRow(1, 1, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 1, "practice", "Complete 2 lessons", []byte(`{"sessions":2}`), 35, 0, nil).
					AddRow(2, 1, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 2, "performance", "Score 80 or higher", []byte(`{"minScore":80}`), 45, 1, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT id, user_id, quest_date, slot, quest_type, description, target, xp_reward, completed, completed_at FROM daily_quests WHERE user_id = \? AND quest_date = \? ORDER BY slot`).
					WithArgs(1, "2025-03-10").
					WillReturnRows(rows)
			},
			expectedLen: 2,
		},
		{
			name: "no quests yet",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "quest_date", "slot", "quest_type", "description", "target", "xp_reward", "completed", "completed_at"})
				mock.ExpectQuery(`SELECT id, user_id, quest_date, slot`).
					WithArgs(1, "2025-03-10").
					WillReturnRows(rows)
			},
			expectedLen: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, quest_date, slot`).
					WithArgs(1, "2025-03-10").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuestTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			quests, err := repo.GetByUserAndDate(context.Background(), 1, "2025-03-10")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, quests)
			} else {
				assert.NoError(t, err)
				assert.Len(t, quests, tt.expectedLen)
				if tt.expectedLen > 0 {
					assert.Equal(t, "2025-03-10", quests[0].QuestDate)
					assert.Equal(t, models.QuestTypePractice, quests[0].Type)
					require.NotNil(t, quests[0].Target.Sessions)
					assert.Equal(t, 2, *quests[0].Target.Sessions)
					assert.False(t, quests[0].Completed)
					assert.True(t, quests[1].Completed)
					require.NotNil(t, quests[1].Target.MinScore)
					assert.Equal(t, 80, *quests[1].Target.MinScore)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuestRepository_InsertBatch(t *testing.T) {
	quests := []models.DailyQuest{
		{UserID: 1, QuestDate: "2025-03-10", Slot: 1, Type: models.QuestTypePractice, Description: "Complete 2 lessons", Target: models.QuestTarget{Sessions: intPtr(2)}, XPReward: 35},
		{UserID: 1, QuestDate: "2025-03-10", Slot: 2, Type: models.QuestTypePerformance, Description: "Score 80 or higher", Target: models.QuestTarget{MinScore: intPtr(80)}, XPReward: 45},
	}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO daily_quests`).
					WithArgs(1, "2025-03-10", 1, "practice", "Complete 2 lessons", []byte(`{"sessions":2}`), 35).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(`INSERT IGNORE INTO daily_quests`).
					WithArgs(1, "2025-03-10", 2, "performance", "Score 80 or higher", []byte(`{"minScore":80}`), 45).
					WillReturnResult(sqlmock.NewResult(2, 1))
			},
		},
		{
			name: "duplicate rows ignored",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO daily_quests`).
					WithArgs(1, "2025-03-10", 1, "practice", "Complete 2 lessons", []byte(`{"sessions":2}`), 35).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT IGNORE INTO daily_quests`).
					WithArgs(1, "2025-03-10", 2, "performance", "Score 80 or higher", []byte(`{"minScore":80}`), 45).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT IGNORE INTO daily_quests`).
					WithArgs(1, "2025-03-10", 1, "practice", "Complete 2 lessons", []byte(`{"sessions":2}`), 35).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuestTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.InsertBatch(context.Background(), quests)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuestRepository_MarkCompleted(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedWon   bool
	}{
		{
			name: "first completion wins",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE daily_quests SET completed = 1, completed_at = \? WHERE id = \? AND completed = 0`).
					WithArgs(now, 5).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedWon: true,
		},
		{
			name: "already completed",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE daily_quests SET completed = 1, completed_at = \? WHERE id = \? AND completed = 0`).
					WithArgs(now, 5).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedWon: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE daily_quests SET completed = 1`).
					WithArgs(now, 5).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuestTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			won, err := repo.MarkCompleted(context.Background(), 5, now)

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, won)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedWon, won)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
