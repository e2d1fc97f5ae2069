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

// setupSessionTestRepository creates a session repository with a mock database
func setupSessionTestRepository(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSessionRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSessionRepository_Create(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name          string
		session       *models.Session
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			session: &models.Session{
				ID:           "3f1c9a0e-0000-0000-0000-000000000001",
				UserID:       1,
				Category:     "interview",
				Module:       2,
				Level:        3,
				Transcript:   "I have been working in support for two years",
				OverallScore: 84,
				Completed:    true,
				CreatedAt:    now,
				CompletedAt:  &now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WithArgs(
						"3f1c9a0e-0000-0000-0000-000000000001", 1, "interview", 2, 3,
						"I have been working in support for two years", "",
						sqlmock.AnyArg(), 84, true, now, &now,
					).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "database error",
			session: &models.Session{
				ID:        "3f1c9a0e-0000-0000-0000-000000000002",
				UserID:    1,
				Category:  "interview",
				CreatedAt: now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.session)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_CountCompletedOnDay(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		day           string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:   "success",
			userID: 1,
			day:    "2025-03-10",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sessions WHERE user_id = \? AND completed = 1 AND DATE\(created_at\) = \?`).
					WithArgs(1, "2025-03-10").
					WillReturnRows(rows)
			},
			expectedCount: 3,
		},
		{
			name:   "no sessions",
			userID: 2,
			day:    "2025-03-10",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0)
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sessions`).
					WithArgs(2, "2025-03-10").
					WillReturnRows(rows)
			},
			expectedCount: 0,
		},
		{
			name:   "database error",
			userID: 1,
			day:    "2025-03-10",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sessions`).
					WithArgs(1, "2025-03-10").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.CountCompletedOnDay(context.Background(), tt.userID, tt.day)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, 0, count)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_CountWithMinScoreOnDay(t *testing.T) {
	repo, mock, cleanup := setupSessionTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sessions WHERE user_id = \? AND completed = 1 AND DATE\(created_at\) = \? AND overall_score >= \?`).
		WithArgs(1, "2025-03-10", 80).
		WillReturnRows(rows)

	count, err := repo.CountWithMinScoreOnDay(context.Background(), 1, "2025-03-10", 80)

	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetActivityDates(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedDays  int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"activity_date"}).
					AddRow(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)).
					AddRow(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)).
					AddRow(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT DISTINCT DATE\(created_at\) AS activity_date FROM sessions WHERE user_id = \? AND completed = 1 ORDER BY activity_date DESC LIMIT \?`).
					WithArgs(1, 60).
					WillReturnRows(rows)
			},
			expectedDays: 3,
		},
		{
			name: "no activity",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"activity_date"})
				mock.ExpectQuery(`SELECT DISTINCT DATE\(created_at\)`).
					WithArgs(1, 60).
					WillReturnRows(rows)
			},
			expectedDays: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT DISTINCT DATE\(created_at\)`).
					WithArgs(1, 60).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			dates, err := repo.GetActivityDates(context.Background(), 1, 60)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, dates)
			} else {
				assert.NoError(t, err)
				assert.Len(t, dates, tt.expectedDays)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_CountPerfectScores(t *testing.T) {
	repo, mock, cleanup := setupSessionTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sessions WHERE user_id = \? AND overall_score = 100`).
		WithArgs(1).
		WillReturnRows(rows)

	count, err := repo.CountPerfectScores(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
