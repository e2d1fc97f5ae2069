package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLessonTestRepository creates a lesson repository with a mock database
func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewLessonRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewLessonRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestLessonRepository_GetByCoords(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		module        int
		level         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:     "success",
			category: "interview",
			module:   2,
			level:    3,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "category", "module", "level", "title", "explanation", "prompt", "duration_seconds", "focus_areas"}).
					AddRow(7, "interview", 2, 3, "Tell me about yourself", "Structure an answer", "Introduce yourself to a hiring manager", 90, []byte(`["clarity","structure"]`))
				mock.ExpectQuery(`SELECT id, category, module, level, title, explanation, prompt, duration_seconds, focus_areas FROM lessons WHERE category = \? AND module = \? AND level = \?`).
					WithArgs("interview", 2, 3).
					WillReturnRows(rows)
			},
		},
		{
			name:     "lesson not found",
			category: "interview",
			module:   99,
			level:    1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, category, module, level, title, explanation, prompt, duration_seconds, focus_areas FROM lessons`).
					WithArgs("interview", 99, 1).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrLessonNotFound,
		},
		{
			name:     "database error",
			category: "interview",
			module:   2,
			level:    3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, category, module, level, title, explanation, prompt, duration_seconds, focus_areas FROM lessons`).
					WithArgs("interview", 2, 3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("failed to get lesson"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lesson, err := repo.GetByCoords(context.Background(), tt.category, tt.module, tt.level)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, lesson)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, lesson)
				assert.Equal(t, "interview", lesson.Category)
				assert.Equal(t, 2, lesson.Module)
				assert.Equal(t, 3, lesson.Level)
				assert.Equal(t, []string{"clarity", "structure"}, lesson.FocusAreas)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_ListByCategory(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:     "success with progress",
			category: "storytelling",
			userID:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"category", "module", "level", "title", "completed", "best_score"}).
					AddRow("storytelling", 1, 1, "Opening hooks", 1, 82).
					AddRow("storytelling", 1, 2, "Building tension", 0, 0)
				mock.ExpectQuery(`SELECT l.category, l.module, l.level, l.title, COALESCE\(up.completed, 0\) AS completed, COALESCE\(up.best_score, 0\) AS best_score FROM lessons l LEFT JOIN user_progress up`).
					WithArgs(1, "storytelling").
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name:     "empty category",
			category: "debate",
			userID:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"category", "module", "level", "title", "completed", "best_score"})
				mock.ExpectQuery(`SELECT l.category, l.module, l.level, l.title`).
					WithArgs(1, "debate").
					WillReturnRows(rows)
			},
			expectedCount: 0,
		},
		{
			name:     "database error",
			category: "storytelling",
			userID:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT l.category, l.module, l.level, l.title`).
					WithArgs(1, "storytelling").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lessons, err := repo.ListByCategory(context.Background(), tt.category, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, lessons)
			} else {
				assert.NoError(t, err)
				assert.Len(t, lessons, tt.expectedCount)
				if tt.expectedCount > 0 {
					assert.True(t, lessons[0].Completed)
					assert.Equal(t, 82, lessons[0].BestScore)
					assert.False(t, lessons[1].Completed)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
