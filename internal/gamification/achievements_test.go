package gamification

import (
	"testing"

	"github.com/speakbright/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextUnlock(t *testing.T) {
	tests := []struct {
		name        string
		stats       AchievementStats
		owned       map[string]bool
		expectedKey string
		expectNone  bool
	}{
		{
			name:       "nothing qualifies",
			stats:      AchievementStats{},
			owned:      map[string]bool{},
			expectNone: true,
		},
		{
			name:        "first lesson",
			stats:       AchievementStats{CompletedLessons: 1},
			owned:       map[string]bool{},
			expectedKey: AchFirstLesson,
		},
		{
			name:  "lesson milestones take priority over streaks",
			stats: AchievementStats{CompletedLessons: 10, CurrentStreak: 7},
			owned: map[string]bool{
				AchFirstLesson: true,
			},
			expectedKey: AchLessons10,
		},
		{
			name:  "perfect score before streaks",
			stats: AchievementStats{CompletedLessons: 1, PerfectScores: 1, CurrentStreak: 3},
			owned: map[string]bool{
				AchFirstLesson: true,
			},
			expectedKey: AchPerfectScore,
		},
		{
			name:  "streak milestone when everything else owned",
			stats: AchievementStats{CompletedLessons: 2, CurrentStreak: 3},
			owned: map[string]bool{
				AchFirstLesson: true,
			},
			expectedKey: AchStreak3,
		},
		{
			name:  "owned achievements are skipped",
			stats: AchievementStats{CompletedLessons: 30, PerfectScores: 2, CurrentStreak: 10},
			owned: map[string]bool{
				AchFirstLesson:  true,
				AchLessons10:    true,
				AchLessons25:    true,
				AchPerfectScore: true,
				AchStreak3:      true,
			},
			expectedKey: AchStreak7,
		},
		{
			name:  "all owned",
			stats: AchievementStats{CompletedLessons: 500, PerfectScores: 50, CurrentStreak: 100},
			owned: map[string]bool{
				AchFirstLesson: true, AchLessons10: true, AchLessons25: true,
				AchLessons50: true, AchLessons100: true, AchPerfectScore: true,
				AchStreak3: true, AchStreak7: true, AchStreak30: true,
			},
			expectNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ach := NextUnlock(tt.stats, tt.owned)

			if tt.expectNone {
				assert.Nil(t, ach)
				return
			}

			require.NotNil(t, ach)
			assert.Equal(t, tt.expectedKey, ach.Key)
		})
	}
}

func TestNextUnlock_PerfectScoreIsPlatinum(t *testing.T) {
	ach := NextUnlock(AchievementStats{CompletedLessons: 1, PerfectScores: 1}, map[string]bool{
		AchFirstLesson: true,
	})

	require.NotNil(t, ach)
	assert.Equal(t, AchPerfectScore, ach.Key)
	assert.Equal(t, models.TierPlatinum, ach.Tier)
}

func TestAchievementByKey(t *testing.T) {
	ach, ok := AchievementByKey(AchStreak7)
	require.True(t, ok)
	assert.Equal(t, "Week of Words", ach.Title)
	assert.Equal(t, models.TierSilver, ach.Tier)

	_, ok = AchievementByKey("UNKNOWN")
	assert.False(t, ok)
}
