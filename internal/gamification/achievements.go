package gamification

import "github.com/speakbright/backend/internal/models"

// Achievement keys
const (
	AchFirstLesson  = "FIRST_LESSON"
	AchLessons10    = "LESSONS_10"
	AchLessons25    = "LESSONS_25"
	AchLessons50    = "LESSONS_50"
	AchLessons100   = "LESSONS_100"
	AchPerfectScore = "PERFECT_SCORE"
	AchStreak3      = "STREAK_3"
	AchStreak7      = "STREAK_7"
	AchStreak30     = "STREAK_30"
)

// achievements is the static achievement catalog
var achievements = map[string]models.Achievement{
	AchFirstLesson:  {Key: AchFirstLesson, Title: "First Words", Description: "Complete your first lesson", Tier: models.TierBronze, XPReward: 10},
	AchLessons10:    {Key: AchLessons10, Title: "Finding Your Voice", Description: "Complete 10 lessons", Tier: models.TierBronze, XPReward: 25},
	AchLessons25:    {Key: AchLessons25, Title: "Regular Speaker", Description: "Complete 25 lessons", Tier: models.TierSilver, XPReward: 50},
	AchLessons50:    {Key: AchLessons50, Title: "Seasoned Orator", Description: "Complete 50 lessons", Tier: models.TierGold, XPReward: 100},
	AchLessons100:   {Key: AchLessons100, Title: "Centurion", Description: "Complete 100 lessons", Tier: models.TierPlatinum, XPReward: 200},
	AchPerfectScore: {Key: AchPerfectScore, Title: "Flawless Delivery", Description: "Score a perfect 100", Tier: models.TierPlatinum, XPReward: 100},
	AchStreak3:      {Key: AchStreak3, Title: "Warming Up", Description: "Practice 3 days in a row", Tier: models.TierBronze, XPReward: 15},
	AchStreak7:      {Key: AchStreak7, Title: "Week of Words", Description: "Practice 7 days in a row", Tier: models.TierSilver, XPReward: 50},
	AchStreak30:     {Key: AchStreak30, Title: "Iron Discipline", Description: "Practice 30 days in a row", Tier: models.TierGold, XPReward: 150},
}

// unlockPriority is the evaluation order for new unlocks: lesson-count
// milestones ascending, then perfect-score, then streak milestones.
var unlockPriority = []string{
	AchFirstLesson,
	AchLessons10,
	AchLessons25,
	AchLessons50,
	AchLessons100,
	AchPerfectScore,
	AchStreak3,
	AchStreak7,
	AchStreak30,
}

// AchievementStats aggregates the counters achievements are judged against
type AchievementStats struct {
	CompletedLessons int
	PerfectScores    int
	CurrentStreak    int
}

// qualifies reports whether the stats satisfy an achievement's condition
func qualifies(key string, stats AchievementStats) bool {
	switch key {
	case AchFirstLesson:
		return stats.CompletedLessons >= 1
	case AchLessons10:
		return stats.CompletedLessons >= 10
	case AchLessons25:
		return stats.CompletedLessons >= 25
	case AchLessons50:
		return stats.CompletedLessons >= 50
	case AchLessons100:
		return stats.CompletedLessons >= 100
	case AchPerfectScore:
		return stats.PerfectScores >= 1
	case AchStreak3:
		return stats.CurrentStreak >= 3
	case AchStreak7:
		return stats.CurrentStreak >= 7
	case AchStreak30:
		return stats.CurrentStreak >= 30
	default:
		return false
	}
}

// NextUnlock returns the single highest-priority achievement the stats
// newly qualify for, skipping keys the user already owns. Returns nil
// when nothing new qualifies.
func NextUnlock(stats AchievementStats, owned map[string]bool) *models.Achievement {
	for _, key := range unlockPriority {
		if owned[key] {
			continue
		}
		if qualifies(key, stats) {
			ach := achievements[key]
			return &ach
		}
	}
	return nil
}

// AchievementByKey looks up a catalog entry
func AchievementByKey(key string) (models.Achievement, bool) {
	ach, ok := achievements[key]
	return ach, ok
}
