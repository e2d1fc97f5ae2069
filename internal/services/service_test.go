package services

import (
	"context"
	"time"

	"github.com/speakbright/backend/internal/ai"
	"github.com/speakbright/backend/internal/models"
)

// fixedClock is a Clock pinned to one instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson  *models.Lesson
	lessons []models.LessonListItem
	getErr  error
	listErr error
}

func (m *mockLessonRepository) GetByCoords(ctx context.Context, category string, module, level int) (*models.Lesson, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) ListByCategory(ctx context.Context, category string, userID int) ([]models.LessonListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.lessons, nil
}

// mockSessionRepository is a mock implementation of SessionRepository
type mockSessionRepository struct {
	created            *models.Session
	createErr          error
	sessionsToday      int
	distinctCategories int
	withMinScore       int
	perfectScores      int
	activityDates      []time.Time
	recent             []models.Session
	countErr           error
	datesErr           error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = session
	return nil
}

func (m *mockSessionRepository) CountCompletedOnDay(ctx context.Context, userID int, day string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.sessionsToday, nil
}

func (m *mockSessionRepository) CountDistinctCategoriesOnDay(ctx context.Context, userID int, day string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.distinctCategories, nil
}

func (m *mockSessionRepository) CountWithMinScoreOnDay(ctx context.Context, userID int, day string, minScore int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.withMinScore, nil
}

func (m *mockSessionRepository) CountPerfectScores(ctx context.Context, userID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.perfectScores, nil
}

func (m *mockSessionRepository) GetActivityDates(ctx context.Context, userID int, limit int) ([]time.Time, error) {
	if m.datesErr != nil {
		return nil, m.datesErr
	}
	return m.activityDates, nil
}

func (m *mockSessionRepository) GetRecentByUser(ctx context.Context, userID, limit int) ([]models.Session, error) {
	return m.recent, nil
}

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	upserted       *models.UserProgress
	upsertErr      error
	list           []models.UserProgress
	completedCount int
	average        float64
	weakest        string
	err            error
}

func (m *mockProgressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = progress
	return nil
}

func (m *mockProgressRepository) ListByUser(ctx context.Context, userID int) ([]models.UserProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockProgressRepository) CountCompleted(ctx context.Context, userID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.completedCount, nil
}

func (m *mockProgressRepository) AverageBestScore(ctx context.Context, userID int) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.average, nil
}

func (m *mockProgressRepository) WeakestCategory(ctx context.Context, userID int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.weakest, nil
}

// mockGamificationRepository is a mock implementation of GamificationRepository
type mockGamificationRepository struct {
	state       *models.UserGamification
	leaderboard []models.LeaderboardEntry
	addedDelta  int
	getErr      error
	addErr      error
	lbErr       error
}

func (m *mockGamificationRepository) Get(ctx context.Context, userID int) (*models.UserGamification, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.state == nil {
		return &models.UserGamification{UserID: userID, Level: 1}, nil
	}
	return m.state, nil
}

func (m *mockGamificationRepository) AddXP(ctx context.Context, userID, delta int, now time.Time) (int, error) {
	if m.addErr != nil {
		return 0, m.addErr
	}
	m.addedDelta = delta
	total := delta
	if m.state != nil {
		total += m.state.TotalXP
	}
	return total, nil
}

func (m *mockGamificationRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if m.lbErr != nil {
		return nil, m.lbErr
	}
	return m.leaderboard, nil
}

// mockAchievementRepository is a mock implementation of AchievementRepository
type mockAchievementRepository struct {
	owned       map[string]bool
	list        []models.UserAchievement
	unlockedKey string
	alreadyHeld bool
	unlockErr   error
	ownedErr    error
	listErr     error
}

func (m *mockAchievementRepository) Unlock(ctx context.Context, userID int, achievement models.Achievement, unlockedAt time.Time) (bool, error) {
	if m.unlockErr != nil {
		return false, m.unlockErr
	}
	m.unlockedKey = achievement.Key
	return !m.alreadyHeld, nil
}

func (m *mockAchievementRepository) GetOwnedKeys(ctx context.Context, userID int) (map[string]bool, error) {
	if m.ownedErr != nil {
		return nil, m.ownedErr
	}
	if m.owned == nil {
		return map[string]bool{}, nil
	}
	return m.owned, nil
}

func (m *mockAchievementRepository) ListByUser(ctx context.Context, userID int) ([]models.UserAchievement, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

// mockArtifactRepository is a mock implementation of ArtifactRepository
type mockArtifactRepository struct {
	owned      []models.UserArtifact
	grantedKey string
	equipped   string
	grantErr   error
	listErr    error
	equipErr   error
}

func (m *mockArtifactRepository) Grant(ctx context.Context, userID int, artifact models.Artifact, acquiredAt time.Time) error {
	if m.grantErr != nil {
		return m.grantErr
	}
	m.grantedKey = artifact.Key
	return nil
}

func (m *mockArtifactRepository) ListByUser(ctx context.Context, userID int) ([]models.UserArtifact, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.owned, nil
}

func (m *mockArtifactRepository) Equip(ctx context.Context, userID int, artifactKey string, category string) error {
	if m.equipErr != nil {
		return m.equipErr
	}
	m.equipped = artifactKey
	return nil
}

// mockQuestRepository is a mock implementation of QuestRepository
type mockQuestRepository struct {
	quests     []models.DailyQuest
	reread     []models.DailyQuest
	inserted   []models.DailyQuest
	markedIDs  []int
	loseWrites bool
	getErr     error
	insertErr  error
	markErr    error
}

func (m *mockQuestRepository) GetByUserAndDate(ctx context.Context, userID int, date string) ([]models.DailyQuest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.inserted != nil && m.reread != nil {
		return m.reread, nil
	}
	return m.quests, nil
}

func (m *mockQuestRepository) InsertBatch(ctx context.Context, quests []models.DailyQuest) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = quests
	return nil
}

func (m *mockQuestRepository) MarkCompleted(ctx context.Context, questID int, completedAt time.Time) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	if m.loseWrites {
		return false, nil
	}
	m.markedIDs = append(m.markedIDs, questID)
	return true, nil
}

// mockSignalsProvider is a mock implementation of SignalsProvider
type mockSignalsProvider struct {
	signals *models.ProgressSignals
	err     error
}

func (m *mockSignalsProvider) Signals(ctx context.Context, userID int, now time.Time) (*models.ProgressSignals, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.signals == nil {
		return &models.ProgressSignals{}, nil
	}
	return m.signals, nil
}

// mockStreakProvider is a mock implementation of StreakProvider
type mockStreakProvider struct {
	streak int
	err    error
}

func (m *mockStreakProvider) CurrentStreak(ctx context.Context, userID int, now time.Time) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.streak, nil
}

// mockJudge is a mock implementation of Judge
type mockJudge struct {
	judgment *ai.Judgment
	err      error
}

func (m *mockJudge) Judge(ctx context.Context, transcript, prompt string, focusAreas []string) (*ai.Judgment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.judgment, nil
}

// mockQuestCompleter is a mock implementation of QuestCompleter
type mockQuestCompleter struct {
	completions []models.QuestCompletion
	err         error
	calledWith  *models.SessionEvent
}

func (m *mockQuestCompleter) CompleteMatching(ctx context.Context, userID int, event models.SessionEvent) ([]models.QuestCompletion, error) {
	m.calledWith = &event
	if m.err != nil {
		return nil, m.err
	}
	return m.completions, nil
}

// mockArtifactGranter is a mock implementation of ArtifactGranter
type mockArtifactGranter struct {
	grantedFor string
	err        error
}

func (m *mockArtifactGranter) GrantForAchievement(ctx context.Context, userID int, achievementKey string, now time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.grantedFor = achievementKey
	return nil
}

func intPtr(v int) *int {
	return &v
}
