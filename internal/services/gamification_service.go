package services

import (
	"context"
	"time"

	"github.com/speakbright/backend/internal/gamification"
	"github.com/speakbright/backend/internal/models"
)

// GamificationRepository is the interface that wraps methods for user_gamification table data access
type GamificationRepository interface {
	// Method Get retrieves a user's gamification row. A user with no row
	// yet is reported as a fresh zero-XP state, not an error.
	//
	// If some error occurs during data retrieval, the error will be returned.
	Get(ctx context.Context, userID int) (*models.UserGamification, error)
	// Method AddXP atomically adds delta XP for a user, creating the row
	// lazily on first award, and returns the new total.
	//
	// If some error occurs during the update, the error will be returned.
	AddXP(ctx context.Context, userID, delta int, now time.Time) (int, error)
	// Method Leaderboard retrieves the top users by total XP.
	//
	// If some error occurs during data retrieval, the error will be returned.
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// AchievementRepository is the interface that wraps methods for user_achievements table data access
type AchievementRepository interface {
	// Method Unlock records an achievement unlock. The first write for a
	// (user, key) pair wins; the boolean result reports whether this call
	// created the record.
	//
	// If some error occurs during data creation, the error will be returned.
	Unlock(ctx context.Context, userID int, achievement models.Achievement, unlockedAt time.Time) (bool, error)
	// Method GetOwnedKeys retrieves the set of achievement keys a user has
	// unlocked.
	//
	// If some error occurs during data retrieval, the error will be returned.
	GetOwnedKeys(ctx context.Context, userID int) (map[string]bool, error)
	// Method ListByUser retrieves a user's unlocked achievements, newest first.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	ListByUser(ctx context.Context, userID int) ([]models.UserAchievement, error)
}

// StreakProvider supplies the user's current practice streak
type StreakProvider interface {
	// Method CurrentStreak computes the number of consecutive practice
	// days ending today or yesterday.
	//
	// If some error occurs during data retrieval, the error will be returned.
	CurrentStreak(ctx context.Context, userID int, now time.Time) (int, error)
}

// gamificationService implements profile, leaderboard, and achievement reads
type gamificationService struct {
	gamificationRepo GamificationRepository
	achievementRepo  AchievementRepository
	streaks          StreakProvider
	clock            Clock
}

// NewGamificationService creates a new gamification service
func NewGamificationService(gamificationRepo GamificationRepository, achievementRepo AchievementRepository, streaks StreakProvider, clock Clock) *gamificationService {
	return &gamificationService{
		gamificationRepo: gamificationRepo,
		achievementRepo:  achievementRepo,
		streaks:          streaks,
		clock:            clock,
	}
}

// Profile assembles the user's gamification profile. Level and rank are
// derived from total XP, never read from the stored level column.
func (s *gamificationService) Profile(ctx context.Context, userID int) (*models.GamificationProfile, error) {
	state, err := s.gamificationRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.streaks.CurrentStreak(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	level := gamification.LevelForXP(state.TotalXP)
	rank := gamification.RankForLevel(level)

	profile := &models.GamificationProfile{
		TotalXP:       state.TotalXP,
		Level:         level,
		XPInLevel:     gamification.XPInLevel(state.TotalXP),
		XPToNextLevel: gamification.XPToNextLevel(state.TotalXP),
		RankTitle:     rank.Title,
		RankIcon:      rank.Icon,
		CurrentStreak: streak,
	}

	if next := gamification.NextRank(level); next != nil {
		profile.NextRankTitle = next.Title
		profile.NextRankLevel = next.LevelThreshold
	}

	return profile, nil
}

// Leaderboard retrieves the top users by total XP with derived rank titles
func (s *gamificationService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	entries, err := s.gamificationRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Level = gamification.LevelForXP(entries[i].TotalXP)
		entries[i].RankTitle = gamification.RankForLevel(entries[i].Level).Title
	}

	return entries, nil
}

// Achievements retrieves the user's unlocked achievements with catalog titles
func (s *gamificationService) Achievements(ctx context.Context, userID int) ([]models.UserAchievement, error) {
	unlocked, err := s.achievementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range unlocked {
		if ach, ok := gamification.AchievementByKey(unlocked[i].Key); ok {
			unlocked[i].Title = ach.Title
		}
	}

	return unlocked, nil
}
