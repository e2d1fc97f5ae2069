package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/speakbright/backend/internal/ai"
	"github.com/speakbright/backend/internal/gamification"
	"github.com/speakbright/backend/internal/models"
	"github.com/speakbright/backend/internal/scoring"
	"go.uber.org/zap"
)

// Submission validation errors
var (
	ErrEmptyTranscript = errors.New("transcript must not be empty")
	ErrInvalidDuration = errors.New("duration must be positive")
)

// LessonRepository is the interface that wraps methods for lessons table data access
type LessonRepository interface {
	// Method GetByCoords retrieves a lesson by its (category, module,
	// level) coordinates.
	//
	// If the lesson does not exist, repositories.ErrLessonNotFound will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	GetByCoords(ctx context.Context, category string, module, level int) (*models.Lesson, error)
	// Method ListByCategory retrieves all lessons in a category with the
	// user's completion status, sorted by module and level.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	ListByCategory(ctx context.Context, category string, userID int) ([]models.LessonListItem, error)
}

// Judge is the interface for the external AI judgment provider
type Judge interface {
	// Method Judge scores a transcript against a lesson prompt.
	//
	// If the provider is unreachable or returns an invalid response, the
	// error will be returned.
	Judge(ctx context.Context, transcript, prompt string, focusAreas []string) (*ai.Judgment, error)
}

// QuestCompleter marks matching daily quests completed after a session
type QuestCompleter interface {
	// Method CompleteMatching checks the user's incomplete quests against
	// a just-completed session and marks the ones whose targets are met.
	//
	// If some error occurs during matching, the error will be returned.
	CompleteMatching(ctx context.Context, userID int, event models.SessionEvent) ([]models.QuestCompletion, error)
}

// ArtifactGranter grants artifacts tied to achievement unlocks
type ArtifactGranter interface {
	// Method GrantForAchievement grants the artifact tied to a newly
	// unlocked achievement, when one exists.
	//
	// If some error occurs during data creation, the error will be returned.
	GrantForAchievement(ctx context.Context, userID int, achievementKey string, now time.Time) error
}

// submissionService orchestrates scoring, persistence, and gamification
// for practice submissions
type submissionService struct {
	lessonRepo       LessonRepository
	sessionRepo      SessionRepository
	progressRepo     ProgressRepository
	gamificationRepo GamificationRepository
	achievementRepo  AchievementRepository
	judge            Judge
	questCompleter   QuestCompleter
	artifacts        ArtifactGranter
	signals          SignalsProvider
	scorer           *scoring.Engine
	clock            Clock
	logger           *zap.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	lessonRepo LessonRepository,
	sessionRepo SessionRepository,
	progressRepo ProgressRepository,
	gamificationRepo GamificationRepository,
	achievementRepo AchievementRepository,
	judge Judge,
	questCompleter QuestCompleter,
	artifacts ArtifactGranter,
	signals SignalsProvider,
	scorer *scoring.Engine,
	clock Clock,
	logger *zap.Logger,
) *submissionService {
	return &submissionService{
		lessonRepo:       lessonRepo,
		sessionRepo:      sessionRepo,
		progressRepo:     progressRepo,
		gamificationRepo: gamificationRepo,
		achievementRepo:  achievementRepo,
		judge:            judge,
		questCompleter:   questCompleter,
		artifacts:        artifacts,
		signals:          signals,
		scorer:           scorer,
		clock:            clock,
		logger:           logger,
	}
}

// GetLesson retrieves lesson reference data by coordinates
func (s *submissionService) GetLesson(ctx context.Context, category string, module, level int) (*models.Lesson, error) {
	return s.lessonRepo.GetByCoords(ctx, category, module, level)
}

// ListLessons retrieves a category's lessons with the user's completion state
func (s *submissionService) ListLessons(ctx context.Context, category string, userID int) ([]models.LessonListItem, error) {
	return s.lessonRepo.ListByCategory(ctx, category, userID)
}

// SubmitRecording scores a practice transcript and records its outcome.
//
// The session write is the primary effect: its failure fails the request.
// Progress, XP, achievement, and quest writes are best-effort follow-ups;
// their failures are logged and the submission still succeeds, leaving
// the session log as the recovery source of truth.
func (s *submissionService) SubmitRecording(ctx context.Context, userID int, category string, module, level int, req *models.SubmitRecordingRequest) (*models.SubmissionResponse, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	if req.DurationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}

	lesson, err := s.lessonRepo.GetByCoords(ctx, category, module, level)
	if err != nil {
		return nil, err
	}

	judgment, err := s.judge.Judge(ctx, req.Transcript, lesson.Prompt, lesson.FocusAreas)
	if err != nil {
		return nil, fmt.Errorf("failed to judge transcript: %w", err)
	}

	breakdown, err := s.scorer.Score(scoring.Input{
		Level:           lesson.Level,
		ContentScore:    judgment.ContentScore,
		GrammarScore:    judgment.GrammarScore,
		SentenceScore:   judgment.SentenceScore,
		VocabularyScore: judgment.VocabularyScore,
		FocusAreaScores: judgment.FocusAreaScores,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to score submission: %w", err)
	}

	for _, component := range breakdown.ClampedComponents {
		s.logger.Warn("Score component clamped to valid range",
			zap.Int("user_id", userID),
			zap.String("component", component))
	}

	now := s.clock.Now()
	metrics := scoring.TranscriptMetrics(req.Transcript, req.DurationSeconds)
	feedback := scoring.Feedback(breakdown, scoring.Input{FocusAreaScores: judgment.FocusAreaScores},
		judgment.Strengths, judgment.Improvements,
		models.LinguisticAnalysis{
			Grammar:           models.LinguisticArea{Score: breakdown.GrammarScore, Suggestions: judgment.GrammarSuggestions},
			SentenceFormation: models.LinguisticArea{Score: breakdown.SentenceScore, Suggestions: judgment.SentenceSuggestions},
			Vocabulary:        models.LinguisticArea{Score: breakdown.VocabularyScore, Suggestions: judgment.VocabularySuggestions},
		},
		metrics)

	session := &models.Session{
		ID:           uuid.New().String(),
		UserID:       userID,
		Category:     lesson.Category,
		Module:       lesson.Module,
		Level:        lesson.Level,
		Transcript:   req.Transcript,
		ExampleText:  judgment.ExampleText,
		Feedback:     feedback,
		OverallScore: breakdown.OverallScore,
		Completed:    breakdown.Passed,
		CreatedAt:    now,
	}
	if breakdown.Passed {
		session.CompletedAt = &now
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	outcome := s.applyGamification(ctx, session, breakdown)

	return &models.SubmissionResponse{
		SessionID:    session.ID,
		Feedback:     feedback,
		Gamification: outcome,
	}, nil
}

// applyGamification runs the best-effort follow-up writes for a recorded
// session: progress upsert, XP award, achievement unlock, quest matching.
// Failures are logged and reduce the reported outcome, never the request.
func (s *submissionService) applyGamification(ctx context.Context, session *models.Session, breakdown *scoring.Breakdown) models.GamificationOutcome {
	userID := session.UserID
	now := session.CreatedAt

	progress := &models.UserProgress{
		UserID:          userID,
		Category:        session.Category,
		Module:          session.Module,
		Level:           session.Level,
		Completed:       breakdown.Passed,
		BestScore:       breakdown.OverallScore,
		LastAttemptedAt: now,
	}
	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		s.logger.Error("Failed to update lesson progress",
			zap.Int("user_id", userID), zap.Error(err))
	}

	oldState, err := s.gamificationRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to read gamification state",
			zap.Int("user_id", userID), zap.Error(err))
		oldState = &models.UserGamification{UserID: userID}
	}

	xpEarned := 0
	if breakdown.Passed {
		xpEarned = gamification.XPForLesson(breakdown.OverallScore)
	}

	outcome := models.GamificationOutcome{
		XPEarned: xpEarned,
		TotalXP:  oldState.TotalXP,
	}

	var completions []models.QuestCompletion
	if breakdown.Passed {
		event := models.SessionEvent{
			UserID:    userID,
			Category:  session.Category,
			Module:    session.Module,
			Score:     breakdown.OverallScore,
			Timestamp: now,
		}

		completions, err = s.questCompleter.CompleteMatching(ctx, userID, event)
		if err != nil {
			s.logger.Error("Failed to match daily quests",
				zap.Int("user_id", userID), zap.Error(err))
			completions = nil
		}
		for _, c := range completions {
			outcome.XPEarned += c.XPReward
		}
		outcome.CompletedQuests = completions

		outcome.UnlockedAchievement = s.unlockAchievement(ctx, userID, now)
		if outcome.UnlockedAchievement != nil {
			outcome.XPEarned += outcome.UnlockedAchievement.XPReward
		}
	}

	if outcome.XPEarned > 0 {
		total, err := s.gamificationRepo.AddXP(ctx, userID, outcome.XPEarned, now)
		if err != nil {
			s.logger.Error("Failed to award XP",
				zap.Int("user_id", userID), zap.Int("xp", outcome.XPEarned), zap.Error(err))
			total = oldState.TotalXP
			outcome.XPEarned = 0
		}
		outcome.TotalXP = total
	}

	progression := gamification.Progress(outcome.TotalXP-outcome.XPEarned, outcome.XPEarned)
	outcome.Level = progression.NewLevel
	outcome.LeveledUp = progression.LeveledUp
	outcome.RankedUp = progression.RankedUp
	outcome.RankTitle = gamification.RankForLevel(progression.NewLevel).Title

	return outcome
}

// unlockAchievement evaluates the achievement catalog against the user's
// refreshed stats and unlocks at most one new achievement
func (s *submissionService) unlockAchievement(ctx context.Context, userID int, now time.Time) *models.UserAchievement {
	signals, err := s.signals.Signals(ctx, userID, now)
	if err != nil {
		s.logger.Error("Failed to aggregate achievement stats",
			zap.Int("user_id", userID), zap.Error(err))
		return nil
	}

	owned, err := s.achievementRepo.GetOwnedKeys(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to read unlocked achievements",
			zap.Int("user_id", userID), zap.Error(err))
		return nil
	}

	next := gamification.NextUnlock(gamification.AchievementStats{
		CompletedLessons: signals.TotalCompletedLessons,
		PerfectScores:    signals.PerfectScoreCount,
		CurrentStreak:    signals.CurrentStreak,
	}, owned)
	if next == nil {
		return nil
	}

	inserted, err := s.achievementRepo.Unlock(ctx, userID, *next, now)
	if err != nil {
		s.logger.Error("Failed to unlock achievement",
			zap.Int("user_id", userID), zap.String("achievement", next.Key), zap.Error(err))
		return nil
	}
	if !inserted {
		// A concurrent submission unlocked it first
		return nil
	}

	s.logger.Info("Achievement unlocked",
		zap.Int("user_id", userID), zap.String("achievement", next.Key))

	if err := s.artifacts.GrantForAchievement(ctx, userID, next.Key, now); err != nil {
		s.logger.Error("Failed to grant artifact",
			zap.Int("user_id", userID), zap.String("achievement", next.Key), zap.Error(err))
	}

	return &models.UserAchievement{
		UserID:     userID,
		Key:        next.Key,
		Title:      next.Title,
		Tier:       next.Tier,
		XPReward:   next.XPReward,
		UnlockedAt: now,
	}
}
