package services

import (
	"context"
	"time"

	"github.com/speakbright/backend/internal/models"
)

// activityWindowDays bounds the streak scan. A streak longer than this
// window is reported as the window length.
const activityWindowDays = 366

// ProgressRepository is the interface that wraps methods for user_progress table data access
type ProgressRepository interface {
	// Method Upsert updates or creates the progress row for one lesson attempt.
	//
	// The write never regresses state: completed stays true once set and
	// best_score never decreases.
	// If some error occurs during data upsert, the error will be returned.
	Upsert(ctx context.Context, progress *models.UserProgress) error
	// Method ListByUser retrieves all progress rows for a user.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	ListByUser(ctx context.Context, userID int) ([]models.UserProgress, error)
	// Method CountCompleted counts the lessons a user has completed.
	//
	// If some error occurs during data retrieval, the error will be returned.
	CountCompleted(ctx context.Context, userID int) (int, error)
	// Method AverageBestScore returns the user's average best score across
	// attempted lessons, or 0 when the user has no progress rows.
	//
	// If some error occurs during data retrieval, the error will be returned.
	AverageBestScore(ctx context.Context, userID int) (float64, error)
	// Method WeakestCategory returns the attempted category with the lowest
	// average best score, or an empty string when the user has no progress rows.
	//
	// If some error occurs during data retrieval, the error will be returned.
	WeakestCategory(ctx context.Context, userID int) (string, error)
}

// SessionRepository is the interface that wraps methods for sessions table data access
type SessionRepository interface {
	// Method Create appends a new session record. Sessions are never
	// updated after creation.
	//
	// If some error occurs during data creation, the error will be returned.
	Create(ctx context.Context, session *models.Session) error
	// Method CountCompletedOnDay counts completed sessions for a user on a
	// calendar day ("2006-01-02").
	//
	// If some error occurs during data retrieval, the error will be returned.
	CountCompletedOnDay(ctx context.Context, userID int, day string) (int, error)
	// Method CountDistinctCategoriesOnDay counts the distinct lesson
	// categories a user practiced on a calendar day.
	//
	// If some error occurs during data retrieval, the error will be returned.
	CountDistinctCategoriesOnDay(ctx context.Context, userID int, day string) (int, error)
	// Method CountWithMinScoreOnDay counts completed sessions at or above a
	// score for a user on a calendar day.
	//
	// If some error occurs during data retrieval, the error will be returned.
	CountWithMinScoreOnDay(ctx context.Context, userID int, day string, minScore int) (int, error)
	// Method CountPerfectScores counts a user's sessions with a perfect
	// overall score.
	//
	// If some error occurs during data retrieval, the error will be returned.
	CountPerfectScores(ctx context.Context, userID int) (int, error)
	// Method GetActivityDates retrieves the distinct calendar days with at
	// least one completed session, newest first, limited to the most
	// recent "limit" days.
	//
	// If some error occurs during data retrieval, the error will be returned.
	GetActivityDates(ctx context.Context, userID int, limit int) ([]time.Time, error)
	// Method GetRecentByUser retrieves a user's most recent sessions.
	//
	// If some error occurs during data retrieval, the error will be returned.
	GetRecentByUser(ctx context.Context, userID, limit int) ([]models.Session, error)
}

// progressService implements progress reads and skill-signal aggregation
type progressService struct {
	progressRepo ProgressRepository
	sessionRepo  SessionRepository
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo ProgressRepository, sessionRepo SessionRepository) *progressService {
	return &progressService{
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
	}
}

// ListProgress retrieves all per-lesson progress rows for a user
func (s *progressService) ListProgress(ctx context.Context, userID int) ([]models.UserProgress, error) {
	return s.progressRepo.ListByUser(ctx, userID)
}

// Signals aggregates the skill signals used by quest generation and
// achievement checks, as of the given time
func (s *progressService) Signals(ctx context.Context, userID int, now time.Time) (*models.ProgressSignals, error) {
	completed, err := s.progressRepo.CountCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}

	average, err := s.progressRepo.AverageBestScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	weakest, err := s.progressRepo.WeakestCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	perfect, err := s.sessionRepo.CountPerfectScores(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.CurrentStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &models.ProgressSignals{
		TotalCompletedLessons: completed,
		AverageScore:          average,
		CurrentStreak:         streak,
		PerfectScoreCount:     perfect,
		WeakCategory:          weakest,
	}, nil
}

// CurrentStreak computes the number of consecutive practice days ending
// today or yesterday. A user who practiced yesterday but not yet today
// still holds the streak; a gap of more than one day resets it to zero.
func (s *progressService) CurrentStreak(ctx context.Context, userID int, now time.Time) (int, error) {
	dates, err := s.sessionRepo.GetActivityDates(ctx, userID, activityWindowDays)
	if err != nil {
		return 0, err
	}

	return streakFromDates(dates, now), nil
}

// streakFromDates counts consecutive days in a newest-first date list.
// The streak anchor is today when today appears, otherwise yesterday.
func streakFromDates(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today := truncateDay(now)
	anchor := today
	if !sameDay(dates[0], today) {
		anchor = today.AddDate(0, 0, -1)
		if !sameDay(dates[0], anchor) {
			return 0
		}
	}

	streak := 0
	expected := anchor
	for _, d := range dates {
		if !sameDay(d, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}

	return streak
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
