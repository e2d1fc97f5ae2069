package services

import (
	"context"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/speakbright/backend/internal/models"
	"github.com/speakbright/backend/internal/quests"
	"go.uber.org/zap"
)

// QuestRepository is the interface that wraps methods for daily_quests table data access
type QuestRepository interface {
	// Method GetByUserAndDate retrieves a user's quests for a calendar day
	// ("2006-01-02"), ordered by slot.
	//
	// If no records are found, an empty slice will be returned.
	// If some error occurs during data retrieval, the error will be returned.
	GetByUserAndDate(ctx context.Context, userID int, date string) ([]models.DailyQuest, error)
	// Method InsertBatch inserts a day's quests, ignoring rows whose
	// (user_id, quest_date, slot) already exist.
	//
	// If some error occurs during data creation, the error will be returned.
	InsertBatch(ctx context.Context, quests []models.DailyQuest) error
	// Method MarkCompleted marks a quest completed. Completing an
	// already-completed quest is a no-op; the boolean result reports
	// whether this call won the write.
	//
	// If some error occurs during the update, the error will be returned.
	MarkCompleted(ctx context.Context, questID int, completedAt time.Time) (bool, error)
}

// SignalsProvider supplies aggregated skill signals for quest generation
type SignalsProvider interface {
	// Method Signals aggregates the user's skill signals as of "now".
	//
	// If some error occurs during data retrieval, the error will be returned.
	Signals(ctx context.Context, userID int, now time.Time) (*models.ProgressSignals, error)
}

// questService implements daily quest provisioning and completion matching
type questService struct {
	questRepo   QuestRepository
	sessionRepo SessionRepository
	signals     SignalsProvider
	clock       Clock
	logger      *zap.Logger
}

// NewQuestService creates a new quest service
func NewQuestService(questRepo QuestRepository, sessionRepo SessionRepository, signals SignalsProvider, clock Clock, logger *zap.Logger) *questService {
	return &questService{
		questRepo:   questRepo,
		sessionRepo: sessionRepo,
		signals:     signals,
		clock:       clock,
		logger:      logger,
	}
}

// TodayQuests returns the user's 3 quests for the current day, generating
// them on first access. Generation is idempotent: the template selection
// is seeded from (user, day), so concurrent first requests produce the
// same set and the unique key keeps exactly one copy.
func (s *questService) TodayQuests(ctx context.Context, userID int) ([]models.DailyQuest, error) {
	now := s.clock.Now()
	day := dayOf(now)

	existing, err := s.questRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if len(existing) == 3 {
		return existing, nil
	}

	signals, err := s.signals.Signals(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	selected := quests.SelectDaily(*signals, questRNG(userID, day))

	rows := make([]models.DailyQuest, 0, len(selected))
	for i, tpl := range selected {
		rows = append(rows, models.DailyQuest{
			UserID:      userID,
			QuestDate:   day,
			Slot:        i + 1,
			Type:        tpl.Type,
			Description: tpl.Description,
			Target:      tpl.Target,
			XPReward:    tpl.XPReward,
		})
	}

	if err := s.questRepo.InsertBatch(ctx, rows); err != nil {
		return nil, err
	}

	// Re-read so the response carries database IDs, and the winning set
	// when another request generated first
	return s.questRepo.GetByUserAndDate(ctx, userID, day)
}

// CompleteMatching checks the user's incomplete quests for the event's
// day against a just-completed session and marks the ones whose targets
// are now met. Quests the user never loaded today do not exist yet and
// therefore cannot complete; that matches the product rule that a quest
// must be seen before it can be finished.
func (s *questService) CompleteMatching(ctx context.Context, userID int, event models.SessionEvent) ([]models.QuestCompletion, error) {
	day := dayOf(event.Timestamp)

	dayQuests, err := s.questRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	sessionsToday, err := s.sessionRepo.CountCompletedOnDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	distinctCategories, err := s.sessionRepo.CountDistinctCategoriesOnDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	var completions []models.QuestCompletion
	for _, quest := range dayQuests {
		if quest.Completed {
			continue
		}

		agg := models.QuestDayAggregates{
			SessionsToday:      sessionsToday,
			DistinctCategories: distinctCategories,
		}

		// Mastery quests count sessions against their own score bar
		if quest.Type == models.QuestTypeMastery && quest.Target.MinScore != nil {
			withMin, err := s.sessionRepo.CountWithMinScoreOnDay(ctx, userID, day, *quest.Target.MinScore)
			if err != nil {
				return nil, err
			}
			agg.SessionsWithMinScore = withMin
		}

		if !quests.Matches(quest, event, agg) {
			continue
		}

		won, err := s.questRepo.MarkCompleted(ctx, quest.ID, event.Timestamp)
		if err != nil {
			return nil, err
		}
		if !won {
			// Lost the write to a concurrent submission; that request
			// reports the completion
			continue
		}

		s.logger.Info("Quest completed",
			zap.Int("user_id", userID),
			zap.Int("quest_id", quest.ID),
			zap.String("quest_type", string(quest.Type)))

		completions = append(completions, models.QuestCompletion{
			QuestID:  quest.ID,
			Type:     quest.Type,
			XPReward: quest.XPReward,
		})
	}

	return completions, nil
}

// questRNG derives the template-selection RNG for one user-day. The seed
// is a hash of the pair, so repeated generation for the same day always
// selects the same templates.
func questRNG(userID int, day string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(day))
	seed := int64(h.Sum64()) ^ int64(userID)<<32
	return rand.New(rand.NewSource(seed))
}
