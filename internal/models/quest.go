package models

import "time"

// QuestType classifies a daily quest
type QuestType string

const (
	QuestTypePractice    QuestType = "practice"
	QuestTypePerformance QuestType = "performance"
	QuestTypeStreak      QuestType = "streak"
	QuestTypeChallenge   QuestType = "challenge"
	QuestTypeExploration QuestType = "exploration"
	QuestTypeTiming      QuestType = "timing"
	QuestTypeMastery     QuestType = "mastery"
)

// QuestTarget is the structured completion condition of a quest. Only the
// fields relevant to the quest type are set; the struct is stored as JSON.
type QuestTarget struct {
	// MinScore requires a session scoring at least this value
	MinScore *int `json:"minScore,omitempty"`
	// Before/After require a session submitted strictly before or
	// at-or-after the given local hour of day, formatted "HH:MM"
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
	// Sessions requires at least this many completed sessions today
	Sessions *int `json:"sessions,omitempty"`
	// Categories requires sessions in at least this many distinct categories today
	Categories *int `json:"categories,omitempty"`
	// Category restricts matching sessions to one category
	Category string `json:"category,omitempty"`
}

// DailyQuest is one generated quest for a (user, date, slot). Exactly 3
// exist per user per day; the target is immutable after creation and
// completed is write-once true.
type DailyQuest struct {
	ID          int         `json:"id"`
	UserID      int         `json:"userId"`
	QuestDate   string      `json:"questDate"` // calendar day, "2006-01-02"
	Slot        int         `json:"slot"`
	Type        QuestType   `json:"type"`
	Description string      `json:"description"`
	Target      QuestTarget `json:"target"`
	XPReward    int         `json:"xpReward"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// QuestCompletion reports a quest newly completed by a session event
type QuestCompletion struct {
	QuestID  int       `json:"questId"`
	Type     QuestType `json:"type"`
	XPReward int       `json:"xpReward"`
}

// SessionEvent is the view of a just-completed session used for quest matching
type SessionEvent struct {
	UserID    int       `json:"userId"`
	Category  string    `json:"category"`
	Module    int       `json:"module"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// QuestDayAggregates holds per-day counts used for quests whose targets
// span more than the triggering session. SessionsWithMinScore is computed
// against the target's MinScore by the caller before matching.
type QuestDayAggregates struct {
	SessionsToday        int
	DistinctCategories   int
	SessionsWithMinScore int
	CurrentStreak        int
}
