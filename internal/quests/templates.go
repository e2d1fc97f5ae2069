// Package quests implements daily quest generation and completion
// matching. Selection and matching are pure; randomness is injected so
// generation is reproducible in tests.
package quests

import "github.com/speakbright/backend/internal/models"

// Difficulty tiers for practice and performance templates
type tier int

const (
	tierEasy tier = iota
	tierMedium
	tierHard
)

// Template is a static quest template. Selected templates are copied
// into immutable DailyQuest rows with a fixed XP reward and target.
type Template struct {
	Type        models.QuestType
	Description string
	XPReward    int
	Target      models.QuestTarget
}

func intPtr(v int) *int {
	return &v
}

// practiceTemplates, by difficulty tier
var practiceTemplates = map[tier]Template{
	tierEasy: {
		Type:        models.QuestTypePractice,
		Description: "Complete 1 practice session today",
		XPReward:    20,
		Target:      models.QuestTarget{Sessions: intPtr(1)},
	},
	tierMedium: {
		Type:        models.QuestTypePractice,
		Description: "Complete 2 practice sessions today",
		XPReward:    35,
		Target:      models.QuestTarget{Sessions: intPtr(2)},
	},
	tierHard: {
		Type:        models.QuestTypePractice,
		Description: "Complete 3 practice sessions today",
		XPReward:    50,
		Target:      models.QuestTarget{Sessions: intPtr(3)},
	},
}

// performanceTemplates, by difficulty tier
var performanceTemplates = map[tier]Template{
	tierEasy: {
		Type:        models.QuestTypePerformance,
		Description: "Score 70 or higher in a session",
		XPReward:    30,
		Target:      models.QuestTarget{MinScore: intPtr(70)},
	},
	tierMedium: {
		Type:        models.QuestTypePerformance,
		Description: "Score 80 or higher in a session",
		XPReward:    45,
		Target:      models.QuestTarget{MinScore: intPtr(80)},
	},
	tierHard: {
		Type:        models.QuestTypePerformance,
		Description: "Score 90 or higher in a session",
		XPReward:    60,
		Target:      models.QuestTarget{MinScore: intPtr(90)},
	},
}

// explorationTemplate is the designated beginner quest used in slot 2
// until the user has completed enough lessons for performance quests
var explorationTemplate = Template{
	Type:        models.QuestTypeExploration,
	Description: "Practice in 2 different categories today",
	XPReward:    25,
	Target:      models.QuestTarget{Categories: intPtr(2)},
}

// streakTemplate builds a new streak in slot 3 when the current streak is zero
var streakTemplate = Template{
	Type:        models.QuestTypeStreak,
	Description: "Complete a session today to start your streak",
	XPReward:    25,
	Target:      models.QuestTarget{Sessions: intPtr(1)},
}

// challengeTemplate targets the user's weakest category; the category is
// filled in at selection time
var challengeTemplate = Template{
	Type:        models.QuestTypeChallenge,
	Description: "Complete a session in your weakest category",
	XPReward:    40,
	Target:      models.QuestTarget{},
}

// timingTemplates are picked at random for slot 3
var timingTemplates = []Template{
	{
		Type:        models.QuestTypeTiming,
		Description: "Complete a session before 10:00",
		XPReward:    30,
		Target:      models.QuestTarget{Before: "10:00"},
	},
	{
		Type:        models.QuestTypeTiming,
		Description: "Complete a session before noon",
		XPReward:    25,
		Target:      models.QuestTarget{Before: "12:00"},
	},
	{
		Type:        models.QuestTypeTiming,
		Description: "Complete a session after 19:00",
		XPReward:    30,
		Target:      models.QuestTarget{After: "19:00"},
	},
}

// masteryTemplates are picked at random for slot 3
var masteryTemplates = []Template{
	{
		Type:        models.QuestTypeMastery,
		Description: "Score 85 or higher in 2 sessions today",
		XPReward:    55,
		Target:      models.QuestTarget{Sessions: intPtr(2), MinScore: intPtr(85)},
	},
	{
		Type:        models.QuestTypeMastery,
		Description: "Score 75 or higher in 3 sessions today",
		XPReward:    50,
		Target:      models.QuestTarget{Sessions: intPtr(3), MinScore: intPtr(75)},
	},
}
