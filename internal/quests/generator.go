package quests

import (
	"math/rand"

	"github.com/speakbright/backend/internal/models"
)

// tierFor maps a counter to a difficulty tier. The same thresholds apply
// to total completed lessons (slot 1) and to average score treated as a
// plain value (slot 2).
func tierFor(value int) tier {
	switch {
	case value < 10:
		return tierEasy
	case value < 50:
		return tierMedium
	default:
		return tierHard
	}
}

// SelectDaily picks the 3 quest templates for one user-day from the
// user's progress signals. Slot assignment:
//
//  1. A practice quest tiered by total completed lessons.
//  2. A performance quest tiered by average score once the user has
//     completed at least 5 lessons; the beginner exploration quest before
//     that.
//  3. The streak quest when the current streak is zero; otherwise the
//     challenge quest when a weak category is known; otherwise a coin
//     flip between a random timing quest and a random mastery quest.
//
// rng must be non-nil; injecting it keeps selection reproducible.
func SelectDaily(signals models.ProgressSignals, rng *rand.Rand) [3]Template {
	var selected [3]Template

	selected[0] = practiceTemplates[tierFor(signals.TotalCompletedLessons)]

	if signals.TotalCompletedLessons >= 5 {
		selected[1] = performanceTemplates[tierFor(int(signals.AverageScore))]
	} else {
		selected[1] = explorationTemplate
	}

	switch {
	case signals.CurrentStreak == 0:
		selected[2] = streakTemplate
	case signals.WeakCategory != "":
		challenge := challengeTemplate
		challenge.Target.Category = signals.WeakCategory
		selected[2] = challenge
	case rng.Float64() < 0.5:
		selected[2] = timingTemplates[rng.Intn(len(timingTemplates))]
	default:
		selected[2] = masteryTemplates[rng.Intn(len(masteryTemplates))]
	}

	return selected
}
