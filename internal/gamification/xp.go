// Package gamification implements the pure XP, level, rank, and
// achievement rules. Persistence belongs to the repositories; this
// package only computes.
package gamification

// XP needed to advance one level. Level boundaries are exact multiples
// of this value, so level derivation is invertible.
const xpPerLevel = 100

// XPForLesson returns the XP awarded for one completed lesson. The award
// is score-weighted and monotonically non-decreasing in score: a base of
// 10 XP plus one XP per full 10 score points (10 XP at score 0, 20 XP at
// score 100).
func XPForLesson(score int) int {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return 10 + score/10
}

// LevelForXP derives the user level from total XP
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/xpPerLevel + 1
}

// XPInLevel returns the XP accumulated within the current level
func XPInLevel(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP % xpPerLevel
}

// XPToNextLevel returns the XP remaining to reach the next level
func XPToNextLevel(totalXP int) int {
	return xpPerLevel - XPInLevel(totalXP)
}

// Progression captures the level and rank transitions caused by one XP award
type Progression struct {
	OldLevel  int
	NewLevel  int
	LeveledUp bool
	RankedUp  bool
}

// Progress computes the level and rank transitions for an XP award of
// delta on top of oldXP
func Progress(oldXP, delta int) Progression {
	oldLevel := LevelForXP(oldXP)
	newLevel := LevelForXP(oldXP + delta)

	return Progression{
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
		RankedUp:  RankForLevel(oldLevel).Title != RankForLevel(newLevel).Title,
	}
}
