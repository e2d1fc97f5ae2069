package models

import "time"

// UserProgress tracks a user's progress on a single lesson. One row per
// (user, category, module, level); completed is monotonically true once
// set and best_score never decreases.
type UserProgress struct {
	UserID          int       `json:"userId"`
	Category        string    `json:"category"`
	Module          int       `json:"module"`
	Level           int       `json:"level"`
	Completed       bool      `json:"completed"`
	BestScore       int       `json:"bestScore"`
	LastAttemptedAt time.Time `json:"lastAttemptedAt"`
}

// ProgressSignals aggregates the skill signals used by quest generation
// and achievement checks
type ProgressSignals struct {
	TotalCompletedLessons int     `json:"totalCompletedLessons"`
	AverageScore          float64 `json:"averageScore"`
	CurrentStreak         int     `json:"currentStreak"`
	PerfectScoreCount     int     `json:"perfectScoreCount"`
	WeakCategory          string  `json:"weakCategory,omitempty"`
}
