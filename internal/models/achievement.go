package models

import "time"

// AchievementTier is the tier of an achievement
type AchievementTier string

const (
	TierBronze   AchievementTier = "bronze"
	TierSilver   AchievementTier = "silver"
	TierGold     AchievementTier = "gold"
	TierPlatinum AchievementTier = "platinum"
)

// Achievement is a static catalog entry
type Achievement struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tier        AchievementTier `json:"tier"`
	XPReward    int             `json:"xpReward"`
}

// UserAchievement records a single unlock. One row per (user, key);
// existence implies "already unlocked".
type UserAchievement struct {
	UserID     int             `json:"userId"`
	Key        string          `json:"key"`
	Title      string          `json:"title"`
	Tier       AchievementTier `json:"tier"`
	XPReward   int             `json:"xpReward"`
	UnlockedAt time.Time       `json:"unlockedAt"`
}
