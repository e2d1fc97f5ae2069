package models

// UserGamification holds per-user gamification state. total_xp is a
// monotonically increasing non-negative integer; level and rank title
// are derived from it.
type UserGamification struct {
	UserID    int    `json:"userId"`
	TotalXP   int    `json:"totalXp"`
	Level     int    `json:"level"`
	RankTitle string `json:"rankTitle"`
}

// GamificationProfile is the profile view returned to clients
type GamificationProfile struct {
	TotalXP       int    `json:"totalXp"`
	Level         int    `json:"level"`
	XPInLevel     int    `json:"xpInLevel"`
	XPToNextLevel int    `json:"xpToNextLevel"`
	RankTitle     string `json:"rankTitle"`
	RankIcon      string `json:"rankIcon"`
	NextRankTitle string `json:"nextRankTitle,omitempty"`
	NextRankLevel int    `json:"nextRankLevel,omitempty"`
	CurrentStreak int    `json:"currentStreak"`
}

// LeaderboardEntry is one row of the XP leaderboard
type LeaderboardEntry struct {
	UserID    int    `json:"userId"`
	TotalXP   int    `json:"totalXp"`
	Level     int    `json:"level"`
	RankTitle string `json:"rankTitle"`
}
