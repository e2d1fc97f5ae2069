package models

import "time"

// ArtifactRarity is the rarity tier of a collectible artifact
type ArtifactRarity string

const (
	RarityCommon    ArtifactRarity = "common"
	RarityRare      ArtifactRarity = "rare"
	RarityEpic      ArtifactRarity = "epic"
	RarityLegendary ArtifactRarity = "legendary"
)

// Artifact is a static catalog entry for a collectible unlock
type Artifact struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Rarity      ArtifactRarity `json:"rarity"`
	Description string         `json:"description"`
	// UnlockAchievement is the achievement key that grants this artifact
	UnlockAchievement string `json:"unlockAchievement"`
}

// UserArtifact marks ownership of an artifact. At most one artifact per
// category may be equipped at a time.
type UserArtifact struct {
	UserID      int       `json:"userId"`
	ArtifactKey string    `json:"artifactKey"`
	Equipped    bool      `json:"equipped"`
	AcquiredAt  time.Time `json:"acquiredAt"`
}

// UserArtifactDetail joins ownership with catalog data for list responses
type UserArtifactDetail struct {
	Artifact
	Owned      bool       `json:"owned"`
	Equipped   bool       `json:"equipped"`
	AcquiredAt *time.Time `json:"acquiredAt,omitempty"`
}
