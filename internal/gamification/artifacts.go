package gamification

import "github.com/speakbright/backend/internal/models"

// artifacts is the static artifact catalog. Each artifact is granted by
// one achievement; catalog order is the display order.
var artifacts = []models.Artifact{
	{Key: "wooden_podium", Name: "Wooden Podium", Category: "stage", Rarity: models.RarityCommon, Description: "A humble stand for a first speech", UnlockAchievement: AchFirstLesson},
	{Key: "brass_microphone", Name: "Brass Microphone", Category: "microphone", Rarity: models.RarityCommon, Description: "It crackles, but it carries", UnlockAchievement: AchLessons10},
	{Key: "velvet_curtain", Name: "Velvet Curtain", Category: "stage", Rarity: models.RarityRare, Description: "A proper backdrop for a regular speaker", UnlockAchievement: AchLessons25},
	{Key: "silver_microphone", Name: "Silver Microphone", Category: "microphone", Rarity: models.RarityEpic, Description: "Polished by fifty performances", UnlockAchievement: AchLessons50},
	{Key: "grand_amphitheater", Name: "Grand Amphitheater", Category: "stage", Rarity: models.RarityLegendary, Description: "A stage worthy of a hundred speeches", UnlockAchievement: AchLessons100},
	{Key: "golden_laurel", Name: "Golden Laurel", Category: "accessory", Rarity: models.RarityLegendary, Description: "Awarded for a flawless delivery", UnlockAchievement: AchPerfectScore},
	{Key: "ember_badge", Name: "Ember Badge", Category: "accessory", Rarity: models.RarityCommon, Description: "Three days and the spark caught", UnlockAchievement: AchStreak3},
	{Key: "flame_badge", Name: "Flame Badge", Category: "accessory", Rarity: models.RarityRare, Description: "A week of steady practice", UnlockAchievement: AchStreak7},
	{Key: "eternal_flame", Name: "Eternal Flame", Category: "accessory", Rarity: models.RarityEpic, Description: "Thirty days without missing a beat", UnlockAchievement: AchStreak30},
}

// Artifacts returns the full artifact catalog in display order
func Artifacts() []models.Artifact {
	out := make([]models.Artifact, len(artifacts))
	copy(out, artifacts)
	return out
}

// ArtifactByKey looks up a catalog entry
func ArtifactByKey(key string) (models.Artifact, bool) {
	for _, a := range artifacts {
		if a.Key == key {
			return a, true
		}
	}
	return models.Artifact{}, false
}

// ArtifactForAchievement returns the artifact granted by an achievement
// unlock, if any.
func ArtifactForAchievement(achievementKey string) (models.Artifact, bool) {
	for _, a := range artifacts {
		if a.UnlockAchievement == achievementKey {
			return a, true
		}
	}
	return models.Artifact{}, false
}
