package gamification

// Rank is a named progression tier mapped from user level
type Rank struct {
	LevelThreshold int    `json:"levelThreshold"`
	Title          string `json:"title"`
	Icon           string `json:"icon"`
	Description    string `json:"description"`
}

// ranks is the static rank table, ordered by strictly increasing level
// threshold and starting at level 1. Loaded once, never mutated.
var ranks = []Rank{
	{LevelThreshold: 1, Title: "Novice Speaker", Icon: "seedling", Description: "Taking the first steps"},
	{LevelThreshold: 5, Title: "Bronze Speaker", Icon: "bronze-medal", Description: "Building a speaking habit"},
	{LevelThreshold: 10, Title: "Silver Speaker", Icon: "silver-medal", Description: "Speaking with growing confidence"},
	{LevelThreshold: 20, Title: "Gold Speaker", Icon: "gold-medal", Description: "A consistently strong speaker"},
	{LevelThreshold: 35, Title: "Platinum Speaker", Icon: "trophy", Description: "Polished and persuasive"},
	{LevelThreshold: 50, Title: "Diamond Speaker", Icon: "diamond", Description: "Mastery of the spoken word"},
}

// RankForLevel returns the rank with the greatest threshold at or below
// the given level. Levels below the first threshold map to the first rank.
func RankForLevel(level int) Rank {
	result := ranks[0]
	for _, r := range ranks {
		if r.LevelThreshold > level {
			break
		}
		result = r
	}
	return result
}

// NextRank returns the rank strictly above the current one, or nil when
// the user already holds the maximum rank
func NextRank(level int) *Rank {
	current := RankForLevel(level)
	for i := range ranks {
		if ranks[i].LevelThreshold > current.LevelThreshold {
			next := ranks[i]
			return &next
		}
	}
	return nil
}

// Ranks returns a copy of the rank table
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}
