package quests

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speakbright/backend/internal/models"
)

// Matches evaluates an incomplete quest's target against a just-completed
// session event. Quests whose conditions span more than one session
// (practice counts, streak maintenance, exploration, mastery) are judged
// against the caller-supplied day aggregates, never the single event.
func Matches(quest models.DailyQuest, event models.SessionEvent, agg models.QuestDayAggregates) bool {
	target := quest.Target

	switch quest.Type {
	case models.QuestTypePerformance:
		return target.MinScore != nil && event.Score >= *target.MinScore

	case models.QuestTypeTiming:
		return matchesTiming(target, event)

	case models.QuestTypePractice:
		return target.Sessions != nil && agg.SessionsToday >= *target.Sessions

	case models.QuestTypeStreak:
		// Any completed session today starts or maintains the streak
		return agg.SessionsToday >= 1

	case models.QuestTypeExploration:
		return target.Categories != nil && agg.DistinctCategories >= *target.Categories

	case models.QuestTypeChallenge:
		return target.Category != "" && event.Category == target.Category

	case models.QuestTypeMastery:
		return target.Sessions != nil && target.MinScore != nil &&
			agg.SessionsWithMinScore >= *target.Sessions

	default:
		return false
	}
}

// matchesTiming compares the event's local time of day against the
// target hour. "Before" is strict; "after" is inclusive.
func matchesTiming(target models.QuestTarget, event models.SessionEvent) bool {
	eventMinutes := event.Timestamp.Hour()*60 + event.Timestamp.Minute()

	if target.Before != "" {
		limit, err := parseHourMinute(target.Before)
		if err != nil {
			return false
		}
		return eventMinutes < limit
	}

	if target.After != "" {
		limit, err := parseHourMinute(target.After)
		if err != nil {
			return false
		}
		return eventMinutes >= limit
	}

	return false
}

// parseHourMinute parses an "HH:MM" hour-of-day string into minutes
func parseHourMinute(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid hour-of-day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return hour*60 + minute, nil
}
