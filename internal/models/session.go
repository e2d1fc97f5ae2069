package models

import "time"

// Session represents one practice attempt. Sessions are append-only:
// created once per submission and never mutated afterwards. The session
// log is the source of truth for streak and history computation.
type Session struct {
	ID           string     `json:"id"`
	UserID       int        `json:"userId"`
	Category     string     `json:"category"`
	Module       int        `json:"module"`
	Level        int        `json:"level"`
	Transcript   string     `json:"transcript"`
	ExampleText  string     `json:"exampleText,omitempty"`
	Feedback     Feedback   `json:"feedback"`
	OverallScore int        `json:"overallScore"`
	Completed    bool       `json:"completed"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Feedback holds the structured scoring feedback embedded in a session
type Feedback struct {
	ContentScore       int                `json:"contentScore"`
	LinguisticScore    int                `json:"linguisticScore"`
	OverallScore       int                `json:"overallScore"`
	Passed             bool               `json:"passed"`
	Strengths          []string           `json:"strengths"`
	Improvements       []string           `json:"improvements"`
	FocusAreaScores    map[string]int     `json:"focusAreaScores,omitempty"`
	LinguisticAnalysis LinguisticAnalysis `json:"linguisticAnalysis"`
	TranscriptMetrics  TranscriptMetrics  `json:"transcriptMetrics"`
}

// LinguisticAnalysis breaks the linguistic score into its sub-areas
type LinguisticAnalysis struct {
	Grammar           LinguisticArea `json:"grammar"`
	SentenceFormation LinguisticArea `json:"sentenceFormation"`
	Vocabulary        LinguisticArea `json:"vocabulary"`
}

// LinguisticArea is a single linguistic sub-area with its score and suggestions
type LinguisticArea struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// TranscriptMetrics holds basic delivery metrics computed from the transcript
type TranscriptMetrics struct {
	WordCount       int     `json:"wordCount"`
	WordsPerMinute  float64 `json:"wordsPerMinute"`
	FillerWordCount int     `json:"fillerWordCount"`
}

// SubmitRecordingRequest represents a request to submit a practice recording transcript
type SubmitRecordingRequest struct {
	Transcript      string  `json:"transcript"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// SubmissionResponse is returned after a recording has been scored and recorded
type SubmissionResponse struct {
	SessionID    string              `json:"sessionId"`
	Feedback     Feedback            `json:"feedback"`
	Gamification GamificationOutcome `json:"gamification"`
}

// GamificationOutcome summarizes the gamification side effects of a submission
type GamificationOutcome struct {
	XPEarned            int               `json:"xpEarned"`
	TotalXP             int               `json:"totalXp"`
	Level               int               `json:"level"`
	LeveledUp           bool              `json:"leveledUp"`
	RankedUp            bool              `json:"rankedUp"`
	RankTitle           string            `json:"rankTitle"`
	UnlockedAchievement *UserAchievement  `json:"unlockedAchievement,omitempty"`
	CompletedQuests     []QuestCompletion `json:"completedQuests,omitempty"`
}
