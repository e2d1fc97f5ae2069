// Package scoring implements the deterministic scoring rules that turn
// AI-judged sub-scores into a weighted overall score and a pass/fail
// decision. The package is pure: it performs no I/O and depends only on
// the inputs it is given.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/speakbright/backend/internal/models"
)

var (
	// ErrMissingScoreComponent indicates a required sub-score was not
	// supplied and could not be derived. The caller must treat scoring
	// as failed rather than substituting a default.
	ErrMissingScoreComponent = errors.New("missing score component")

	// ErrInvalidScoreRange indicates a sub-score outside [0,100]. The
	// engine recovers by clamping; the sentinel lets callers detect and
	// log the condition.
	ErrInvalidScoreRange = errors.New("score outside valid range")
)

// Input holds the raw sub-scores received from the AI judgment provider
// for one submission. Absent scores are nil, never zero.
type Input struct {
	// Level is the 1-based lesson level, which selects weights and the
	// pass threshold.
	Level int
	// ContentScore judges task fulfillment and delivery. When absent it
	// is derived from FocusAreaScores if those are present.
	ContentScore    *int
	GrammarScore    *int
	SentenceScore   *int
	VocabularyScore *int
	// FocusAreaScores maps feedback focus-area names to scores.
	FocusAreaScores map[string]int
}

// Breakdown is the result of scoring one submission
type Breakdown struct {
	ContentScore     int
	GrammarScore     int
	SentenceScore    int
	VocabularyScore  int
	LinguisticScore  int
	OverallScore     int
	Passed           bool
	Threshold        int
	ContentWeight    float64
	LinguisticWeight float64
	// ClampedComponents names sub-scores that were outside [0,100] and
	// were clamped. The caller should log these as warnings.
	ClampedComponents []string
}

// Linguistic sub-score weights
const (
	grammarWeight    = 0.30
	sentenceWeight   = 0.35
	vocabularyWeight = 0.35
)

// Engine computes weighted scores and pass/fail decisions
type Engine struct {
	// fallbackScore, when non-nil, substitutes missing linguistic
	// sub-scores instead of failing. Off by default.
	fallbackScore *int
}

// NewEngine creates a new scoring engine. fallbackScore may be nil to
// require all linguistic sub-scores.
func NewEngine(fallbackScore *int) *Engine {
	return &Engine{fallbackScore: fallbackScore}
}

// ContentWeight returns the content weight for a lesson level
func ContentWeight(level int) float64 {
	switch {
	case level <= 10:
		return 0.70
	case level <= 30:
		return 0.60
	default:
		return 0.50
	}
}

// PassThreshold returns the minimum overall score to pass at a lesson level
func PassThreshold(level int) int {
	switch {
	case level <= 10:
		return 60
	case level <= 30:
		return 65
	default:
		return 70
	}
}

// Score computes the overall score and pass/fail decision for one
// submission. It returns ErrMissingScoreComponent when a required
// sub-score is absent and no fallback is configured.
func (e *Engine) Score(in Input) (*Breakdown, error) {
	b := &Breakdown{
		Threshold:        PassThreshold(in.Level),
		ContentWeight:    ContentWeight(in.Level),
		LinguisticWeight: 1 - ContentWeight(in.Level),
	}

	content, err := e.contentScore(in, b)
	if err != nil {
		return nil, err
	}

	grammar, err := e.subScore("grammar_score", in.GrammarScore, b)
	if err != nil {
		return nil, err
	}
	sentence, err := e.subScore("sentence_score", in.SentenceScore, b)
	if err != nil {
		return nil, err
	}
	vocabulary, err := e.subScore("vocabulary_score", in.VocabularyScore, b)
	if err != nil {
		return nil, err
	}

	b.ContentScore = content
	b.GrammarScore = grammar
	b.SentenceScore = sentence
	b.VocabularyScore = vocabulary
	b.LinguisticScore = roundHalfUp(float64(grammar)*grammarWeight +
		float64(sentence)*sentenceWeight +
		float64(vocabulary)*vocabularyWeight)
	b.OverallScore = roundHalfUp(float64(b.ContentScore)*b.ContentWeight +
		float64(b.LinguisticScore)*b.LinguisticWeight)
	b.Passed = b.OverallScore >= b.Threshold

	return b, nil
}

// contentScore resolves the content score, deriving it from focus-area
// scores when absent
func (e *Engine) contentScore(in Input, b *Breakdown) (int, error) {
	if in.ContentScore != nil {
		return clamp("content_score", *in.ContentScore, b), nil
	}

	if len(in.FocusAreaScores) > 0 {
		// Arithmetic mean over the focus-area mapping. Iterate in sorted
		// key order so clamp warnings are deterministic.
		keys := make([]string, 0, len(in.FocusAreaScores))
		for k := range in.FocusAreaScores {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sum := 0
		for _, k := range keys {
			sum += clamp("focus_area:"+k, in.FocusAreaScores[k], b)
		}
		return roundHalfUp(float64(sum) / float64(len(keys))), nil
	}

	return 0, fmt.Errorf("%w: content_score", ErrMissingScoreComponent)
}

// subScore resolves one linguistic sub-score, applying the configured
// fallback when the score is absent
func (e *Engine) subScore(name string, score *int, b *Breakdown) (int, error) {
	if score == nil {
		if e.fallbackScore != nil {
			return *e.fallbackScore, nil
		}
		return 0, fmt.Errorf("%w: %s", ErrMissingScoreComponent, name)
	}
	return clamp(name, *score, b), nil
}

// clamp forces a score into [0,100] and records the component name on
// the breakdown when clamping was needed
func clamp(name string, score int, b *Breakdown) int {
	if score < 0 {
		b.ClampedComponents = append(b.ClampedComponents, name)
		return 0
	}
	if score > 100 {
		b.ClampedComponents = append(b.ClampedComponents, name)
		return 100
	}
	return score
}

// roundHalfUp rounds to the nearest integer with halves rounding up.
// Pinned convention: 88.5 rounds to 89. Scores are never negative, so
// math.Round (half away from zero) implements half-up here.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

// Feedback assembles the session feedback structure from a breakdown and
// the free-text judgments supplied by the AI provider
func Feedback(b *Breakdown, in Input, strengths, improvements []string, analysis models.LinguisticAnalysis, metrics models.TranscriptMetrics) models.Feedback {
	return models.Feedback{
		ContentScore:       b.ContentScore,
		LinguisticScore:    b.LinguisticScore,
		OverallScore:       b.OverallScore,
		Passed:             b.Passed,
		Strengths:          strengths,
		Improvements:       improvements,
		FocusAreaScores:    in.FocusAreaScores,
		LinguisticAnalysis: analysis,
		TranscriptMetrics:  metrics,
	}
}
