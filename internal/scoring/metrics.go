package scoring

import (
	"strings"

	"github.com/speakbright/backend/internal/models"
)

// fillerWords are tokens counted as fillers in transcript metrics
var fillerWords = map[string]struct{}{
	"um":        {},
	"uh":        {},
	"er":        {},
	"ah":        {},
	"hmm":       {},
	"like":      {},
	"actually":  {},
	"basically": {},
	"literally": {},
}

// TranscriptMetrics computes delivery metrics from a transcript and the
// recording duration in seconds. A zero duration yields zero words per
// minute rather than a division error.
func TranscriptMetrics(transcript string, durationSeconds float64) models.TranscriptMetrics {
	words := strings.Fields(transcript)

	fillers := 0
	for _, w := range words {
		token := strings.ToLower(strings.Trim(w, ".,!?;:\"'()"))
		if _, ok := fillerWords[token]; ok {
			fillers++
		}
	}

	var wpm float64
	if durationSeconds > 0 {
		wpm = float64(len(words)) / (durationSeconds / 60.0)
	}

	return models.TranscriptMetrics{
		WordCount:       len(words),
		WordsPerMinute:  wpm,
		FillerWordCount: fillers,
	}
}
