package models

// Lesson represents a speech practice lesson. Lessons are reference data
// created by content authors and identified by (category, module, level).
type Lesson struct {
	ID              int      `json:"id"`
	Category        string   `json:"category"`
	Module          int      `json:"module"`
	Level           int      `json:"level"`
	Title           string   `json:"title"`
	Explanation     string   `json:"explanation"`
	Prompt          string   `json:"prompt"`
	DurationSeconds int      `json:"durationSeconds"`
	FocusAreas      []string `json:"focusAreas"`
}

// LessonRef identifies a lesson by its coordinates
type LessonRef struct {
	Category string `json:"category"`
	Module   int    `json:"module"`
	Level    int    `json:"level"`
}

// LessonListItem represents a lesson in list responses with completion status
type LessonListItem struct {
	Category  string `json:"category"`
	Module    int    `json:"module"`
	Level     int    `json:"level"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	BestScore int    `json:"bestScore"`
}
