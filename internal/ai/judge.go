// Package ai provides the client for the external AI judgment provider.
// The provider is an opaque scoring oracle: it receives a transcript and
// the lesson prompt and returns sub-scores plus free-text feedback. All
// score validation happens downstream in the scoring engine.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/speakbright/backend/internal/config"
	"go.uber.org/zap"
)

// Judgment is the decoded judgment for one transcript. Absent scores are
// nil so the scoring engine can distinguish "missing" from zero instead
// of silently defaulting.
type Judgment struct {
	ContentScore          *int           `json:"content_score"`
	GrammarScore          *int           `json:"grammar_score"`
	SentenceScore         *int           `json:"sentence_score"`
	VocabularyScore       *int           `json:"vocabulary_score"`
	FocusAreaScores       map[string]int `json:"focus_area_scores"`
	Strengths             []string       `json:"strengths"`
	Improvements          []string       `json:"improvements"`
	GrammarSuggestions    []string       `json:"grammar_suggestions"`
	SentenceSuggestions   []string       `json:"sentence_suggestions"`
	VocabularySuggestions []string       `json:"vocabulary_suggestions"`
	ExampleText           string         `json:"example_text"`
}

// Client calls the chat-completions API of the AI provider
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new AI judgment client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// message is a message in the chat conversation
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is a request to the chat-completions API
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is a response from the chat-completions API
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = `You are a speech coach for school students. Judge the ` +
	`student's transcript against the given speaking task. Respond with a JSON ` +
	`object containing integer scores from 0 to 100 for content_score, ` +
	`grammar_score, sentence_score and vocabulary_score, a focus_area_scores ` +
	`object scoring each requested focus area, and string arrays strengths, ` +
	`improvements, grammar_suggestions, sentence_suggestions and ` +
	`vocabulary_suggestions. Include an example_text field with a short model answer.`

// Judge scores a transcript against a lesson prompt
func (c *Client) Judge(ctx context.Context, transcript, prompt string, focusAreas []string) (*Judgment, error) {
	userPrompt := fmt.Sprintf(
		"Speaking task: %s\n\nFocus areas: %v\n\nStudent transcript:\n%s",
		prompt, focusAreas, transcript,
	)

	request := chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.3,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("AI provider error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("AI provider returned no choices")
	}

	var judgment Judgment
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &judgment); err != nil {
		return nil, fmt.Errorf("failed to decode judgment: %w", err)
	}

	return &judgment, nil
}
