package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"edemy/internal/models"
	"edemy/internal/qerrors"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-mini"

	systemPrompt = "You are an AI assistant helping instructors create engaging course content. " +
		`Reply with a JSON object with exactly two string fields: "description", a detailed course description, ` +
		`and "summary", a concise one-sentence summary.`
)

// Client generates course copy from a topic and keywords.
type Client interface {
	GenerateCourseDescription(ctx context.Context, topic string, keywords string) (*models.GeneratedDescription, error)
}

// HTTPClient talks to an OpenAI-compatible chat completions endpoint. Requests are not retried.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient. An empty API key leaves the client unconfigured: every call returns
// qerrors.TextGenUnavailableError.
func NewHTTPClient(baseURL string, apiKey string, model string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *HTTPClient) GenerateCourseDescription(ctx context.Context, topic string, keywords string) (*models.GeneratedDescription, error) {
	if c == nil || c.apiKey == "" {
		return nil, qerrors.TextGenUnavailableError
	}
	topic, keywords = strings.TrimSpace(topic), strings.TrimSpace(keywords)
	if topic == "" || keywords == "" {
		return nil, qerrors.InvalidGenerateParams
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Topic: %s\nKeywords: %s", topic, keywords)},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text generation request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("error reading text generation response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("text generation returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("text generation returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("text generation returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("text generation returned no choices")
	}

	var out models.GeneratedDescription
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("text generation returned malformed content: %w", err)
	}
	if out.Description == "" || out.Summary == "" {
		return nil, fmt.Errorf("text generation returned an empty description or summary")
	}
	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
