package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/autodoc-cli/autodoc/internal/faults"
	"github.com/autodoc-cli/autodoc/internal/prompt"
)

// feedbackAck is the assistant turn paired with each feedback entry when the
// critique trail is replayed, so the conversation stays strictly alternating.
const feedbackAck = "Understood. I will regenerate the document with that feedback applied."

// OpenAIClient implements Generator for any OpenAI-compatible chat API.
type OpenAIClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// Option configures an OpenAIClient.
type Option func(*OpenAIClient)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *OpenAIClient) { c.baseURL = url }
}

// WithModel sets the model used for generation.
func WithModel(model string) Option {
	return func(c *OpenAIClient) { c.model = model }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OpenAIClient) { c.client = hc }
}

// NewOpenAI creates a new OpenAI-compatible generation client.
func NewOpenAI(apiKey string, opts ...Option) *OpenAIClient {
	c := &OpenAIClient{
		client:  &http.Client{Timeout: 120 * time.Second},
		baseURL: "https://api.openai.com/v1",
		apiKey:  apiKey,
		model:   "gpt-4o-mini",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends the assembled request as a chat completion. The feedback
// history is replayed as alternating user/assistant turns before the task
// message, so later drafts are produced from the full critique trail.
func (c *OpenAIClient) Generate(ctx context.Context, req *prompt.Request) (string, error) {
	messages := []chatMessage{{Role: "system", Content: req.System}}
	for _, fb := range req.FeedbackHistory {
		messages = append(messages,
			chatMessage{Role: "user", Content: "Revision feedback on the previous draft: " + fb},
			chatMessage{Role: "assistant", Content: feedbackAck},
		)
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	payload, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("genai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("genai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &faults.TransientError{Op: "genai: http request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &faults.TransientError{Op: "genai: read response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("genai: %w", ErrQuota)
	case resp.StatusCode >= 500:
		return "", &faults.TransientError{
			Op:  "genai: chat completion",
			Err: fmt.Errorf("api error (status %d)", resp.StatusCode),
		}
	default:
		return "", fmt.Errorf("genai: api error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("genai: unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("genai: response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// --- wire format ---

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
