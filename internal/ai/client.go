package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// Completer is the single-turn text-completion contract the pipeline
// components depend on. It keeps the model client swappable in tests.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest describes one model call
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Client calls the Anthropic Messages API
type Client struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option customizes the client
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests)
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout overrides the HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.SetTimeout(d) }
}

func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		client:  resty.New().SetTimeout(2 * time.Minute),
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends one user turn and returns the concatenated text blocks
// of the reply.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := messagesRequest{
		Model:     c.model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages:  []message{{Role: "user", Content: req.Prompt}},
	}

	var resp messagesResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", c.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(body).
		SetResult(&resp).
		SetError(&resp).
		Post(c.baseURL + "/v1/messages")

	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("model API error: %s", resp.Error.Message)
	}
	if httpResp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("model API returned status %d: %s", httpResp.StatusCode(), httpResp.String())
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no content in model response")
	}
	return sb.String(), nil
}
