// Package completion talks to an OpenAI-compatible chat-completions endpoint.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ErrNoChoices is returned when a successful reply carries no message.
var ErrNoChoices = errors.New("completion: response has no choices")

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn on the wire.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completions request body.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// NewRequest pairs the system instruction with the composed query.
func NewRequest(model, system, query string) Request {
	return Request{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: query},
		},
	}
}

type response struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Client sends requests to one endpoint with one key.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	log      *slog.Logger
	rejected func(status, body string)
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for service failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRejectHandler is called with the status line and body of every non-2xx
// reply.
func WithRejectHandler(fn func(status, body string)) Option {
	return func(c *Client) { c.rejected = fn }
}

// NewClient creates a client for endpoint.
func NewClient(endpoint, apiKey, model string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		model:    strings.TrimSpace(model),
		http:     http.DefaultClient,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model name sent with each request.
func (c *Client) Model() string {
	return c.model
}

// Complete sends system and query as one exchange and returns the assistant
// reply. A non-2xx status is logged, passed to the reject handler, and yields an empty reply with no error.
func (c *Client) Complete(ctx context.Context, system, query string) (string, error) {
	body, err := json.Marshal(NewRequest(c.model, system, query))
	if err != nil {
		return "", fmt.Errorf("completion: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Debug("sending completion request", "endpoint", c.endpoint, "model", c.model, "bytes", len(body))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion: send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("completion: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("completion service returned an error", "status", resp.Status, "body", string(data))
		if c.rejected != nil {
			c.rejected(resp.Status, string(data))
		}
		return "", nil
	}

	var out response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("completion: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrNoChoices
	}
	c.log.Debug("completion received", "model", out.Model, "bytes", len(out.Choices[0].Message.Content))
	return out.Choices[0].Message.Content, nil
}
