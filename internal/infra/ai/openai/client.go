package openai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bagaspn/resumeiq/internal/domain/ai"
)

// Client talks to an OpenAI-compatible chat completion endpoint (Groq in
// production config) with bounded retries.
type Client struct {
	api         *openai.Client
	model       string
	maxRetries  int
	backoffBase time.Duration
}

type Options struct {
	APIKey      string
	BaseURL     string // empty keeps the default OpenAI endpoint
	Model       string
	MaxRetries  int
	BackoffBase time.Duration
}

func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = "llama3-70b-8192"
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	base := opts.BackoffBase
	if base <= 0 {
		base = time.Second
	}
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		maxRetries:  retries,
		backoffBase: base,
	}
}

// Complete performs up to maxRetries attempts with a linear delay between
// them (base * attempt). Upstream quotas here are request-count ceilings, not
// congestion, so modest fixed increments beat aggressive exponential backoff.
// A successful call with empty text is terminal, never retried.
func (c *Client) Complete(ctx context.Context, req domai.CompletionRequest) (*domai.Completion, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		start := time.Now()
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: req.System},
				{Role: openai.ChatMessageRoleUser, Content: req.User},
			},
		})
		if err != nil {
			lastErr = err
			log.Printf("ai attempt=%d/%d failed: %v", attempt, c.maxRetries, err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < c.maxRetries {
				if werr := c.wait(ctx, attempt); werr != nil {
					return nil, werr
				}
			}
			continue
		}

		text := ""
		if len(resp.Choices) > 0 {
			text = resp.Choices[0].Message.Content
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("ai attempt=%d returned empty completion, not retrying", attempt)
			return nil, domai.ErrEmptyCompletion
		}

		logResponseShape(text, attempt)
		return &domai.Completion{
			Text:      text,
			Attempt:   attempt,
			ElapsedMS: time.Since(start).Milliseconds(),
		}, nil
	}

	if isQuota(lastErr) {
		return nil, fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, lastErr)
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", domai.ErrExhausted, c.maxRetries, lastErr)
}

// wait sleeps base*attempt or returns early when the caller gives up.
func (c *Client) wait(ctx context.Context, attempt int) error {
	t := time.NewTimer(c.backoffBase * time.Duration(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isQuota(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429
	}
	return false
}

// logResponseShape records known-bad patterns for diagnosis. The flags never
// alter control flow; the payload extractor handles all of them.
func logResponseShape(text string, attempt int) {
	fenced := strings.Contains(text, "```")
	prose := strings.Contains(text, "Here is") || strings.Contains(text, "Here's")
	braces := strings.Count(text, "{") != strings.Count(text, "}")
	log.Printf("ai completion attempt=%d len=%d fenced=%t intro_prose=%t mismatched_braces=%t",
		attempt, len(text), fenced, prose, braces)
}
