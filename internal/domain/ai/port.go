package ai

import "context"

// CompletionRequest is one shaped generation request.
type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completion is the raw text of a successful attempt.
type Completion struct {
	Text      string
	Attempt   int
	ElapsedMS int64
}

// Client submits a prompt and returns generated text. Implementations own
// their retry policy; callers see either a completion or a terminal error.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
