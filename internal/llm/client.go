// Package llm provides completion-provider client interfaces and implementations.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider responds successfully
// but yields no usable text. Shape mismatches in the provider response
// map here rather than panicking.
var ErrEmptyCompletion = errors.New("llm: provider returned no usable text")

// ChatMessage is one message in the outbound sequence.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest carries the assembled message sequence plus the fixed
// generation parameters from process configuration.
type CompletionRequest struct {
	Model       string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is the provider's reply plus call metadata.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for completion providers. Implementations are
// constructed once at startup and safe for concurrent use.
type Client interface {
	// Complete sends a completion request and returns the response.
	// Transport errors and non-success statuses surface as errors;
	// a well-formed response with no text is ErrEmptyCompletion.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string
}
