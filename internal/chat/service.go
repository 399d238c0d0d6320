package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/earthyai/chat-backend/internal/llm"
	"github.com/earthyai/chat-backend/internal/model"
	"github.com/earthyai/chat-backend/pkg/logger"
	"github.com/earthyai/chat-backend/pkg/metrics"
)

// CompletionParams are the fixed generation parameters for every request,
// drawn from process configuration.
type CompletionParams struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Service runs the conversational loop for a single request: assemble the
// prompt, call the completion provider once, normalize the reply, and
// produce the updated history. It holds no per-request state.
type Service struct {
	policy Policy
	client llm.Client
	params CompletionParams
	logger *logger.Logger
}

// NewService creates a new chat service. The llm client may be nil when no
// provider credential is configured; every request then gets the apology.
func NewService(policy Policy, client llm.Client, params CompletionParams, log *logger.Logger) *Service {
	return &Service{
		policy: policy,
		client: client,
		params: params,
		logger: log,
	}
}

// Result is the outcome of one chat request.
type Result struct {
	Reply   string
	History []model.Turn
	// Fallback is set when the provider yielded nothing usable and the
	// clarification fallback was substituted.
	Fallback bool
	// LeadEligible is set when the lead gate was open for this request.
	LeadEligible bool
}

// ErrProviderUnavailable is returned when no completion client is configured
// or the provider cannot be reached. The handler maps it to 502.
var ErrProviderUnavailable = errors.New("chat: completion provider unavailable")

// Respond handles one user input against the given normalized history.
// On success the returned history is the input history plus exactly one
// assistant turn; the input slice is never mutated. ErrInvalidInput and
// ErrProviderUnavailable are the only error classes callers see.
func (s *Service) Respond(ctx context.Context, history []model.Turn, input string) (*Result, error) {
	msgs, eligible, err := Assemble(s.policy, history, input)
	if err != nil {
		return nil, err
	}
	if eligible {
		metrics.LeadCaptureEligibleTotal.Inc()
	}

	if s.client == nil {
		return nil, ErrProviderUnavailable
	}

	cctx, cancel := context.WithTimeout(ctx, s.params.Timeout)
	defer cancel()

	resp, err := s.client.Complete(cctx, &llm.CompletionRequest{
		Model:       s.params.Model,
		Messages:    msgs,
		MaxTokens:   s.params.MaxTokens,
		Temperature: s.params.Temperature,
	})
	if err != nil {
		if errors.Is(err, llm.ErrEmptyCompletion) {
			// A successful but unusable response is still a reply to the
			// caller, just the fixed clarification.
			metrics.ReplyFallbacksTotal.Inc()
			metrics.RecordCompletion(s.client.Name(), s.params.Model, "empty", 0, 0, 0)
			return &Result{
				Reply:        FallbackReply,
				History:      appendAssistant(history, FallbackReply),
				Fallback:     true,
				LeadEligible: eligible,
			}, nil
		}

		// Full detail stays server-side; the client gets the apology.
		s.logger.Error("completion call failed",
			zap.String("provider", s.client.Name()),
			zap.String("model", s.params.Model),
			zap.Error(err),
		)
		metrics.RecordCompletion(s.client.Name(), s.params.Model, "error", 0, 0, 0)
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	metrics.RecordCompletion(s.client.Name(), resp.Model, "success",
		float64(resp.LatencyMs)/1000.0, resp.TokensIn, resp.TokensOut)

	reply := strings.TrimSpace(resp.Content)
	fallback := false
	if reply == "" {
		metrics.ReplyFallbacksTotal.Inc()
		reply = FallbackReply
		fallback = true
	}

	return &Result{
		Reply:        reply,
		History:      appendAssistant(history, reply),
		Fallback:     fallback,
		LeadEligible: eligible,
	}, nil
}

// appendAssistant returns a fresh slice; the caller-supplied history is
// owned by the client and must not be mutated in place.
func appendAssistant(history []model.Turn, reply string) []model.Turn {
	out := make([]model.Turn, 0, len(history)+1)
	out = append(out, history...)
	return append(out, model.Turn{Author: model.SpeakerAssistant, Text: reply})
}
