package chat

import (
	"errors"
	"strings"
	"unicode"

	"github.com/earthyai/chat-backend/internal/llm"
	"github.com/earthyai/chat-backend/internal/model"
)

// ErrInvalidInput is returned when the new user input is empty after
// trimming. It is the sole input-validation gate of the chat pipeline.
var ErrInvalidInput = errors.New("chat: input is empty")

// Fixed client-facing strings. Raw provider errors never reach the client.
const (
	// InvalidInputReply accompanies a 400 on empty input.
	InvalidInputReply = "Invalid input"
	// FallbackReply replaces an empty or unusable provider reply.
	FallbackReply = "Can you clarify?"
	// ApologyReply replaces the reply when the provider is unreachable.
	ApologyReply = "Sorry, something went wrong on our end. Please try again in a moment."
)

// LeadGate decides when the assistant should steer toward contact capture.
// The decision is made here, in code, and passed to the model as a
// structured eligibility line; the model is never asked to count turns.
type LeadGate struct {
	// MinUserTurns is the user-turn count (including the new input) at
	// which capture becomes eligible regardless of content.
	MinUserTurns int
	// IntentKeywords make capture eligible immediately when one appears
	// in the new input.
	IntentKeywords []string
}

// DefaultIntentKeywords cover pricing and contact intent.
var DefaultIntentKeywords = []string{
	"price", "pricing", "cost", "charge", "quote", "rate",
	"book", "schedule", "appointment", "demo", "call me", "contact",
}

// Eligible reports whether the lead gate is open for this request.
func (g LeadGate) Eligible(history []model.Turn, input string) bool {
	userTurns := 1 // the new input
	for _, t := range history {
		if t.Author == model.SpeakerUser {
			userTurns++
		}
	}
	if g.MinUserTurns > 0 && userTurns >= g.MinUserTurns {
		return true
	}

	lower := strings.ToLower(input)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		words[w] = true
	}

	for _, kw := range g.IntentKeywords {
		// Phrases match as substrings; single words must match whole so
		// "rate" does not fire on "corporate".
		if strings.Contains(kw, " ") {
			if strings.Contains(lower, kw) {
				return true
			}
			continue
		}
		if words[kw] {
			return true
		}
	}
	return false
}

// Policy is the immutable, process-wide prompt policy: persona, disclosure
// rules, and the lead-capture gate. Loaded once at startup.
type Policy struct {
	Persona           string
	PricingDisclosure string
	LeadGate          LeadGate
}

// Directive renders the single system turn that heads every outbound
// message sequence.
func (p Policy) Directive(leadEligible bool) string {
	var b strings.Builder
	b.WriteString(p.Persona)
	b.WriteString("\nWhen asked about pricing, say: ")
	b.WriteString(p.PricingDisclosure)
	if leadEligible {
		b.WriteString("\nLead capture: eligible. Politely ask for the visitor's business name, website, and email before closing your reply, unless they already provided them.")
	} else {
		b.WriteString("\nLead capture: not eligible. Do not ask for contact details yet.")
	}
	return b.String()
}

// Assemble builds the outbound message sequence: exactly one policy
// directive, the normalized history in original order, then one user turn
// holding the trimmed input. Reports whether the lead gate was open.
func Assemble(policy Policy, history []model.Turn, input string) ([]llm.ChatMessage, bool, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false, ErrInvalidInput
	}

	eligible := policy.LeadGate.Eligible(history, trimmed)

	msgs := make([]llm.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, llm.ChatMessage{
		Role:    llm.RoleSystem,
		Content: policy.Directive(eligible),
	})
	for _, t := range history {
		role := llm.RoleAssistant
		if t.Author == model.SpeakerUser {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.ChatMessage{Role: role, Content: t.Text})
	}
	msgs = append(msgs, llm.ChatMessage{Role: llm.RoleUser, Content: trimmed})

	return msgs, eligible, nil
}
