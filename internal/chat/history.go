// Package chat implements the conversation orchestration and prompt-policy
// engine: history normalization, prompt assembly, reply normalization, and
// conversation state updates.
package chat

import (
	"encoding/json"
	"strings"

	"github.com/earthyai/chat-backend/internal/model"
)

// NormalizeHistory converts client-supplied history into a canonical turn
// sequence. Anything that does not decode as an array yields an empty
// conversation; the request itself never fails here. Elements without an
// author tag or with empty text are dropped so malformed client state
// cannot corrupt the outbound prompt.
func NormalizeHistory(raw json.RawMessage) []model.Turn {
	if len(raw) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}

	out := make([]model.Turn, 0, len(elems))
	for _, elem := range elems {
		var t struct {
			Author string `json:"author"`
			Text   string `json:"text"`
		}
		if err := json.Unmarshal(elem, &t); err != nil {
			continue
		}

		text := strings.TrimSpace(t.Text)
		if t.Author == "" || text == "" {
			continue
		}

		// Binary mapping: only an explicit "user" tag counts as the user.
		// Ambiguous tags become assistant turns, which is the safe default
		// for the provider.
		speaker := model.SpeakerAssistant
		if t.Author == string(model.SpeakerUser) {
			speaker = model.SpeakerUser
		}

		out = append(out, model.Turn{Author: speaker, Text: text})
	}

	return out
}
