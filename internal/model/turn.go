// Package model defines data structures for the chat backend.
package model

import "encoding/json"

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "ai"
)

// Turn is one message in a conversation, tagged with its speaker.
// The wire field is "author" to match the widget contract.
type Turn struct {
	Author Speaker `json:"author"`
	Text   string  `json:"text"`
}

// ChatRequest is the body of POST /chat. History is kept raw so that
// malformed client state can be normalized leniently instead of failing
// the whole request at decode time.
type ChatRequest struct {
	Input   string          `json:"input"`
	History json.RawMessage `json:"history"`
}

// ChatResponse is the body returned by POST /chat. On success the history
// is the normalized client history plus exactly one assistant turn; error
// responses echo the normalized history unchanged.
type ChatResponse struct {
	Reply   string `json:"reply"`
	History []Turn `json:"history"`
}
