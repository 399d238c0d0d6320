package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoad_Defaults verifies the defaults used when the environment is bare.
func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "OPENAI_MODEL", "RESEND_API_KEY", "LEAD_TO_EMAIL", "TRACING_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gpt-4.1-nano", cfg.CompletionModel)
	assert.Equal(t, 150, cfg.CompletionMaxTokens)
	assert.InDelta(t, 0.6, cfg.CompletionTemperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
	assert.Equal(t, 3, cfg.LeadMinUserTurns)
	assert.False(t, cfg.LeadMailConfigured())
	assert.False(t, cfg.TracingEnabled)
}

// TestLoad_Overrides verifies environment values win over defaults.
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("COMPLETION_MAX_TOKENS", "256")
	t.Setenv("COMPLETION_TEMPERATURE", "0.2")
	t.Setenv("LEAD_MIN_USER_TURNS", "5")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("LEAD_TO_EMAIL", "leads@example.com")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "gpt-4o-mini", cfg.CompletionModel)
	assert.Equal(t, 256, cfg.CompletionMaxTokens)
	assert.InDelta(t, 0.2, cfg.CompletionTemperature, 1e-9)
	assert.Equal(t, 5, cfg.LeadMinUserTurns)
	assert.True(t, cfg.LeadMailConfigured())
	assert.True(t, cfg.TracingEnabled)
}

// TestLoad_BadValuesFallBack verifies malformed values keep defaults.
func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("COMPLETION_MAX_TOKENS", "many")
	t.Setenv("COMPLETION_TIMEOUT", "soon")
	t.Setenv("TRACING_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 150, cfg.CompletionMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.CompletionTimeout)
	assert.False(t, cfg.TracingEnabled)
}
