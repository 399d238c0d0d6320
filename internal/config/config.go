// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Completion provider settings
	OpenAIAPIKey          string
	AnthropicAPIKey       string
	CompletionModel       string
	CompletionMaxTokens   int
	CompletionTemperature float64
	CompletionTimeout     time.Duration

	// Prompt policy settings
	Persona           string
	PricingDisclosure string
	LeadMinUserTurns  int

	// Lead mail settings (optional; absence disables /api/lead)
	ResendAPIKey        string
	LeadToEmail         string
	LeadFromEmail       string
	LeadDispatchTimeout time.Duration

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// DefaultPersona is the assistant's standing behavior contract.
const DefaultPersona = "You are Earthy, a calm and helpful assistant for service businesses. " +
	"Answer in 2-4 sentences. No emojis. Be concrete and never invent prices or guarantees."

// DefaultPricingDisclosure is spoken verbatim when pricing comes up.
const DefaultPricingDisclosure = "Pricing depends on scope; most projects start at a few hundred dollars per month."

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Completion provider
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey:       getEnv("ANTHROPIC_API_KEY", ""),
		CompletionModel:       getEnv("OPENAI_MODEL", "gpt-4.1-nano"),
		CompletionMaxTokens:   getIntEnv("COMPLETION_MAX_TOKENS", 150),
		CompletionTemperature: getFloatEnv("COMPLETION_TEMPERATURE", 0.6),
		CompletionTimeout:     getDurationEnv("COMPLETION_TIMEOUT", 30*time.Second),

		// Prompt policy
		Persona:           getEnv("ASSISTANT_PERSONA", DefaultPersona),
		PricingDisclosure: getEnv("PRICING_DISCLOSURE", DefaultPricingDisclosure),
		LeadMinUserTurns:  getIntEnv("LEAD_MIN_USER_TURNS", 3),

		// Lead mail
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		LeadToEmail:         getEnv("LEAD_TO_EMAIL", ""),
		LeadFromEmail:       getEnv("LEAD_FROM_EMAIL", "leads@earthy.ai"),
		LeadDispatchTimeout: getDurationEnv("LEAD_DISPATCH_TIMEOUT", 10*time.Second),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// LeadMailConfigured reports whether the lead path has everything it needs.
func (c *Config) LeadMailConfigured() bool {
	return c.ResendAPIKey != "" && c.LeadToEmail != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
