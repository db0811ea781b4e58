// Package llm generates natural-language match narratives from match
// summaries. Providers are pluggable; narration is always an optional layer
// on top of the data pipeline and never feeds back into it.
package llm

import (
	"context"

	"github.com/bjwhitworth/cricket-data/internal/model"
)

// Provider is a narrative text generator.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Narrate generates a narrative for one match summary.
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks that the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest is the input for narrative generation.
type NarrateRequest struct {
	// Prompt is the full prompt. If empty, providers build the default
	// prompt from Summary via BuildMatchPrompt.
	Prompt string

	// System overrides the default narrator system prompt. Used by the
	// seed enrichment flow, which wants structured JSON rather than prose.
	System string

	// Summary is the aggregated match to narrate.
	Summary model.MatchSummary

	// Model overrides the configured model name.
	Model string

	// MaxTokens bounds the response length.
	MaxTokens int
}

// NarrateResponse is the generated narrative.
type NarrateResponse struct {
	Narrative  string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (e.g. a local Ollama).
	BaseURL string

	// Timeout for one generation call, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Temperature for generation.
	Temperature float32
}

// DefaultConfig returns sensible defaults with narration disabled.
func DefaultConfig() Config {
	return Config{
		Timeout:     60,
		MaxTokens:   1500,
		Temperature: 0.7,
	}
}
