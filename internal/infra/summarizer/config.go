package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Summarizer produces a condensed version of an article's text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Config is a common interface for AI summarizer configuration.
// Both OpenAI and Claude implementations should satisfy it so that
// validation behaves the same regardless of provider.
type Config interface {
	// GetCharacterLimit returns the maximum number of characters allowed in a summary.
	GetCharacterLimit() int

	// Validate validates the configuration and returns an error if invalid.
	Validate() error
}

const (
	// minCharLimit is the minimum allowed character limit for summaries.
	minCharLimit = 100

	// maxCharLimit is the maximum allowed character limit for summaries.
	maxCharLimit = 5000
)

// ValidateCharacterLimit validates that the character limit is within the valid range (100-5000).
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}

// FromEnv builds the summarizer selected by the SUMMARIZER_TYPE environment
// variable. Recognized values:
//
//   - "extractive" (default): deterministic sentence-scoring summarizer, no API
//   - "claude": Anthropic Claude API (requires ANTHROPIC_API_KEY)
//   - "openai": OpenAI GPT API (requires OPENAI_API_KEY)
//   - "noop": returns the input truncated, for development
//
// An unrecognized value or a missing API key falls back to extractive,
// keeping the pipeline runnable without external services.
func FromEnv() Summarizer {
	kind := os.Getenv("SUMMARIZER_TYPE")

	switch kind {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, falling back to extractive summarizer")
			break
		}
		return NewClaude(apiKey)

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			slog.Warn("OPENAI_API_KEY not set, falling back to extractive summarizer")
			break
		}
		config, err := LoadOpenAIConfig()
		if err != nil {
			slog.Warn("invalid openai summarizer configuration, falling back to extractive",
				slog.String("error", err.Error()))
			break
		}
		return NewOpenAI(apiKey, config)

	case "noop":
		return NewNoOp()

	case "", "extractive":
		// fall through to default

	default:
		slog.Warn("unknown SUMMARIZER_TYPE, falling back to extractive",
			slog.String("value", kind))
	}

	return NewExtractive(DefaultSentenceCount)
}
