package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCharacterLimit(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		{name: "minimum boundary", limit: 100, wantErr: false},
		{name: "maximum boundary", limit: 5000, wantErr: false},
		{name: "default value", limit: 900, wantErr: false},
		{name: "below minimum", limit: 99, wantErr: true},
		{name: "above maximum", limit: 5001, wantErr: true},
		{name: "zero", limit: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCharacterLimit(tt.limit)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromEnv_DefaultsToExtractive(t *testing.T) {
	t.Setenv("SUMMARIZER_TYPE", "")

	s := FromEnv()
	assert.IsType(t, &Extractive{}, s)
}

func TestFromEnv_Noop(t *testing.T) {
	t.Setenv("SUMMARIZER_TYPE", "noop")

	s := FromEnv()
	assert.IsType(t, &NoOp{}, s)
}

func TestFromEnv_UnknownFallsBack(t *testing.T) {
	t.Setenv("SUMMARIZER_TYPE", "bogus")

	s := FromEnv()
	assert.IsType(t, &Extractive{}, s)
}

func TestFromEnv_ClaudeWithoutKeyFallsBack(t *testing.T) {
	t.Setenv("SUMMARIZER_TYPE", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "")

	s := FromEnv()
	assert.IsType(t, &Extractive{}, s)
}

func TestLoadOpenAIConfig_InvalidLimit(t *testing.T) {
	t.Setenv("SUMMARIZER_CHAR_LIMIT", "50")

	_, err := LoadOpenAIConfig()
	assert.Error(t, err)
}

func TestLoadClaudeConfig_FallsBackOnInvalidLimit(t *testing.T) {
	t.Setenv("SUMMARIZER_CHAR_LIMIT", "not-a-number")

	config := LoadClaudeConfig()
	assert.Equal(t, 900, config.CharacterLimit)
}
