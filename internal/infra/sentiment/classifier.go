// Package sentiment implements lexicon-based polarity classification for
// article text. It scores words against an AFINN-style polarity list and
// maps the integer score to a three-way label.
package sentiment

import (
	"context"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"newspulse/internal/domain/entity"
)

// Label mapping thresholds. A cumulative score strictly above the positive
// threshold maps to POSITIVE, strictly below the negative threshold to
// NEGATIVE, everything in between to NEUTRAL.
const (
	positiveThreshold = 2
	negativeThreshold = -2
)

// ErrMalformedInput indicates that the input text was not valid UTF-8 and
// could not be scored. Callers decide the fallback label; the engine
// defaults to NEUTRAL and counts the failure.
var ErrMalformedInput = errors.New("sentiment: malformed input text")

// Classifier scores free text against the polarity lexicon.
// The zero value is ready to use; Classifier is safe for concurrent use.
type Classifier struct{}

// NewClassifier creates a new lexicon Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify maps the text's polarity score to a sentiment label.
// Empty or whitespace-only text classifies as NEUTRAL.
func (c *Classifier) Classify(_ context.Context, text string) (entity.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return entity.SentimentNeutral, nil
	}
	if !utf8.ValidString(text) {
		return entity.SentimentNeutral, ErrMalformedInput
	}

	score := Score(text)
	switch {
	case score > positiveThreshold:
		return entity.SentimentPositive, nil
	case score < negativeThreshold:
		return entity.SentimentNegative, nil
	default:
		return entity.SentimentNeutral, nil
	}
}

// Score returns the cumulative integer polarity score of the text.
func Score(text string) int {
	score := 0
	for _, token := range tokenize(text) {
		score += lexicon[token]
	}
	return score
}

// tokenize lowercases the text and splits it on anything that is not a
// letter, digit or apostrophe.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
