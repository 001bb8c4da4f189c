// Package summarizer provides text summarization implementations.
// The default engine is a deterministic extractive summarizer; adapters for
// Claude (Anthropic) and OpenAI APIs are available as configuration-selected
// alternatives with reliability patterns.
package summarizer

import (
	"context"
	"sort"
	"strings"

	"newspulse/internal/utils/text"
)

// DefaultSentenceCount is the number of sentences an extractive summary keeps.
const DefaultSentenceCount = 3

// lengthSaturationWords is the word count at which the length score saturates,
// so run-on sentences are not over-rewarded.
const lengthSaturationWords = 20

// Sentence scoring weights. Position dominates because news leads carry the
// most information; length rewards substantive sentences.
const (
	positionWeight = 0.6
	lengthWeight   = 0.4
)

// Extractive selects and reorders the most salient sentences of a text.
// It is a pure function of its input: identical text and sentence count
// always produce identical output.
type Extractive struct {
	sentenceCount int
}

// NewExtractive creates an extractive summarizer keeping up to sentenceCount
// sentences. Non-positive counts fall back to DefaultSentenceCount.
func NewExtractive(sentenceCount int) *Extractive {
	if sentenceCount <= 0 {
		sentenceCount = DefaultSentenceCount
	}
	return &Extractive{sentenceCount: sentenceCount}
}

// Summarize returns the top-scored sentences of the text in their original
// order. Text with no more sentences than the configured count is returned
// trimmed but otherwise unchanged. Empty or whitespace-only text returns an
// empty string. Never returns a non-nil error; the signature matches the
// Summarizer interface shared with the API-backed engines.
func (e *Extractive) Summarize(_ context.Context, input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}

	sentences := SplitSentences(trimmed)
	if len(sentences) <= e.sentenceCount {
		return trimmed, nil
	}

	type scored struct {
		index int
		score float64
	}
	total := len(sentences)
	ranked := make([]scored, total)
	for i, s := range sentences {
		positionScore := 1 - float64(i)/float64(total)
		lengthScore := float64(text.CountWords(s)) / lengthSaturationWords
		if lengthScore > 1 {
			lengthScore = 1
		}
		ranked[i] = scored{
			index: i,
			score: positionWeight*positionScore + lengthWeight*lengthScore,
		}
	}

	// スコア同点は先頭の文を優先(安定ソート)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	selected := ranked[:e.sentenceCount]

	// 出力は元の語順を維持する
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].index < selected[j].index
	})

	parts := make([]string, len(selected))
	for i, s := range selected {
		parts[i] = sentences[s.index]
	}
	return strings.Join(parts, " "), nil
}

// SplitSentences splits text into sentences on terminal punctuation
// (., ! and ?), keeping the terminator with each sentence. Whitespace
// around sentences is trimmed and empty fragments are dropped.
func SplitSentences(input string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(input)

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if isTerminator(runes[i]) {
			// 連続する終端記号("?!"など)は同じ文に含める
			for i+1 < len(runes) && isTerminator(runes[i+1]) {
				i++
				b.WriteRune(runes[i])
			}
			flush()
		}
	}
	flush() // trailing fragment without a terminator

	return sentences
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?':
		return true
	}
	return false
}
