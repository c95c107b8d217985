// Package summarize implements the term-frequency extractive summarizer.
// It is pure and has no external dependency, which makes it the
// guaranteed-available fallback when no LLM provider is configured or a
// provider call fails.
package summarize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/moktagithub005/news-tool/internal/segment"
)

// minWordLen filters low-signal words from the frequency table.
const minWordLen = 4

// Summarizer ranks sentences by term frequency.
type Summarizer struct{}

// NewSummarizer creates a new extractive summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize selects the maxSentences highest-scoring sentences and returns
// them in original order, preserving the source narrative. Inputs with
// fewer sentences than requested are returned unchanged.
func (s *Summarizer) Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}
	sentences := segment.Sentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= maxSentences {
		return strings.TrimSpace(text)
	}

	freq := wordFrequencies(sentences)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sent := range sentences {
		words := tokenize(sent)
		if len(words) == 0 {
			ranked[i] = scored{index: i}
			continue
		}
		var sum float64
		for _, w := range words {
			sum += float64(freq[w])
		}
		// Normalize by sentence length so long sentences do not dominate.
		ranked[i] = scored{index: i, score: sum / float64(len(words))}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	top := ranked[:maxSentences]
	sort.Slice(top, func(a, b int) bool { return top[a].index < top[b].index })

	picked := make([]string, 0, len(top))
	for _, sc := range top {
		picked = append(picked, sentences[sc.index])
	}
	return strings.Join(picked, "\n")
}

func wordFrequencies(sentences []string) map[string]int {
	freq := make(map[string]int)
	for _, sent := range sentences {
		for _, w := range tokenize(sent) {
			freq[w]++
		}
	}
	return freq
}

// tokenize yields case-folded alphabetic runs, dropping words too short to
// carry signal.
func tokenize(s string) []string {
	var (
		words   []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() >= minWordLen {
			words = append(words, current.String())
		}
		current.Reset()
	}
	for _, r := range s {
		if unicode.IsLetter(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return words
}
