// Package segment splits plain text into sections: either named category
// sections via keyword-weighted sentence classification, or unlabeled
// fixed-size chunks for whole-document LLM runs. The sentence tokenizer here
// is shared infrastructure, also used by the extractive summarizer.
package segment

import (
	"fmt"
	"strings"

	"github.com/moktagithub005/news-tool/internal/model"
)

const (
	// DefaultChunkSize and DefaultChunkOverlap shape the fixed-size
	// chunking strategy.
	DefaultChunkSize    = 3000
	DefaultChunkOverlap = 200

	// minChunkContent drops windows too small to carry a topic.
	minChunkContent = 100
)

// Segmenter assigns sentences to categories.
type Segmenter struct{}

// NewSegmenter creates a new segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Segment tokenizes text into sentences, classifies each sentence into a
// category, and joins the sentences per category in source order. Section
// order in the output is first-category-seen order.
func (s *Segmenter) Segment(text string) []model.Section {
	cleaned := CleanText(text)
	sentences := Sentences(cleaned)

	buckets := make(map[model.Category][]string)
	var order []model.Category
	for _, sent := range sentences {
		cat := ClassifyText(sent)
		if _, seen := buckets[cat]; !seen {
			order = append(order, cat)
		}
		buckets[cat] = append(buckets[cat], sent)
	}

	sections := make([]model.Section, 0, len(order))
	for i, cat := range order {
		sections = append(sections, model.Section{
			Name:  string(cat),
			Label: cat,
			Text:  strings.Join(buckets[cat], "\n"),
			Index: i,
		})
	}
	return sections
}

// Chunk splits text into overlapping fixed-size windows, discarding windows
// below the minimum-content threshold. Windows carry no category label;
// section order is source-window order.
func (s *Segmenter) Chunk(text string, size, overlap int) []model.Section {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}
	step := size - overlap

	runes := []rune(text)
	var sections []model.Section
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		window := strings.TrimSpace(string(runes[i:end]))
		if len(window) >= minChunkContent {
			sections = append(sections, model.Section{
				Name:  fmt.Sprintf("Section %d", len(sections)+1),
				Label: model.CategoryGeneral,
				Text:  window,
				Index: len(sections),
			})
		}
		if end == len(runes) {
			break
		}
	}
	return sections
}

// countOccurrences counts non-overlapping occurrences of sub in s.
func countOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	return strings.Count(s, sub)
}
