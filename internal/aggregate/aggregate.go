package aggregate

import (
	"sort"
	"strings"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Options control how note items are folded into a note set.
type Options struct {
	// MinRelevance drops items scoring below it. Zero keeps everything.
	MinRelevance int
}

// Build folds scored note items into a grouped, ranked note set. Items below
// the relevance floor are dropped first; duplicates (same normalized title)
// keep the first-seen item; every group is sorted by relevance descending
// with encounter order preserved on ties.
func Build(items []model.NoteItem, opts Options) model.NoteSet {
	set := model.EmptyNoteSet()
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if item.Relevance < opts.MinRelevance {
			continue
		}

		key := normalizeTitle(item.Title)
		if seen[key] {
			continue
		}
		seen[key] = true

		category := item.Category
		if !model.IsValidCategory(category) {
			category = model.CategoryGeneral
			item.Category = category
		}
		set.Grouped[category] = append(set.Grouped[category], item)
		set.TotalItems++
	}

	for _, category := range model.Categories {
		group, ok := set.Grouped[category]
		if !ok {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Relevance > group[j].Relevance
		})
		set.Categories = append(set.Categories, category)
	}

	return set
}

// normalizeTitle derives the dedup key: trimmed, lowercased, capped at the
// title length bound. Near-identical headlines from adjacent pages collapse
// to one entry.
func normalizeTitle(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	runes := []rune(key)
	if len(runes) > model.MaxTitleLen {
		key = string(runes[:model.MaxTitleLen])
	}
	return key
}
