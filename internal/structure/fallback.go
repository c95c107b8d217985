package structure

import (
	"regexp"
	"strings"

	"github.com/moktagithub005/news-tool/internal/model"
	"github.com/moktagithub005/news-tool/internal/segment"
)

// normalizeCategory maps an arbitrary LLM label to a known category. Unknown
// labels fall back to keyword classification of the article text, and then
// to general.
func normalizeCategory(label, textCtx string) model.Category {
	if label != "" {
		c := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
		if model.IsValidCategory(model.Category(c)) {
			return model.Category(c)
		}
	}
	return segment.ClassifyText(textCtx)
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`),
}

// ExtractDates pulls simple date mentions from text, deduplicated in order
// of first appearance.
func ExtractDates(text string) []string {
	if text == "" {
		return []string{}
	}

	var found []string
	for _, p := range datePatterns {
		found = append(found, p.FindAllString(text, -1)...)
	}

	seen := make(map[string]bool, len(found))
	uniq := []string{}
	for _, d := range found {
		if !seen[d] {
			uniq = append(uniq, d)
			seen[d] = true
		}
	}
	return uniq
}

// seedPrelims builds minimal prelims bullets when the LLM produced none:
// the headline plus cues for heavyweight entities.
func seedPrelims(title, textCtx string) []string {
	seed := []string{}
	if title != "" {
		seed = append(seed, "Headline: "+title)
	}
	lower := strings.ToLower(textCtx)
	if strings.Contains(lower, "rbi") {
		seed = append(seed, "RBI-related update")
	}
	if strings.Contains(lower, "supreme court") {
		seed = append(seed, "Supreme Court judgement/update")
	}
	if len(seed) > 3 {
		seed = seed[:3]
	}
	return seed
}

// mainsTemplates holds category-specific analysis angles used when the LLM
// produced none.
var mainsTemplates = map[model.Category][]string{
	model.CategoryPolity: {
		"Explain implications for governance/public policy.",
		"Discuss potential impact on constitutional provisions.",
	},
	model.CategoryEconomy: {
		"Discuss potential impact on economy and society.",
		"Analyze fiscal/monetary policy implications.",
	},
	model.CategoryInternational: {
		"Analyze impact on India's foreign relations.",
		"Discuss geopolitical implications for the region.",
	},
	model.CategoryEnvironment: {
		"Assess environmental and sustainability implications.",
		"Discuss impact on climate goals and biodiversity.",
	},
	model.CategoryScienceTech: {
		"Discuss technological advancement and applications.",
		"Analyze implications for innovation and development.",
	},
	model.CategorySocial: {
		"Examine social impact and welfare implications.",
		"Discuss effects on equity and inclusiveness.",
	},
	model.CategorySecurity: {
		"Analyze national security implications.",
		"Discuss strategic importance for defense.",
	},
	model.CategoryGeography: {
		"Examine geographical significance and regional impact.",
		"Discuss implications for resource management.",
	},
}

var genericMains = []string{
	"Explain implications for governance/public policy.",
	"Discuss potential impact on economy and society.",
}

// fallbackMains returns category-specific analysis angles.
func fallbackMains(category model.Category) []string {
	if templates, ok := mainsTemplates[category]; ok {
		return append([]string{}, templates...)
	}
	return append([]string{}, genericMains...)
}
