package segment

import (
	"strings"

	"github.com/moktagithub005/news-tool/internal/model"
)

// categoryKeywords maps each category to its trigger terms. Matching is
// case-insensitive substring search; a sentence goes to the category with
// the most hits, ties broken by model.Categories order.
var categoryKeywords = map[model.Category][]string{
	model.CategoryPolity: {
		"parliament", "constitution", "supreme court", "high court", "cabinet",
		"lok sabha", "rajya sabha", "bill", "act", "ordinance", "election",
	},
	model.CategoryEconomy: {
		"economy", "gdp", "reserve bank", "rbi", "inflation", "budget",
		"fiscal", "monetary", "repo rate", "tariff", "exports", "imports", "tax",
	},
	model.CategoryInternational: {
		"foreign", "treaty", "bilateral", "united nations", "diplomatic",
		"sanction", "embargo", "international", "g20", "indo-pacific", "fta",
	},
	model.CategoryEnvironment: {
		"environment", "climate", "pollution", "biodiversity", "wildlife",
		"conservation", "forest", "glacier", "sea level", "coastal", "emission",
	},
	model.CategoryScienceTech: {
		"space", "isro", "drdo", "scientist", "research", "technology",
		"artificial intelligence", "satellite", "quantum", "semiconductor", "innovation",
	},
	model.CategorySocial: {
		"education", "health", "welfare", "poverty", "caste", "minority",
		"women", "child", "nutrition", "social",
	},
	model.CategorySecurity: {
		"defence", "army", "navy", "air force", "terror", "naxal", "border",
		"cyber security", "intelligence", "internal security",
	},
	model.CategoryGeography: {
		"river", "mountain", "plateau", "delta", "coast", "soil",
		"agriculture", "monsoon", "earthquake", "flood", "drought", "geography",
	},
	model.CategoryGovernance: {
		"niti aayog", "e-governance", "digital public infrastructure", "sebi",
		"regulator", "scheme", "yojana", "policy implementation",
	},
}

// ClassifyText maps free text to the category whose keyword list scores
// highest, or general when nothing matches. Used both per-sentence by the
// segmenter and as the category-normalization fallback for LLM output.
func ClassifyText(text string) model.Category {
	lower := strings.ToLower(text)
	best := model.CategoryGeneral
	bestScore := 0
	for _, cat := range model.Categories {
		keys, ok := categoryKeywords[cat]
		if !ok {
			continue
		}
		score := 0
		for _, k := range keys {
			score += countOccurrences(lower, k)
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}
