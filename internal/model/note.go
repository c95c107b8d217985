package model

// Category labels form a closed set. Anything a classifier or an LLM
// produces outside this set is normalized to CategoryGeneral.
type Category string

const (
	CategoryPolity        Category = "polity"
	CategoryEconomy       Category = "economy"
	CategoryInternational Category = "international"
	CategoryEnvironment   Category = "environment"
	CategoryScienceTech   Category = "science_tech"
	CategorySocial        Category = "social"
	CategorySecurity      Category = "security"
	CategoryGeography     Category = "geography"
	CategoryGovernance    Category = "governance"
	CategoryGeneral       Category = "general"
)

// Categories lists every known category in registration order. The order is
// load-bearing: keyword classification breaks ties by first match in this
// slice, so changing it changes tie-break results.
var Categories = []Category{
	CategoryPolity,
	CategoryEconomy,
	CategoryInternational,
	CategoryEnvironment,
	CategoryScienceTech,
	CategorySocial,
	CategorySecurity,
	CategoryGeography,
	CategoryGovernance,
	CategoryGeneral,
}

// IsValidCategory reports whether c is one of the known category labels.
func IsValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// MaxTitleLen bounds NoteItem titles for display safety; it is also the
// length of the normalized dedup key used by aggregation.
const MaxTitleLen = 120

// SourceRef points back at where a note item came from.
type SourceRef struct {
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	SourceName  string `json:"source_name,omitempty"`
}

// NoteItem is the structured per-topic output unit of the pipeline.
//
// Invariants maintained by every producing path:
//   - Category is always in the closed set (general when unknown)
//   - Relevance is always an integer in [0,10], never unset
//   - list fields are never nil and contain only trimmed, bullet-stripped
//     strings with at least one alphanumeric character
//   - Title is at most MaxTitleLen runes
type NoteItem struct {
	Title               string    `json:"title"`
	Category            Category  `json:"category"`
	Relevance           int       `json:"relevance"`
	SummaryEN           string    `json:"summary_en"`
	PrelimsPoints       []string  `json:"prelims_points"`
	MainsAngles         []string  `json:"mains_angles"`
	InterviewQuestions  []string  `json:"interview_questions"`
	SchemesActsPolicies []string  `json:"schemes_acts_policies"`
	Institutions        []string  `json:"institutions"`
	Dates               []string  `json:"dates"`
	Source              SourceRef `json:"source_ref"`
}

// NoteSet is the grouped and ranked result of one processing request.
//
// Invariants: TotalItems equals the sum of all group lengths, Categories
// equals the keys of Grouped with non-empty lists, and every group is sorted
// by relevance descending with encounter order preserved on ties.
type NoteSet struct {
	Grouped    map[Category][]NoteItem `json:"grouped"`
	TotalItems int                     `json:"total_items"`
	Categories []Category              `json:"categories"`
}

// EmptyNoteSet returns a NoteSet with zero items and no nil maps, suitable
// as a degraded result when no readable content was found.
func EmptyNoteSet() NoteSet {
	return NoteSet{
		Grouped:    map[Category][]NoteItem{},
		TotalItems: 0,
		Categories: []Category{},
	}
}

// Section is a contiguous span of document text assigned to one category,
// produced by the segmenter. Sections are derived, never persisted.
type Section struct {
	Name  string   `json:"name"`
	Label Category `json:"label"`
	Text  string   `json:"text"`
	Index int      `json:"index"`
}

// Article is the unit of the article-ingestion boundary: text already
// segmented by the publisher, so the extractor and segmenter are skipped.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// Text joins the article fields the way the structurer and scorer expect to
// see them: title first, then description, then body.
func (a Article) Text() string {
	out := a.Title
	if a.Description != "" {
		out += "\n" + a.Description
	}
	if a.Content != "" {
		out += "\n" + a.Content
	}
	return out
}
