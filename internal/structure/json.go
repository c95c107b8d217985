package structure

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// rawNote tolerates the shapes LLMs actually return: list fields may arrive
// as arrays, newline-joined strings, or be missing entirely.
type rawNote struct {
	Title               string `json:"title"`
	SummaryEN           string `json:"summary_en"`
	PrelimsPoints       any    `json:"prelims_points"`
	MainsAngles         any    `json:"mains_angles"`
	InterviewQuestions  any    `json:"interview_questions"`
	SchemesActsPolicies any    `json:"schemes_acts_policies"`
	Institutions        any    `json:"institutions"`
	Dates               any    `json:"dates"`
	Category            string `json:"category"`
	Relevance           any    `json:"relevance"`
}

// relevanceValue reads a loosely typed relevance field, clamped to [0,10].
// Returns 0 when the field is absent or unreadable, letting the caller fall
// back to the relevance scorer.
func relevanceValue(value any) int {
	var n int
	switch v := value.(type) {
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// parseNoteJSON parses an LLM response into a rawNote. It tolerates markdown
// fences and surrounding prose by extracting the largest {...} block, and
// repairs trailing commas. A response with no recoverable JSON yields a zero
// rawNote and false.
func parseNoteJSON(s string) (rawNote, bool) {
	var note rawNote

	s = stripFences(s)

	if err := json.Unmarshal([]byte(s), &note); err == nil {
		return note, true
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return rawNote{}, false
	}
	chunk := s[start : end+1]

	if err := json.Unmarshal([]byte(chunk), &note); err == nil {
		return note, true
	}

	repaired := trailingCommaRe.ReplaceAllString(chunk, "$1")
	if err := json.Unmarshal([]byte(repaired), &note); err == nil {
		return note, true
	}

	return rawNote{}, false
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// cleanList normalizes a loosely typed field to a list of non-empty strings.
// Strings split on newlines; each entry loses surrounding bullets and
// whitespace; entries without a single alphanumeric rune are dropped.
func cleanList(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []any:
		out := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := cleanEntry(toString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := []string{}
		for _, item := range v {
			if s := cleanEntry(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		out := []string{}
		for _, part := range strings.Split(v, "\n") {
			if s := cleanEntry(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func cleanEntry(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "•-* ")
	s = strings.TrimSpace(s)
	if !hasAlnum(s) {
		return ""
	}
	return s
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}
