// Package render serializes note sets to markdown and JSON.
package render

import (
	"fmt"
	"strings"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Markdown renders a note set as exam-notes markdown: per-category headings,
// numbered items with relevance and field sections. dateStr and paperName
// label the header; paperName may be empty.
func Markdown(set model.NoteSet, dateStr, paperName string) string {
	var lines []string

	header := fmt.Sprintf("# UPSC Notes — %s", dateStr)
	if paperName != "" {
		header += " — " + paperName
	}
	lines = append(lines, header+"\n")

	for _, category := range set.Categories {
		items := set.Grouped[category]
		if len(items) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("\n## %s\n", categoryHeading(category)))

		for i, item := range items {
			title := item.Title
			if title == "" {
				title = "(No title)"
			}
			lines = append(lines, fmt.Sprintf("### %d. %s", i+1, title))
			lines = append(lines, fmt.Sprintf("**UPSC relevance:** %d/10\n", item.Relevance))

			if len(item.Dates) > 0 {
				lines = append(lines, "**Dates:** "+strings.Join(item.Dates, ", "))
			}
			if len(item.SchemesActsPolicies) > 0 {
				lines = append(lines, "**Schemes/Acts/Policies:** "+strings.Join(item.SchemesActsPolicies, ", "))
			}
			if len(item.Institutions) > 0 {
				lines = append(lines, "**Institutions:** "+strings.Join(item.Institutions, ", "))
			}
			if item.SummaryEN != "" {
				lines = append(lines, "\n**Summary (EN):**\n"+item.SummaryEN)
			}
			if len(item.PrelimsPoints) > 0 {
				lines = append(lines, "\n**Prelims Pointers:**\n- "+strings.Join(item.PrelimsPoints, "\n- "))
			}
			if len(item.MainsAngles) > 0 {
				lines = append(lines, "\n**Mains Angles:**\n- "+strings.Join(item.MainsAngles, "\n- "))
			}
			if len(item.InterviewQuestions) > 0 {
				lines = append(lines, "\n**Interview Questions:**\n- "+strings.Join(item.InterviewQuestions, "\n- "))
			}
			lines = append(lines, "\n---\n")
		}
	}

	return strings.Join(lines, "\n")
}

// categoryHeading turns a category label into a heading: science_tech ->
// Science Tech.
func categoryHeading(category model.Category) string {
	words := strings.Split(string(category), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
