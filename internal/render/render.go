package render

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Renderer writes note sets to files or stdout.
type Renderer struct {
	dateStr   string
	paperName string
}

// NewRenderer creates a renderer. dateStr labels markdown headers;
// paperName is optional.
func NewRenderer(dateStr, paperName string) *Renderer {
	return &Renderer{
		dateStr:   dateStr,
		paperName: paperName,
	}
}

// RenderJSON writes the note set as indented JSON. A path of "-" writes
// to stdout.
func (r *Renderer) RenderJSON(set model.NoteSet, path string) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	if path == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the note set as markdown. A path of "-" writes
// to stdout.
func (r *Renderer) RenderMarkdown(set model.NoteSet, path string) error {
	md := Markdown(set, r.dateStr, r.paperName)

	if path == "-" {
		fmt.Println(md)
		return nil
	}

	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-line-per-category overview to stderr.
func (r *Renderer) RenderSummary(set model.NoteSet) {
	fmt.Fprintf(os.Stderr, "\nNotes: %d items in %d categories\n", set.TotalItems, len(set.Categories))
	for _, category := range set.Categories {
		fmt.Fprintf(os.Stderr, "  %-14s %d\n", categoryHeading(category), len(set.Grouped[category]))
	}
}
