package structure

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/llm"
	"github.com/moktagithub005/news-tool/internal/model"
)

// Request carries the raw material for one note item.
type Request struct {
	Title       string
	Description string
	Content     string
	URL         string
	Source      string
}

// text joins the request fields for category heuristics and date extraction.
func (r Request) text() string {
	return strings.Join([]string{r.Title, r.Description, r.Content}, " ")
}

// Structurer turns raw article or section text into an exam-ready note item.
// With a provider it asks the LLM for strict JSON; without one, or when the
// LLM misbehaves, it degrades to deterministic fallbacks. It never fails:
// the returned item always satisfies the NoteItem invariants.
type Structurer struct {
	provider llm.Provider
	logger   *logrus.Logger
}

// NewStructurer builds a structurer. provider may be nil for heuristics-only
// operation.
func NewStructurer(provider llm.Provider, logger *logrus.Logger) *Structurer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Structurer{provider: provider, logger: logger}
}

// Structure produces a note item from the request. Relevance is taken from
// the LLM response when present (clamped); zero means the caller should
// score the text itself. Source is populated from the request.
func (s *Structurer) Structure(ctx context.Context, req Request, mode Mode) model.NoteItem {
	raw := s.complete(ctx, req, mode)

	note, ok := parseNoteJSON(raw)
	if !ok && raw != "" {
		s.logger.WithField("response_chars", len(raw)).Debug("unparseable LLM structure response, using fallbacks")
	}

	textCtx := req.text()
	category := normalizeCategory(note.Category, textCtx)

	item := model.NoteItem{
		Title:               clipTitle(firstNonEmpty(strings.TrimSpace(note.Title), strings.TrimSpace(req.Title))),
		Category:            category,
		Relevance:           relevanceValue(note.Relevance),
		SummaryEN:           strings.TrimSpace(note.SummaryEN),
		PrelimsPoints:       cleanList(note.PrelimsPoints),
		MainsAngles:         cleanList(note.MainsAngles),
		InterviewQuestions:  cleanList(note.InterviewQuestions),
		SchemesActsPolicies: cleanList(note.SchemesActsPolicies),
		Institutions:        cleanList(note.Institutions),
		Dates:               cleanList(note.Dates),
		Source: model.SourceRef{
			URL:        req.URL,
			SourceName: req.Source,
		},
	}

	if item.SummaryEN == "" {
		item.SummaryEN = fallbackSummary(req)
	}
	if len(item.PrelimsPoints) == 0 && (req.Title != "" || req.Description != "") {
		item.PrelimsPoints = seedPrelims(req.Title, textCtx)
	}
	if len(item.MainsAngles) == 0 && (req.Description != "" || req.Content != "") {
		item.MainsAngles = fallbackMains(category)
	}
	if len(item.Dates) == 0 {
		item.Dates = ExtractDates(textCtx)
	}

	return item
}

func (s *Structurer) complete(ctx context.Context, req Request, mode Mode) string {
	if s.provider == nil {
		return ""
	}

	template := deepPrompt
	if mode == ModeFast {
		template = fastPrompt
	}
	prompt := fmt.Sprintf(template,
		truncate(req.Title, maxTitleChars),
		truncate(req.Description, maxDescriptionChars),
		truncate(req.Content, maxContentChars),
		req.URL,
		req.Source,
	)

	resp, err := s.provider.Complete(ctx, llm.CompleteRequest{Prompt: prompt})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"provider": s.provider.Name(),
			"error":    err,
		}).Warn("LLM structuring failed, using fallbacks")
		return ""
	}
	return resp.Text
}

func fallbackSummary(req Request) string {
	if s := strings.TrimSpace(req.Title); s != "" {
		return s
	}
	if s := strings.TrimSpace(req.Description); s != "" {
		return s
	}
	content := strings.TrimSpace(req.Content)
	if len(content) > 300 {
		content = content[:300]
	}
	if content != "" {
		return content
	}
	return "Current affairs brief with UPSC relevance."
}

func clipTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= model.MaxTitleLen {
		return title
	}
	return string(runes[:model.MaxTitleLen])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
