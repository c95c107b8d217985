package pipeline

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/aggregate"
	"github.com/moktagithub005/news-tool/internal/extract"
	"github.com/moktagithub005/news-tool/internal/llm"
	"github.com/moktagithub005/news-tool/internal/model"
	"github.com/moktagithub005/news-tool/internal/relevance"
	"github.com/moktagithub005/news-tool/internal/segment"
	"github.com/moktagithub005/news-tool/internal/structure"
	"github.com/moktagithub005/news-tool/internal/summarize"
)

// Options control one analysis run.
type Options struct {
	// Mode selects deep or fast LLM analysis.
	Mode structure.Mode
	// MinRelevance drops items scoring below it.
	MinRelevance int
	// Chunked switches document segmentation from keyword sections to
	// fixed-size windows, for whole-document LLM runs.
	Chunked bool
}

// Pipeline orchestrates the complete document-to-notes process. The LLM is
// optional throughout: every stage degrades to deterministic heuristics.
type Pipeline struct {
	extractor  *extract.Extractor
	segmenter  *segment.Segmenter
	summarizer *summarize.Summarizer
	structurer *structure.Structurer
	scorer     *relevance.Scorer
	logger     *logrus.Logger
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration, resolving the LLM
// provider through a fresh pool. A misconfigured provider is logged and the
// pipeline runs heuristics-only.
func NewPipeline(cfg *model.Config, logger *logrus.Logger) *Pipeline {
	return NewPipelineWithPool(cfg, llm.NewPool(), logger)
}

// NewPipelineWithPool creates a pipeline resolving its provider from the
// given pool, so multiple pipelines can share provider instances.
func NewPipelineWithPool(cfg *model.Config, pool *llm.Pool, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}

	provider, err := pool.Get(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		logger.WithField("error", err).Warn("LLM provider unavailable, running heuristics-only")
		provider = nil
	}

	return &Pipeline{
		extractor:  extract.NewExtractor(cfg.Extract, logger),
		segmenter:  segment.NewSegmenter(),
		summarizer: summarize.NewSummarizer(),
		structurer: structure.NewStructurer(provider, logger),
		scorer:     relevance.NewScorer(provider, logger),
		logger:     logger,
		config:     cfg,
	}
}

// NewPipelineWithComponents wires explicit components, for tests and custom
// assemblies.
func NewPipelineWithComponents(
	extractor *extract.Extractor,
	segmenter *segment.Segmenter,
	summarizer *summarize.Summarizer,
	structurer *structure.Structurer,
	scorer *relevance.Scorer,
	logger *logrus.Logger,
) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{
		extractor:  extractor,
		segmenter:  segmenter,
		summarizer: summarizer,
		structurer: structurer,
		scorer:     scorer,
		logger:     logger,
	}
}

// AnalyzeDocument runs the full chain over one document: extract, segment,
// structure and score each section, aggregate. Unreadable content yields an
// empty note set; a zero-byte payload is the only hard error.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, input extract.Input, opts Options) (model.NoteSet, error) {
	extracted, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return model.EmptyNoteSet(), err
	}
	// The sufficiency gate guards against garbage PDF extraction; text the
	// caller handed over directly is taken at face value however short.
	if !extracted.Sufficient() && extracted.Method != model.MethodPreExtracted {
		p.logger.WithFields(logrus.Fields{
			"method": extracted.Method,
			"chars":  len(extracted.Text),
		}).Warn("no readable content, returning empty note set")
		return model.EmptyNoteSet(), nil
	}

	var sections []model.Section
	if opts.Chunked {
		sections = p.segmenter.Chunk(extracted.Text, segment.DefaultChunkSize, segment.DefaultChunkOverlap)
	} else {
		sections = p.segmenter.Segment(extracted.Text)
	}
	sections = foldShortSections(sections)

	items := make([]model.NoteItem, 0, len(sections))
	for _, section := range sections {
		if err := ctx.Err(); err != nil {
			return model.EmptyNoteSet(), err
		}

		headline := keyHeadline(section.Text)
		if headline == "" {
			continue
		}

		item := p.structurer.Structure(ctx, structure.Request{
			Title:   headline,
			Content: section.Text,
			Source:  "PDF Document",
		}, opts.Mode)

		// Without an LLM summary, fall back to the extractive one.
		if item.SummaryEN == "" || item.SummaryEN == headline {
			item.SummaryEN = p.shortSummary(section.Text, 180)
		}
		// Keyword-labeled sections keep their label when the structurer
		// learned nothing more specific.
		if item.Category == model.CategoryGeneral && section.Label != model.CategoryGeneral {
			item.Category = section.Label
		}
		// Dates often sit in a neighboring sentence; scan the whole
		// document when the section yielded none.
		if len(item.Dates) == 0 {
			item.Dates = structure.ExtractDates(extracted.Text)
		}

		if item.Relevance == 0 {
			item.Relevance = p.scorer.Score(ctx, section.Text)
		}
		items = append(items, item)
	}

	return aggregate.Build(items, aggregate.Options{MinRelevance: opts.MinRelevance}), nil
}

// AnalyzeArticles structures and scores pre-segmented articles, returning a
// flat list ranked by relevance. Articles that yield nothing useful still
// produce an item; this path never discards input.
func (p *Pipeline) AnalyzeArticles(ctx context.Context, articles []model.Article, opts Options) ([]model.NoteItem, error) {
	items := make([]model.NoteItem, 0, len(articles))
	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		item := p.structurer.Structure(ctx, structure.Request{
			Title:       article.Title,
			Description: article.Description,
			Content:     article.Content,
			URL:         article.URL,
			Source:      article.Source,
		}, opts.Mode)
		item.Source.PublishedAt = article.PublishedAt

		if item.Relevance == 0 {
			scoreText := article.Text()
			if opts.Mode == structure.ModeFast {
				scoreText = article.Title + "\n" + article.Description
			}
			item.Relevance = p.scorer.Score(ctx, scoreText)
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Relevance > items[j].Relevance
	})
	return items, nil
}

// minSectionChars is the threshold below which a section cannot stand on
// its own as a note.
const minSectionChars = 50

// foldShortSections merges sections too short to stand alone into the
// nearest substantial one, so a stray sentence keeps its surrounding
// context instead of being dropped.
func foldShortSections(sections []model.Section) []model.Section {
	var (
		kept    []model.Section
		pending []string
	)
	for _, section := range sections {
		text := strings.TrimSpace(section.Text)
		if text == "" {
			continue
		}
		if len(text) < minSectionChars {
			if len(kept) > 0 {
				kept[len(kept)-1].Text += "\n" + text
			} else {
				pending = append(pending, text)
			}
			continue
		}
		if len(pending) > 0 {
			section.Text = strings.Join(pending, "\n") + "\n" + text
			pending = nil
		} else {
			section.Text = text
		}
		section.Index = len(kept)
		kept = append(kept, section)
	}
	return kept
}

var leadingArticleRe = regexp.MustCompile(`^(The|A|An)\s+`)

// keyHeadline picks a concise headline for a section: the first sentence of
// comfortable length among the first three, else the first sentence
// truncated.
func keyHeadline(text string) string {
	sentences := segment.Sentences(text)
	if len(sentences) == 0 {
		text = strings.TrimSpace(text)
		if len(text) > 100 {
			return text[:100] + "..."
		}
		return text
	}

	limit := 3
	if len(sentences) < limit {
		limit = len(sentences)
	}
	for _, sent := range sentences[:limit] {
		clean := leadingArticleRe.ReplaceAllString(strings.TrimSpace(sent), "")
		if len(clean) >= 50 && len(clean) <= 200 {
			return clean
		}
	}

	first := strings.TrimSpace(sentences[0])
	if len(first) > 150 {
		return first[:150] + "..."
	}
	return first
}

// shortSummary produces one or two extractive sentences, capped in length.
func (p *Pipeline) shortSummary(text string, maxLen int) string {
	summary := p.summarizer.Summarize(text, 2)
	if summary == "" {
		sentences := segment.Sentences(text)
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		summary = strings.Join(sentences, ". ")
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return ""
	}
	if !strings.HasSuffix(summary, ".") && !strings.HasSuffix(summary, "!") && !strings.HasSuffix(summary, "?") {
		summary += "."
	}
	if len(summary) > maxLen {
		summary = summary[:maxLen-3] + "..."
	}
	return summary
}
