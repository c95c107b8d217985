package worker

import (
	"context"
	"sort"

	"github.com/moktagithub005/news-tool/internal/model"
	"github.com/moktagithub005/news-tool/internal/pipeline"
)

// Analyzer turns articles into note items. Satisfied by pipeline.Pipeline.
type Analyzer interface {
	AnalyzeArticles(ctx context.Context, articles []model.Article, opts pipeline.Options) ([]model.NoteItem, error)
}

// AnalyzeJob structures and scores one article.
type AnalyzeJob struct {
	Article  model.Article
	Analyzer Analyzer
	Options  pipeline.Options
	Limiter  *Limiter
	Provider string
}

// Execute runs the analysis for a single article.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && j.Provider != "" {
		if err := j.Limiter.Wait(ctx, j.Provider); err != nil {
			return &AnalyzeResult{Article: j.Article, Error: err}
		}
	}

	items, err := j.Analyzer.AnalyzeArticles(ctx, []model.Article{j.Article}, j.Options)
	if err != nil {
		return &AnalyzeResult{Article: j.Article, Error: err}
	}
	if len(items) == 0 {
		return &AnalyzeResult{Article: j.Article}
	}
	return &AnalyzeResult{Article: j.Article, Item: &items[0]}
}

// AnalyzeResult is the outcome of one article-analysis job.
type AnalyzeResult struct {
	Article model.Article
	Item    *model.NoteItem
	Error   error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many articles concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
	provider    string
}

// NewBatchProcessor creates a new batch processor. limiter and provider are
// optional; when set, jobs wait for the provider's rate limit before running.
func NewBatchProcessor(analyzer Analyzer, concurrency int, limiter *Limiter, provider string) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
		provider:    provider,
	}
}

// ProcessArticles analyzes articles concurrently and returns the successful
// items ranked by relevance descending.
func (b *BatchProcessor) ProcessArticles(ctx context.Context, articles []model.Article, opts pipeline.Options) []model.NoteItem {
	if len(articles) == 0 {
		return []model.NoteItem{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, article := range articles {
		pool.Submit(&AnalyzeJob{
			Article:  article,
			Analyzer: b.analyzer,
			Options:  opts,
			Limiter:  b.limiter,
			Provider: b.provider,
		})
	}

	results := pool.Wait()

	items := make([]model.NoteItem, 0, len(results))
	for _, result := range results {
		analyzed, ok := result.(*AnalyzeResult)
		if !ok || analyzed.Error != nil || analyzed.Item == nil {
			continue
		}
		items = append(items, *analyzed.Item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Relevance > items[j].Relevance
	})
	return items
}
