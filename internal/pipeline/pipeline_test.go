package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/extract"
	"github.com/moktagithub005/news-tool/internal/llm"
	"github.com/moktagithub005/news-tool/internal/model"
	"github.com/moktagithub005/news-tool/internal/relevance"
	"github.com/moktagithub005/news-tool/internal/segment"
	"github.com/moktagithub005/news-tool/internal/structure"
	"github.com/moktagithub005/news-tool/internal/summarize"
)

// failingProvider simulates a down LLM backend
type failingProvider struct{}

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) Complete(ctx context.Context, req llm.CompleteRequest) (*llm.CompleteResponse, error) {
	return nil, errors.New("backend unavailable")
}

func (p *failingProvider) IsAvailable(ctx context.Context) bool { return false }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestPipeline(provider llm.Provider) *Pipeline {
	logger := quietLogger()
	return NewPipelineWithComponents(
		extract.NewExtractorWithStrategies(logger),
		segment.NewSegmenter(),
		summarize.NewSummarizer(),
		structure.NewStructurer(provider, logger),
		relevance.NewScorer(provider, logger),
		logger,
	)
}

func TestAnalyzeDocument_RepoRateScenarioWithFailingLLM(t *testing.T) {
	text := "RBI cuts repo rate by 25 basis points to boost growth. The move was announced on 10 June 2024."

	p := newTestPipeline(&failingProvider{})

	set, err := p.AnalyzeDocument(context.Background(), extract.FromText(text), Options{Mode: structure.ModeDeep})
	if err != nil {
		t.Fatalf("AnalyzeDocument failed: %v", err)
	}

	economy := set.Grouped[model.CategoryEconomy]
	if len(economy) == 0 {
		t.Fatalf("Expected an economy item, got categories %v", set.Categories)
	}

	item := economy[0]
	if item.Relevance < 5 {
		t.Errorf("Expected keyword relevance >= 5 for repo-rate text, got %d", item.Relevance)
	}
	if len(item.PrelimsPoints) == 0 {
		t.Error("Expected seeded prelims points despite LLM failure")
	}

	foundDate := false
	for _, d := range item.Dates {
		if d == "10 June 2024" {
			foundDate = true
		}
	}
	if !foundDate {
		t.Errorf("Expected extracted date 10 June 2024, got %v", item.Dates)
	}

	if item.SummaryEN == "" {
		t.Error("Expected extractive fallback summary")
	}
}

func TestAnalyzeDocument_EmptyBytes(t *testing.T) {
	p := newTestPipeline(nil)

	_, err := p.AnalyzeDocument(context.Background(), extract.FromBytes(nil), Options{})
	if !errors.Is(err, model.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeDocument_InsufficientText(t *testing.T) {
	p := newTestPipeline(nil)

	set, err := p.AnalyzeDocument(context.Background(), extract.FromText("too short"), Options{})
	if err != nil {
		t.Fatalf("Expected degraded empty set, got error %v", err)
	}
	if set.TotalItems != 0 {
		t.Errorf("Expected 0 items, got %d", set.TotalItems)
	}
	if set.Grouped == nil || set.Categories == nil {
		t.Error("Expected empty set with non-nil map and slice")
	}
}

func TestAnalyzeDocument_InvariantsHold(t *testing.T) {
	text := "Parliament passed the data protection bill after extended debate in the Lok Sabha. " +
		"The RBI separately announced revisions to its inflation outlook for the fiscal year. " +
		"Wildlife conservation groups flagged biodiversity risks near the coastal forest belt."

	p := newTestPipeline(nil)

	set, err := p.AnalyzeDocument(context.Background(), extract.FromText(text), Options{})
	if err != nil {
		t.Fatalf("AnalyzeDocument failed: %v", err)
	}

	total := 0
	for _, group := range set.Grouped {
		total += len(group)
		for _, item := range group {
			if item.Relevance < 0 || item.Relevance > 10 {
				t.Errorf("Relevance out of range: %d", item.Relevance)
			}
			if item.PrelimsPoints == nil || item.MainsAngles == nil || item.Dates == nil ||
				item.InterviewQuestions == nil || item.SchemesActsPolicies == nil || item.Institutions == nil {
				t.Error("Expected all list fields non-nil")
			}
		}
	}
	if total != set.TotalItems {
		t.Errorf("TotalItems %d != sum of groups %d", set.TotalItems, total)
	}
	if len(set.Categories) != len(set.Grouped) {
		t.Errorf("Categories %v inconsistent with grouped keys", set.Categories)
	}
}

func TestAnalyzeDocument_MinRelevanceFilter(t *testing.T) {
	text := "The village fair concluded peacefully with a large turnout of local residents attending stalls. " +
		"Organizers thanked volunteers for managing the crowds across both days of the event."

	p := newTestPipeline(nil)

	set, err := p.AnalyzeDocument(context.Background(), extract.FromText(text), Options{MinRelevance: 9})
	if err != nil {
		t.Fatalf("AnalyzeDocument failed: %v", err)
	}
	if set.TotalItems != 0 {
		t.Errorf("Expected all low-relevance items filtered, got %d", set.TotalItems)
	}
}

func TestAnalyzeArticles_AlwaysReturnsItems(t *testing.T) {
	articles := []model.Article{
		{Title: "Cricket team wins series", Description: "Sports roundup.", Source: "Sports Desk"},
		{Title: "RBI announces monetary policy review", Description: "The repo rate was held steady.", URL: "https://example.com/rbi", Source: "Wire", PublishedAt: "2024-06-10T09:00:00Z"},
	}

	p := newTestPipeline(&failingProvider{})

	items, err := p.AnalyzeArticles(context.Background(), articles, Options{Mode: structure.ModeFast})
	if err != nil {
		t.Fatalf("AnalyzeArticles failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected an item per article, got %d", len(items))
	}

	// Ranked by relevance descending: the RBI article outranks cricket.
	if items[0].Title != "RBI announces monetary policy review" {
		t.Errorf("Expected RBI article ranked first, got %q", items[0].Title)
	}
	if items[0].Source.URL != "https://example.com/rbi" {
		t.Errorf("Expected source URL carried over, got %q", items[0].Source.URL)
	}
	if items[0].Source.PublishedAt != "2024-06-10T09:00:00Z" {
		t.Errorf("Expected published timestamp carried over, got %q", items[0].Source.PublishedAt)
	}

	for _, item := range items {
		if item.Relevance < 0 || item.Relevance > 10 {
			t.Errorf("Relevance out of range: %d", item.Relevance)
		}
	}
}

func TestAnalyzeArticles_Empty(t *testing.T) {
	p := newTestPipeline(nil)

	items, err := p.AnalyzeArticles(context.Background(), nil, Options{})
	if err != nil {
		t.Fatalf("AnalyzeArticles failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", items)
	}
}

func TestFoldShortSections_MergesIntoPrecedingSection(t *testing.T) {
	sections := []model.Section{
		{Label: model.CategoryEconomy, Text: "The RBI held the repo rate steady for the quarter.", Index: 0},
		{Label: model.CategoryGeneral, Text: "The move was announced on 10 June 2024.", Index: 1},
	}

	folded := foldShortSections(sections)
	if len(folded) != 1 {
		t.Fatalf("Expected 1 folded section, got %d", len(folded))
	}
	if folded[0].Label != model.CategoryEconomy {
		t.Errorf("Expected economy label kept, got %s", folded[0].Label)
	}
	if !strings.Contains(folded[0].Text, "10 June 2024") {
		t.Errorf("Expected short sentence folded in, got %q", folded[0].Text)
	}
}

func TestFoldShortSections_PrefixesFollowingSection(t *testing.T) {
	sections := []model.Section{
		{Label: model.CategoryGeneral, Text: "A short opener.", Index: 0},
		{Label: model.CategoryPolity, Text: "Parliament passed the amendment bill after a long debate in both houses.", Index: 1},
	}

	folded := foldShortSections(sections)
	if len(folded) != 1 {
		t.Fatalf("Expected 1 folded section, got %d", len(folded))
	}
	if !strings.HasPrefix(folded[0].Text, "A short opener.") {
		t.Errorf("Expected opener prefixed, got %q", folded[0].Text)
	}
	if folded[0].Index != 0 {
		t.Errorf("Expected reindexed section, got index %d", folded[0].Index)
	}
}

func TestFoldShortSections_AllShort(t *testing.T) {
	sections := []model.Section{
		{Label: model.CategoryGeneral, Text: "too short", Index: 0},
	}
	if folded := foldShortSections(sections); len(folded) != 0 {
		t.Errorf("Expected nothing substantial to keep, got %d sections", len(folded))
	}
}

func TestKeyHeadline(t *testing.T) {
	got := keyHeadline("The Reserve Bank of India announced a change to the repo rate this morning. Markets reacted within minutes.")
	if strings.HasPrefix(got, "The ") {
		t.Errorf("Expected leading article stripped, got %q", got)
	}
	if !strings.Contains(got, "Reserve Bank of India") {
		t.Errorf("Unexpected headline: %q", got)
	}
}

func TestKeyHeadline_LongFirstSentence(t *testing.T) {
	long := strings.Repeat("word ", 60) + "end."
	got := keyHeadline(long)
	if len(got) > 203 {
		t.Errorf("Expected truncated headline, got %d chars", len(got))
	}
}
