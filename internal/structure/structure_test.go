package structure

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/llm"
	"github.com/moktagithub005/news-tool/internal/model"
)

// stubProvider implements llm.Provider with a canned response
type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, req llm.CompleteRequest) (*llm.CompleteResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompleteResponse{Text: p.text}, nil
}

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestStructure_ValidJSON(t *testing.T) {
	provider := &stubProvider{text: `{
		"title": "RBI cuts repo rate to support growth",
		"summary_en": "The central bank reduced the policy rate by 25 basis points.",
		"prelims_points": ["Repo rate is the rate at which RBI lends to banks"],
		"mains_angles": ["Analyze fiscal/monetary policy implications."],
		"interview_questions": ["What is the transmission mechanism of rate cuts?"],
		"schemes_acts_policies": [],
		"institutions": ["RBI", "Monetary Policy Committee"],
		"dates": ["2024-06-10"],
		"category": "economy"
	}`}

	s := NewStructurer(provider, quietLogger())
	item := s.Structure(context.Background(), Request{
		Title:   "RBI cuts repo rate",
		Content: "The Reserve Bank of India cut the repo rate by 25 basis points.",
	}, ModeDeep)

	if item.Category != model.CategoryEconomy {
		t.Errorf("Expected economy, got %s", item.Category)
	}
	if item.Title != "RBI cuts repo rate to support growth" {
		t.Errorf("Unexpected title: %s", item.Title)
	}
	if len(item.Institutions) != 2 {
		t.Errorf("Expected 2 institutions, got %v", item.Institutions)
	}
	if len(item.Dates) != 1 || item.Dates[0] != "2024-06-10" {
		t.Errorf("Unexpected dates: %v", item.Dates)
	}
	// Empty arrays from the LLM stay empty, never nil.
	if item.SchemesActsPolicies == nil {
		t.Error("Expected non-nil schemes list")
	}
}

func TestStructure_FencedJSONWithProse(t *testing.T) {
	provider := &stubProvider{text: "Here is the analysis you asked for:\n```json\n" +
		`{"title": "Parliament passes data bill", "summary_en": "A new data protection law.", "prelims_points": ["Bill passed in Lok Sabha"], "mains_angles": [], "category": "polity"}` +
		"\n```\nLet me know if you need more."}

	s := NewStructurer(provider, quietLogger())
	item := s.Structure(context.Background(), Request{Title: "Data bill"}, ModeDeep)

	if item.Category != model.CategoryPolity {
		t.Errorf("Expected polity, got %s", item.Category)
	}
	if item.Title != "Parliament passes data bill" {
		t.Errorf("Unexpected title: %s", item.Title)
	}
}

func TestStructure_TrailingCommaRepair(t *testing.T) {
	provider := &stubProvider{text: `{"title": "Cyclone warning issued", "summary_en": "IMD issued an alert.", "prelims_points": ["IMD alert for coastal districts",], "category": "geography",}`}

	s := NewStructurer(provider, quietLogger())
	item := s.Structure(context.Background(), Request{Title: "Cyclone"}, ModeFast)

	if item.Category != model.CategoryGeography {
		t.Errorf("Expected geography, got %s", item.Category)
	}
	if len(item.PrelimsPoints) != 1 {
		t.Errorf("Expected repaired prelims list, got %v", item.PrelimsPoints)
	}
}

func TestStructure_OutOfRangeRelevanceClamped(t *testing.T) {
	provider := &stubProvider{text: "```json\n{\"title\":\"X\",\"relevance\":12}\n```"}

	s := NewStructurer(provider, quietLogger())
	item := s.Structure(context.Background(), Request{Title: "X"}, ModeFast)

	if item.Title != "X" {
		t.Errorf("Expected fenced JSON to parse, got title %q", item.Title)
	}
	if item.Relevance != 10 {
		t.Errorf("Expected relevance clamped to 10, got %d", item.Relevance)
	}
}

func TestRelevanceValue(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{nil, 0},
		{float64(7), 7},
		{float64(12), 10},
		{float64(-3), 0},
		{"8", 8},
		{"not a number", 0},
	}

	for _, tc := range cases {
		if got := relevanceValue(tc.in); got != tc.want {
			t.Errorf("relevanceValue(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestStructure_GarbageResponseFallsBack(t *testing.T) {
	provider := &stubProvider{text: "I cannot produce JSON today."}

	s := NewStructurer(provider, quietLogger())
	item := s.Structure(context.Background(), Request{
		Title:       "RBI announces new framework",
		Description: "The Reserve Bank of India announced a framework on 10 June 2024.",
	}, ModeDeep)

	if item.SummaryEN != "RBI announces new framework" {
		t.Errorf("Expected title as fallback summary, got %q", item.SummaryEN)
	}
	if len(item.PrelimsPoints) == 0 {
		t.Fatal("Expected seeded prelims points")
	}
	if item.PrelimsPoints[0] != "Headline: RBI announces new framework" {
		t.Errorf("Unexpected seed: %v", item.PrelimsPoints)
	}
	foundCue := false
	for _, p := range item.PrelimsPoints {
		if p == "RBI-related update" {
			foundCue = true
		}
	}
	if !foundCue {
		t.Errorf("Expected RBI cue in prelims, got %v", item.PrelimsPoints)
	}
	if len(item.MainsAngles) == 0 {
		t.Error("Expected fallback mains angles")
	}
	if len(item.Dates) != 1 || item.Dates[0] != "10 June 2024" {
		t.Errorf("Expected regex-extracted date, got %v", item.Dates)
	}
	if item.Category != model.CategoryEconomy {
		t.Errorf("Expected keyword-classified economy, got %s", item.Category)
	}
}

func TestStructure_ProviderErrorFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("rate limited")}

	s := NewStructurer(provider, quietLogger())
	item := s.Structure(context.Background(), Request{Title: "Some headline", Description: "Body."}, ModeDeep)

	if item.SummaryEN != "Some headline" {
		t.Errorf("Expected fallback summary, got %q", item.SummaryEN)
	}
	if item.PrelimsPoints == nil || item.MainsAngles == nil || item.Dates == nil {
		t.Error("Expected all list fields non-nil after degradation")
	}
}

func TestStructure_NilProvider(t *testing.T) {
	s := NewStructurer(nil, quietLogger())
	item := s.Structure(context.Background(), Request{
		Title:   "ISRO launches navigation satellite",
		Content: "The launch took place from Sriharikota.",
	}, ModeDeep)

	if item.Category != model.CategoryScienceTech {
		t.Errorf("Expected science_tech, got %s", item.Category)
	}
	if item.Title == "" {
		t.Error("Expected title carried over from request")
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		label string
		ctx   string
		want  model.Category
	}{
		{"economy", "", model.CategoryEconomy},
		{"Science Tech", "", model.CategoryScienceTech},
		{"  POLITY  ", "", model.CategoryPolity},
		{"finance", "the rbi and inflation outlook", model.CategoryEconomy},
		{"", "wildlife conservation and biodiversity", model.CategoryEnvironment},
		{"nonsense", "", model.CategoryGeneral},
	}

	for _, tc := range cases {
		got := normalizeCategory(tc.label, tc.ctx)
		if got != tc.want {
			t.Errorf("normalizeCategory(%q, %q) = %s, want %s", tc.label, tc.ctx, got, tc.want)
		}
	}
}

func TestCleanList(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{nil, []string{}},
		{[]any{"• first point ", "- second", "---", nil}, []string{"first point", "second"}},
		{"line one\n• line two\n\n***", []string{"line one", "line two"}},
		{42.0, []string{}},
	}

	for _, tc := range cases {
		got := cleanList(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("cleanList(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestExtractDates(t *testing.T) {
	text := "Announced on 10 June 2024 and ratified 2024-06-12; review due 1/7/2024. Again on 10 June 2024."
	got := ExtractDates(text)

	want := []string{"10 June 2024", "2024-06-12", "1/7/2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractDates = %v, want %v", got, want)
	}
}

func TestExtractDates_Empty(t *testing.T) {
	if got := ExtractDates(""); len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}
