package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moktagithub005/news-tool/internal/aggregate"
	"github.com/moktagithub005/news-tool/internal/model"
	"github.com/moktagithub005/news-tool/internal/notestore"
	"github.com/moktagithub005/news-tool/internal/pipeline"
	"github.com/moktagithub005/news-tool/internal/render"
	"github.com/moktagithub005/news-tool/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ingestQuery    string
	ingestDays     int
	ingestPageSize int
	ingestWorkers  int
	ingestSave     bool
	ingestTimeout  time.Duration
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch news articles and turn them into UPSC study notes",
	Long: `Ingest pulls recent articles from NewsAPI, keeps the India-relevant
ones, analyzes each article in parallel, and renders the ranked result.

Requires a NewsAPI key in the NEWSAPI_KEY environment variable or the
news.api_key config entry.

Example:
  newstool ingest
  newstool ingest --query "RBI monetary policy" --days 3 --page-size 20
  newstool ingest --llm openai --workers 8 --save`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	// Fetch flags
	ingestCmd.Flags().StringVar(&ingestQuery, "query", "", "search query (default: India AND Government)")
	ingestCmd.Flags().IntVar(&ingestDays, "days", 2, "how many days back to search")
	ingestCmd.Flags().IntVar(&ingestPageSize, "page-size", 10, "articles per fetch (NewsAPI pageSize)")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 5*time.Minute, "total ingest timeout")

	// Processing flags
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 4, "number of concurrent article workers")
	ingestCmd.Flags().IntVar(&minRelevance, "min-relevance", 0, "drop items scoring below this relevance (0-10)")

	// Output flags
	ingestCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	ingestCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (\"-\" for stdout; default when no output set)")
	ingestCmd.Flags().BoolVar(&ingestSave, "save", false, "save notes to the local store under today's date")
	ingestCmd.Flags().StringVar(&notesDB, "db", "", "notes database path (default: $HOME/.newstool/notes.db)")

	// LLM flags
	ingestCmd.Flags().StringVar(&analyzeMode, "mode", "fast", "LLM analysis mode (deep, fast)")
	ingestCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM note structuring")
	ingestCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	ingestCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// newsAPIKey resolves the NewsAPI key from the environment or config.
func newsAPIKey() string {
	if key := os.Getenv("NEWSAPI_KEY"); key != "" {
		return key
	}
	return viper.GetString("news.api_key")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	mode, err := parseMode(analyzeMode)
	if err != nil {
		return err
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.News.APIKey = newsAPIKey()
	cfg.News.DaysBack = ingestDays
	cfg.News.PageSize = ingestPageSize
	cfg.Concurrency.Workers = ingestWorkers
	cfg.Output.Verbose = verbose
	cfg.Output.MinRelevance = minRelevance

	if err := applyLLMConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  NewsTool Ingest\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Query:      %s\n", displayQuery(ingestQuery))
	fmt.Fprintf(os.Stderr, "  Days back:  %d\n", ingestDays)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", ingestWorkers)
	if llmEnabled {
		fmt.Fprintf(os.Stderr, "  LLM:        %s/%s (%s)\n", llmProvider, llmModel, analyzeMode)
	}
	fmt.Fprintf(os.Stderr, "\n")

	logger := newLogger()

	// Fetch articles
	fetcher := pipeline.NewFetcher(cfg.News, logger)
	articles, err := fetcher.Fetch(ctx, ingestQuery)
	if err != nil {
		return fmt.Errorf("fetch articles: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Fetched %d articles\n", len(articles))
	if len(articles) == 0 {
		fmt.Fprintf(os.Stderr, "Nothing to analyze.\n")
		return nil
	}

	// Analyze in parallel
	p := pipeline.NewPipeline(cfg, logger)
	limiter := worker.NewLimiter(cfg.Concurrency.LLMRequestsPerSecond, cfg.Concurrency.LLMBurst)
	processor := worker.NewBatchProcessor(p, ingestWorkers, limiter, cfg.LLM.Provider)

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing with %d workers...\n", ingestWorkers)
	items := processor.ProcessArticles(ctx, articles, pipeline.Options{
		Mode:         mode,
		MinRelevance: minRelevance,
	})
	fmt.Fprintf(os.Stderr, "✓ Structured %d notes\n", len(items))

	set := aggregate.Build(items, aggregate.Options{MinRelevance: minRelevance})

	// Save to store
	day := time.Now().Format("2006-01-02")
	if ingestSave {
		saved, skipped, err := saveItems(ctx, day, items)
		if err != nil {
			return fmt.Errorf("save notes: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Saved %d notes for %s (%d duplicates skipped)\n", saved, day, skipped)
	}

	// Markdown to stdout when no output was requested.
	mdPath := outMD
	if outJSON == "" && mdPath == "" {
		mdPath = "-"
	}

	renderer := render.NewRenderer(day, "")
	if outJSON != "" {
		if err := renderer.RenderJSON(set, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(set, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}

	renderer.RenderSummary(set)
	return nil
}

func displayQuery(q string) string {
	if q == "" {
		return "India AND Government (default)"
	}
	return q
}

func saveItems(ctx context.Context, day string, items []model.NoteItem) (saved, skipped int, err error) {
	store, err := openNotesStore()
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = store.Close() }()

	for _, item := range items {
		ok, err := store.Save(ctx, day, item)
		if err != nil {
			return saved, skipped, err
		}
		if ok {
			saved++
		} else {
			skipped++
		}
	}
	return saved, skipped, nil
}

// openNotesStore opens the notes database at the configured or default path.
func openNotesStore() (*notestore.Store, error) {
	path := notesDB
	if path == "" {
		path = viper.GetString("notes.path")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		dir := home + "/.newstool"
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create notes directory: %w", err)
		}
		path = dir + "/notes.db"
	}
	return notestore.Open(path)
}
