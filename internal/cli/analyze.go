package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moktagithub005/news-tool/internal/extract"
	"github.com/moktagithub005/news-tool/internal/model"
	"github.com/moktagithub005/news-tool/internal/pipeline"
	"github.com/moktagithub005/news-tool/internal/render"
	"github.com/moktagithub005/news-tool/internal/structure"
	"github.com/spf13/cobra"
)

var (
	analyzeOCR     bool
	analyzeChunked bool
	analyzeMode    string
	minRelevance   int
	outJSON        string
	outMD          string
	paperName      string
	analyzeTimeout time.Duration
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "Analyze a newspaper PDF into UPSC study notes",
	Long: `Analyze extracts text from a newspaper PDF, segments it by exam
category, structures each section into a note card, scores UPSC
relevance, and renders the grouped result.

Extraction tries the native text layer first, then raw content streams,
then OCR when --ocr is set (requires pdftoppm and tesseract on PATH).

Example:
  newstool analyze hindu.pdf
  newstool analyze hindu.pdf --ocr --md notes.md --json notes.json
  newstool analyze hindu.pdf --llm openai --llm-model gpt-4o-mini --mode deep`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Extraction flags
	analyzeCmd.Flags().BoolVar(&analyzeOCR, "ocr", false, "enable OCR fallback for scanned pages")
	analyzeCmd.Flags().BoolVar(&analyzeChunked, "chunked", false, "segment by fixed-size chunks instead of category sections")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 5*time.Minute, "overall analysis timeout")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (\"-\" for stdout; default when no output set)")
	analyzeCmd.Flags().StringVar(&paperName, "paper", "", "newspaper name for the notes header")
	analyzeCmd.Flags().IntVar(&minRelevance, "min-relevance", 0, "drop items scoring below this relevance (0-10)")

	// LLM flags
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", "deep", "LLM analysis mode (deep, fast)")
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM note structuring")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// applyLLMConfig copies the LLM flags into cfg and resolves API keys from
// the environment.
func applyLLMConfig(cfg *model.Config) error {
	if !llmEnabled {
		return nil
	}
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

func parseMode(s string) (structure.Mode, error) {
	switch s {
	case "deep":
		return structure.ModeDeep, nil
	case "fast":
		return structure.ModeFast, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected deep or fast)", s)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	mode, err := parseMode(analyzeMode)
	if err != nil {
		return err
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Extract.EnableOCR = analyzeOCR
	cfg.Output.Verbose = verbose
	cfg.Output.MinRelevance = minRelevance

	if err := applyLLMConfig(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", file)
		fmt.Fprintf(os.Stderr, "OCR: %v\n", analyzeOCR)
		if llmEnabled {
			fmt.Fprintf(os.Stderr, "LLM: %s/%s (%s)\n", llmProvider, llmModel, analyzeMode)
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg, newLogger())

	set, err := p.AnalyzeDocument(ctx, extract.FromFile(file), pipeline.Options{
		Mode:         mode,
		MinRelevance: minRelevance,
		Chunked:      analyzeChunked,
	})
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	// Markdown to stdout when no output was requested.
	mdPath := outMD
	if outJSON == "" && mdPath == "" {
		mdPath = "-"
	}

	renderer := render.NewRenderer(time.Now().Format("2006-01-02"), paperName)
	if outJSON != "" {
		if err := renderer.RenderJSON(set, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(set, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose && mdPath != "-" {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	renderer.RenderSummary(set)
	return nil
}
