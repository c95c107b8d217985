package model

import "time"

// Config is the complete tool configuration. Defaults come from
// DefaultConfig; the CLI layers config file, NEWSTOOL_* environment
// variables, and flags on top.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Extract     ExtractConfig     `yaml:"extract" json:"extract"`
	News        NewsConfig        `yaml:"news" json:"news"`
	Notes       NotesConfig       `yaml:"notes" json:"notes"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// LLMConfig configures the pluggable text transformer.
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled).
	// The provider is resolved once at startup; an unknown name is a
	// configuration error, never a silent capability probe.
	Provider string `yaml:"provider" json:"provider"`

	Model   string `yaml:"model" json:"model"`
	APIKey  string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Timeout applies to every transformer call. On timeout the caller
	// falls back to the deterministic path, same as any other failure.
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	MaxTokens int           `yaml:"max_tokens" json:"max_tokens"`

	// Proxy settings (honoured by the ollama transport).
	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
}

// ExtractConfig bounds the text extraction strategies. The OCR caps exist to
// bound peak memory, not throughput.
type ExtractConfig struct {
	EnableOCR    bool `yaml:"enable_ocr" json:"enable_ocr"`
	OCRMaxPages  int  `yaml:"ocr_max_pages" json:"ocr_max_pages"`
	OCRDPI       int  `yaml:"ocr_dpi" json:"ocr_dpi"`
	OCRBatchSize int  `yaml:"ocr_batch_size" json:"ocr_batch_size"`
	// OCRMaxEdge is the longest allowed raster edge in pixels; larger page
	// images are downsampled before recognition.
	OCRMaxEdge int `yaml:"ocr_max_edge" json:"ocr_max_edge"`
}

// NewsConfig configures the article fetcher.
type NewsConfig struct {
	APIKey       string        `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL      string        `yaml:"base_url" json:"base_url"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	DaysBack     int           `yaml:"days_back" json:"days_back"`
	PageSize     int           `yaml:"page_size" json:"page_size"`
}

// NotesConfig configures the saved-notes store.
type NotesConfig struct {
	// Path to the sqlite database file. Empty disables persistence.
	Path string `yaml:"path" json:"path"`
}

// ConcurrencyConfig bounds the batch article path.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
	// LLMRequestsPerSecond rate-limits transformer calls per provider.
	LLMRequestsPerSecond float64 `yaml:"llm_requests_per_second" json:"llm_requests_per_second"`
	LLMBurst             int     `yaml:"llm_burst" json:"llm_burst"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose      bool `yaml:"verbose" json:"verbose"`
	MinRelevance int  `yaml:"min_relevance" json:"min_relevance"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "", // disabled by default; deterministic fallbacks carry the pipeline
			Timeout:   30 * time.Second,
			MaxTokens: 1500,
		},
		Extract: ExtractConfig{
			EnableOCR:    false,
			OCRMaxPages:  20,
			OCRDPI:       150,
			OCRBatchSize: 2,
			OCRMaxEdge:   2400,
		},
		News: NewsConfig{
			BaseURL:      "https://newsapi.org/v2/everything",
			Timeout:      15 * time.Second,
			MaxBodyBytes: 4_000_000,
			DaysBack:     2,
			PageSize:     10,
		},
		Notes: NotesConfig{
			Path: "",
		},
		Concurrency: ConcurrencyConfig{
			Workers:              4,
			LLMRequestsPerSecond: 2,
			LLMBurst:             4,
		},
		Output: OutputConfig{
			Verbose:      false,
			MinRelevance: 0,
		},
	}
}
