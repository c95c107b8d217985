package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Fetcher pulls recent articles from NewsAPI and keeps the India-relevant
// ones.
type Fetcher struct {
	httpClient *http.Client
	config     model.NewsConfig
	logger     *logrus.Logger
}

// NewFetcher creates a fetcher from news configuration.
func NewFetcher(cfg model.NewsConfig, logger *logrus.Logger) *Fetcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
		logger:     logger,
	}
}

// NewsAPI response structures
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch retrieves articles for the query within the configured days-back
// window. Articles matching India-relevance keywords are ranked by match
// count; when nothing matches, the unfiltered list is returned rather than
// nothing.
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]model.Article, error) {
	if f.config.APIKey == "" {
		return nil, fmt.Errorf("news API key not configured")
	}
	if strings.TrimSpace(query) == "" {
		query = "India AND Government"
	}

	from := time.Now().AddDate(0, 0, -f.config.DaysBack).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(f.config.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", f.config.APIKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var apiResp newsAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Status != "ok" {
		return nil, fmt.Errorf("news API error: %s (%s)", apiResp.Message, apiResp.Code)
	}

	articles := make([]model.Article, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		articles = append(articles, model.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: strings.TrimSpace(a.Description),
			Content:     StripHTML(a.Content),
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		})
	}

	filtered := FilterIndian(articles)
	if len(filtered) == 0 {
		f.logger.WithField("query", query).Debug("no India-specific results, returning unfiltered articles")
		return articles, nil
	}

	f.logger.WithFields(logrus.Fields{
		"query":    query,
		"fetched":  len(articles),
		"relevant": len(filtered),
	}).Info("fetched news articles")
	return filtered, nil
}

// indiaKeywords mark an article as India-relevant. Match count doubles as a
// ranking signal.
var indiaKeywords = []string{
	"india", "indian", "delhi", "mumbai", "bangalore", "kolkata", "chennai",
	"modi", "parliament", "lok sabha", "rajya sabha", "bjp", "congress",
	"hindustan", "bharat", "new delhi", "maharashtra", "gujarat", "karnataka",
	"supreme court", "high court", "rbi", "sebi", "niti aayog",
}

// FilterIndian keeps articles matching at least one India-relevance keyword,
// ranked by match count descending with fetch order preserved on ties.
func FilterIndian(articles []model.Article) []model.Article {
	type ranked struct {
		article model.Article
		hits    int
	}

	var kept []ranked
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description + " " + a.Content + " " + a.Source)
		hits := 0
		for _, k := range indiaKeywords {
			if strings.Contains(text, k) {
				hits++
			}
		}
		if hits > 0 {
			kept = append(kept, ranked{article: a, hits: hits})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].hits > kept[j].hits
	})

	out := make([]model.Article, 0, len(kept))
	for _, r := range kept {
		out = append(out, r.article)
	}
	return out
}

// StripHTML reduces an HTML fragment to its visible text. NewsAPI content
// fields often carry markup from the publisher.
func StripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "<") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}
