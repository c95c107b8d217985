package relevance

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/llm"
)

// promptTextCap bounds how many characters of article text go into the
// scoring prompt.
const promptTextCap = 6000

const instructions = `You are an UPSC mentor. Rate the UPSC exam relevance of the given news item on a scale of 0-10.
Consider:
- Governance/Policy/Law, Supreme Court/Judiciary, Constitution, Schemes, Economy/RBI/Budget, IR (UN/G20/FTA), Environment/Disaster/Climate, Science/Tech/ISRO/Defence
- GS2 & GS3 weight highest; national impact > state > local; official/government sources > corporate PR.
- Penalize sports/celebrity/entertainment/viral/stock-tip items.

Return ONLY a number 0..10. No text, no labels.
`

// Scorer rates text for exam relevance. With a provider it asks the LLM for
// a bare number; when the LLM fails, answers unparseably, or returns zero,
// it falls back to keyword scoring. Scores are always in [0,10].
type Scorer struct {
	provider llm.Provider
	logger   *logrus.Logger
}

// NewScorer builds a scorer. provider may be nil for keyword-only scoring.
func NewScorer(provider llm.Provider, logger *logrus.Logger) *Scorer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scorer{provider: provider, logger: logger}
}

// Score rates the text 0..10.
func (s *Scorer) Score(ctx context.Context, text string) int {
	if s.provider == nil {
		return KeywordScore(text)
	}

	resp, err := s.provider.Complete(ctx, llm.CompleteRequest{
		Prompt: instructions + "\nNews content:\n" + capRunes(text, promptTextCap),
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"provider": s.provider.Name(),
			"error":    err,
		}).Warn("LLM relevance scoring failed, using keyword fallback")
		return KeywordScore(text)
	}

	score := parseScore(resp.Text)
	// A parsed zero is indistinguishable from a refusal, so the keyword
	// path decides.
	if score == 0 {
		return KeywordScore(text)
	}
	return score
}

// capRunes truncates text to at most n characters, never splitting a rune.
func capRunes(text string, n int) string {
	if len(text) <= n {
		return text
	}
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}

var scoreRe = regexp.MustCompile(`(\d{1,2})`)

// parseScore pulls the first one- or two-digit number out of an LLM reply
// and clamps it to [0,10].
func parseScore(text string) int {
	m := scoreRe.FindString(text)
	if m == "" {
		return 0
	}
	val, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return clamp(val)
}

// Keyword tiers for the deterministic fallback path. High-tier terms are
// strong exam signals, medium-tier weaker ones, low-tier terms mark noise
// that gets penalized.
var keywordTiers = struct {
	high, medium, low []string
}{
	high: []string{
		"supreme court", "high court", "constitution", "article", "bill", "act", "ordinance",
		"parliament", "lok sabha", "rajya sabha", "governor", "president", "election commission",
		"rbi", "budget", "gdp", "inflation", "fiscal deficit", "monetary policy", "repo rate",
		"niti aayog", "gst", "sebi", "disinvestment", "pli scheme", "jan dhan", "ayushman bharat",
		"unsc", "g20", "fta", "bilateral", "indian ocean", "quad", "indo-pacific", "border",
		"environment", "climate", "cop", "wildlife", "biodiversity", "pollution", "cyclone", "flood", "forest",
		"isro", "drdo", "satellite", "quantum", "ai", "semiconductor", "nuclear", "missile", "cybersecurity",
		"scheme", "policy", "mission", "yojana", "commission", "committee", "tribunal",
	},
	medium: []string{
		"state government", "cabinet", "ministry", "notification", "regulation", "draft",
		"consultation", "startup", "export", "import", "trade", "pmi", "index", "rating",
		"manufacturing", "services", "fdi", "make in india", "growth",
	},
	low: []string{
		"celebrity", "movie", "cricket", "football", "stock tips", "viral", "gossip",
		"award show", "rumour",
	},
}

// KeywordScore rates text 0..10 from keyword tier counts. Deterministic and
// pure; used whenever the LLM path is unavailable or untrustworthy.
func KeywordScore(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	hi, med, lo := 0, 0, 0
	for _, k := range keywordTiers.high {
		if strings.Contains(lower, k) {
			hi++
		}
	}
	for _, k := range keywordTiers.medium {
		if strings.Contains(lower, k) {
			med++
		}
	}
	for _, k := range keywordTiers.low {
		if strings.Contains(lower, k) {
			lo++
		}
	}

	base := hi*2 + med
	if base > 10 {
		base = 10
	}
	penalty := lo
	if penalty > 3 {
		penalty = 3
	}
	return clamp(base - penalty)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
