package segment

import (
	"regexp"
	"strings"
)

const (
	// MaxSentenceLen caps sentence length; longer spans are re-split on
	// comma/semicolon boundaries so downstream scoring stays meaningful.
	MaxSentenceLen = 800
)

var (
	junkLineRe  = regexp.MustCompile(`^[\W_]+$`)
	multiWSRe   = regexp.MustCompile(`\s{2,}`)
	bulletRe    = regexp.MustCompile(`^[•\-\*]+\s*`)
	headlineRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\s:\-,'()\.]{5,}$`)
	clausePatRe = regexp.MustCompile(`[,;]\s+`)
)

// CleanText removes junk lines from raw extracted text: punctuation-only
// lines, very short garbled lines (short headline-shaped lines survive),
// repeated whitespace, and leading bullets.
func CleanText(text string) string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if junkLineRe.MatchString(s) {
			continue
		}
		if len(s) < 30 && !headlineRe.MatchString(s) {
			continue
		}
		s = multiWSRe.ReplaceAllString(s, " ")
		s = bulletRe.ReplaceAllString(s, "")
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}

// Sentences splits text into sentences using punctuation-boundary
// heuristics: an end-of-sentence mark followed by whitespace and a
// capital/digit start. Segments longer than MaxSentenceLen are further
// split on comma/semicolon boundaries.
func Sentences(text string) []string {
	var out []string
	for _, seg := range splitOnBoundaries(text) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if len(seg) > MaxSentenceLen {
			for _, part := range clausePatRe.Split(seg, -1) {
				part = strings.TrimSpace(part)
				if part != "" {
					out = append(out, part)
				}
			}
			continue
		}
		out = append(out, seg)
	}
	return out
}

// splitOnBoundaries walks the text and cuts after . ? ! or newline when the
// next non-space rune is an uppercase letter or digit.
func splitOnBoundaries(text string) []string {
	var (
		segs    []string
		current strings.Builder
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if r != '.' && r != '?' && r != '!' && r != '\n' {
			continue
		}
		// Look past any whitespace for a capital or digit start.
		j := i + 1
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n') {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		next := runes[j]
		if (next >= 'A' && next <= 'Z') || (next >= '0' && next <= '9') {
			segs = append(segs, current.String())
			current.Reset()
			i = j - 1
		}
	}
	if current.Len() > 0 {
		segs = append(segs, current.String())
	}
	return segs
}
