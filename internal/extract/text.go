package extract

import (
	"regexp"
	"strings"
)

var (
	nulRe      = regexp.MustCompile("\x00+")
	blankRe    = regexp.MustCompile(`\n{3,}`)
	spaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
)

// NormalizeText removes control noise that PDF extraction and OCR commonly
// leave behind, without disturbing paragraph structure.
func NormalizeText(text string) string {
	text = nulRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
