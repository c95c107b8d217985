package model

import "errors"

// ExtractionMethod records which strategy ultimately produced non-trivial
// text, for diagnostics and UI trust signaling.
type ExtractionMethod string

const (
	MethodNative         ExtractionMethod = "native"
	MethodFallbackNative ExtractionMethod = "fallback_native"
	MethodOCR            ExtractionMethod = "ocr"
	MethodPreExtracted   ExtractionMethod = "pre_extracted"

	// MethodNone means every strategy was exhausted without reaching the
	// sufficiency threshold. The text may still carry whatever partial
	// output the best strategy managed.
	MethodNone ExtractionMethod = "none"
)

// MinUsefulChars is the sufficiency threshold for extracted text: a result
// shorter than this (after trimming) does not stop the strategy chain, and
// per-page OCR output below it is treated as recognition noise.
const MinUsefulChars = 100

// ExtractedText is the immutable result of running the extraction chain
// over one document.
type ExtractedText struct {
	Text      string           `json:"text"`
	PageCount int              `json:"page_count"`
	Method    ExtractionMethod `json:"method"`
}

// Sufficient reports whether the extracted text reaches the usefulness
// threshold. Callers must treat an insufficient result as "no readable
// content", not as an error.
func (e ExtractedText) Sufficient() bool {
	return len(e.Text) >= MinUsefulChars
}

// ErrEmptyInput is the one hard error of the ingestion boundary: a zero-byte
// payload signals an integration bug, not a data-quality issue.
var ErrEmptyInput = errors.New("empty input: no bytes to process")
