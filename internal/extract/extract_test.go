package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/model"
)

// fakeStrategy implements Strategy for testing
type fakeStrategy struct {
	name   string
	text   string
	pages  int
	err    error
	called int
}

func (f *fakeStrategy) Name() string {
	return f.name
}

func (f *fakeStrategy) Extract(ctx context.Context, data []byte) (model.ExtractedText, error) {
	f.called++
	if f.err != nil {
		return model.ExtractedText{}, f.err
	}
	return model.ExtractedText{Text: f.text, PageCount: f.pages, Method: model.MethodNative}, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func longText() string {
	return strings.Repeat("The committee discussed fiscal policy measures at length. ", 5)
}

func TestExtractor_FirstSufficientWins(t *testing.T) {
	first := &fakeStrategy{name: "first", text: longText(), pages: 3}
	second := &fakeStrategy{name: "second", text: longText(), pages: 3}

	extractor := NewExtractorWithStrategies(testLogger(), first, second)

	result, err := extractor.Extract(context.Background(), FromBytes([]byte("%PDF-")))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if !result.Sufficient() {
		t.Error("Expected sufficient result")
	}
	if second.called != 0 {
		t.Error("Expected second strategy to be skipped when first succeeds")
	}
	if result.PageCount != 3 {
		t.Errorf("Expected page count 3, got %d", result.PageCount)
	}
}

func TestExtractor_FallsThroughOnInsufficientText(t *testing.T) {
	first := &fakeStrategy{name: "first", text: "too short", pages: 1}
	second := &fakeStrategy{name: "second", text: longText(), pages: 1}

	extractor := NewExtractorWithStrategies(testLogger(), first, second)

	result, err := extractor.Extract(context.Background(), FromBytes([]byte("%PDF-")))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if first.called != 1 || second.called != 1 {
		t.Errorf("Expected both strategies called, got %d and %d", first.called, second.called)
	}
	if !result.Sufficient() {
		t.Error("Expected second strategy's sufficient result")
	}
}

func TestExtractor_FallsThroughOnError(t *testing.T) {
	first := &fakeStrategy{name: "first", err: errors.New("corrupt xref table")}
	second := &fakeStrategy{name: "second", text: longText(), pages: 2}

	extractor := NewExtractorWithStrategies(testLogger(), first, second)

	result, err := extractor.Extract(context.Background(), FromBytes([]byte("%PDF-")))
	if err != nil {
		t.Fatalf("Expected strategy error to be absorbed, got %v", err)
	}
	if !result.Sufficient() {
		t.Error("Expected fallback strategy's result")
	}
}

func TestExtractor_BestEffortWhenAllInsufficient(t *testing.T) {
	first := &fakeStrategy{name: "first", text: "tiny", pages: 1}
	second := &fakeStrategy{name: "second", text: "slightly longer partial text", pages: 1}

	extractor := NewExtractorWithStrategies(testLogger(), first, second)

	result, err := extractor.Extract(context.Background(), FromBytes([]byte("%PDF-")))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Method != model.MethodNone {
		t.Errorf("Expected method none, got %s", result.Method)
	}
	if result.Text != "slightly longer partial text" {
		t.Errorf("Expected longest partial output, got %q", result.Text)
	}
	if result.Sufficient() {
		t.Error("Expected insufficient result")
	}
}

func TestExtractor_EmptyBytes(t *testing.T) {
	extractor := NewExtractorWithStrategies(testLogger(), &fakeStrategy{name: "first", text: longText()})

	_, err := extractor.Extract(context.Background(), FromBytes(nil))
	if !errors.Is(err, model.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestExtractor_TextInputPassthrough(t *testing.T) {
	extractor := NewExtractorWithStrategies(testLogger())

	result, err := extractor.Extract(context.Background(), FromText("  Already   extracted\r\ntext.  "))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Method != model.MethodPreExtracted {
		t.Errorf("Expected pre_extracted method, got %s", result.Method)
	}
	if result.Text != "Already extracted\ntext." {
		t.Errorf("Unexpected normalized text: %q", result.Text)
	}
}

func TestExtractor_EmptyTextInput(t *testing.T) {
	extractor := NewExtractorWithStrategies(testLogger())

	_, err := extractor.Extract(context.Background(), FromText("   \n  "))
	if !errors.Is(err, model.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"nul\x00\x00bytes", "nulbytes"},
		{"windows\r\nline\rendings", "windows\nline\nendings"},
		{"runs   of    spaces", "runs of spaces"},
		{"para one\n\n\n\n\npara two", "para one\n\npara two"},
		{"  trimmed  ", "trimmed"},
	}

	for _, tc := range cases {
		got := NormalizeText(tc.in)
		if got != tc.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// fakeRunner stubs external commands. A pdftoppm invocation materializes
// fake page images under the given prefix.
type fakeRunner struct {
	pages    int
	commands []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.commands = append(f.commands, name+" "+strings.Join(args, " "))
	if name == "pdftoppm" {
		prefix := args[len(args)-1]
		for i := 1; i <= f.pages; i++ {
			path := fmt.Sprintf("%s-%02d.png", prefix, i)
			if err := os.WriteFile(path, []byte("not a real png"), 0o600); err != nil {
				return nil, nil, err
			}
		}
	}
	return nil, nil, nil
}

// fakeRecognizer returns canned text per page in call order.
type fakeRecognizer struct {
	texts []string
	next  int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	if f.next >= len(f.texts) {
		return "", nil
	}
	text := f.texts[f.next]
	f.next++
	return text, nil
}

func TestOCRStrategy_PageCapAndNoiseDiscard(t *testing.T) {
	runner := &fakeRunner{pages: 4}
	recognizer := &fakeRecognizer{texts: []string{
		longText(), // kept
		"noise",    // dropped, below threshold
		longText(), // dropped by page cap
		longText(), // dropped by page cap
	}}

	strategy := &ocrStrategy{
		config: model.ExtractConfig{
			OCRMaxPages:  2,
			OCRDPI:       150,
			OCRBatchSize: 1,
		},
		runner:     runner,
		recognizer: recognizer,
		logger:     testLogger(),
	}

	result, err := strategy.Extract(context.Background(), []byte("%PDF-"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Method != model.MethodOCR {
		t.Errorf("Expected ocr method, got %s", result.Method)
	}
	if result.PageCount != 2 {
		t.Errorf("Expected page cap of 2, got %d", result.PageCount)
	}
	if recognizer.next != 2 {
		t.Errorf("Expected 2 pages recognized, got %d", recognizer.next)
	}
	if strings.Contains(result.Text, "noise") {
		t.Error("Expected below-threshold page to be discarded")
	}
	if !strings.Contains(result.Text, "fiscal policy") {
		t.Error("Expected kept page text in result")
	}

	// Rasterization must request the configured DPI and page cap.
	if len(runner.commands) == 0 || !strings.Contains(runner.commands[0], "-r 150") {
		t.Errorf("Expected pdftoppm call with -r 150, got %v", runner.commands)
	}
	if !strings.Contains(runner.commands[0], "-l 2") {
		t.Errorf("Expected pdftoppm call with -l 2, got %v", runner.commands)
	}
}

func TestTesseractRecognizer_Args(t *testing.T) {
	runner := &fakeRunner{}
	recognizer := &TesseractRecognizer{Runner: runner}

	_, err := recognizer.Recognize(context.Background(), "/tmp/page-01.png")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if len(runner.commands) != 1 {
		t.Fatalf("Expected 1 command, got %d", len(runner.commands))
	}
	want := "tesseract /tmp/page-01.png stdout -l eng"
	if runner.commands[0] != want {
		t.Errorf("Expected %q, got %q", want, runner.commands[0])
	}
}
