package extract

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Recognizer turns one page image into text. The default implementation
// shells out to tesseract; tests inject fakes.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// TesseractRecognizer runs the tesseract binary over a page image.
type TesseractRecognizer struct {
	Binary string // defaults to "tesseract"
	Lang   string // defaults to "eng"
	Runner Runner
}

func (t *TesseractRecognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	binary := t.Binary
	if binary == "" {
		binary = "tesseract"
	}
	lang := t.Lang
	if lang == "" {
		lang = "eng"
	}

	// tesseract <file> stdout -l <lang>
	out, _, err := t.Runner.Run(ctx, binary, imagePath, "stdout", "-l", lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil
}

// ocrStrategy rasterizes PDF pages and recognizes them. It is the last and
// slowest link of the chain, intended for scanned newspaper pages.
type ocrStrategy struct {
	config     model.ExtractConfig
	runner     Runner
	recognizer Recognizer
	logger     *logrus.Logger
}

func newOCRStrategy(config model.ExtractConfig, logger *logrus.Logger) *ocrStrategy {
	runner := execRunner{logger: logger}
	return &ocrStrategy{
		config:     config,
		runner:     runner,
		recognizer: &TesseractRecognizer{Runner: runner},
		logger:     logger,
	}
}

func (s *ocrStrategy) Name() string {
	return "ocr"
}

func (s *ocrStrategy) Extract(ctx context.Context, data []byte) (model.ExtractedText, error) {
	tmpDir, err := os.MkdirTemp("", "newstool-ocr-*")
	if err != nil {
		return model.ExtractedText{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			s.logger.WithField("dir", tmpDir).Warn("failed to remove OCR temp dir")
		}
	}()

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return model.ExtractedText{}, fmt.Errorf("write temp pdf: %w", err)
	}

	images, err := s.rasterize(ctx, pdfPath, filepath.Join(tmpDir, "page"))
	if err != nil {
		return model.ExtractedText{}, err
	}

	texts := s.recognizeAll(ctx, images)

	var sb strings.Builder
	for _, text := range texts {
		text = strings.TrimSpace(text)
		// Pages below the threshold are recognition noise (mastheads,
		// full-page ads, failed scans) and are dropped.
		if len(text) < model.MinUsefulChars {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	return model.ExtractedText{
		Text:      sb.String(),
		PageCount: len(images),
		Method:    model.MethodOCR,
	}, nil
}

// rasterize renders PDF pages to PNG via pdftoppm, capped at OCRMaxPages.
func (s *ocrStrategy) rasterize(ctx context.Context, pdfPath, prefix string) ([]string, error) {
	args := []string{"-r", strconv.Itoa(s.config.OCRDPI), "-png"}
	if s.config.OCRMaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(s.config.OCRMaxPages))
	}
	args = append(args, pdfPath, prefix)

	if _, errb, err := s.runner.Run(ctx, "pdftoppm", args...); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if s.config.OCRMaxPages > 0 && len(matches) > s.config.OCRMaxPages {
		matches = matches[:s.config.OCRMaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}
	return matches, nil
}

// recognizeAll OCRs page images in small concurrent batches, keeping memory
// bounded on large newspapers. Per-page failures are logged and skipped.
func (s *ocrStrategy) recognizeAll(ctx context.Context, images []string) []string {
	batchSize := s.config.OCRBatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	texts := make([]string, len(images))
	for start := 0; start < len(images); start += batchSize {
		end := start + batchSize
		if end > len(images) {
			end = len(images)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				if err := downsampleImage(images[idx], s.config.OCRMaxEdge); err != nil {
					s.logger.WithFields(logrus.Fields{
						"image": images[idx],
						"error": err,
					}).Debug("downsample skipped")
				}

				text, err := s.recognizer.Recognize(ctx, images[idx])
				if err != nil {
					s.logger.WithFields(logrus.Fields{
						"image": images[idx],
						"error": err,
					}).Warn("page OCR failed")
					return
				}
				texts[idx] = text
			}(i)
		}
		wg.Wait()

		if ctx.Err() != nil {
			break
		}
	}
	return texts
}

// downsampleImage rescales a page image in place when its longest edge
// exceeds maxEdge. Newspaper scans at 150 DPI can exceed what tesseract
// handles gracefully.
func downsampleImage(path string, maxEdge int) error {
	if maxEdge <= 0 {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	src, err := png.Decode(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxEdge {
		return nil
	}

	scale := float64(maxEdge) / float64(longest)
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	return png.Encode(out, dst)
}
