package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/moktagithub005/news-tool/internal/model"
)

// nativeStrategy parses the PDF text layer directly. Fast and accurate for
// digitally produced PDFs, useless for scanned ones.
type nativeStrategy struct{}

func (s *nativeStrategy) Name() string {
	return "native"
}

func (s *nativeStrategy) Extract(ctx context.Context, data []byte) (model.ExtractedText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return model.ExtractedText{}, fmt.Errorf("open pdf: %w", err)
	}

	pageCount := reader.NumPage()
	var sb strings.Builder

	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return model.ExtractedText{}, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages with broken text objects, the rest may be fine.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}

	return model.ExtractedText{
		Text:      sb.String(),
		PageCount: pageCount,
		Method:    model.MethodNative,
	}, nil
}
