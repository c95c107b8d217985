package extract

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/moktagithub005/news-tool/internal/model"
)

// Strategy is one way of pulling text out of PDF bytes. Strategies are tried
// in order until one produces a sufficient result.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, data []byte) (model.ExtractedText, error)
}

// Extractor runs a chain of strategies over PDF payloads. A failing strategy
// is logged and skipped; the chain never fails hard on unreadable content.
type Extractor struct {
	strategies []Strategy
	logger     *logrus.Logger
}

// NewExtractor builds the default chain: native parse, content-stream parse,
// then OCR when enabled.
func NewExtractor(config model.ExtractConfig, logger *logrus.Logger) *Extractor {
	if logger == nil {
		logger = logrus.New()
	}

	strategies := []Strategy{
		&nativeStrategy{},
		&contentStreamStrategy{},
	}
	if config.EnableOCR {
		strategies = append(strategies, newOCRStrategy(config, logger))
	}

	return &Extractor{strategies: strategies, logger: logger}
}

// NewExtractorWithStrategies builds an extractor with an explicit chain.
func NewExtractorWithStrategies(logger *logrus.Logger, strategies ...Strategy) *Extractor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Extractor{strategies: strategies, logger: logger}
}

// Extract resolves the input to text. Text inputs pass through with
// normalization only. PDF inputs run the strategy chain: the first strategy
// whose output reaches the usefulness threshold wins; if none does, the
// longest partial output is returned with method "none". A zero-byte payload
// is the only hard error.
func (e *Extractor) Extract(ctx context.Context, input Input) (model.ExtractedText, error) {
	if input.Kind == InputText {
		text := NormalizeText(input.Text)
		if text == "" {
			return model.ExtractedText{Method: model.MethodNone}, model.ErrEmptyInput
		}
		return model.ExtractedText{Text: text, PageCount: 1, Method: model.MethodPreExtracted}, nil
	}

	data, err := input.payload()
	if err != nil {
		return model.ExtractedText{Method: model.MethodNone}, err
	}
	if len(data) == 0 {
		return model.ExtractedText{Method: model.MethodNone}, model.ErrEmptyInput
	}

	var best model.ExtractedText
	best.Method = model.MethodNone

	for _, strategy := range e.strategies {
		if err := ctx.Err(); err != nil {
			return best, err
		}

		result, err := strategy.Extract(ctx, data)
		if err != nil {
			e.logger.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"error":    err,
			}).Warn("extraction strategy failed, trying next")
			continue
		}

		result.Text = NormalizeText(result.Text)
		if result.Sufficient() {
			return result, nil
		}

		e.logger.WithFields(logrus.Fields{
			"strategy": strategy.Name(),
			"chars":    len(result.Text),
		}).Debug("extraction below usefulness threshold, trying next")

		if len(result.Text) > len(best.Text) {
			best.Text = result.Text
			best.PageCount = result.PageCount
		}
	}

	return best, nil
}
