package cmd

import (
	"context"

	"github.com/docneat/docneat-backend/infra"
	"github.com/docneat/docneat-backend/repositories"
	"github.com/docneat/docneat-backend/repositories/ocr"
	"github.com/docneat/docneat-backend/repositories/rendering"
	"github.com/docneat/docneat-backend/utils"
)

// initRepositories wires the native rendering and ocr engines, and the textract client when it
// is enabled.
func initRepositories(
	ctx context.Context,
	textractConfig infra.TextractConfiguration,
	ocrConfig infra.OcrConfiguration,
) (repositories.Repositories, error) {
	logger := utils.LoggerFromContext(ctx)
	recognizer := ocr.NewTesseractRecognizer(ocrConfig.Languages)
	if err := recognizer.Available(); err != nil {
		logger.WarnContext(ctx, "the ocr engine is not ready, scanned documents will fail",
			"error", err.Error())
	} else {
		logger.InfoContext(ctx, "ocr engine ready",
			"tesseract_version", ocr.Version(),
			"languages", ocrConfig.Languages)
	}

	opts := []repositories.Option{
		repositories.WithDocumentRenderer(rendering.NewRenderer(ocrConfig.MaxPages)),
		repositories.WithTextRecognizer(recognizer),
	}

	if textractConfig.Enabled {
		awsConfig, err := infra.NewAwsConfig(ctx, textractConfig)
		if err != nil {
			return repositories.Repositories{}, err
		}
		opts = append(opts, repositories.WithTextractClient(
			repositories.NewTextractClient(awsConfig), textractConfig.RateLimit))
		logger.InfoContext(ctx, "textract enabled", "region", textractConfig.Region)
	}

	return repositories.NewRepositories(opts...), nil
}
