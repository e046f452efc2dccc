package usecases

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
	"github.com/docneat/docneat-backend/usecases/export"
	"github.com/docneat/docneat-backend/usecases/extraction"
	"github.com/docneat/docneat-backend/utils"
)

type ConversionUsecase struct {
	blobRepository     repositories.BlobRepository
	textractRepository repositories.TextractRepository
	renderer           repositories.DocumentRenderer
	recognizer         repositories.TextRecognizer
	uploadBucketUrl    string
	outputBucketUrl    string
	ocrDpi             float64
	ocrConcurrency     int
	conversionTimeout  time.Duration
	cache              *expirable.LRU[string, models.Conversion]
}

// extractionResult is the outcome of the extraction chain
type extractionResult struct {
	method models.ExtractionMethod
	pages  int
	sheet  models.Sheet
}

// Convert extracts the transactions of an uploaded statement and exports them as csv and xlsx files
// in the output bucket.
func (usecase ConversionUsecase) Convert(ctx context.Context, document models.Document) (models.Conversion, error) {
	logger := utils.LoggerFromContext(ctx)
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "usecases.ConversionUsecase.Convert")
	defer span.End()

	if usecase.conversionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, usecase.conversionTimeout)
		defer cancel()
	}

	if len(document.Content) == 0 {
		return models.Conversion{}, models.ErrEmptyDocument
	}
	document.ContentType = detectContentType(document.Content)
	if !document.IsPdf() && !document.IsImage() {
		return models.Conversion{}, errors.Wrapf(models.ErrUnsupportedDocument,
			"file %s has type %s", document.SanitizedFileName(), document.ContentType)
	}
	span.SetAttributes(attribute.String("content_type", document.ContentType))

	digest := sha256.Sum256(document.Content)
	cacheKey := hex.EncodeToString(digest[:])
	if usecase.cache != nil {
		if cached, ok := usecase.cache.Get(cacheKey); ok {
			utils.MetricConversionCacheHits.Inc()
			logger.InfoContext(ctx, "reusing conversion of an identical upload", "conversion_id", cached.Id)
			return cached, nil
		}
	}

	start := time.Now()
	conversion := models.Conversion{
		Id:          uuid.NewString(),
		FileName:    document.SanitizedFileName(),
		ContentType: document.ContentType,
		CreatedAt:   start,
	}
	logger = logger.With("conversion_id", conversion.Id)
	ctx = utils.StoreLoggerInContext(ctx, logger)

	if err := usecase.storeUpload(ctx, conversion, document); err != nil {
		return models.Conversion{}, err
	}

	result, err := usecase.extract(ctx, document)
	if err != nil {
		return models.Conversion{}, err
	}
	conversion.Method = result.method
	conversion.Pages = result.pages
	conversion.Sheet = result.sheet

	if err := usecase.writeExports(ctx, conversion); err != nil {
		return models.Conversion{}, err
	}

	duration := time.Since(start)
	utils.MetricConversionCount.WithLabelValues(string(conversion.Method)).Inc()
	utils.MetricConversionLatency.WithLabelValues(string(conversion.Method)).Observe(duration.Seconds())
	logger.InfoContext(ctx, fmt.Sprintf("converted %s in %dms", conversion.FileName, duration.Milliseconds()),
		"method", conversion.Method,
		"pages", conversion.Pages,
		"rows", len(conversion.Sheet.Rows))

	if usecase.cache != nil {
		usecase.cache.Add(cacheKey, conversion)
	}
	return conversion, nil
}

func detectContentType(content []byte) string {
	mime := mimetype.Detect(content)
	if mime.Is(models.PdfContentType) {
		return models.PdfContentType
	}
	contentType, _, _ := strings.Cut(mime.String(), ";")
	return contentType
}

func (usecase ConversionUsecase) storeUpload(ctx context.Context, conversion models.Conversion, document models.Document) error {
	key := conversion.UploadKey(conversion.FileName)
	w, err := usecase.blobRepository.OpenStream(ctx, usecase.uploadBucketUrl, key, document.ContentType)
	if err != nil {
		return errors.Wrap(err, "failed to open upload stream")
	}
	if _, err := io.Copy(w, bytes.NewReader(document.Content)); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, "failed to store upload %s", key)
	}
	return errors.Wrapf(w.Close(), "failed to store upload %s", key)
}

// extract runs the extraction stages in order and keeps the first non empty result. A failing stage
// is reported and the next one runs; only the last stage (ocr) fails the conversion.
func (usecase ConversionUsecase) extract(ctx context.Context, document models.Document) (extractionResult, error) {
	if usecase.textractRepository != nil && usecase.textractRepository.Enabled() {
		sheet, err := usecase.extractWithTextract(ctx, document)
		switch {
		case err != nil:
			usecase.stageFailed(ctx, models.ExtractionMethodTextract, err)
		case !sheet.IsEmpty():
			return extractionResult{method: models.ExtractionMethodTextract, pages: 1, sheet: sheet}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return extractionResult{}, errors.Wrap(err, "conversion interrupted")
	}

	rendered, err := usecase.renderer.Open(ctx, document.Content, document.ContentType)
	if err != nil {
		return extractionResult{}, err
	}
	defer rendered.Close()
	pages := rendered.NumPage()

	if document.IsPdf() {
		sheet, err := extractFromTextLayer(rendered)
		switch {
		case err != nil:
			usecase.stageFailed(ctx, models.ExtractionMethodTextLayer, err)
		case !sheet.IsEmpty():
			return extractionResult{method: models.ExtractionMethodTextLayer, pages: pages, sheet: sheet}, nil
		}
	}

	text, err := usecase.recognizePages(ctx, rendered)
	if err != nil {
		utils.MetricExtractionStageFailures.WithLabelValues(string(models.ExtractionMethodOcr)).Inc()
		return extractionResult{}, err
	}
	sheet := extraction.CleanTransactions(extraction.ParseStatementText(text))
	if sheet.IsEmpty() {
		return extractionResult{method: models.ExtractionMethodNone, pages: pages, sheet: sheet}, nil
	}
	return extractionResult{method: models.ExtractionMethodOcr, pages: pages, sheet: sheet}, nil
}

func (usecase ConversionUsecase) stageFailed(ctx context.Context, method models.ExtractionMethod, err error) {
	utils.MetricExtractionStageFailures.WithLabelValues(string(method)).Inc()
	if skippedStage(err) {
		utils.LoggerFromContext(ctx).DebugContext(ctx, "extraction stage skipped",
			"method", method, "reason", err.Error())
		return
	}
	utils.LogAndReportStageError(ctx, string(method), err)
}

// skippedStage reports whether a stage error reflects configuration or input
// limits rather than a failure worth alerting on.
func skippedStage(err error) bool {
	return errors.IsAny(err, models.ErrTextractDisabled, models.ErrTextractDocumentTooLarge)
}

func (usecase ConversionUsecase) extractWithTextract(ctx context.Context, document models.Document) (models.Sheet, error) {
	blocks, err := usecase.textractRepository.AnalyzeTables(ctx, document.Content)
	if err != nil {
		return models.Sheet{}, err
	}
	tables := extraction.TablesFromTextractBlocks(blocks)
	if len(tables) == 0 {
		return models.Sheet{}, nil
	}
	return extraction.CleanTable(extraction.MergeTables(tables)), nil
}

func extractFromTextLayer(rendered repositories.RenderedDocument) (models.Sheet, error) {
	pages := make([]string, rendered.NumPage())
	for i := range pages {
		text, err := rendered.Text(i)
		if err != nil {
			return models.Sheet{}, err
		}
		pages[i] = text
	}
	tables := extraction.TablesFromTextLayer(pages)
	if len(tables) == 0 {
		return models.Sheet{}, nil
	}
	return extraction.CleanTable(extraction.MergeTables(tables)), nil
}

// recognizePages renders and recognizes every page, with at most ocrConcurrency pages in flight, and
// joins the page texts in page order.
func (usecase ConversionUsecase) recognizePages(ctx context.Context, rendered repositories.RenderedDocument) (string, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "usecases.ConversionUsecase.recognizePages",
		trace.WithAttributes(attribute.Int("pages", rendered.NumPage())))
	defer span.End()

	texts := make([]string, rendered.NumPage())
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(usecase.ocrConcurrency)
	for page := range texts {
		group.Go(func() error {
			img, err := rendered.Image(page, usecase.ocrDpi)
			if err != nil {
				return err
			}
			utils.MetricOcrPages.Inc()
			text, err := usecase.recognizer.Recognize(ctx, img)
			if err != nil {
				return errors.Wrapf(err, "ocr failed on page %d", page+1)
			}
			texts[page] = text
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, text := range texts {
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (usecase ConversionUsecase) writeExports(ctx context.Context, conversion models.Conversion) error {
	exports := []struct {
		fileName    string
		contentType string
		write       func(io.Writer, models.Sheet) error
	}{
		{conversion.ExcelFileName(), models.ExcelContentType, export.WriteExcel},
		{conversion.CsvFileName(), models.CsvContentType, export.WriteCsv},
	}

	for _, e := range exports {
		w, err := usecase.blobRepository.OpenStream(ctx, usecase.outputBucketUrl, e.fileName, e.contentType)
		if err != nil {
			return errors.Wrapf(err, "failed to open output stream for %s", e.fileName)
		}
		if err := e.write(w, conversion.Sheet); err != nil {
			_ = w.Close()
			return errors.Wrapf(err, "failed to export %s", e.fileName)
		}
		if err := w.Close(); err != nil {
			return errors.Wrapf(err, "failed to write %s", e.fileName)
		}
	}
	return nil
}
