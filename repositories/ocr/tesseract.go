// Package ocr recognizes text on rendered pages with the tesseract library.
package ocr

import (
	"bytes"
	"context"
	"image"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/docneat/docneat-backend/utils"
)

type TesseractRecognizer struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

func NewTesseractRecognizer(languages []string) TesseractRecognizer {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return TesseractRecognizer{languages: languages, clientFactory: gosseract.NewClient}
}

// Recognize runs OCR on one page. A tesseract client is not safe for concurrent use, so every call
// gets its own client.
func (r TesseractRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	_, span := tracer.Start(ctx, "repositories.ocr.TesseractRecognizer.Recognize",
		trace.WithAttributes(attribute.StringSlice("languages", r.languages)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, Preprocess(img), imaging.PNG); err != nil {
		return "", errors.Wrap(err, "failed to encode page for ocr")
	}

	client := r.clientFactory()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return "", errors.Wrap(err, "failed to set ocr languages")
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", errors.Wrap(err, "failed to set page segmentation mode")
	}
	// keep the spacing between columns, the statement parser relies on it
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return "", errors.Wrap(err, "failed to set tesseract variable")
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", errors.Wrap(err, "failed to load page in tesseract")
	}

	text, err := client.Text()
	if err != nil {
		return "", errors.Wrap(err, "tesseract recognition failed")
	}
	span.SetAttributes(attribute.Int("characters", len(text)))
	return strings.TrimSpace(text), nil
}

// Available checks that the tesseract library and the configured language data can be loaded.
func (r TesseractRecognizer) Available() error {
	client := r.clientFactory()
	defer client.Close()

	if err := client.SetLanguage(r.languages...); err != nil {
		return errors.Wrap(err, "failed to set ocr languages")
	}
	languages, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return errors.Wrap(err, "failed to list tesseract languages")
	}
	for _, language := range r.languages {
		if !slices.Contains(languages, language) {
			return errors.Newf("tesseract language data %q is not installed", language)
		}
	}
	return nil
}

func Version() string {
	return gosseract.Version()
}
