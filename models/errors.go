package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// PayloadTooLargeError is rendered with the http status code 413
	PayloadTooLargeError = errors.New("payload too large")

	// UnsupportedMediaTypeError is rendered with the http status code 415
	UnsupportedMediaTypeError = errors.New("unsupported media type")

	// UnprocessableEntityError is rendered with the http status code 422
	UnprocessableEntityError = errors.New("unprocessable entity")
)

// Upload related errors
var (
	ErrEmptyDocument       = errors.Wrap(BadParameterError, "the uploaded file is empty")
	ErrMissingFile         = errors.Wrap(BadParameterError, "a multipart field 'file' is required")
	ErrUnsupportedDocument = errors.Wrap(UnsupportedMediaTypeError, "only PDF documents and images are supported")
	ErrInvalidDownloadName = errors.Wrap(BadParameterError, "invalid download name")
)

// Extraction related errors
var (
	ErrUnreadableDocument = errors.Wrap(UnprocessableEntityError, "the document could not be rendered")
	ErrTextractDisabled   = errors.New("textract is disabled")

	// Above the synchronous AnalyzeDocument payload limit
	ErrTextractDocumentTooLarge = errors.New("document exceeds the textract synchronous limit")
)
