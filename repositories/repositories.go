package repositories

import (
	"context"
	"image"
)

// RenderedDocument is an opened PDF or image. Pages are numbered from 0.
type RenderedDocument interface {
	NumPage() int
	// Text returns the text layer of the page, empty for scans and images.
	Text(page int) (string, error)
	Image(page int, dpi float64) (image.Image, error)
	Close() error
}

type DocumentRenderer interface {
	Open(ctx context.Context, content []byte, contentType string) (RenderedDocument, error)
}

type TextRecognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
	Available() error
}

type Repositories struct {
	BlobRepository     BlobRepository
	TextractRepository TextractRepository
	DocumentRenderer   DocumentRenderer
	TextRecognizer     TextRecognizer
}

type Option func(*options)

type options struct {
	textractClient    TextractClient
	textractRateLimit float64
	renderer          DocumentRenderer
	recognizer        TextRecognizer
}

func WithTextractClient(client TextractClient, requestsPerSecond float64) Option {
	return func(o *options) {
		o.textractClient = client
		o.textractRateLimit = requestsPerSecond
	}
}

func WithDocumentRenderer(renderer DocumentRenderer) Option {
	return func(o *options) {
		o.renderer = renderer
	}
}

func WithTextRecognizer(recognizer TextRecognizer) Option {
	return func(o *options) {
		o.recognizer = recognizer
	}
}

func NewRepositories(opts ...Option) Repositories {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return Repositories{
		BlobRepository:     NewBlobRepository(),
		TextractRepository: NewTextractRepository(o.textractClient, o.textractRateLimit),
		DocumentRenderer:   o.renderer,
		TextRecognizer:     o.recognizer,
	}
}
