package usecases

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
)

const conversionCacheSize = 256

type Usecases struct {
	Repositories      repositories.Repositories
	uploadBucketUrl   string
	outputBucketUrl   string
	ocrDpi            float64
	ocrConcurrency    int
	conversionTimeout time.Duration
	conversionCache   *expirable.LRU[string, models.Conversion]
	retention         time.Duration
}

type Option func(*options)

type options struct {
	uploadBucketUrl    string
	outputBucketUrl    string
	ocrDpi             float64
	ocrConcurrency     int
	conversionTimeout  time.Duration
	conversionCacheTtl time.Duration
	retention          time.Duration
}

func WithUploadBucketUrl(bucket string) Option {
	return func(o *options) {
		o.uploadBucketUrl = bucket
	}
}

func WithOutputBucketUrl(bucket string) Option {
	return func(o *options) {
		o.outputBucketUrl = bucket
	}
}

func WithOcrDpi(dpi float64) Option {
	return func(o *options) {
		o.ocrDpi = dpi
	}
}

func WithOcrConcurrency(concurrency int) Option {
	return func(o *options) {
		o.ocrConcurrency = concurrency
	}
}

func WithConversionTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.conversionTimeout = timeout
	}
}

// WithConversionCacheTtl enables the reuse of conversions of identical uploads. A zero ttl disables it.
func WithConversionCacheTtl(ttl time.Duration) Option {
	return func(o *options) {
		o.conversionCacheTtl = ttl
	}
}

// WithRetention sets how long uploads and exports are kept. A zero retention keeps them forever.
func WithRetention(retention time.Duration) Option {
	return func(o *options) {
		o.retention = retention
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		ocrDpi:            200,
		ocrConcurrency:    2,
		conversionTimeout: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}

	var cache *expirable.LRU[string, models.Conversion]
	if o.conversionCacheTtl > 0 {
		cache = expirable.NewLRU[string, models.Conversion](conversionCacheSize, nil, o.conversionCacheTtl)
	}

	return Usecases{
		Repositories:      repositories,
		uploadBucketUrl:   o.uploadBucketUrl,
		outputBucketUrl:   o.outputBucketUrl,
		ocrDpi:            o.ocrDpi,
		ocrConcurrency:    max(o.ocrConcurrency, 1),
		conversionTimeout: o.conversionTimeout,
		conversionCache:   cache,
		retention:         o.retention,
	}
}

func (usecases *Usecases) NewConversionUsecase() ConversionUsecase {
	return ConversionUsecase{
		blobRepository:     usecases.Repositories.BlobRepository,
		textractRepository: usecases.Repositories.TextractRepository,
		renderer:           usecases.Repositories.DocumentRenderer,
		recognizer:         usecases.Repositories.TextRecognizer,
		uploadBucketUrl:    usecases.uploadBucketUrl,
		outputBucketUrl:    usecases.outputBucketUrl,
		ocrDpi:             usecases.ocrDpi,
		ocrConcurrency:     usecases.ocrConcurrency,
		conversionTimeout:  usecases.conversionTimeout,
		cache:              usecases.conversionCache,
	}
}

func (usecases *Usecases) NewDownloadUsecase() DownloadUsecase {
	return DownloadUsecase{
		blobRepository:  usecases.Repositories.BlobRepository,
		outputBucketUrl: usecases.outputBucketUrl,
	}
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		blobRepository:  usecases.Repositories.BlobRepository,
		outputBucketUrl: usecases.outputBucketUrl,
	}
}

func (usecases *Usecases) NewHealthUsecase() HealthUsecase {
	return HealthUsecase{
		blobRepository:  usecases.Repositories.BlobRepository,
		recognizer:      usecases.Repositories.TextRecognizer,
		uploadBucketUrl: usecases.uploadBucketUrl,
		outputBucketUrl: usecases.outputBucketUrl,
	}
}

func (usecases *Usecases) NewRetentionUsecase() RetentionUsecase {
	return RetentionUsecase{
		blobRepository: usecases.Repositories.BlobRepository,
		bucketUrls:     []string{usecases.uploadBucketUrl, usecases.outputBucketUrl},
		retention:      usecases.retention,
	}
}
