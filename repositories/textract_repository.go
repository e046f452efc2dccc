package repositories

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/utils"
)

// Synchronous AnalyzeDocument only accepts documents up to 10MB
const textractMaxDocumentSize = 10 * 1024 * 1024

type TextractRepository interface {
	AnalyzeTables(ctx context.Context, document []byte) ([]types.Block, error)
	Enabled() bool
}

type TextractClient interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput,
		optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

type textractRepository struct {
	// the client is safe for concurrent use
	client  TextractClient
	limiter *rate.Limiter
}

func NewTextractRepository(client TextractClient, requestsPerSecond float64) TextractRepository {
	if client == nil {
		return textractRepository{}
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return textractRepository{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (repo textractRepository) Enabled() bool {
	return repo.client != nil
}

func (repo textractRepository) AnalyzeTables(ctx context.Context, document []byte) ([]types.Block, error) {
	if repo.client == nil {
		return nil, models.ErrTextractDisabled
	}
	if len(document) > textractMaxDocumentSize {
		return nil, errors.Wrapf(models.ErrTextractDocumentTooLarge, "document of %d bytes", len(document))
	}

	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.TextractRepository.AnalyzeTables",
		trace.WithAttributes(attribute.Int("document_size", len(document))),
	)
	defer span.End()

	var output *textract.AnalyzeDocumentOutput
	err := retry.Do(
		func() error {
			if err := repo.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			var err error
			output, err = repo.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
				Document:     &types.Document{Bytes: document},
				FeatureTypes: []types.FeatureType{types.FeatureTypeTables},
			})
			return err
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.RetryIf(isRetryableTextractError),
	)
	if err != nil {
		return nil, errors.Wrap(err, "textract AnalyzeDocument failed")
	}

	span.SetAttributes(attribute.Int("blocks", len(output.Blocks)))
	return output.Blocks, nil
}

func isRetryableTextractError(err error) bool {
	var throttling *types.ThrottlingException
	var provisioned *types.ProvisionedThroughputExceededException
	var internal *types.InternalServerError
	return errors.As(err, &throttling) || errors.As(err, &provisioned) || errors.As(err, &internal)
}

// NewTextractClient builds a client from an already loaded aws configuration
func NewTextractClient(cfg aws.Config) *textract.Client {
	return textract.NewFromConfig(cfg)
}
