package repositories

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/utils"
)

type BlobRepository interface {
	GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error)
	OpenStream(ctx context.Context, bucketUrl, fileName, contentType string) (io.WriteCloser, error)
	ListFiles(ctx context.Context, bucketUrl, prefix string) ([]models.BlobObject, error)
	DeleteFile(ctx context.Context, bucketUrl, fileName string) error
	IsAccessible(ctx context.Context, bucketUrl string) error
	Close() error
}

type blobRepository struct {
	buckets map[string]*blob.Bucket
	m       sync.Mutex
}

func NewBlobRepository() BlobRepository {
	return &blobRepository{
		buckets: make(map[string]*blob.Bucket),
	}
}

func (repository *blobRepository) openBlobBucket(ctx context.Context, bucketUrl string) (*blob.Bucket, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.openBlobBucket",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
	)
	defer span.End()

	repository.m.Lock()
	defer repository.m.Unlock()

	if bucket, ok := repository.buckets[bucketUrl]; ok {
		return bucket, nil
	}

	bucket, err := blob.OpenBucket(ctx, bucketUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketUrl)
	}

	ok, err := bucket.IsAccessible(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check bucket accessibility %s", bucketUrl)
	} else if !ok {
		return nil, errors.Newf("bucket %s is not accessible", bucketUrl)
	}

	repository.buckets[bucketUrl] = bucket
	return bucket, nil
}

func (repository *blobRepository) GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.GetBlob",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
		trace.WithAttributes(attribute.String("fileName", fileName)),
	)
	defer span.End()

	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return models.Blob{}, err
	}

	reader, err := bucket.NewReader(ctx, fileName, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return models.Blob{}, errors.Wrapf(
			models.NotFoundError,
			"file %s does not exist in bucket %s", fileName, bucketUrl,
		)
	}
	if err != nil {
		return models.Blob{}, errors.Wrapf(err, "failed to read object %s/%s", bucketUrl, fileName)
	}

	return models.Blob{FileName: fileName, Size: reader.Size(), ReadCloser: reader}, nil
}

func (repository *blobRepository) OpenStream(ctx context.Context, bucketUrl, fileName, contentType string) (io.WriteCloser, error) {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return nil, err
	}

	return bucket.NewWriter(ctx, fileName, &blob.WriterOptions{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=\"%s\"", fileName),
	})
}

// ListFiles returns every file of the bucket whose key starts with prefix, nested keys included
func (repository *blobRepository) ListFiles(ctx context.Context, bucketUrl, prefix string) ([]models.BlobObject, error) {
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(
		ctx,
		"repositories.BlobRepository.ListFiles",
		trace.WithAttributes(attribute.String("bucket", bucketUrl)),
	)
	defer span.End()

	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return nil, err
	}

	var objects []models.BlobObject
	iter := bucket.List(&blob.ListOptions{Prefix: prefix})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list bucket %s", bucketUrl)
		}
		if obj.IsDir {
			continue
		}
		objects = append(objects, models.BlobObject{Key: obj.Key, Size: obj.Size, ModTime: obj.ModTime})
	}
	return objects, nil
}

func (repository *blobRepository) DeleteFile(ctx context.Context, bucketUrl, fileName string) error {
	bucket, err := repository.openBlobBucket(ctx, bucketUrl)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	return bucket.Delete(ctx, fileName)
}

func (repository *blobRepository) IsAccessible(ctx context.Context, bucketUrl string) error {
	_, err := repository.openBlobBucket(ctx, bucketUrl)
	return err
}

// Close releases every opened bucket
func (repository *blobRepository) Close() error {
	repository.m.Lock()
	defer repository.m.Unlock()

	var errs error
	for url, bucket := range repository.buckets {
		errs = errors.CombineErrors(errs, bucket.Close())
		delete(repository.buckets, url)
	}
	return errs
}
