package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/docneat/docneat-backend/models"
)

type BlobRepository struct {
	mock.Mock
}

func (m *BlobRepository) GetBlob(ctx context.Context, bucketUrl, fileName string) (models.Blob, error) {
	args := m.Called(ctx, bucketUrl, fileName)
	return args.Get(0).(models.Blob), args.Error(1)
}

func (m *BlobRepository) OpenStream(ctx context.Context, bucketUrl, fileName, contentType string) (io.WriteCloser, error) {
	args := m.Called(ctx, bucketUrl, fileName, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *BlobRepository) ListFiles(ctx context.Context, bucketUrl, prefix string) ([]models.BlobObject, error) {
	args := m.Called(ctx, bucketUrl, prefix)
	return args.Get(0).([]models.BlobObject), args.Error(1)
}

func (m *BlobRepository) DeleteFile(ctx context.Context, bucketUrl, fileName string) error {
	args := m.Called(ctx, bucketUrl, fileName)
	return args.Error(0)
}

func (m *BlobRepository) IsAccessible(ctx context.Context, bucketUrl string) error {
	args := m.Called(ctx, bucketUrl)
	return args.Error(0)
}

func (m *BlobRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// WriteBuffer is an in memory io.WriteCloser to hand out from OpenStream
type WriteBuffer struct {
	Data   []byte
	Closed bool
}

func (b *WriteBuffer) Write(p []byte) (int, error) {
	b.Data = append(b.Data, p...)
	return len(p), nil
}

func (b *WriteBuffer) Close() error {
	b.Closed = true
	return nil
}
