package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docneat/docneat-backend/mocks"
	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
)

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	blobRepository := new(mocks.BlobRepository)
	blobRepository.On("ListFiles", mock.Anything, uploadBucket, "").Return([]models.BlobObject{
		{Key: "old/statement.pdf", ModTime: now.Add(-48 * time.Hour)},
		{Key: "new/statement.pdf", ModTime: now.Add(-time.Hour)},
	}, nil)
	blobRepository.On("ListFiles", mock.Anything, outputBucket, "").Return([]models.BlobObject{
		{Key: "old.csv", ModTime: now.Add(-25 * time.Hour)},
		{Key: "old.xlsx", ModTime: now.Add(-25 * time.Hour)},
	}, nil)
	blobRepository.On("DeleteFile", mock.Anything, uploadBucket, "old/statement.pdf").Return(nil)
	blobRepository.On("DeleteFile", mock.Anything, outputBucket, "old.csv").Return(nil)
	blobRepository.On("DeleteFile", mock.Anything, outputBucket, "old.xlsx").Return(errors.New("permission denied"))

	uc := NewUsecases(repositories.Repositories{BlobRepository: blobRepository},
		WithUploadBucketUrl(uploadBucket),
		WithOutputBucketUrl(outputBucket),
		WithRetention(24*time.Hour))
	retention := uc.NewRetentionUsecase()

	deleted, err := retention.PurgeExpired(ctx, now)

	assert.Equal(t, 2, deleted)
	assert.ErrorContains(t, err, "old.xlsx")
	blobRepository.AssertExpectations(t)
	blobRepository.AssertNotCalled(t, "DeleteFile", mock.Anything, uploadBucket, "new/statement.pdf")
}

func TestPurgeExpired_disabled(t *testing.T) {
	blobRepository := new(mocks.BlobRepository)
	uc := NewUsecases(repositories.Repositories{BlobRepository: blobRepository},
		WithUploadBucketUrl(uploadBucket),
		WithOutputBucketUrl(outputBucket))

	deleted, err := uc.NewRetentionUsecase().PurgeExpired(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Zero(t, deleted)
	blobRepository.AssertNotCalled(t, "ListFiles", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunSchedule_stopsWithContext(t *testing.T) {
	uc := NewUsecases(repositories.Repositories{BlobRepository: new(mocks.BlobRepository)},
		WithRetention(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		uc.NewRetentionUsecase().RunSchedule(ctx, "0 0 * * *")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSchedule did not return after the context was cancelled")
	}
}
