package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/docneat/docneat-backend/mocks"
	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
)

func TestGetHealthStatus(t *testing.T) {
	blobRepository := new(mocks.BlobRepository)
	recognizer := new(mocks.TextRecognizer)
	blobRepository.On("IsAccessible", context.Background(), outputBucket).Return(nil)
	blobRepository.On("IsAccessible", context.Background(), uploadBucket).Return(errors.New("access denied"))
	recognizer.On("Available").Return(nil)

	uc := NewUsecases(repositories.Repositories{
		BlobRepository: blobRepository,
		TextRecognizer: recognizer,
	}, WithUploadBucketUrl(uploadBucket), WithOutputBucketUrl(outputBucket))
	health := uc.NewHealthUsecase()

	status := health.GetHealthStatus(context.Background())

	assert.False(t, status.IsHealthy())
	assert.Equal(t, []models.HealthItemStatus{
		{Name: models.OutputStorageHealthItemName, Status: true},
		{Name: models.UploadStorageHealthItemName, Status: false},
		{Name: models.OcrEngineHealthItemName, Status: true},
	}, status.Statuses)
}

func TestLiveness(t *testing.T) {
	blobRepository := new(mocks.BlobRepository)
	blobRepository.On("IsAccessible", context.Background(), outputBucket).Return(nil).Once()
	blobRepository.On("IsAccessible", context.Background(), outputBucket).Return(errors.New("gone")).Once()

	uc := NewUsecases(repositories.Repositories{BlobRepository: blobRepository},
		WithOutputBucketUrl(outputBucket))
	liveness := uc.NewLivenessUsecase()

	assert.NoError(t, liveness.Liveness(context.Background()))
	assert.Error(t, liveness.Liveness(context.Background()))
}
