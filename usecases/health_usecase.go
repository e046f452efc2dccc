package usecases

import (
	"context"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
	"github.com/docneat/docneat-backend/utils"
)

type HealthUsecase struct {
	blobRepository  repositories.BlobRepository
	recognizer      repositories.TextRecognizer
	uploadBucketUrl string
	outputBucketUrl string
}

func (u *HealthUsecase) GetHealthStatus(ctx context.Context) models.HealthStatus {
	logger := utils.LoggerFromContext(ctx)
	statuses := []models.HealthItemStatus{}

	buckets := []struct {
		name      models.HealthItemName
		bucketUrl string
	}{
		{models.OutputStorageHealthItemName, u.outputBucketUrl},
		{models.UploadStorageHealthItemName, u.uploadBucketUrl},
	}
	for _, bucket := range buckets {
		err := u.blobRepository.IsAccessible(ctx, bucket.bucketUrl)
		if err != nil {
			logger.WarnContext(ctx, "storage health check failed", "item", bucket.name, "error", err.Error())
		}
		statuses = append(statuses, models.HealthItemStatus{
			Name:   bucket.name,
			Status: err == nil,
		})
	}

	// Check the ocr engine and its languages
	err := u.recognizer.Available()
	if err != nil {
		logger.WarnContext(ctx, "ocr engine health check failed", "error", err.Error())
	}
	statuses = append(statuses, models.HealthItemStatus{
		Name:   models.OcrEngineHealthItemName,
		Status: err == nil,
	})

	return models.HealthStatus{
		Statuses: statuses,
	}
}
