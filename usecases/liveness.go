package usecases

import (
	"context"

	"github.com/docneat/docneat-backend/repositories"
)

type LivenessUsecase struct {
	blobRepository  repositories.BlobRepository
	outputBucketUrl string
}

// Liveness checks that exports can still be written, which every conversion needs.
func (u *LivenessUsecase) Liveness(ctx context.Context) error {
	return u.blobRepository.IsAccessible(ctx, u.outputBucketUrl)
}
