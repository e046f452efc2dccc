package usecases

import (
	"context"
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/repositories"
	"github.com/docneat/docneat-backend/utils"
)

// Only files produced by a conversion can be downloaded.
var downloadNamePattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.(csv|xlsx)$`)

type DownloadUsecase struct {
	blobRepository  repositories.BlobRepository
	outputBucketUrl string
}

// OpenDownload opens an exported file. The caller must close the returned reader.
func (usecase DownloadUsecase) OpenDownload(ctx context.Context, name string) (models.Download, error) {
	matches := downloadNamePattern.FindStringSubmatch(name)
	if matches == nil {
		return models.Download{}, errors.Wrapf(models.ErrInvalidDownloadName, "%q", name)
	}

	blob, err := usecase.blobRepository.GetBlob(ctx, usecase.outputBucketUrl, name)
	if err != nil {
		return models.Download{}, err
	}
	utils.LoggerFromContext(ctx).DebugContext(ctx, "serving export", "file_name", name, "size", blob.Size)

	download := models.Download{
		FileName:    models.ExcelDownloadName,
		ContentType: models.ExcelContentType,
		Size:        blob.Size,
		ReadCloser:  blob.ReadCloser,
	}
	if "."+matches[1] == models.CsvExtension {
		download.FileName = models.CsvDownloadName
		download.ContentType = models.CsvContentType
	}
	return download, nil
}
