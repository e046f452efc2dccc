package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
	"github.com/cockroachdb/errors"

	"github.com/docneat/docneat-backend/repositories"
	"github.com/docneat/docneat-backend/utils"
)

// RetentionUsecase deletes the uploads and the exports once they are older than the retention period.
type RetentionUsecase struct {
	blobRepository repositories.BlobRepository
	bucketUrls     []string
	retention      time.Duration
}

// PurgeExpired deletes every file last modified before now minus the retention period and returns
// the number of deleted files. A failed deletion does not stop the purge.
func (usecase RetentionUsecase) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	logger := utils.LoggerFromContext(ctx)
	tracer := utils.OpenTelemetryTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "usecases.RetentionUsecase.PurgeExpired")
	defer span.End()

	if usecase.retention <= 0 {
		return 0, nil
	}
	threshold := now.Add(-usecase.retention)

	deleted := 0
	var errs error
	for _, bucketUrl := range usecase.bucketUrls {
		objects, err := usecase.blobRepository.ListFiles(ctx, bucketUrl, "")
		if err != nil {
			errs = errors.CombineErrors(errs, err)
			continue
		}
		for _, obj := range objects {
			if !obj.ModTime.Before(threshold) {
				continue
			}
			if err := usecase.blobRepository.DeleteFile(ctx, bucketUrl, obj.Key); err != nil {
				errs = errors.CombineErrors(errs, errors.Wrapf(err, "failed to delete %s", obj.Key))
				continue
			}
			deleted++
		}
	}

	utils.MetricPurgedFiles.Add(float64(deleted))
	if deleted > 0 {
		logger.InfoContext(ctx, fmt.Sprintf("purged %d expired files", deleted))
	}
	return deleted, errs
}

// RunSchedule purges expired files at every tick of the cron schedule, until ctx is done.
func (usecase RetentionUsecase) RunSchedule(ctx context.Context, schedule string) {
	logger := utils.LoggerFromContext(ctx)
	gron := gronx.New()
	if !gron.IsValid(schedule) {
		utils.LogAndReportSentryError(ctx, errors.Newf("invalid retention schedule %q", schedule))
		return
	}

	for {
		next, err := gronx.NextTick(schedule, false)
		if err != nil {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "failed to compute the next retention tick"))
			return
		}
		logger.DebugContext(ctx, fmt.Sprintf("next retention purge at %s", next.Format(time.RFC3339)))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := usecase.PurgeExpired(ctx, time.Now()); err != nil {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "retention purge failed"))
		}
	}
}
