package utils

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
)

func LogAndReportSentryError(ctx context.Context, err error) {
	logger := LoggerFromContext(ctx)
	logger.ErrorContext(ctx, fmt.Sprintf("%+v", err))

	// Ignore errors that are due to context deadlines or canceled context, as presumably their root case has been handled
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		logger.DebugContext(ctx, fmt.Sprintf("Deadline exceeded or context canceled: %v", err))
		return
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
}

// LogAndReportStageError is used for failures that are recovered from, such as an extraction stage
// falling back to the next one: they are logged as warnings and still reported.
func LogAndReportStageError(ctx context.Context, stage string, err error) {
	logger := LoggerFromContext(ctx)
	logger.WarnContext(ctx, fmt.Sprintf("%s failed, falling back: %v", stage, err), "stage", stage)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(errors.Wrapf(err, "%s stage", stage))
	} else {
		sentry.CaptureException(errors.Wrapf(err, "%s stage", stage))
	}
}
