package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/docneat/docneat-backend/dto"
	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/utils"
)

type errorPresentation struct {
	err    error
	status int
	code   dto.ErrorCode
}

// Specific errors come first, the base errors they wrap are matched afterwards.
var errorPresentations = []errorPresentation{
	{models.ErrMissingFile, http.StatusBadRequest, dto.MissingFile},
	{models.ErrEmptyDocument, http.StatusBadRequest, dto.EmptyDocument},
	{models.ErrInvalidDownloadName, http.StatusBadRequest, dto.InvalidDownloadName},
	{models.ErrUnsupportedDocument, http.StatusUnsupportedMediaType, dto.UnsupportedDocument},
	{models.ErrUnreadableDocument, http.StatusUnprocessableEntity, dto.UnreadableDocument},
	{models.BadParameterError, http.StatusBadRequest, dto.BadParameter},
	{models.NotFoundError, http.StatusNotFound, dto.ExportNotFound},
	{models.PayloadTooLargeError, http.StatusRequestEntityTooLarge, dto.DocumentTooLarge},
	{models.UnsupportedMediaTypeError, http.StatusUnsupportedMediaType, dto.UnsupportedDocument},
	{models.UnprocessableEntityError, http.StatusUnprocessableEntity, dto.UnreadableDocument},
}

func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	logger := utils.LoggerFromContext(ctx)

	for _, p := range errorPresentations {
		if errors.Is(err, p.err) {
			logger.InfoContext(ctx, fmt.Sprintf("%d error: %v", p.status, err))
			c.JSON(p.status, dto.APIErrorResponse{Message: err.Error(), ErrorCode: p.code})
			return true
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		logger.WarnContext(ctx, fmt.Sprintf("conversion timed out: %v", err))
		c.JSON(http.StatusGatewayTimeout, dto.APIErrorResponse{
			Message:   "the conversion took too long",
			ErrorCode: dto.Timeout,
		})
		return true
	}

	utils.LogAndReportSentryError(ctx, err)
	c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{
		Message:   "an unexpected error occurred while processing the document",
		ErrorCode: dto.InternalError,
	})
	return true
}
