package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/docneat/docneat-backend/dto"
	"github.com/docneat/docneat-backend/models"
	"github.com/docneat/docneat-backend/usecases"
)

type FileForm struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

func handleUpload(uc usecases.Usecases, maxUploadSize int64) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if c.Request.ContentLength > maxUploadSize+multipartOverhead {
			presentError(ctx, c, errors.Wrapf(models.PayloadTooLargeError,
				"uploads are limited to %d bytes", maxUploadSize))
			return
		}

		var form FileForm
		if err := c.ShouldBind(&form); err != nil {
			// the size limiter has already answered
			if c.Writer.Written() {
				return
			}
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				presentError(ctx, c, models.ErrMissingFile)
				return
			}
			presentError(ctx, c, errors.Wrapf(models.BadParameterError, "invalid multipart body: %v", err))
			return
		}
		if form.File.Size > maxUploadSize {
			presentError(ctx, c, errors.Wrapf(models.PayloadTooLargeError,
				"uploads are limited to %d bytes", maxUploadSize))
			return
		}

		document, err := readDocument(form.File)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewConversionUsecase()
		conversion, err := usecase.Convert(ctx, document)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptConversionResponse(conversion))
	}
}

func readDocument(header *multipart.FileHeader) (models.Document, error) {
	file, err := header.Open()
	if err != nil {
		return models.Document{}, errors.Wrap(models.BadParameterError, err.Error())
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.Document{}, errors.Wrap(models.BadParameterError, err.Error())
	}
	return models.Document{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
