package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docneat/docneat-backend/usecases"
)

func handleDownload(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewDownloadUsecase()
		download, err := usecase.OpenDownload(ctx, c.Param("name"))
		if presentError(ctx, c, err) {
			return
		}
		defer download.ReadCloser.Close()

		c.DataFromReader(http.StatusOK, download.Size, download.ContentType, download.ReadCloser,
			map[string]string{
				"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, download.FileName),
			})
	}
}
