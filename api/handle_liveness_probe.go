package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docneat/docneat-backend/dto"
	"github.com/docneat/docneat-backend/usecases"
)

func handleLivenessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usecase := uc.NewLivenessUsecase()
		err := usecase.Liveness(ctx)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mood": "ok",
		})
	}
}

func handleHealth(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewHealthUsecase()
		status := usecase.GetHealthStatus(c.Request.Context())

		httpStatus := http.StatusOK
		if !status.IsHealthy() {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, dto.AdaptHealthStatus(status))
	}
}
