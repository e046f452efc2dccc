package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/docneat/docneat-backend/dto"
	"github.com/docneat/docneat-backend/usecases"
)

// multipart framing around the uploaded file
const multipartOverhead = 64 * 1024

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(duration),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.JSON(http.StatusGatewayTimeout, dto.APIErrorResponse{
				Message:   "the conversion took too long",
				ErrorCode: dto.Timeout,
			})
		}),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/", handleRoot)
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/health", handleHealth(uc))
	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// The usecase times out by itself, the request timeout only guards against slow clients
	r.POST("/upload",
		timeoutMiddleware(conf.ConversionTimeout+5*time.Second),
		limits.RequestSizeLimiter(conf.MaxUploadSize+multipartOverhead),
		handleUpload(uc, conf.MaxUploadSize))
	r.GET("/download/:name", handleDownload(uc))
}

func handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "DocNeat Backend Ready - Textract + CSV support",
	})
}
