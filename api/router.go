package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/docneat/docneat-backend/api/middleware"
	"github.com/docneat/docneat-backend/infra"
	"github.com/docneat/docneat-backend/utils"
)

// corsOption allows every origin unless a list of origins is configured, since the web frontend
// can be hosted anywhere.
func corsOption(ctx context.Context, conf Configuration) cors.Config {
	logger := utils.LoggerFromContext(ctx)
	config := cors.Config{
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPost,
		},
		AllowHeaders: []string{
			"Origin", "Accept", "Authorization", "Content-Type", "Content-Length",
			"X-Requested-With", "baggage", "sentry-trace",
		},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(conf.CorsAllowOrigins) == 0 || slices.Contains(conf.CorsAllowOrigins, "*") {
		config.AllowAllOrigins = true
		return config
	}

	for _, s := range conf.CorsAllowOrigins {
		parsedUrl, err := url.Parse(s)
		switch {
		case err != nil:
			logger.Error("Failed to parse a CORS origin, requests from this origin will be rejected.", "url", s)
		case !slices.Contains([]string{"http", "https"}, parsedUrl.Scheme):
			logger.Error(
				fmt.Sprintf("The url %s does not contain a scheme (http or https), so it cannot be used for CORS.", s),
				"url", s)
		default:
			u := url.URL{
				Scheme: parsedUrl.Scheme,
				Host:   parsedUrl.Host,
			}
			config.AllowOrigins = append(config.AllowOrigins, u.String())
		}
	}
	return config
}

func InitRouterMiddlewares(
	ctx context.Context,
	conf Configuration,
	telemetryRessources infra.TelemetryRessources,
) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(corsOption(ctx, conf)))
	r.Use(middleware.NewLogging(logger,
		middleware.WithDefaultLevel(utils.ParseLogLevel(conf.RequestLoggingLevel)),
		middleware.WithIgnorePath([]string{"/liveness", "/metrics"}),
	))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(otelgin.Middleware(
		conf.AppName,
		otelgin.WithTracerProvider(telemetryRessources.TracerProvider),
		otelgin.WithPropagators(telemetryRessources.TextMapPropagator),
	))
	r.Use(utils.StoreOpenTelemetryTracerInContextMiddleware(telemetryRessources.Tracer))

	return r
}
