package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/docneat/docneat-backend/api"
	"github.com/docneat/docneat-backend/infra"
	"github.com/docneat/docneat-backend/usecases"
	"github.com/docneat/docneat-backend/utils"
)

func RunServer(config CompiledConfig) error {
	apiConfig := loadApiConfig()
	apiConfig.AppVersion = config.Version

	serverConfig, err := loadServerConfig(apiConfig.AppName)
	if err != nil {
		return err
	}

	logger := utils.NewLogger(serverConfig.loggingFormat, slog.LevelInfo)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := serverConfig.Validate(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	if err := ValidateApiConfig(apiConfig); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, config.Version)
	defer sentry.Flush(3 * time.Second)

	telemetryRessources, err := infra.InitTelemetry(serverConfig.telemetry, config.Version)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		telemetryRessources = infra.NoopTelemetry()
	}

	repositories, err := initRepositories(ctx, serverConfig.textract, serverConfig.ocr)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer repositories.BlobRepository.Close()

	uc := usecases.NewUsecases(repositories,
		usecases.WithUploadBucketUrl(serverConfig.uploadBucketUrl),
		usecases.WithOutputBucketUrl(serverConfig.outputBucketUrl),
		usecases.WithOcrDpi(serverConfig.ocr.Dpi),
		usecases.WithOcrConcurrency(serverConfig.ocr.Concurrency),
		usecases.WithConversionTimeout(apiConfig.ConversionTimeout),
		usecases.WithConversionCacheTtl(serverConfig.conversionCacheTtl),
		usecases.WithRetention(serverConfig.retention),
	)

	router := api.InitRouterMiddlewares(ctx, apiConfig, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serverConfig.retention > 0 {
		go uc.NewRetentionUsecase().RunSchedule(notify, serverConfig.retentionSchedule)
	}

	go func() {
		logger.InfoContext(ctx, "starting server",
			slog.String("port", apiConfig.Port),
			slog.String("version", config.Version))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	return nil
}
