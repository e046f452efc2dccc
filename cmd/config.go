package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"github.com/cockroachdb/errors"

	"github.com/docneat/docneat-backend/api"
	"github.com/docneat/docneat-backend/infra"
	"github.com/docneat/docneat-backend/utils"
)

type CompiledConfig struct {
	Version string
}

type ServerConfig struct {
	loggingFormat      string
	sentryDsn          string
	uploadBucketUrl    string
	outputBucketUrl    string
	conversionCacheTtl time.Duration
	retention          time.Duration
	retentionSchedule  string
	telemetry          infra.TelemetryConfiguration
	textract           infra.TextractConfiguration
	ocr                infra.OcrConfiguration
}

func (config ServerConfig) Validate() error {
	if config.uploadBucketUrl == "" || config.outputBucketUrl == "" {
		return errors.New("UPLOAD_BUCKET_URL and OUTPUT_BUCKET_URL must not be empty")
	}
	if config.ocr.Dpi < 72 || config.ocr.Dpi > 600 {
		return errors.Newf("OCR_DPI must be between 72 and 600, got %v", config.ocr.Dpi)
	}
	if config.ocr.Concurrency < 1 {
		return errors.New("OCR_CONCURRENCY must be at least 1")
	}
	if config.ocr.MaxPages < 0 {
		return errors.New("OCR_MAX_PAGES must not be negative")
	}
	if len(config.ocr.Languages) == 0 {
		return errors.New("OCR_LANGUAGES must name at least one language")
	}
	if config.textract.RateLimit < 0 {
		return errors.New("TEXTRACT_RATE_LIMIT must not be negative")
	}
	if config.retention < 0 {
		return errors.New("EXPORT_RETENTION_HOUR must not be negative")
	}
	if config.retention > 0 {
		gron := gronx.New()
		if !gron.IsValid(config.retentionSchedule) {
			return errors.Newf("RETENTION_SCHEDULE is not a valid cron expression: %q", config.retentionSchedule)
		}
		// a cached conversion must not point to purged exports
		if config.conversionCacheTtl > config.retention {
			return errors.New("CONVERSION_CACHE_TTL_MINUTE must not exceed EXPORT_RETENTION_HOUR")
		}
	}
	if config.telemetry.Exporter != "gcp" && config.telemetry.Exporter != "otlp" {
		return errors.Newf("TRACING_EXPORTER must be gcp or otlp, got %q", config.telemetry.Exporter)
	}
	return nil
}

func ValidateApiConfig(conf api.Configuration) error {
	if conf.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE_MB must be positive")
	}
	if conf.ConversionTimeout <= 0 {
		return errors.New("CONVERSION_TIMEOUT_SECOND must be positive")
	}
	return nil
}

func loadApiConfig() api.Configuration {
	return api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "docneat-backend",
		Port:                utils.GetEnv("PORT", "8000"),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "info"),
		CorsAllowOrigins:    utils.GetEnvList("CORS_ALLOW_ORIGINS", nil),
		MaxUploadSize:       int64(utils.GetEnv("MAX_UPLOAD_SIZE_MB", 30)) * 1024 * 1024,
		ConversionTimeout:   time.Duration(utils.GetEnv("CONVERSION_TIMEOUT_SECOND", 120)) * time.Second,
		EnablePrometheus:    utils.GetEnv("ENABLE_PROMETHEUS", true),
	}
}

func loadServerConfig(appName string) (ServerConfig, error) {
	samplingMap, err := parseSamplingRates(utils.GetEnv("TRACING_SAMPLING_RATES", ""))
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		loggingFormat:      utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:          utils.GetEnv("SENTRY_DSN", ""),
		uploadBucketUrl:    utils.GetEnv("UPLOAD_BUCKET_URL", "file:///tmp/uploads?create_dir=true"),
		outputBucketUrl:    utils.GetEnv("OUTPUT_BUCKET_URL", "file:///tmp/outputs?create_dir=true"),
		conversionCacheTtl: time.Duration(utils.GetEnv("CONVERSION_CACHE_TTL_MINUTE", 0)) * time.Minute,
		retention:          time.Duration(utils.GetEnv("EXPORT_RETENTION_HOUR", 0)) * time.Hour,
		retentionSchedule:  utils.GetEnv("RETENTION_SCHEDULE", "*/15 * * * *"),
		telemetry: infra.TelemetryConfiguration{
			Enabled:         utils.GetEnv("ENABLE_TRACING", false),
			ApplicationName: appName,
			ProjectID:       utils.GetEnv("GOOGLE_CLOUD_PROJECT", ""),
			Exporter:        utils.GetEnv("TRACING_EXPORTER", "otlp"),
			SamplingMap:     samplingMap,
		},
		textract: loadTextractConfig(),
		ocr:      loadOcrConfig(),
	}, nil
}

func loadTextractConfig() infra.TextractConfiguration {
	return infra.TextractConfiguration{
		Enabled:         utils.GetEnv("TEXTRACT_ENABLED", false),
		Region:          utils.GetEnv("AWS_REGION", "us-east-1"),
		AccessKeyId:     utils.GetEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: utils.GetEnv("AWS_SECRET_ACCESS_KEY", ""),
		RateLimit:       utils.GetEnv("TEXTRACT_RATE_LIMIT", 1.0),
	}
}

func loadOcrConfig() infra.OcrConfiguration {
	return infra.OcrConfiguration{
		Languages:   utils.GetEnvList("OCR_LANGUAGES", []string{"eng"}),
		Dpi:         utils.GetEnv("OCR_DPI", 200.0),
		MaxPages:    utils.GetEnv("OCR_MAX_PAGES", 0),
		Concurrency: utils.GetEnv("OCR_CONCURRENCY", 2),
	}
}

// parseSamplingRates reads a comma separated list of key=rate pairs. Keys starting with a slash are
// http route prefixes, other keys are span names. Example: "/upload=1,/download=0.1,ocr=0.5".
func parseSamplingRates(s string) (infra.TelemetrySamplingMap, error) {
	samplingMap := infra.TelemetrySamplingMap{
		HttpRoutes: map[string]float64{},
		SpanNames:  map[string]float64{},
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return infra.TelemetrySamplingMap{}, errors.Newf("invalid sampling rate %q, expected key=rate", pair)
		}
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate < 0 || rate > 1 {
			return infra.TelemetrySamplingMap{}, errors.Newf("invalid sampling rate %q, expected a number between 0 and 1", pair)
		}
		if strings.HasPrefix(key, "/") {
			samplingMap.HttpRoutes[key] = rate
		} else {
			samplingMap.SpanNames[key] = rate
		}
	}
	return samplingMap, nil
}
