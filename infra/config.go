package infra

type TelemetryConfiguration struct {
	Enabled         bool
	ApplicationName string
	ProjectID       string
	// Exporter is either "gcp" or "otlp". The otlp exporter is configured with the standard
	// OTEL_EXPORTER_OTLP_* environment variables.
	Exporter    string
	SamplingMap TelemetrySamplingMap
}

// TelemetrySamplingMap overrides the default sampling rates, by http route prefix and by span name.
type TelemetrySamplingMap struct {
	HttpRoutes map[string]float64
	SpanNames  map[string]float64
}

type TextractConfiguration struct {
	Enabled         bool
	Region          string
	AccessKeyId     string
	SecretAccessKey string
	RateLimit       float64
}

type OcrConfiguration struct {
	Languages   []string
	Dpi         float64
	MaxPages    int
	Concurrency int
}
