package infra

import (
	"context"
	"encoding/binary"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	gcppropagator "github.com/GoogleCloudPlatform/opentelemetry-operations-go/propagator"
	"google.golang.org/api/option"

	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TelemetryRessources struct {
	TracerProvider    trace.TracerProvider
	Tracer            trace.Tracer
	TextMapPropagator propagation.TextMapPropagator
}

func NoopTelemetry() TelemetryRessources {
	return TelemetryRessources{
		TracerProvider:    noop.NewTracerProvider(),
		Tracer:            &noop.Tracer{},
		TextMapPropagator: nil,
	}
}

func InitTelemetry(configuration TelemetryConfiguration, apiVersion string) (TelemetryRessources, error) {
	if !configuration.Enabled {
		return NoopTelemetry(), nil
	}

	var exporter sdktrace.SpanExporter

	switch configuration.Exporter {
	case "gcp":
		gcpExporter, err := texporter.New(
			texporter.WithProjectID(configuration.ProjectID), // If empty (env variable GOOGLE_CLOUD_PROJECT not set), it will try to determine the project id from the GCP metadata server
			texporter.WithTraceClientOptions([]option.ClientOption{option.WithTelemetryDisabled()}),
		)
		if err != nil {
			return TelemetryRessources{}, errors.Wrap(err, "texporter.New error")
		}

		exporter = gcpExporter

	default: // "otlp"
		otlpExporter, err := otlptracegrpc.New(context.Background())
		if err != nil {
			return TelemetryRessources{}, errors.Wrap(err, "otlptracegrpc.New error")
		}

		exporter = otlpExporter
	}

	res, err := resource.New(context.Background(),
		resource.WithDetectors(gcp.NewDetector()),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(configuration.ApplicationName),
			semconv.ServiceVersion(apiVersion),
		),
	)
	if err != nil {
		return TelemetryRessources{}, errors.Wrap(err, "resource.New error")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(ConversionSampler{SamplingMap: configuration.SamplingMap}),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	tracer := tp.Tracer(configuration.ApplicationName)

	propagators := propagation.NewCompositeTextMapPropagator(
		gcppropagator.CloudTraceFormatPropagator{},
		propagation.TraceContext{},
		propagation.Baggage{},
	)

	otel.SetTextMapPropagator(propagators)

	return TelemetryRessources{
		TracerProvider:    tp,
		Tracer:            tracer,
		TextMapPropagator: propagators,
	}, nil
}

const defaultSamplingRate = 0.3

var (
	defaultSpanNamesSampling = map[string]float64{
		"usecases.ConversionUsecase.recognizePages": 1.0,
	}

	defaultRoutePrefixSampling = map[string]float64{
		"/health":   0.0,
		"/liveness": 0.0,
		"/metrics":  0.0,
		"/upload":   1.0,
		"/download": 0.1,
	}
)

// ConversionSampler samples http requests by route and other spans by name. Child spans follow the
// decision of their parent.
type ConversionSampler struct {
	SamplingMap TelemetrySamplingMap
}

func (ConversionSampler) Description() string {
	return "conversion-sampler"
}

func (cs ConversionSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	psc := trace.SpanContextFromContext(p.ParentContext)
	if psc.HasTraceID() && !psc.IsSampled() {
		return sdktrace.NeverSample().ShouldSample(p)
	}
	if psc.IsSampled() {
		return sdktrace.AlwaysSample().ShouldSample(p)
	}

	prob := cs.probability(p)
	decision := sdktrace.Drop
	traceId := binary.BigEndian.Uint64(p.TraceID[:8])
	if prob >= 1 || traceId < uint64(prob*float64(math.MaxUint64)) {
		decision = sdktrace.RecordAndSample
	}

	return sdktrace.SamplingResult{
		Decision:   decision,
		Attributes: p.Attributes,
		Tracestate: psc.TraceState(),
	}
}

func (cs ConversionSampler) probability(p sdktrace.SamplingParameters) float64 {
	for _, attr := range p.Attributes {
		if attr.Key != semconv.HTTPRouteKey {
			continue
		}
		route := attr.Value.AsString()
		for _, rates := range []map[string]float64{cs.SamplingMap.HttpRoutes, defaultRoutePrefixSampling} {
			for prefix, prob := range rates {
				if strings.HasPrefix(route, prefix) {
					return prob
				}
			}
		}
		return defaultSamplingRate
	}

	if prob, ok := cs.SamplingMap.SpanNames[p.Name]; ok {
		return prob
	}
	if prob, ok := defaultSpanNamesSampling[p.Name]; ok {
		return prob
	}
	return defaultSamplingRate
}
