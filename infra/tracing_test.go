package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

var testTraceId = trace.TraceID{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 1, 2, 3, 4, 5, 6, 7, 8}

func routeParams(route string) sdktrace.SamplingParameters {
	return sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       testTraceId,
		Name:          "GET " + route,
		Attributes:    []attribute.KeyValue{semconv.HTTPRouteKey.String(route)},
	}
}

func TestConversionSampler_routes(t *testing.T) {
	sampler := ConversionSampler{}

	assert.Equal(t, sdktrace.Drop, sampler.ShouldSample(routeParams("/liveness")).Decision)
	assert.Equal(t, sdktrace.RecordAndSample, sampler.ShouldSample(routeParams("/upload")).Decision)
	// the trace id sits in the middle of the id space, above the default rate
	assert.Equal(t, sdktrace.Drop, sampler.ShouldSample(routeParams("/")).Decision)
}

func TestConversionSampler_overrides(t *testing.T) {
	sampler := ConversionSampler{SamplingMap: TelemetrySamplingMap{
		HttpRoutes: map[string]float64{"/download": 1.0},
		SpanNames:  map[string]float64{"custom": 0.0},
	}}

	assert.Equal(t, sdktrace.RecordAndSample, sampler.ShouldSample(routeParams("/download/:name")).Decision)
	assert.Equal(t, sdktrace.Drop, sampler.ShouldSample(sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       testTraceId,
		Name:          "custom",
	}).Decision)
}

func TestConversionSampler_follows_parent(t *testing.T) {
	sampler := ConversionSampler{}
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: testTraceId,
		SpanID:  trace.SpanID{1},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	result := sampler.ShouldSample(sdktrace.SamplingParameters{
		ParentContext: ctx,
		TraceID:       testTraceId,
		Name:          "usecases.ConversionUsecase.recognizePages",
	})

	assert.Equal(t, sdktrace.Drop, result.Decision)
}
