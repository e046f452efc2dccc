package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricConversionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docneat",
		Name:      "conversions_total",
		Help:      "Number of document conversions, by extraction method",
	}, []string{"method"})

	MetricConversionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "docneat",
		Name:      "conversion_duration_seconds",
		Help:      "Duration of document conversions, by extraction method",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"method"})

	MetricExtractionStageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docneat",
		Name:      "extraction_stage_failures_total",
		Help:      "Number of failed extraction stages, by stage",
	}, []string{"stage"})

	MetricOcrPages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "docneat",
		Name:      "ocr_pages_total",
		Help:      "Number of pages sent to the OCR engine",
	})

	MetricConversionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "docneat",
		Name:      "conversion_cache_hits_total",
		Help:      "Number of uploads served from the conversion cache",
	})

	MetricPurgedFiles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "docneat",
		Name:      "purged_files_total",
		Help:      "Number of expired uploads and exports deleted",
	})
)
