package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(generatorLatencyMs, generatorFallbacks) }

var generatorLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "generator_latency_ms",
		Help:    "Number-generation latency distribution in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
	},
	[]string{"source", "success"},
)

var generatorFallbacks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "generator_fallbacks_total",
		Help: "Times an external source failed validation and the local sampler took over.",
	},
	[]string{"source"},
)

func ObserveGeneration(source string, latencyMs int, success bool) {
	generatorLatencyMs.WithLabelValues(norm(source), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncGeneratorFallback(source string) {
	generatorFallbacks.WithLabelValues(norm(source)).Inc()
}
