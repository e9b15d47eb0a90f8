package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(scanLatencyMs, scanRateLimitedTotal)
}

var (
	scanLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scan_latency_ms",
			Help:    "Gifticon image extraction latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2000, 4000, 8000, 15000},
		},
		[]string{"provider", "success"},
	)

	scanRateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scan_rate_limited_total",
			Help: "Scan requests rejected by the per-user rate limit.",
		},
	)
)

func ObserveScan(provider string, latencyMs int, success bool) {
	scanLatencyMs.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func IncScanRateLimited() { scanRateLimitedTotal.Inc() }
