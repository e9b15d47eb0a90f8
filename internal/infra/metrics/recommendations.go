package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		recommendationsTotal,
		recommendationsEmptyTotal,
		recommendationsDismissedTotal,
	)
}

var (
	recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendations produced, by winning rule family.",
		},
		[]string{"family"},
	)

	recommendationsEmptyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_empty_total",
			Help: "Requests that produced no recommendation.",
		},
	)

	recommendationsDismissedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_dismissed_total",
			Help: "Recommendations dismissed by users.",
		},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncRecommendation(family string) {
	recommendationsTotal.WithLabelValues(norm(family)).Inc()
}

func IncRecommendationEmpty() { recommendationsEmptyTotal.Inc() }

func IncRecommendationDismissed() { recommendationsDismissedTotal.Inc() }
