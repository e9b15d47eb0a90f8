package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		gifticonsTotal,
		gifticonsRegisteredTotal,
	)
}

var (
	gifticonsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gifticons_total",
			Help: "Current number of stored gifticons by usage state.",
		},
		[]string{"state"}, // 'used', 'unused'
	)

	gifticonsRegisteredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gifticons_registered_total",
			Help: "Gifticons registered, by source (manual/scan).",
		},
		[]string{"source"},
	)
)

func SetGifticonsTotal(used, unused int) {
	gifticonsTotal.WithLabelValues("used").Set(float64(used))
	gifticonsTotal.WithLabelValues("unused").Set(float64(unused))
}

func IncGifticonRegistered(source string) {
	gifticonsRegisteredTotal.WithLabelValues(norm(source)).Inc()
}
