package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(expiryAlertsSentTotal)
}

var expiryAlertsSentTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "expiry_alerts_sent_total",
		Help: "Total expiry alerts delivered by the notification worker.",
	},
)

func IncExpiryAlertsSent(count int) {
	expiryAlertsSentTotal.Add(float64(count))
}
