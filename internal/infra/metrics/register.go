package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors declared across this package queue themselves here at init
// time; nothing touches the default registry until MustRegister runs.
var (
	mu      sync.Mutex
	pending []prometheus.Collector
	done    bool
)

func register(cs ...prometheus.Collector) {
	mu.Lock()
	pending = append(pending, cs...)
	mu.Unlock()
}

// MustRegister flushes every queued collector into the default Prometheus
// registry. Safe to call more than once; only the first call registers.
func MustRegister() {
	mu.Lock()
	defer mu.Unlock()
	if done || len(pending) == 0 {
		return
	}
	done = true
	prometheus.MustRegister(pending...)
}
