// Package metrics defines the Prometheus collectors of the bot: Telegram
// updates and send failures, AlAdhan request outcomes and latency, and the
// build version. Each file queues its collectors from init; serve registers
// the queue once at startup.
package metrics

import (
	"fmt"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pending      []prometheus.Collector
	registerOnce sync.Once
)

func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// registerAll adds every queued collector to reg, stopping at the first failure.
func registerAll(reg prometheus.Registerer) error {
	for _, c := range pending {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

// MustRegister adds the bot collectors to the default registry.
// Later calls are no-ops; a duplicate registration panics.
func MustRegister() {
	registerOnce.Do(func() {
		if err := registerAll(prometheus.DefaultRegisterer); err != nil {
			panic(err)
		}
	})
}

// norm lowercases label values so "Timings" and "timings" share a series.
func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
