// Package metricsfile exports the counters of a probe run in the Prometheus text format,
// for collection by a node exporter textfile collector.
package metricsfile

import (
	"fmt"

	"github.com/arloliu/go-healthping/ping"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "healthping"

// NewRegistry returns a registry exposing m and the terminal state st.
func NewRegistry(m *ping.Metrics, st ping.State) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	counters := []struct {
		name string
		help string
		c    interface{ Value() int64 }
	}{
		{"attempts_total", "Number of probe attempts started.", m.Attempts},
		{"connection_failures_total", "Number of attempts that ended in a connection error.", m.ConnFailures},
		{"invalid_responses_total", "Number of attempts that read an unrecognized reply.", m.InvalidResponses},
		{"healthy_responses_total", "Number of healthy replies.", m.HealthyResponses},
	}

	for _, c := range counters {
		counter := c.c
		err := reg.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      c.name,
			Help:      c.help,
		}, func() float64 { return float64(counter.Value()) }))
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", c.name, err)
		}
	}

	exitCode := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "exit_code",
		Help:      "Exit code of the last probe run.",
	})
	exitCode.Set(float64(st.Code))

	if err := reg.Register(exitCode); err != nil {
		return nil, fmt.Errorf("register exit_code: %w", err)
	}

	return reg, nil
}

// Write atomically writes the metrics of a finished run to path.
func Write(path string, m *ping.Metrics, st ping.State) error {
	reg, err := NewRegistry(m, st)
	if err != nil {
		return err
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}

	return nil
}
