package ping

import "github.com/puzpuzpuz/xsync/v3"

// Metrics contains counters of one probe run.
// Counters can be used as the value of a prometheus CounterFunc.
type Metrics struct {
	// Attempts indicates the number of probe attempts started.
	Attempts *xsync.Counter
	// ConnFailures indicates the number of attempts that ended in a connection error.
	ConnFailures *xsync.Counter
	// InvalidResponses indicates the number of attempts that read an unrecognized reply.
	InvalidResponses *xsync.Counter
	// HealthyResponses indicates the number of healthy replies, at most one per run.
	HealthyResponses *xsync.Counter
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Attempts:         xsync.NewCounter(),
		ConnFailures:     xsync.NewCounter(),
		InvalidResponses: xsync.NewCounter(),
		HealthyResponses: xsync.NewCounter(),
	}
}

func (m *Metrics) observe(o Outcome) {
	m.Attempts.Inc()

	switch o.Kind {
	case OutcomeConnectionFailure:
		m.ConnFailures.Inc()
	case OutcomeInvalidResponse:
		m.InvalidResponses.Inc()
	case OutcomeSuccess, OutcomeSuccessUnexpected:
		m.HealthyResponses.Inc()
	}
}
