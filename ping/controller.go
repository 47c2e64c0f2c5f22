package ping

import (
	"context"
	"fmt"
	"time"

	"github.com/arloliu/go-healthping/internal/pool"
	"github.com/arloliu/go-healthping/logger"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Controller drives probe attempts until the run terminates.
type Controller struct {
	cfg      *Config
	attempt  Attempter
	reporter Reporter
	sleep    Sleeper
	metrics  *Metrics
	logger   logger.Logger
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithSleeper replaces the timer-based sleep between attempts.
func WithSleeper(s Sleeper) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.sleep = s
		}
	}
}

// WithMetrics sets the metrics updated by the controller.
func WithMetrics(m *Metrics) ControllerOption {
	return func(c *Controller) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewController creates a Controller running attempt with the timing of cfg.
func NewController(cfg *Config, attempt Attempter, reporter Reporter, opts ...ControllerOption) *Controller {
	c := &Controller{
		cfg:      cfg,
		attempt:  attempt,
		reporter: reporter,
		sleep:    pool.Sleep,
		metrics:  NewMetrics(),
		logger:   cfg.logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Metrics returns the counters updated by Run.
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}

// Run probes until a healthy reply, a console failure, a canceled context, or the end of
// the attempt budget, and returns the terminal state.
//
// Every attempt that does not end the run is followed by the fixed interval, including
// the last one of the budget.
func (c *Controller) Run(ctx context.Context) State {
	var st State

	c.logger.Info("probe started",
		"target", c.cfg.target.String(),
		"max_attempts", c.cfg.maxAttempts,
		"interval", c.cfg.interval,
	)

	c.reporter.Start()

	for !st.Terminated() {
		if err := ctx.Err(); err != nil {
			st = st.Abort(ExitPing, err)
			break
		}

		if err := c.reporter.Progress(); err != nil {
			c.logger.Error("failed to write progress", "error", err)
			c.reporter.ConsoleError(err)
			_ = c.sleep(ctx, c.cfg.interval)
			st = st.Abort(ExitIO, fmt.Errorf("%w: %w", ErrConsole, err))

			break
		}

		out := c.attempt.Probe(ctx)
		c.metrics.observe(out)

		st = st.Next(out, c.cfg.maxAttempts)
		c.logger.Debug("attempt finished", "attempt", st.Attempt, "outcome", out.String(), "state", st.String())
		c.reporter.Outcome(out)

		if out.Healthy() {
			break
		}

		if err := c.sleep(ctx, c.cfg.interval); err != nil {
			c.logger.Debug("interval interrupted", "error", err)
		}
	}

	c.reporter.Finish(st)
	c.logger.Info("probe finished", "exit_code", int(st.Code), "result", st.Code.String(), "attempts", st.Attempt)

	return st
}
