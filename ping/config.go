package ping

import (
	"errors"
	"net/netip"
	"time"

	"github.com/arloliu/go-healthping/logger"
)

// Default timing of the probe.
const (
	// DefaultDialTimeout bounds the TCP connect of each attempt.
	DefaultDialTimeout = 8 * time.Second
	// DefaultIOTimeout bounds the handshake write and the response read of each attempt.
	DefaultIOTimeout = 8 * time.Second
	// DefaultInterval is the fixed delay after every attempt that did not succeed.
	DefaultInterval = 12 * time.Second
	// DefaultMaxAttempts is the attempt budget.
	DefaultMaxAttempts = 30
)

// Config represents the configuration of a probe run.
type Config struct {
	// target is the numeric IP and port of the probed service.
	target netip.AddrPort

	// dialTimeout defines the timeout for establishing the TCP connection.
	// Defaults to 8 seconds.
	dialTimeout time.Duration

	// ioTimeout defines the write and read timeout on an established connection.
	// Defaults to 8 seconds.
	ioTimeout time.Duration

	// interval defines the delay after each attempt that did not end the run,
	// and after a console failure.
	// Defaults to 12 seconds.
	interval time.Duration

	// maxAttempts defines the attempt budget.
	// Defaults to 30.
	maxAttempts int

	logger logger.Logger
}

// NewConfig creates a probe configuration for target and applies the optional functional options.
//
// Returns the configuration and an error if the target or any option is invalid.
func NewConfig(target netip.AddrPort, opts ...Option) (*Config, error) {
	cfg := &Config{
		dialTimeout: DefaultDialTimeout,
		ioTimeout:   DefaultIOTimeout,
		interval:    DefaultInterval,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.GetLogger(),
	}

	if err := withTarget(target).apply(cfg); err != nil {
		return cfg, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func (cfg *Config) Target() netip.AddrPort     { return cfg.target }
func (cfg *Config) DialTimeout() time.Duration { return cfg.dialTimeout }
func (cfg *Config) IOTimeout() time.Duration   { return cfg.ioTimeout }
func (cfg *Config) Interval() time.Duration    { return cfg.interval }
func (cfg *Config) MaxAttempts() int           { return cfg.maxAttempts }
func (cfg *Config) Logger() logger.Logger      { return cfg.logger }

// Option represents a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc struct {
	name      string
	applyFunc func(*Config) error
}

func (o *optFunc) apply(cfg *Config) error {
	if cfg == nil {
		return ErrConfigNil
	}
	return o.applyFunc(cfg)
}

func newOptFunc(name string, f func(*Config) error) *optFunc {
	return &optFunc{name: name, applyFunc: f}
}

func withTarget(target netip.AddrPort) Option {
	return newOptFunc("withTarget", func(cfg *Config) error {
		if !target.IsValid() {
			return ErrInvalidTarget
		}
		cfg.target = target

		return nil
	})
}

// WithDialTimeout sets the timeout for establishing the TCP connection.
// An error is returned if d is not positive.
func WithDialTimeout(d time.Duration) Option {
	return newOptFunc("WithDialTimeout", func(cfg *Config) error {
		if d <= 0 {
			return errors.New("dial timeout must be positive")
		}
		cfg.dialTimeout = d

		return nil
	})
}

// WithIOTimeout sets the read and write timeout applied once connected.
// An error is returned if d is not positive.
func WithIOTimeout(d time.Duration) Option {
	return newOptFunc("WithIOTimeout", func(cfg *Config) error {
		if d <= 0 {
			return errors.New("io timeout must be positive")
		}
		cfg.ioTimeout = d

		return nil
	})
}

// WithInterval sets the fixed delay between attempts.
// Zero disables the delay; an error is returned if d is negative.
func WithInterval(d time.Duration) Option {
	return newOptFunc("WithInterval", func(cfg *Config) error {
		if d < 0 {
			return errors.New("interval must not be negative")
		}
		cfg.interval = d

		return nil
	})
}

// WithMaxAttempts sets the attempt budget.
// An error is returned if n is less than 1.
func WithMaxAttempts(n int) Option {
	return newOptFunc("WithMaxAttempts", func(cfg *Config) error {
		if n < 1 {
			return errors.New("max attempts must be at least 1")
		}
		cfg.maxAttempts = n

		return nil
	})
}

// WithLogger sets the logger used by the prober and the controller.
func WithLogger(l logger.Logger) Option {
	return newOptFunc("WithLogger", func(cfg *Config) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
