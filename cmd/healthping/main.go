// Command healthping blocks until the service at host:port answers the healthping
// handshake, then exits with a status describing the outcome.
//
// Usage:
//
//	healthping host:port
//
// The address must be a numeric IP and port; IPv6 addresses are written in brackets.
//
// Exit codes:
//
//	0  the target replied healthy
//	1  usage error
//	2  attempt budget exhausted, the last connection error is printed
//	3  attempt budget exhausted without any connection error
//	4  console output failed
//
// Environment:
//
//	HEALTHPING_LOG_LEVEL     debug, info, warn or error (default warn)
//	HEALTHPING_METRICS_FILE  write Prometheus text metrics to this path after the run
//	ENV=development          human readable colored logs
package main

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/arloliu/go-healthping/internal/metricsfile"
	"github.com/arloliu/go-healthping/logger"
	"github.com/arloliu/go-healthping/ping"
	"github.com/google/uuid"
)

const (
	envLogLevel    = "HEALTHPING_LOG_LEVEL"
	envMetricsFile = "HEALTHPING_METRICS_FILE"
	envMode        = "ENV"
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	// extra options and sleeper are used by tests to shorten the probe timing.
	opts    []ping.Option
	sleeper ping.Sleeper
}

func main() {
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}

	os.Exit(int(a.run(context.Background(), os.Args[1:])))
}

func (a *app) run(ctx context.Context, args []string) ping.ExitCode {
	if len(args) < 1 {
		fmt.Fprintln(a.stderr, "Usage: healthping host:port")
		return ping.ExitUsage
	}

	target, err := netip.ParseAddrPort(args[0])
	if err != nil {
		fmt.Fprintf(a.stderr, "invalid address: %v\n", err)
		return ping.ExitUsage
	}

	log := a.newLogger()

	cfg, err := ping.NewConfig(target, append([]ping.Option{ping.WithLogger(log)}, a.opts...)...)
	if err != nil {
		fmt.Fprintf(a.stderr, "invalid address: %v\n", err)
		return ping.ExitUsage
	}

	ctrlOpts := []ping.ControllerOption{ping.WithSleeper(a.sleeper)}
	ctrl := ping.NewController(cfg, ping.NewProber(cfg), ping.NewConsoleReporter(a.stdout, a.stderr), ctrlOpts...)

	st := ctrl.Run(ctx)

	if path := a.getenv(envMetricsFile); path != "" {
		if err := metricsfile.Write(path, ctrl.Metrics(), st); err != nil {
			log.Warn("failed to export metrics", "path", path, "error", err)
		}
	}

	return st.Code
}

func (a *app) newLogger() logger.Logger {
	level := logger.WarnLevel
	var levelErr error
	if v := a.getenv(envLogLevel); v != "" {
		level, levelErr = logger.ParseLevel(v)
		if levelErr != nil {
			level = logger.WarnLevel
		}
	}

	log := logger.NewSlog(a.stderr, level, a.getenv(envMode) == "development").With("run_id", uuid.NewString())
	if levelErr != nil {
		log.Warn("ignoring log level", "env", envLogLevel, "error", levelErr)
	}
	logger.SetLogger(log)

	return log
}
