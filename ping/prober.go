package ping

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/arloliu/go-healthping/logger"
)

// Attempter runs a single probe attempt.
type Attempter interface {
	Probe(ctx context.Context) Outcome
}

// Prober performs one connect/handshake/read cycle per Probe call against the configured target.
//
// It opens exactly one connection per call and closes it before returning.
// Prober is not goroutine-safe; the controller calls it sequentially.
type Prober struct {
	cfg    *Config
	dialer *net.Dialer
	logger logger.Logger
}

var _ Attempter = (*Prober)(nil)

// NewProber creates a Prober for cfg.
func NewProber(cfg *Config) *Prober {
	return &Prober{
		cfg:    cfg,
		dialer: &net.Dialer{Timeout: cfg.dialTimeout},
		logger: cfg.logger.With("target", cfg.target.String()),
	}
}

// Probe runs one attempt and classifies it. Every failure before a full reply was read
// yields OutcomeConnectionFailure.
func (p *Prober) Probe(ctx context.Context) Outcome {
	conn, err := p.connect(ctx)
	if err != nil {
		p.logger.Debug("failed to connect", "error", err)
		return ConnectionFailure(err)
	}
	defer conn.Close()

	p.logger.Debug("connected",
		"local_addr", conn.LocalAddr().String(),
		"remote_addr", conn.RemoteAddr().String(),
	)

	resp, err := p.exchange(conn)
	if err != nil {
		p.logger.Debug("handshake failed", "error", err)
		return ConnectionFailure(err)
	}

	out := ResponseOutcome(resp)
	p.logger.Debug("response received", "response", fmt.Sprintf("% x", resp[:]), "outcome", out.Kind)

	return out
}

func (p *Prober) connect(ctx context.Context) (net.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, p.cfg.dialTimeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", p.cfg.target.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDial, err)
	}

	return conn, nil
}

// exchange writes the magic and reads the fixed-size response.
//
// Both deadlines are armed before any I/O so a failure to set either one ends the
// attempt before the handshake is sent. The read deadline is re-armed after the write
// so each operation gets the full I/O timeout.
func (p *Prober) exchange(conn net.Conn) ([ResponseSize]byte, error) {
	var resp [ResponseSize]byte

	now := time.Now()
	if err := conn.SetReadDeadline(now.Add(p.cfg.ioTimeout)); err != nil {
		return resp, fmt.Errorf("%w: read: %w", ErrDeadline, err)
	}
	if err := conn.SetWriteDeadline(now.Add(p.cfg.ioTimeout)); err != nil {
		return resp, fmt.Errorf("%w: write: %w", ErrDeadline, err)
	}

	n, err := conn.Write(Magic[:])
	if err != nil {
		return resp, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if n != HandshakeSize {
		return resp, fmt.Errorf("%w: %w", ErrHandshake, io.ErrShortWrite)
	}

	if err := conn.SetReadDeadline(time.Now().Add(p.cfg.ioTimeout)); err != nil {
		return resp, fmt.Errorf("%w: read: %w", ErrDeadline, err)
	}

	if _, err := io.ReadFull(conn, resp[:]); err != nil {
		return resp, fmt.Errorf("%w: %w", ErrResponse, err)
	}

	return resp, nil
}
