package ping

import (
	"context"
	"errors"
	"io"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testServer accepts connections on a loopback port and runs handler for each of them.
type testServer struct {
	ln       net.Listener
	accepted atomic.Int32
}

func startTestServer(t *testing.T, handler func(conn net.Conn)) *testServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &testServer{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			srv.accepted.Add(1)
			go func() {
				defer conn.Close()
				handler(conn)
			}()
		}
	}()

	return srv
}

func (s *testServer) Addr() netip.AddrPort {
	return s.ln.Addr().(*net.TCPAddr).AddrPort()
}

// replyWith returns a handler that checks the handshake and answers with resp.
func replyWith(resp []byte, handshakes chan<- []byte) func(net.Conn) {
	return func(conn net.Conn) {
		buf := make([]byte, HandshakeSize)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		if handshakes != nil {
			handshakes <- buf
		}
		_, _ = conn.Write(resp)
	}
}

func newTestProber(t *testing.T, target netip.AddrPort, opts ...Option) *Prober {
	t.Helper()

	opts = append([]Option{
		WithDialTimeout(time.Second),
		WithIOTimeout(time.Second),
	}, opts...)
	cfg, err := NewConfig(target, opts...)
	require.NoError(t, err)

	return NewProber(cfg)
}

func TestProber_Success(t *testing.T) {
	require := require.New(t)

	resp := NewResponse(StatusExpecting)
	handshakes := make(chan []byte, 1)
	srv := startTestServer(t, replyWith(resp[:], handshakes))

	out := newTestProber(t, srv.Addr()).Probe(context.Background())
	require.Equal(OutcomeSuccess, out.Kind)
	require.NoError(out.Err)
	require.Equal(resp, out.Response)
	require.Equal(Magic[:], <-handshakes)
	require.EqualValues(1, srv.accepted.Load())
}

func TestProber_SuccessUnexpected(t *testing.T) {
	resp := NewResponse(StatusNotExpecting)
	srv := startTestServer(t, replyWith(resp[:], nil))

	out := newTestProber(t, srv.Addr()).Probe(context.Background())
	require.Equal(t, OutcomeSuccessUnexpected, out.Kind)
	require.True(t, out.Healthy())
}

func TestProber_InvalidResponse(t *testing.T) {
	require := require.New(t)

	resp := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}
	srv := startTestServer(t, replyWith(resp, nil))

	out := newTestProber(t, srv.Addr()).Probe(context.Background())
	require.Equal(OutcomeInvalidResponse, out.Kind)
	require.NoError(out.Err)
	require.Equal(resp, out.Response[:])
}

func TestProber_SameHandshakeEveryAttempt(t *testing.T) {
	require := require.New(t)

	resp := NewResponse(StatusExpecting)
	handshakes := make(chan []byte, 3)
	srv := startTestServer(t, replyWith(resp[:], handshakes))
	p := newTestProber(t, srv.Addr())

	for i := 0; i < 3; i++ {
		require.Equal(OutcomeSuccess, p.Probe(context.Background()).Kind)
		require.Equal(Magic[:], <-handshakes)
	}
	require.EqualValues(3, srv.accepted.Load())
}

func TestProber_ConnectionRefused(t *testing.T) {
	require := require.New(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	addr := ln.Addr().(*net.TCPAddr).AddrPort()
	require.NoError(ln.Close())

	out := newTestProber(t, addr).Probe(context.Background())
	require.Equal(OutcomeConnectionFailure, out.Kind)
	require.ErrorIs(out.Err, ErrDial)
}

func TestProber_CanceledContext(t *testing.T) {
	srv := startTestServer(t, func(net.Conn) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := newTestProber(t, srv.Addr()).Probe(ctx)
	require.Equal(t, OutcomeConnectionFailure, out.Kind)
	require.ErrorIs(t, out.Err, ErrDial)
	require.ErrorIs(t, out.Err, context.Canceled)
}

func TestProber_ReadTimeout(t *testing.T) {
	require := require.New(t)

	release := make(chan struct{})
	defer close(release)

	srv := startTestServer(t, func(conn net.Conn) {
		buf := make([]byte, HandshakeSize)
		_, _ = io.ReadFull(conn, buf)
		<-release
	})

	start := time.Now()
	out := newTestProber(t, srv.Addr(), WithIOTimeout(100*time.Millisecond)).Probe(context.Background())
	require.Equal(OutcomeConnectionFailure, out.Kind)
	require.ErrorIs(out.Err, ErrResponse)
	require.ErrorIs(out.Err, os.ErrDeadlineExceeded)
	require.Less(time.Since(start), 5*time.Second)
}

func TestProber_PartialResponse(t *testing.T) {
	srv := startTestServer(t, replyWith(Magic[:3], nil))

	out := newTestProber(t, srv.Addr()).Probe(context.Background())
	require.Equal(t, OutcomeConnectionFailure, out.Kind)
	require.ErrorIs(t, out.Err, ErrResponse)
	require.ErrorIs(t, out.Err, io.ErrUnexpectedEOF)
}

func TestProber_PeerClosesWithoutReply(t *testing.T) {
	srv := startTestServer(t, replyWith(nil, nil))

	out := newTestProber(t, srv.Addr()).Probe(context.Background())
	require.Equal(t, OutcomeConnectionFailure, out.Kind)
	require.ErrorIs(t, out.Err, ErrResponse)
	require.True(t, errors.Is(out.Err, io.EOF))
}

func TestProber_ReleasesConnection(t *testing.T) {
	require := require.New(t)

	closed := make(chan error, 1)
	srv := startTestServer(t, func(conn net.Conn) {
		buf := make([]byte, HandshakeSize)
		if _, err := io.ReadFull(conn, buf); err != nil {
			closed <- err
			return
		}
		resp := NewResponse(StatusExpecting)
		_, _ = conn.Write(resp[:])

		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, err := conn.Read(buf)
		closed <- err
	})

	out := newTestProber(t, srv.Addr()).Probe(context.Background())
	require.Equal(OutcomeSuccess, out.Kind)
	require.ErrorIs(<-closed, io.EOF)
}
