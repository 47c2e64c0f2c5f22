package ping

import (
	"net/netip"
	"testing"
	"time"

	"github.com/arloliu/go-healthping/logger"
	"github.com/stretchr/testify/require"
)

var testTarget = netip.MustParseAddrPort("127.0.0.1:5000")

func TestNewConfig_Defaults(t *testing.T) {
	require := require.New(t)

	cfg, err := NewConfig(testTarget)
	require.NoError(err)
	require.Equal(testTarget, cfg.Target())
	require.Equal(8*time.Second, cfg.DialTimeout())
	require.Equal(8*time.Second, cfg.IOTimeout())
	require.Equal(12*time.Second, cfg.Interval())
	require.Equal(30, cfg.MaxAttempts())
	require.NotNil(cfg.Logger())
}

func TestNewConfig_Options(t *testing.T) {
	require := require.New(t)

	l := logger.NewMockLogger()
	cfg, err := NewConfig(testTarget,
		WithDialTimeout(time.Second),
		WithIOTimeout(2*time.Second),
		WithInterval(0),
		WithMaxAttempts(3),
		WithLogger(l),
	)
	require.NoError(err)
	require.Equal(time.Second, cfg.DialTimeout())
	require.Equal(2*time.Second, cfg.IOTimeout())
	require.Zero(cfg.Interval())
	require.Equal(3, cfg.MaxAttempts())
	require.Same(l, cfg.Logger())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		target netip.AddrPort
		opt    Option
	}{
		{name: "ZeroTarget", target: netip.AddrPort{}},
		{name: "DialTimeout", target: testTarget, opt: WithDialTimeout(0)},
		{name: "IOTimeout", target: testTarget, opt: WithIOTimeout(-time.Second)},
		{name: "Interval", target: testTarget, opt: WithInterval(-time.Millisecond)},
		{name: "MaxAttempts", target: testTarget, opt: WithMaxAttempts(0)},
		{name: "Logger", target: testTarget, opt: WithLogger(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.opt != nil {
				opts = append(opts, tt.opt)
			}
			_, err := NewConfig(tt.target, opts...)
			require.Error(t, err)
		})
	}

	_, err := NewConfig(netip.AddrPort{})
	require.ErrorIs(t, err, ErrInvalidTarget)
}

func TestOption_NilConfig(t *testing.T) {
	require.ErrorIs(t, WithMaxAttempts(1).apply(nil), ErrConfigNil)
}
