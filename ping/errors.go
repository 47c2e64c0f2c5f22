package ping

import "errors"

var (
	// ErrConfigNil indicates that a nil Config was provided.
	ErrConfigNil = errors.New("config is nil")

	// ErrInvalidTarget indicates that the target address is not a valid IP and port.
	ErrInvalidTarget = errors.New("invalid target address")
)

// Connection-level failures. Every error carried by an OutcomeConnectionFailure
// wraps exactly one of them.
var (
	// ErrDial indicates that the TCP connection could not be established within the dial timeout.
	ErrDial = errors.New("dial target")

	// ErrDeadline indicates that the read or write deadline could not be set on the connection.
	ErrDeadline = errors.New("set deadline")

	// ErrHandshake indicates that the magic handshake could not be written completely.
	ErrHandshake = errors.New("write handshake")

	// ErrResponse indicates that the 5-byte response could not be read completely.
	ErrResponse = errors.New("read response")
)

// ErrConsole indicates that the progress indicator could not be written to the console.
var ErrConsole = errors.New("console output")
