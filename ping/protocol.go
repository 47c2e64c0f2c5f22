package ping

import (
	"bytes"
	"fmt"
)

const (
	// HandshakeSize is the length of the handshake sent by the client.
	HandshakeSize = 4
	// ResponseSize is the length of the reply expected from the server.
	ResponseSize = HandshakeSize + 1
)

// Magic is the marker identifying the probe protocol. It is sent verbatim on every
// attempt and must be echoed as the first four bytes of the reply.
var Magic = [HandshakeSize]byte{0x32, 0x7F, 0xFE, 0x4C}

// Status is the fifth byte of a server reply.
type Status byte

const (
	// StatusExpecting means the server is healthy and was waiting for a probe.
	StatusExpecting Status = 0x00
	// StatusNotExpecting means the server is healthy but was not waiting for a probe.
	StatusNotExpecting Status = 0x01
)

// String returns string representation of the status byte.
func (s Status) String() string {
	switch s {
	case StatusExpecting:
		return "expecting"
	case StatusNotExpecting:
		return "not-expecting"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(s))
	}
}

// Reply is the parsed form of a 5-byte server response.
type Reply struct {
	// Matched reports whether the first four bytes equal Magic.
	Matched bool
	// Status is the fifth byte, kept even when Matched is false.
	Status Status
}

// ParseResponse splits a raw response into the marker check and the status byte.
func ParseResponse(b [ResponseSize]byte) Reply {
	return Reply{
		Matched: bytes.Equal(b[:HandshakeSize], Magic[:]),
		Status:  Status(b[HandshakeSize]),
	}
}

// Kind classifies the reply. Only a matched marker with a recognized status is healthy.
func (r Reply) Kind() OutcomeKind {
	if !r.Matched {
		return OutcomeInvalidResponse
	}

	switch r.Status {
	case StatusExpecting:
		return OutcomeSuccess
	case StatusNotExpecting:
		return OutcomeSuccessUnexpected
	default:
		return OutcomeInvalidResponse
	}
}

// NewResponse builds the reply a healthy server sends for the given status.
func NewResponse(status Status) [ResponseSize]byte {
	var b [ResponseSize]byte
	copy(b[:], Magic[:])
	b[HandshakeSize] = byte(status)

	return b
}
