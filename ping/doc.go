// Package ping implements the healthping liveness probe: a client that repeatedly
// connects to a TCP endpoint, sends a fixed 4-byte magic handshake and classifies
// the 5-byte reply until the endpoint reports itself healthy or the attempt budget
// is exhausted.
//
// Wire Protocol:
//   - Client to server: the magic marker 32 7F FE 4C.
//   - Server to client: the same marker followed by one status byte.
//     0x00 means the server is healthy and was expecting a probe,
//     0x01 means it is healthy but was not expecting one. Anything else is a mismatch.
//
// Components:
//   - Prober runs exactly one connect/handshake/read cycle and returns an Outcome.
//     It never retries and never sleeps.
//   - State is the retry state machine. State.Next is a pure transition function
//     from one Outcome to the following state.
//   - Controller drives a Prober with a fixed attempt budget and a fixed delay between
//     attempts, reporting progress through a Reporter, and returns the terminated
//     State carrying the process ExitCode.
//
// Usage Example:
//
//	cfg, err := ping.NewConfig(netip.MustParseAddrPort("127.0.0.1:5000"))
//	// ... handle error ...
//	ctrl := ping.NewController(cfg, ping.NewProber(cfg), ping.NewConsoleReporter(os.Stdout, os.Stderr))
//	res := ctrl.Run(context.Background())
//	os.Exit(int(res.Code))
package ping
