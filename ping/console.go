package ping

import (
	"bufio"
	"fmt"
	"io"
)

// Reporter renders the progress and the result of a run for a human.
type Reporter interface {
	// Start announces the run. Output may stay buffered until Progress.
	Start()
	// Progress emits one progress indicator and flushes it.
	// A returned error terminates the run with ExitIO.
	Progress() error
	// Outcome reports the outcome of one attempt.
	Outcome(o Outcome)
	// Finish reports the terminal state of the run.
	Finish(s State)
	// ConsoleError reports the failure returned by Progress.
	ConsoleError(err error)
}

// ConsoleReporter prints progress dots on stdout and diagnostics on stderr.
type ConsoleReporter struct {
	out *bufio.Writer
	err io.Writer
}

var _ Reporter = (*ConsoleReporter)(nil)

// NewConsoleReporter creates a ConsoleReporter. stdout is buffered and flushed on every progress dot.
func NewConsoleReporter(stdout, stderr io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: bufio.NewWriter(stdout), err: stderr}
}

func (r *ConsoleReporter) Start() {
	_, _ = r.out.WriteString("Pinging")
}

func (r *ConsoleReporter) Progress() error {
	_, _ = r.out.WriteString(".")
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flush stdout: %w", err)
	}

	return nil
}

func (r *ConsoleReporter) Outcome(o Outcome) {
	switch o.Kind {
	case OutcomeSuccess:
		r.println("\nSuccess")
	case OutcomeSuccessUnexpected:
		r.println("\nHost is not waiting for healthcheck ping")
	case OutcomeInvalidResponse:
		fmt.Fprintf(r.err, "got invalid response %v\n", o.Response)
	}
}

func (r *ConsoleReporter) Finish(s State) {
	switch s.Code {
	case ExitPing:
		r.println("")
		fmt.Fprintln(r.err, s.LastErr)
	case ExitBug:
		r.println("")
		fmt.Fprintln(r.err, "max retries exceeded without error")
	}
}

func (r *ConsoleReporter) ConsoleError(err error) {
	fmt.Fprintln(r.err, err)
}

func (r *ConsoleReporter) println(s string) {
	_, _ = r.out.WriteString(s + "\n")
	_ = r.out.Flush()
}
