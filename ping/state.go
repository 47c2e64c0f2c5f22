package ping

import "fmt"

// ExitCode is the process exit status of a probe run.
type ExitCode int

const (
	// ExitSuccess means the target replied healthy, with either status byte.
	ExitSuccess ExitCode = 0
	// ExitUsage means the target address argument was missing or invalid.
	ExitUsage ExitCode = 1
	// ExitPing means the attempt budget was exhausted and a connection error was observed.
	ExitPing ExitCode = 2
	// ExitBug means the attempt budget was exhausted without any recorded connection error.
	ExitBug ExitCode = 3
	// ExitIO means the console progress output failed.
	ExitIO ExitCode = 4
)

func (c ExitCode) String() string {
	switch c {
	case ExitSuccess:
		return "success"
	case ExitUsage:
		return "usage"
	case ExitPing:
		return "ping"
	case ExitBug:
		return "bug"
	case ExitIO:
		return "io"
	default:
		return fmt.Sprintf("exit(%d)", int(c))
	}
}

// Phase is the coarse state of a probe run.
type Phase uint8

const (
	// ProbingPhase means more attempts may run.
	ProbingPhase Phase = iota
	// TerminatedPhase means the run has decided its exit code.
	TerminatedPhase
)

func (p Phase) String() string {
	switch p {
	case ProbingPhase:
		return "probing"
	case TerminatedPhase:
		return "terminated"
	default:
		return "unknown"
	}
}

// State is the retry state machine value.
//
// The zero value is the initial state: probing, no attempts made, no error recorded.
type State struct {
	Phase Phase
	// Attempt is the number of completed attempts. It never decreases.
	Attempt int
	// LastErr is the most recent connection error, overwritten by each failed attempt.
	LastErr error
	// Kind is the outcome of the attempt that produced this state.
	Kind OutcomeKind
	// Code is meaningful only in TerminatedPhase.
	Code ExitCode
}

// Terminated reports whether the run is over.
func (s State) Terminated() bool {
	return s.Phase == TerminatedPhase
}

// Next applies the outcome of one attempt and returns the following state.
//
// A terminated state is returned unchanged.
func (s State) Next(o Outcome, maxAttempts int) State {
	if s.Terminated() {
		return s
	}

	next := s
	next.Attempt++
	next.Kind = o.Kind

	switch o.Kind {
	case OutcomeSuccess, OutcomeSuccessUnexpected:
		return next.terminate(ExitSuccess)
	case OutcomeConnectionFailure:
		next.LastErr = o.Err
	}

	if next.Attempt >= maxAttempts {
		if next.LastErr != nil {
			return next.terminate(ExitPing)
		}
		return next.terminate(ExitBug)
	}

	return next
}

// Abort terminates the run with code regardless of the remaining budget.
func (s State) Abort(code ExitCode, err error) State {
	if s.Terminated() {
		return s
	}
	if err != nil {
		s.LastErr = err
	}

	return s.terminate(code)
}

func (s State) terminate(code ExitCode) State {
	s.Phase = TerminatedPhase
	s.Code = code

	return s
}

func (s State) String() string {
	if s.Terminated() {
		return fmt.Sprintf("%s(%s) after %d attempts", s.Phase, s.Code, s.Attempt)
	}
	return fmt.Sprintf("%s(%d)", s.Phase, s.Attempt)
}
