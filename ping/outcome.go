package ping

import "fmt"

// OutcomeKind classifies the result of one probe attempt.
type OutcomeKind uint8

const (
	// OutcomeConnectionFailure means the attempt failed before a full reply was read.
	OutcomeConnectionFailure OutcomeKind = iota
	// OutcomeSuccess means the server replied healthy and was expecting the probe.
	OutcomeSuccess
	// OutcomeSuccessUnexpected means the server replied healthy but was not expecting the probe.
	OutcomeSuccessUnexpected
	// OutcomeInvalidResponse means a full reply was read but it is not a recognized answer.
	OutcomeInvalidResponse
)

// String returns string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeConnectionFailure:
		return "connection-failure"
	case OutcomeSuccess:
		return "success"
	case OutcomeSuccessUnexpected:
		return "success-unexpected"
	case OutcomeInvalidResponse:
		return "invalid-response"
	default:
		return "unknown"
	}
}

// Outcome is the result of one attempt. It is consumed immediately by the controller.
type Outcome struct {
	Kind OutcomeKind
	// Response holds the bytes read from the server. It is zero for connection failures.
	Response [ResponseSize]byte
	// Err is set only for OutcomeConnectionFailure.
	Err error
}

// Healthy reports whether the outcome ends probing successfully.
func (o Outcome) Healthy() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeSuccessUnexpected
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeConnectionFailure:
		return fmt.Sprintf("%s: %v", o.Kind, o.Err)
	case OutcomeInvalidResponse:
		return fmt.Sprintf("%s % x", o.Kind, o.Response[:])
	default:
		return o.Kind.String()
	}
}

// ConnectionFailure returns a failed outcome carrying err.
func ConnectionFailure(err error) Outcome {
	return Outcome{Kind: OutcomeConnectionFailure, Err: err}
}

// ResponseOutcome classifies a full reply read from the server.
func ResponseOutcome(b [ResponseSize]byte) Outcome {
	return Outcome{Kind: ParseResponse(b).Kind(), Response: b}
}
