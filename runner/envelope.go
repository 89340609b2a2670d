package runner

import "time"

// Envelope is the normalized result returned for every evaluation
// attempt. The shape is identical across all paths (guard rejection,
// evaluator success, evaluator failure), so callers never branch on
// which internal path produced it.
type Envelope struct {
	Output        string `json:"output"`
	Error         string `json:"error,omitempty"`
	ExecutionTime int64  `json:"executionTime"`
	ExitCode      int    `json:"exitCode"`
}

// BuildEnvelope normalizes an evaluator outcome. Success maps to exit
// code 0; any failure maps to exit code 1 with partial output kept.
func BuildEnvelope(outcome Outcome, elapsed time.Duration) Envelope {
	env := Envelope{
		Output:        outcome.Output,
		ExecutionTime: elapsed.Milliseconds(),
	}
	if outcome.Err != nil {
		env.Error = outcome.Err.Error()
		env.ExitCode = 1
	}
	return env
}

// RejectionEnvelope builds the envelope for a guard rejection: no
// output, exit code 1, the guard's reason as the error.
func RejectionEnvelope(reason string, elapsed time.Duration) Envelope {
	return Envelope{
		Error:         reason,
		ExecutionTime: elapsed.Milliseconds(),
		ExitCode:      1,
	}
}

// BoundaryEnvelope builds the envelope carried by non-200 responses
// (validation, auth, rate limit). Nothing was evaluated, so the
// execution time is zero.
func BoundaryEnvelope(message string) Envelope {
	return Envelope{
		Error:    message,
		ExitCode: 1,
	}
}
