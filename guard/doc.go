// Package guard provides the denylist screening pass applied to
// snippet source text before any evaluation.
//
// The guard rejects code matching a fixed, ordered list of dangerous
// patterns (process and filesystem access, process spawning, dynamic
// code loading, destructive shell idioms, destructive SQL, network
// fetch primitives). A rejection is a normal result, not an error: the
// request boundary turns it into a failure envelope.
//
// The rule set is non-exhaustive and can be bypassed by obfuscation.
// It is a best-effort filter, not isolation.
//
// Usage:
//
//	g, err := guard.New(logger, cfg.Guard.ExtraPatterns)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	verdict := g.Check(code)
//	if verdict.Rejected {
//	    // build a rejection envelope
//	}
package guard
