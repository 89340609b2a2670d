package runner

import "context"

// LanguageName constants
const (
	LanguageJavaScript = "javascript"
	LanguagePython     = "python"
	LanguageShell      = "shell"
	LanguageSQL        = "sql"
)

// Request represents the parameters for one snippet evaluation
type Request struct {
	Code     string
	Language string
}

// Outcome is what a single evaluator produces: captured output and an
// optional failure. Output may be partially populated even when Err is
// set (whatever was captured before the failure).
type Outcome struct {
	Output string
	Err    error
}

// Evaluator is the per-language evaluation strategy. Implementations
// must never panic across this boundary; internal failures are
// reported through Outcome.Err.
type Evaluator interface {
	Language() string
	Evaluate(ctx context.Context, code string) Outcome
}
