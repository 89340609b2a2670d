package runner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/snipstash/runnerd/config"
	"github.com/snipstash/runnerd/guard"
)

// Engine orchestrates one evaluation attempt: guard first, then the
// matching evaluator, then envelope normalization. It never returns a
// Go error; every outcome is expressed through the envelope.
type Engine struct {
	logger     *zap.Logger
	guard      *guard.Guard
	evaluators map[string]Evaluator
}

// EngineOption defines a functional option for Engine
type EngineOption func(*Engine)

// WithEvaluator replaces or adds an evaluator, keyed by its language.
// Used by tests to inject short-timeout or failing evaluators.
func WithEvaluator(ev Evaluator) EngineOption {
	return func(e *Engine) {
		e.evaluators[ev.Language()] = ev
	}
}

// NewEngine creates an Engine with the closed set of supported
// evaluators: real evaluation for javascript, text simulation for
// python, shell and sql.
func NewEngine(logger *zap.Logger, g *guard.Guard, cfg *config.Config, opts ...EngineOption) *Engine {
	engine := &Engine{
		logger: logger,
		guard:  g,
		evaluators: map[string]Evaluator{
			LanguageJavaScript: NewJavaScriptEvaluator(logger, cfg.GetTimeout()),
			LanguagePython:     NewPythonEvaluator(),
			LanguageShell:      NewShellEvaluator(),
			LanguageSQL:        NewSQLEvaluator(),
		},
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Supports reports whether a language has a registered evaluator.
func (e *Engine) Supports(language string) bool {
	_, ok := e.evaluators[language]
	return ok
}

// Languages returns the supported language names in sorted order.
func (e *Engine) Languages() []string {
	names := make([]string, 0, len(e.evaluators))
	for name := range e.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run evaluates one request and always produces a well-formed
// envelope. Execution time is measured around the whole
// guard+evaluate call, whichever branch produced the result.
func (e *Engine) Run(ctx context.Context, req Request) Envelope {
	start := time.Now()

	verdict := e.guard.Check(req.Code)
	if verdict.Rejected {
		return RejectionEnvelope(verdict.Reason, time.Since(start))
	}

	evaluator, ok := e.evaluators[req.Language]
	if !ok {
		// The boundary validates languages before dispatch; this is
		// the defensive path for direct engine callers.
		return BuildEnvelope(Outcome{
			Err: fmt.Errorf("unsupported language: %s", req.Language),
		}, time.Since(start))
	}

	outcome := evaluator.Evaluate(ctx, req.Code)
	env := BuildEnvelope(outcome, time.Since(start))

	e.logger.Info("snippet evaluated",
		zap.String("language", req.Language),
		zap.Int("code_len", len(req.Code)),
		zap.Int("exit_code", env.ExitCode),
		zap.Int64("execution_time_ms", env.ExecutionTime),
	)

	return env
}
