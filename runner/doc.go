// Package runner provides the per-language snippet evaluators and the
// engine that orchestrates guard screening, evaluation and result
// normalization.
//
// JavaScript snippets are evaluated for real on an embedded goja VM
// with an allowlisted binding set and a forced interrupt at the
// configured timeout. The python, shell and sql evaluators are text
// simulations: they recognize a handful of exact idioms (print, echo,
// leading SQL verbs) and fabricate plausible output. They do not
// interpret arbitrary programs and are placeholders by design.
//
// Every path produces the same Envelope shape, so transports serialize
// one structure regardless of how the evaluation went.
//
// Usage:
//
//	engine := runner.NewEngine(logger, g, cfg)
//	env := engine.Run(ctx, runner.Request{
//	    Code:     "console.log('Hello, World!')",
//	    Language: runner.LanguageJavaScript,
//	})
package runner
