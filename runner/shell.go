package runner

import (
	"context"
	"strings"
)

const shellPlaceholder = "[shell simulation] only echo commands are recognized"

// ShellEvaluator is a text simulation, not a shell. It recognizes
// echo per line, strips simple surrounding quotes, and fabricates the
// output; everything else yields a placeholder message.
type ShellEvaluator struct{}

// NewShellEvaluator creates the shell simulation evaluator.
func NewShellEvaluator() *ShellEvaluator { return &ShellEvaluator{} }

// Language implements Evaluator
func (*ShellEvaluator) Language() string { return LanguageShell }

// Evaluate implements Evaluator
func (*ShellEvaluator) Evaluate(_ context.Context, code string) Outcome {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, "echo ")
		if !ok {
			continue
		}
		lines = append(lines, trimQuotes(strings.TrimSpace(rest)))
	}

	if len(lines) == 0 {
		return Outcome{Output: shellPlaceholder}
	}
	return Outcome{Output: strings.Join(lines, "\n")}
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
