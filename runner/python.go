package runner

import (
	"context"
	"regexp"
	"strings"
)

// pythonPlaceholder is returned when no line of the snippet matches a
// recognized idiom.
const pythonPlaceholder = "[python simulation] only print() of string literals is recognized"

var pythonPrintRe = regexp.MustCompile(`^\s*print\s*\(\s*(['"])(.*)(['"])\s*\)\s*$`)

// PythonEvaluator is a text simulation, not an interpreter. It
// recognizes print() of a string literal per line and fabricates the
// corresponding output; everything else yields a placeholder message.
type PythonEvaluator struct{}

// NewPythonEvaluator creates the python simulation evaluator.
func NewPythonEvaluator() *PythonEvaluator { return &PythonEvaluator{} }

// Language implements Evaluator
func (*PythonEvaluator) Language() string { return LanguagePython }

// Evaluate implements Evaluator. It never fails: unrecognized input
// degrades to the placeholder, matching how a snippet vault surfaces
// simulated runs.
func (*PythonEvaluator) Evaluate(_ context.Context, code string) Outcome {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		m := pythonPrintRe.FindStringSubmatch(line)
		if m != nil && m[1] == m[3] {
			lines = append(lines, m[2])
		}
	}

	if len(lines) == 0 {
		return Outcome{Output: pythonPlaceholder}
	}
	return Outcome{Output: strings.Join(lines, "\n")}
}
