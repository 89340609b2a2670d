package runner

import (
	"context"
	"fmt"
	"strings"
)

const sqlPlaceholder = "[sql simulation] statement not recognized"

// sqlVerbs are the statement kinds the simulation acknowledges.
var sqlVerbs = map[string]bool{
	"SELECT": true,
	"INSERT": true,
	"UPDATE": true,
	"CREATE": true,
	"ALTER":  true,
	"WITH":   true,
}

// SQLEvaluator is a text simulation, not a database. It looks at the
// leading verb of each statement and fabricates an acknowledgement;
// no query is ever executed and no result set is produced.
type SQLEvaluator struct{}

// NewSQLEvaluator creates the sql simulation evaluator.
func NewSQLEvaluator() *SQLEvaluator { return &SQLEvaluator{} }

// Language implements Evaluator
func (*SQLEvaluator) Language() string { return LanguageSQL }

// Evaluate implements Evaluator
func (*SQLEvaluator) Evaluate(_ context.Context, code string) Outcome {
	var lines []string
	for _, stmt := range strings.Split(code, ";") {
		fields := strings.Fields(stmt)
		if len(fields) == 0 {
			continue
		}
		verb := strings.ToUpper(fields[0])
		if sqlVerbs[verb] {
			lines = append(lines, fmt.Sprintf("[sql simulation] %s statement executed", verb))
		}
	}

	if len(lines) == 0 {
		return Outcome{Output: sqlPlaceholder}
	}
	return Outcome{Output: strings.Join(lines, "\n")}
}
