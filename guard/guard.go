package guard

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// RejectionReason is the client-facing reason attached to every
// rejected verdict, regardless of which rule matched.
const RejectionReason = "Code contains potentially dangerous operations"

// Rule pairs a name with a compiled denylist pattern. Rules are
// applied in order to all languages; the first match rejects.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Verdict is the outcome of scanning one piece of source text.
type Verdict struct {
	Rejected bool
	Rule     string
	Reason   string
}

// builtinRules covers process and filesystem access, process
// spawning, dynamic code loading, destructive shell idioms,
// destructive SQL statements and network fetch primitives.
var builtinRules = []Rule{
	{Name: "shell-rm-rf", Pattern: regexp.MustCompile(`(?i)\brm\s+(-[a-z]*r[a-z]*f|-[a-z]*f[a-z]*r)\b`)},
	{Name: "shell-mkfs", Pattern: regexp.MustCompile(`(?i)\bmkfs(\.\w+)?\b`)},
	{Name: "shell-dd-device", Pattern: regexp.MustCompile(`(?i)\bdd\s+if=`)},
	{Name: "shell-fork-bomb", Pattern: regexp.MustCompile(`:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`)},
	{Name: "js-process", Pattern: regexp.MustCompile(`\bprocess\s*\.`)},
	{Name: "js-require-module", Pattern: regexp.MustCompile(`\brequire\s*\(`)},
	{Name: "js-dynamic-import", Pattern: regexp.MustCompile(`\bimport\s*\(`)},
	{Name: "js-eval", Pattern: regexp.MustCompile(`\beval\s*\(`)},
	{Name: "js-function-ctor", Pattern: regexp.MustCompile(`\bnew\s+Function\b|\bFunction\s*\(`)},
	{Name: "js-fetch", Pattern: regexp.MustCompile(`\bfetch\s*\(`)},
	{Name: "js-xhr", Pattern: regexp.MustCompile(`\bXMLHttpRequest\b`)},
	{Name: "py-import-system", Pattern: regexp.MustCompile(`(?m)^\s*(import|from)\s+(os|sys|subprocess|socket|shutil|ctypes)\b`)},
	{Name: "py-dunder-import", Pattern: regexp.MustCompile(`__import__\s*\(`)},
	{Name: "py-exec", Pattern: regexp.MustCompile(`\bexec\s*\(`)},
	{Name: "py-open", Pattern: regexp.MustCompile(`(?m)(^|[^\w.])open\s*\(`)},
	{Name: "sql-drop", Pattern: regexp.MustCompile(`(?i)\bdrop\s+(table|database|schema)\b`)},
	{Name: "sql-truncate", Pattern: regexp.MustCompile(`(?i)\btruncate\s+table\b`)},
	{Name: "sql-delete-all", Pattern: regexp.MustCompile(`(?i)\bdelete\s+from\b`)},
	{Name: "sql-grant", Pattern: regexp.MustCompile(`(?i)\bgrant\s+all\b`)},
}

// Guard scans raw source text against the denylist before any
// evaluator runs.
//
// This is defense in depth, not a security boundary: it is pattern
// matching on text and is bypassable by obfuscation. Real containment
// has to come from the evaluator itself.
type Guard struct {
	logger *zap.Logger
	rules  []Rule
}

// New creates a Guard with the built-in rule set plus any extra
// patterns from configuration. Invalid extra patterns are an error.
func New(logger *zap.Logger, extraPatterns []string) (*Guard, error) {
	rules := make([]Rule, 0, len(builtinRules)+len(extraPatterns))
	rules = append(rules, builtinRules...)

	for i, pattern := range extraPatterns {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid guard.extra_patterns[%d] %q: %w", i, pattern, err)
		}
		rules = append(rules, Rule{Name: fmt.Sprintf("extra-%d", i), Pattern: compiled})
	}

	return &Guard{logger: logger, rules: rules}, nil
}

// Check tests the code against every rule in order and returns the
// first match as a rejection. The rule set is static, so the same
// input always produces the same verdict.
func (g *Guard) Check(code string) Verdict {
	for _, rule := range g.rules {
		if rule.Pattern.MatchString(code) {
			g.logger.Info("code rejected by guard", zap.String("rule", rule.Name))
			return Verdict{Rejected: true, Rule: rule.Name, Reason: RejectionReason}
		}
	}
	return Verdict{}
}

// RuleCount reports how many rules are active, for startup logging.
func (g *Guard) RuleCount() int {
	return len(g.rules)
}
