package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPythonSimulation(t *testing.T) {
	ev := NewPythonEvaluator()

	t.Run("PrintDoubleQuoted", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), `print("hello")`)
		require.NoError(t, outcome.Err)
		assert.Equal(t, "hello", outcome.Output)
	})

	t.Run("PrintSingleQuoted", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "print('world')")
		require.NoError(t, outcome.Err)
		assert.Equal(t, "world", outcome.Output)
	})

	t.Run("MultiplePrints", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "print('a')\nprint('b')")
		require.NoError(t, outcome.Err)
		assert.Equal(t, "a\nb", outcome.Output)
	})

	t.Run("MismatchedQuotesNotRecognized", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), `print("half')`)
		assert.Equal(t, pythonPlaceholder, outcome.Output)
	})

	t.Run("ArbitraryCodeFallsThroughToPlaceholder", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "x = [i**2 for i in range(10)]")
		require.NoError(t, outcome.Err)
		assert.Equal(t, pythonPlaceholder, outcome.Output)
	})
}

func TestShellSimulation(t *testing.T) {
	ev := NewShellEvaluator()

	t.Run("Echo", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "echo hello world")
		require.NoError(t, outcome.Err)
		assert.Equal(t, "hello world", outcome.Output)
	})

	t.Run("EchoQuotesStripped", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), `echo "quoted value"`)
		require.NoError(t, outcome.Err)
		assert.Equal(t, "quoted value", outcome.Output)
	})

	t.Run("MultipleEchoes", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "echo one\necho 'two'")
		require.NoError(t, outcome.Err)
		assert.Equal(t, "one\ntwo", outcome.Output)
	})

	t.Run("ArbitraryCommandFallsThroughToPlaceholder", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "grep -r pattern .")
		require.NoError(t, outcome.Err)
		assert.Equal(t, shellPlaceholder, outcome.Output)
	})
}

func TestSQLSimulation(t *testing.T) {
	ev := NewSQLEvaluator()

	t.Run("Select", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "SELECT id FROM users")
		require.NoError(t, outcome.Err)
		assert.Equal(t, "[sql simulation] SELECT statement executed", outcome.Output)
	})

	t.Run("MultipleStatements", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(),
			"insert into notes (title) values ('x'); select * from notes")
		require.NoError(t, outcome.Err)
		assert.Equal(t,
			"[sql simulation] INSERT statement executed\n[sql simulation] SELECT statement executed",
			outcome.Output)
	})

	t.Run("CaseInsensitiveVerb", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "with t as (select 1) select * from t")
		require.NoError(t, outcome.Err)
		assert.Equal(t, "[sql simulation] WITH statement executed", outcome.Output)
	})

	t.Run("UnknownVerbFallsThroughToPlaceholder", func(t *testing.T) {
		outcome := ev.Evaluate(context.Background(), "EXPLAIN ANALYZE SELECT 1")
		require.NoError(t, outcome.Err)
		assert.Equal(t, sqlPlaceholder, outcome.Output)
	})
}
