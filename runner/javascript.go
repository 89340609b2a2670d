package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

const interruptCanceled = "evaluation canceled"

// JavaScriptEvaluator evaluates snippets on an embedded goja VM. Each
// evaluation gets a fresh VM, so snippets never share state.
//
// Containment comes from the VM itself: goja exposes only ECMAScript
// built-ins (Math, JSON, Date, String, Array, ...) and whatever we
// bind explicitly. There is no process, filesystem or network binding
// to fence off. This is still not process isolation; a snippet can
// burn CPU and memory until the interrupt fires.
type JavaScriptEvaluator struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewJavaScriptEvaluator creates an evaluator with the given
// wall-clock timeout for each snippet.
func NewJavaScriptEvaluator(logger *zap.Logger, timeout time.Duration) *JavaScriptEvaluator {
	return &JavaScriptEvaluator{logger: logger, timeout: timeout}
}

// Language implements Evaluator
func (*JavaScriptEvaluator) Language() string { return LanguageJavaScript }

// Evaluate runs the snippet with a captured console and a forced
// interrupt at the timeout. Output buffered before a failure or
// interrupt is preserved in the outcome.
func (e *JavaScriptEvaluator) Evaluate(ctx context.Context, code string) (outcome Outcome) {
	vm := goja.New()
	capture := newConsoleCapture(vm)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("javascript vm panic", zap.Any("panic", r))
			outcome = Outcome{
				Output: capture.String(),
				Err:    fmt.Errorf("internal evaluation failure: %v", r),
			}
		}
	}()

	if err := e.bindGlobals(vm, capture); err != nil {
		return Outcome{Err: fmt.Errorf("failed to prepare bindings: %w", err)}
	}

	timeoutMsg := fmt.Sprintf("Execution timed out after %s", e.timeout)
	timer := time.AfterFunc(e.timeout, func() { vm.Interrupt(timeoutMsg) })
	defer timer.Stop()
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(interruptCanceled) })
	defer stop()

	_, err := vm.RunString(code)
	if err != nil {
		return Outcome{Output: capture.String(), Err: normalizeJSError(err)}
	}

	return Outcome{Output: capture.String()}
}

// bindGlobals installs the allowlisted host bindings: the captured
// console and synchronous timer stubs. A playground evaluator has no
// event loop, so timer callbacks run immediately and the delay is
// ignored.
func (e *JavaScriptEvaluator) bindGlobals(vm *goja.Runtime, capture *consoleCapture) error {
	console := vm.NewObject()
	for _, method := range []string{"log", "info", "warn", "error", "debug"} {
		if err := console.Set(method, capture.write); err != nil {
			return err
		}
	}
	if err := vm.Set("console", console); err != nil {
		return err
	}

	runNow := func(call goja.FunctionCall) goja.Value {
		if fn, ok := goja.AssertFunction(call.Argument(0)); ok {
			if _, err := fn(goja.Undefined()); err != nil {
				// Rethrow callback exceptions as JS values
				panic(vm.ToValue(err.Error()))
			}
		}
		return vm.ToValue(0)
	}
	noop := func(call goja.FunctionCall) goja.Value { return goja.Undefined() }

	if err := vm.Set("setTimeout", runNow); err != nil {
		return err
	}
	if err := vm.Set("setInterval", runNow); err != nil {
		return err
	}
	if err := vm.Set("clearTimeout", noop); err != nil {
		return err
	}
	return vm.Set("clearInterval", noop)
}

// normalizeJSError converts goja errors into plain error values: the
// interrupt value for timeouts/cancellation, the thrown value for JS
// exceptions.
func normalizeJSError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("%v", interrupted.Value())
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return errors.New(exception.Value().String())
	}

	return err
}

// consoleCapture buffers console output, one line per call, arguments
// stringified and joined with spaces.
type consoleCapture struct {
	vm    *goja.Runtime
	lines []string
}

func newConsoleCapture(vm *goja.Runtime) *consoleCapture {
	return &consoleCapture{vm: vm}
}

func (c *consoleCapture) write(call goja.FunctionCall) goja.Value {
	parts := make([]string, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		parts = append(parts, arg.String())
	}
	c.lines = append(c.lines, strings.Join(parts, " "))
	return goja.Undefined()
}

func (c *consoleCapture) String() string {
	return strings.Join(c.lines, "\n")
}
