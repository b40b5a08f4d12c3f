package evaluator

// Package evaluator implements the gotox tree-walking interpreter.
//
// The evaluator receives parsed statements from the parser and executes them
// in order. It supports:
//   - Lexically scoped variables with shadowing, via a chain of Environments
//   - Short-circuit logical operators that return operand values
//   - print output to a configurable io.Writer
//   - Structured debug logging via log/slog
//
// # Example
//
//	ev := evaluator.New(evaluator.WithOutput(os.Stdout))
//	if err := ev.Interpret(ctx, prog.Stmts()); err != nil {
//	    log.Fatal(err)
//	}
//
// # State
//
// An Evaluator keeps its global scope between calls, so a REPL can feed it
// one line at a time. It is not safe for concurrent use; separate Evaluators
// share nothing.

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/sandrolain/gotox/pkg/types"
)

// defaultMaxStringLength is the repetition limit used when no
// WithMaxStringLength option is given.
var defaultMaxStringLength = 64 << 20

// Evaluator executes statements against a chain of Environments.
type Evaluator struct {
	opts    EvalOptions
	logger  *slog.Logger
	globals *Environment
	env     *Environment // current scope
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Output receives the text written by print statements.
	// Defaults to os.Stdout.
	Output io.Writer
	// MaxStringLength bounds the length of strings built by repetition.
	// Defaults to 64 MiB, 16 MiB on WebAssembly.
	MaxStringLength int
	// Debug enables debug logging of scope changes and definitions.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Output:          os.Stdout,
		MaxStringLength: defaultMaxStringLength,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Output == nil {
		options.Output = io.Discard
	}

	globals := NewEnvironment(nil)
	return &Evaluator{
		opts:    options,
		logger:  options.Logger,
		globals: globals,
		env:     globals,
	}
}

// Interpret executes statements in order. The first runtime error aborts the
// remaining statements and is returned as a *types.Error.
//
// Cancellation of ctx is checked between top-level statements; a statement
// that has started always runs to completion.
func (e *Evaluator) Interpret(ctx context.Context, stmts []types.Stmt) error {
	_, _, err := e.run(ctx, stmts)
	return err
}

// Eval executes a compiled program like Interpret and additionally returns
// the value of its last statement when that statement is an expression
// statement. ok is false when there is no such value.
func (e *Evaluator) Eval(ctx context.Context, prog *types.Program) (result types.Value, ok bool, err error) {
	if prog == nil {
		return types.Value{}, false, types.NewInternalError(types.ErrUnknownNode, "invalid program", types.Location{})
	}
	return e.run(ctx, prog.Stmts())
}

func (e *Evaluator) run(ctx context.Context, stmts []types.Stmt) (types.Value, bool, error) {
	// A previous run may have been aborted inside a block.
	e.env = e.globals

	var (
		last types.Value
		ok   bool
	)
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return types.Value{}, false, err
		}

		ok = false
		if es, isExpr := stmt.(*types.ExprStmt); isExpr {
			v, err := e.evalExpr(es.Expr)
			if err != nil {
				return types.Value{}, false, e.fail(ctx, err)
			}
			last, ok = v, true
			continue
		}
		if err := e.execute(stmt); err != nil {
			return types.Value{}, false, e.fail(ctx, err)
		}
	}
	return last, ok, nil
}

// fail logs a runtime error before handing it back to the caller.
func (e *Evaluator) fail(ctx context.Context, err error) error {
	if te, ok := err.(*types.Error); ok {
		e.logger.DebugContext(ctx, "evaluation failed",
			"kind", te.Kind.String(),
			"code", string(te.Code),
			"location", te.Position.String(),
			"message", te.Message,
		)
	}
	return err
}

// Globals returns the outermost scope.
func (e *Evaluator) Globals() *Environment {
	return e.globals
}

// Reset drops every global definition.
func (e *Evaluator) Reset() {
	e.globals = NewEnvironment(nil)
	e.env = e.globals
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithOutput sets the writer print statements write to.
func WithOutput(w io.Writer) EvalOption {
	return func(opts *EvalOptions) {
		opts.Output = w
	}
}

// WithMaxStringLength bounds the length of strings built by repetition.
func WithMaxStringLength(n int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxStringLength = n
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
