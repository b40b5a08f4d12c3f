// Package gotox provides a tree-walking interpreter for a subset of Lox.
//
// The language has number, string, boolean and nil values, global and
// block-scoped variables, print, if/else and the usual arithmetic,
// comparison and logical operators.
//
// # Quick Start
//
//	// Run a script, printing to stdout
//	err := gotox.Run(`var a = 1; { a = a + 1; } print a;`)
//
//	// Compile once, execute on a session that keeps its variables
//	it := gotox.NewInterpreter(gotox.WithCaching(true))
//	it.Exec(ctx, "repl", `var x = 2;`)
//	v, ok, err := it.Exec(ctx, "repl", `x * 3;`)
//
// # Diagnostics
//
// Every error returned by this package and its subpackages implements
// types.Diagnostic, which can render a source excerpt:
//
//	if d, ok := types.AsDiagnostic(err); ok {
//	    fmt.Fprintln(os.Stderr, d.Details("main.lox", src))
//	}
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/gotox/pkg/parser
//   - Evaluator: github.com/sandrolain/gotox/pkg/evaluator
//   - Cache: github.com/sandrolain/gotox/pkg/cache
//   - Types: github.com/sandrolain/gotox/pkg/types
package gotox

import (
	"context"
	"fmt"
	"time"

	"github.com/sandrolain/gotox/pkg/evaluator"
	"github.com/sandrolain/gotox/pkg/parser"
	"github.com/sandrolain/gotox/pkg/types"
)

// Version returns the current version of gotox.
func Version() string {
	return "v0.1.0"
}

// Compile scans and parses source into a Program.
//
// A compiled Program is immutable and may be executed by any number of
// Evaluators, concurrently.
//
// Example:
//
//	prog, err := gotox.Compile(src, parser.WithSourceName("main.lox"))
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(source string, opts ...parser.CompileOption) (*types.Program, error) {
	return parser.Compile(source, opts...)
}

// Run is a convenience function that compiles and executes source on a fresh
// Evaluator in a single call. Execution stops between statements once 30
// seconds have passed.
//
// Example:
//
//	err := gotox.Run(`print "hi";`, evaluator.WithOutput(&buf))
func Run(source string, opts ...evaluator.EvalOption) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return RunWithContext(ctx, source, opts...)
}

// RunWithContext compiles and executes source with a custom context.
func RunWithContext(ctx context.Context, source string, opts ...evaluator.EvalOption) error {
	prog, err := Compile(source)
	if err != nil {
		return err
	}

	eval := evaluator.New(opts...)
	return eval.Interpret(ctx, prog.Stmts())
}

// MustCompile is like Compile but panics if the source cannot be compiled.
// It simplifies safe initialization of global variables.
func MustCompile(source string) *types.Program {
	prog, err := Compile(source)
	if err != nil {
		panic(fmt.Sprintf("gotox: Compile(%q): %v", source, err))
	}
	return prog
}
