package evaluator_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sandrolain/gotox/pkg/evaluator"
	"github.com/sandrolain/gotox/pkg/parser"
)

// deepScopes nests n blocks, each shadowing and reading the outer variable.
func deepScopes(n int) string {
	var b strings.Builder
	b.WriteString("var a = 0;\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "{ var a = a + %d;\n", i)
	}
	b.WriteString("print a;\n")
	b.WriteString(strings.Repeat("}\n", n))
	return b.String()
}

// straightLine declares n globals and folds them into a sum.
func straightLine(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "var v%d = %d * 2 + 1;\n", i, i)
	}
	b.WriteString("var sum = 0;\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "sum = sum + v%d;\n", i)
	}
	b.WriteString("print sum;\n")
	return b.String()
}

func BenchmarkCompileStraightLine(b *testing.B) {
	src := straightLine(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Compile(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileDeepScopes(b *testing.B) {
	src := deepScopes(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Compile(src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpretStraightLine(b *testing.B) {
	prog := mustCompile(b, straightLine(200))
	ev := evaluator.New(evaluator.WithOutput(io.Discard))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ev.Interpret(ctx, prog.Stmts()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpretDeepScopes(b *testing.B) {
	prog := mustCompile(b, deepScopes(100))
	ev := evaluator.New(evaluator.WithOutput(io.Discard))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ev.Interpret(ctx, prog.Stmts()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpretRepetition(b *testing.B) {
	prog := mustCompile(b, `var s = "abc" * 1000; s = s + s;`)
	ev := evaluator.New(evaluator.WithOutput(io.Discard))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ev.Interpret(ctx, prog.Stmts()); err != nil {
			b.Fatal(err)
		}
	}
}
