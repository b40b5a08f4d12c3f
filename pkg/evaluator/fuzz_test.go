package evaluator_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sandrolain/gotox/pkg/evaluator"
	"github.com/sandrolain/gotox/pkg/parser"
	"github.com/sandrolain/gotox/pkg/types"
)

func FuzzInterpret(f *testing.F) {
	seeds := []string{
		`print 1 + 2;`,
		`var a = "x"; { var a = a * 3; print a; } print a;`,
		`print nil or "d"; print 1 and nil;`,
		`print "a" < 1;`,
		`print -"s";`,
		`print "ab" * -2;`,
		`print 1 / 0;`,
		`x = 1;`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		prog, err := parser.Compile(input)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		ev := evaluator.New(evaluator.WithOutput(io.Discard), evaluator.WithMaxStringLength(1<<16))
		if err := ev.Interpret(ctx, prog.Stmts()); err != nil {
			if _, ok := types.AsDiagnostic(err); !ok && ctx.Err() == nil {
				t.Fatalf("Interpret(%q) returned a non-diagnostic error: %v", input, err)
			}
		}
	})
}
