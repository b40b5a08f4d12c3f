package gotox_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandrolain/gotox"
	"github.com/sandrolain/gotox/internal/golden"
	"github.com/sandrolain/gotox/pkg/cache"
	"github.com/sandrolain/gotox/pkg/evaluator"
	"github.com/sandrolain/gotox/pkg/parser"
	"github.com/sandrolain/gotox/pkg/types"
)

func TestGoldenSuites(t *testing.T) {
	groups, err := golden.LoadAllTestGroups("testdata")
	if err != nil {
		t.Fatalf("load suites: %v", err)
	}

	for _, group := range groups {
		t.Run(group.Name, func(t *testing.T) {
			for _, tc := range group.Cases {
				t.Run(tc.ID, func(t *testing.T) {
					if tc.Skip != "" {
						t.Skip(tc.Skip)
					}
					result := golden.EvaluateTestCase(context.Background(), tc)
					if !result.Passed {
						t.Errorf("%s\nsource:\n%s", result.Message, tc.Source)
					}
				})
			}
		})
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	if err := gotox.Run(`var a = 1; { a = a + 1; } print a;`, evaluator.WithOutput(&out)); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "2\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunWithContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := gotox.RunWithContext(ctx, `print 1;`, evaluator.WithOutput(&out))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should run, got %q", out.String())
	}
}

func TestRunSyntaxError(t *testing.T) {
	err := gotox.Run(`print ;`)
	if !types.HasCode(err, types.ErrExpectedExpression) {
		t.Fatalf("expected S0201, got %v", err)
	}
}

func TestMustCompile(t *testing.T) {
	prog := gotox.MustCompile(`print 1;`)
	if len(prog.Stmts()) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts()))
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(r.(string), "gotox: Compile") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()
	gotox.MustCompile(`print`)
}

func TestInterpreterSession(t *testing.T) {
	var out bytes.Buffer
	it := gotox.NewInterpreter(gotox.WithOutput(&out))
	ctx := context.Background()

	if _, ok, err := it.Exec(ctx, "repl", `var x = 2;`); err != nil || ok {
		t.Fatalf("var: ok=%v err=%v", ok, err)
	}
	v, ok, err := it.Exec(ctx, "repl", `x * 3;`)
	if err != nil || !ok {
		t.Fatalf("expr: ok=%v err=%v", ok, err)
	}
	if v.Kind != types.KindNumber || v.Num != 6 {
		t.Errorf("value = %s, want number 6", v.Describe())
	}

	if _, _, err := it.Exec(ctx, "repl", `y;`); !types.HasCode(err, types.ErrUndefinedVariable) {
		t.Fatalf("expected R0101, got %v", err)
	}
	// The session survives errors.
	if v, _, err := it.Exec(ctx, "repl", `x;`); err != nil || v.Num != 2 {
		t.Fatalf("after error: v=%s err=%v", v.Describe(), err)
	}

	names := it.Evaluator().Globals().Names()
	if len(names) != 1 || names[0] != "x" {
		t.Errorf("globals = %v", names)
	}
}

func TestInterpreterCaching(t *testing.T) {
	c := cache.New(8)
	it := gotox.NewInterpreter(gotox.WithCache(c), gotox.WithOutput(&bytes.Buffer{}))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := it.Exec(ctx, "a.lox", `print 1;`); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cached program, got %d", c.Len())
	}

	// The same text under another name is a separate entry.
	if _, _, err := it.Exec(ctx, "b.lox", `print 1;`); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 cached programs, got %d", c.Len())
	}
	if got, want := c.Stats(), (cache.Stats{Hits: 2, Misses: 2}); got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
	if it.Cache() != c {
		t.Error("Cache() should return the attached cache")
	}
}

func TestInterpreterCachingDisabled(t *testing.T) {
	it := gotox.NewInterpreter()
	if it.Cache() != nil {
		t.Error("no cache expected by default")
	}
	it = gotox.NewInterpreter(gotox.WithCaching(true), gotox.WithCacheSize(4))
	if it.Cache() == nil || it.Cache().Capacity() != 4 {
		t.Error("expected a cache of capacity 4")
	}
}

func TestInterpreterParseOptions(t *testing.T) {
	it := gotox.NewInterpreter(gotox.WithParseOptions(parser.WithMaxErrors(1)))
	_, _, err := it.Exec(context.Background(), "x", "print ;\nprint ;\n")

	var agg *types.AggregateError
	if !errors.As(err, &agg) {
		t.Fatalf("expected *types.AggregateError, got %T", err)
	}
	if len(agg.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(agg.Errors))
	}
}

func TestInterpreterMaxStringLength(t *testing.T) {
	it := gotox.NewInterpreter(gotox.WithMaxStringLength(3), gotox.WithOutput(&bytes.Buffer{}))
	_, _, err := it.Exec(context.Background(), "x", `"ab" * 2;`)
	if !types.HasCode(err, types.ErrStringTooLong) {
		t.Fatalf("expected R0204, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	if v := gotox.Version(); !strings.HasPrefix(v, "v") {
		t.Errorf("Version() = %q", v)
	}
}
