package wasmapi

import (
	"context"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		output  string
		failure string
	}{
		{"success", "print 1 + 2;", "3\n", ""},
		{"runtime error keeps output", "print 1;\nprint -\"x\";", "1\n", "RuntimeError"},
		{"syntax error", "print ;", "", "SyntaxError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Run(context.Background(), "<stdin>", tt.source)
			if r.Output != tt.output {
				t.Errorf("output = %q, want %q", r.Output, tt.output)
			}
			if tt.failure == "" {
				if r.Failed() {
					t.Errorf("unexpected error: %s", r.Error)
				}
				return
			}
			if !strings.Contains(r.Error, tt.failure) {
				t.Errorf("error = %q, want %s", r.Error, tt.failure)
			}
			if !strings.Contains(r.Details, "--> <stdin>:") {
				t.Errorf("details missing the excerpt header: %q", r.Details)
			}
		})
	}
}

func TestResultMessage(t *testing.T) {
	r := &Result{Error: "RuntimeError: x"}
	if r.Message() != "RuntimeError: x" {
		t.Errorf("message = %q", r.Message())
	}
	r.Details = "excerpt"
	if r.Message() != "RuntimeError: x\nexcerpt" {
		t.Errorf("message = %q", r.Message())
	}
}

func TestSessionSurvivesErrors(t *testing.T) {
	ctx := context.Background()
	s := NewSession("<input>")

	if r := s.Exec(ctx, "var a = 1;"); r.Failed() {
		t.Fatalf("define: %s", r.Error)
	}
	r := s.Exec(ctx, "print a; print b;")
	if !r.Failed() || r.Output != "1\n" {
		t.Fatalf("expected a failure after printing 1, got %+v", r)
	}
	if !strings.Contains(r.Details, "--> <input>:") {
		t.Errorf("details = %q", r.Details)
	}
	if r := s.Exec(ctx, "print ;"); !r.Failed() {
		t.Fatal("expected a syntax error")
	}

	r = s.Exec(ctx, "a = a + 1; print a;")
	if r.Failed() {
		t.Fatalf("session lost after errors: %s", r.Error)
	}
	if r.Output != "2\n" {
		t.Errorf("output = %q, want only this call's output", r.Output)
	}
}
