package golden

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sandrolain/gotox"
	"github.com/sandrolain/gotox/pkg/types"
)

// EvaluateTestCase runs a case on a fresh interpreter and compares the
// printed output and diagnostic with the expectation.
func EvaluateTestCase(ctx context.Context, tc *TestCase) *TestResult {
	start := time.Now()

	var out bytes.Buffer
	it := gotox.NewInterpreter(
		gotox.WithOutput(&out),
		gotox.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	_, _, err := it.Exec(ctx, tc.ID, tc.Source)

	result := &TestResult{
		Output:     out.String(),
		Error:      err,
		DurationMs: time.Since(start).Seconds() * 1000,
	}
	if err != nil {
		result.ErrorCode = errorCode(err)
	}

	result.Passed, result.Message = compare(tc, result)
	return result
}

func errorCode(err error) string {
	d, ok := types.AsDiagnostic(err)
	if !ok {
		return ""
	}
	switch e := d.(type) {
	case *types.Error:
		return string(e.Code)
	case *types.AggregateError:
		if len(e.Errors) > 0 {
			return string(e.Errors[0].Code)
		}
	}
	return ""
}

func compare(tc *TestCase, r *TestResult) (bool, string) {
	if r.Output != tc.Output {
		return false, fmt.Sprintf("output mismatch:\n got: %q\nwant: %q", r.Output, tc.Output)
	}

	if tc.Error == nil {
		if r.Error != nil {
			return false, fmt.Sprintf("unexpected error: %v", r.Error)
		}
		return true, ""
	}
	if r.Error == nil {
		return false, fmt.Sprintf("expected error %s, got none", tc.Error.Code)
	}

	want := tc.Error
	if want.Code != "" && r.ErrorCode != want.Code {
		return false, fmt.Sprintf("error code %s, want %s (%v)", r.ErrorCode, want.Code, r.Error)
	}

	d, _ := types.AsDiagnostic(r.Error)
	first := firstError(r.Error)
	if want.Message != "" && (first == nil || first.Message != want.Message) {
		return false, fmt.Sprintf("error message %q, want %q", r.Error, want.Message)
	}
	if d != nil {
		loc := d.Location()
		if want.Line != 0 && loc.Line != want.Line {
			return false, fmt.Sprintf("error line %d, want %d", loc.Line, want.Line)
		}
		if want.Column != 0 && loc.Column != want.Column {
			return false, fmt.Sprintf("error column %d, want %d", loc.Column, want.Column)
		}
	}
	if want.Count != 0 {
		agg, ok := r.Error.(*types.AggregateError)
		if !ok || len(agg.Errors) != want.Count {
			return false, fmt.Sprintf("expected %d syntax errors, got %v", want.Count, r.Error)
		}
	}
	return true, ""
}

// firstError returns the error itself or the first error of an aggregate.
func firstError(err error) *types.Error {
	switch e := err.(type) {
	case *types.Error:
		return e
	case *types.AggregateError:
		if len(e.Errors) > 0 {
			return e.Errors[0]
		}
	}
	return nil
}
