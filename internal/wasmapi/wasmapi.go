// Package wasmapi is the host-independent core of the WebAssembly builds.
//
// Both entrypoints in cmd/wasm reduce every call to a Result, so a failing
// program never takes the guest down: the WASI build encodes the Result as
// JSON, the JS build hands it to a shim that throws.
package wasmapi

import (
	"bytes"
	"context"

	"github.com/sandrolain/gotox"
	"github.com/sandrolain/gotox/pkg/evaluator"
	"github.com/sandrolain/gotox/pkg/types"
)

// Request is the WASI input object.
type Request struct {
	Source string `json:"source"`
}

// Result is the outcome of one program. Error is empty on success; Output
// holds whatever was printed before a failure.
type Result struct {
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Failed reports whether the program ended with an error.
func (r *Result) Failed() bool {
	return r.Error != ""
}

// Message is the error summary followed by the source excerpt, if any.
func (r *Result) Message() string {
	if r.Details == "" {
		return r.Error
	}
	return r.Error + "\n" + r.Details
}

func newResult(out string, err error, name, source string) *Result {
	r := &Result{Output: out}
	if err == nil {
		return r
	}
	r.Error = err.Error()
	if d, ok := types.AsDiagnostic(err); ok {
		r.Details = d.Details(name, source)
	}
	return r
}

// Run executes source in a fresh global scope. name labels the excerpt.
func Run(ctx context.Context, name, source string) *Result {
	var out bytes.Buffer
	err := gotox.RunWithContext(ctx, source, evaluator.WithOutput(&out))
	return newResult(out.String(), err, name, source)
}

// Session keeps global variables between Exec calls, including calls that
// fail.
type Session struct {
	name string
	out  bytes.Buffer
	it   *gotox.Interpreter
}

// NewSession creates a session whose excerpts are labelled name.
func NewSession(name string) *Session {
	s := &Session{name: name}
	s.it = gotox.NewInterpreter(gotox.WithOutput(&s.out), gotox.WithCaching(true))
	return s
}

// Exec runs source against the session's globals. The Result's Output only
// holds what this call printed.
func (s *Session) Exec(ctx context.Context, source string) *Result {
	s.out.Reset()
	_, _, err := s.it.Exec(ctx, s.name, source)
	return newResult(s.out.String(), err, s.name, source)
}
