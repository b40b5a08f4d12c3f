//go:build wasip1

// Command gotox-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "source": "<lox program>" }
//	stdout: { "output": "<printed text>" }                              on success
//	        { "output": "...", "error": "<summary>", "details": "..." }   on failure (exit code 1)
//
// Output printed before a runtime error is kept in "output".
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gotox.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"source":"print 1 + 2;"}' | wasmtime gotox.wasm
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sandrolain/gotox/internal/wasmapi"
)

func writeResult(r *wasmapi.Result) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	if r.Failed() {
		os.Exit(1)
	}
	os.Exit(0)
}

func main() {
	var req wasmapi.Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResult(&wasmapi.Result{Error: "invalid request JSON: " + err.Error()})
	}
	writeResult(wasmapi.Run(context.Background(), "<stdin>", req.Source))
}
