//go:build js && wasm

// Command gotox-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `gotox` object with the following API:
//
//	gotox.version()         → string
//	gotox.run(source)       → printed output  (throws on error)
//	gotox.session()         → { exec(source) → printed output }  (throws on error)
//
// A session keeps its global variables between exec calls.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gotox.wasm ./cmd/wasm/js/
//
// Usage in Node.js:
//
//	require('./wasm_exec.js')
//	const go = new Go()
//	const { instance } = await WebAssembly.instantiate(fs.readFileSync('gotox.wasm'), go.importObject)
//	go.run(instance)
//	console.log(gotox.run('print 1 + 2;')) // '3\n'
package main

import (
	"context"
	"syscall/js"

	"github.com/sandrolain/gotox"
	"github.com/sandrolain/gotox/internal/wasmapi"
)

// A panic inside a js.FuncOf callback ends the Go program, so failures are
// returned as {error} objects and this shim throws them on the JS side.
const throwShim = `return function() {
	const r = impl.apply(this, arguments);
	if (r.error) {
		throw r.error;
	}
	return r.output;
};`

// throwing wraps fn as a JS function that returns the output of a
// successful call and throws an Error carrying the message of a failed one.
func throwing(fn func(args []js.Value) *wasmapi.Result) js.Value {
	impl := js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		r := fn(args)
		if r.Failed() {
			return map[string]interface{}{"error": js.Global().Get("Error").New(r.Message())}
		}
		return map[string]interface{}{"output": r.Output}
	})
	return js.Global().Get("Function").New("impl", throwShim).Invoke(impl)
}

func usage(msg string) *wasmapi.Result {
	return &wasmapi.Result{Error: msg}
}

// jsRun implements gotox.run(source) → output.
func jsRun(args []js.Value) *wasmapi.Result {
	if len(args) < 1 {
		return usage("gotox.run requires 1 argument: source (string)")
	}
	r := wasmapi.Run(context.Background(), "<input>", args[0].String())
	if r.Failed() {
		r.Error = "gotox.run: " + r.Error
	}
	return r
}

// jsSession implements gotox.session() → { exec(source) → output }.
func jsSession(_ js.Value, _ []js.Value) interface{} {
	s := wasmapi.NewSession("<input>")
	exec := throwing(func(args []js.Value) *wasmapi.Result {
		if len(args) < 1 {
			return usage("session.exec requires 1 argument: source (string)")
		}
		r := s.Exec(context.Background(), args[0].String())
		if r.Failed() {
			r.Error = "session.exec: " + r.Error
		}
		return r
	})
	return js.ValueOf(map[string]interface{}{"exec": exec})
}

func main() {
	api := map[string]interface{}{
		"run":     throwing(jsRun),
		"session": js.FuncOf(jsSession),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gotox.Version()
		}),
	}
	js.Global().Set("gotox", js.ValueOf(api))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
