// Package wasihost runs gotox programs inside the WASI build of gotox
// (cmd/wasm/wasi), hosted by the wazero runtime.
//
// The guest module is compiled once by New or Load; every Run instantiates a
// fresh copy, so programs never share state and a runaway program can be
// stopped by cancelling its context.
//
//	h, err := wasihost.Load(ctx, "gotox.wasm")
//	if err != nil {
//	    return err
//	}
//	defer h.Close(ctx)
//	resp, err := h.Run(ctx, `print 1 + 2;`)
package wasihost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/sandrolain/gotox/internal/wasmapi"
)

// DefaultMemoryLimitPages caps guest memory at 256 MiB (64 KiB pages).
const DefaultMemoryLimitPages = 4096

// Response is the guest's reply. Error is empty when the program succeeded;
// Output holds whatever was printed before a failure.
type Response = wasmapi.Result

// Host owns a wazero runtime and the compiled gotox guest.
type Host struct {
	runtime wazero.Runtime
	module  wazero.CompiledModule
	logger  *slog.Logger
}

type options struct {
	memoryLimitPages uint32
	logger           *slog.Logger
}

// Option configures a Host.
type Option func(*options)

// WithMemoryLimitPages bounds guest memory, in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(o *options) {
		o.memoryLimitPages = pages
	}
}

// WithLogger sets the logger used for guest lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load reads a WASI build of gotox from path and compiles it.
func Load(ctx context.Context, path string, opts ...Option) (*Host, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wasihost: %w", err)
	}
	return New(ctx, bin, opts...)
}

// New compiles the guest module from its binary.
func New(ctx context.Context, wasm []byte, opts ...Option) (*Host, error) {
	o := options{memoryLimitPages: DefaultMemoryLimitPages}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	cfg := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(o.memoryLimitPages).
		WithCloseOnContextDone(true)
	r := wazero.NewRuntimeWithConfig(ctx, cfg)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("wasihost: instantiate WASI: %w", err)
	}

	module, err := r.CompileModule(ctx, wasm)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("wasihost: compile module: %w", err)
	}

	o.logger.Debug("guest compiled", "bytes", len(wasm), "memory_limit_pages", o.memoryLimitPages)
	return &Host{runtime: r, module: module, logger: o.logger}, nil
}

// Run executes source in a fresh guest instance.
//
// A program that fails with a syntax or runtime error is not a Run error:
// the guest reports it in the Response. Run fails when the guest cannot be
// started, is cancelled through ctx, or replies with something that is not
// a Response.
func (h *Host) Run(ctx context.Context, source string) (*Response, error) {
	req, err := json.Marshal(wasmapi.Request{Source: source})
	if err != nil {
		return nil, fmt.Errorf("wasihost: encode request: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs("gotox").
		WithSysWalltime().
		WithSysNanotime().
		WithStdin(bytes.NewReader(req)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := h.runtime.InstantiateModule(ctx, h.module, cfg)
	if mod != nil {
		defer mod.Close(ctx)
	}
	if err != nil {
		var exit *sys.ExitError
		// The guest exits with 1 after writing a failure response.
		if !errors.As(err, &exit) || exit.ExitCode() != 1 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("wasihost: run guest: %w (stderr: %q)", err, stderr.String())
		}
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("wasihost: decode response: %w", err)
	}
	h.logger.Debug("guest finished", "failed", resp.Failed(), "output_bytes", len(resp.Output))
	return &resp, nil
}

// Close releases the runtime and every compiled module.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
