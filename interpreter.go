package gotox

import (
	"context"
	"io"
	"log/slog"

	"github.com/sandrolain/gotox/pkg/cache"
	"github.com/sandrolain/gotox/pkg/evaluator"
	"github.com/sandrolain/gotox/pkg/parser"
	"github.com/sandrolain/gotox/pkg/types"
)

// Interpreter is a session: global variables defined by one Exec call are
// visible to the next. The CLI REPL runs one Interpreter per process.
//
// An Interpreter is not safe for concurrent use. Sessions sharing a cache
// through WithCache may run on different goroutines.
type Interpreter struct {
	opts   Options
	logger *slog.Logger
	cache  *cache.Cache
	eval   *evaluator.Evaluator
}

// Options configures an Interpreter.
type Options struct {
	// Caching enables the compiled-program cache.
	Caching bool
	// CacheSize is the capacity of the cache created by Caching.
	CacheSize int
	// Cache is an external cache; it is used regardless of Caching.
	Cache *cache.Cache
	// Output receives print output. Defaults to os.Stdout.
	Output io.Writer
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// MaxStringLength bounds string repetition; zero keeps the default.
	MaxStringLength int
	// ParseOptions are passed to every compilation.
	ParseOptions []parser.CompileOption
}

// Option configures an Interpreter.
type Option func(*Options)

// NewInterpreter creates a session with an empty global scope.
func NewInterpreter(opts ...Option) *Interpreter {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	// Initialise program cache when caching is enabled.
	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		size := options.CacheSize
		if size <= 0 {
			size = 256
		}
		c = cache.New(size)
	}

	evalOpts := []evaluator.EvalOption{
		evaluator.WithLogger(options.Logger),
		evaluator.WithDebug(options.Debug),
	}
	if options.Output != nil {
		evalOpts = append(evalOpts, evaluator.WithOutput(options.Output))
	}
	if options.MaxStringLength > 0 {
		evalOpts = append(evalOpts, evaluator.WithMaxStringLength(options.MaxStringLength))
	}

	return &Interpreter{
		opts:   options,
		logger: options.Logger,
		cache:  c,
		eval:   evaluator.New(evalOpts...),
	}
}

// Exec compiles src and executes it in the session. name identifies the
// source in the compiled Program, e.g. a file path or "repl".
//
// When the last statement is an expression statement its value is returned
// with ok set to true.
func (it *Interpreter) Exec(ctx context.Context, name, src string) (result types.Value, ok bool, err error) {
	prog, err := it.compile(name, src)
	if err != nil {
		it.logger.DebugContext(ctx, "compilation failed", "name", name, "error", err)
		return types.Value{}, false, err
	}
	return it.eval.Eval(ctx, prog)
}

// Compile compiles src with the session's parse options, through the cache
// when one is configured. It does not run anything.
func (it *Interpreter) Compile(name, src string) (*types.Program, error) {
	return it.compile(name, src)
}

func (it *Interpreter) compile(name, src string) (*types.Program, error) {
	opts := append([]parser.CompileOption{parser.WithSourceName(name)}, it.opts.ParseOptions...)
	if it.cache == nil {
		return parser.Compile(src, opts...)
	}
	return it.cache.GetOrCompile(cache.Key{Name: name, Source: src}, func() (*types.Program, error) {
		return parser.Compile(src, opts...)
	})
}

// Evaluator returns the session's evaluator, e.g. to inspect its globals.
func (it *Interpreter) Evaluator() *evaluator.Evaluator {
	return it.eval
}

// Cache returns the program cache, or nil when caching is disabled.
func (it *Interpreter) Cache() *cache.Cache {
	return it.cache
}

// WithCaching enables or disables compiled-program caching.
// When enabled, a default LRU cache of 256 entries is created.
// To control the cache size use WithCacheSize; to supply your own cache use WithCache.
func WithCaching(enabled bool) Option {
	return func(opts *Options) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached programs.
// Only effective when combined with WithCaching(true).
func WithCacheSize(size int) Option {
	return func(opts *Options) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external program cache.
// The interpreter will use this cache regardless of the Caching flag.
func WithCache(c *cache.Cache) Option {
	return func(opts *Options) {
		opts.Cache = c
	}
}

// WithOutput sets the writer print statements write to.
func WithOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.Output = w
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMaxStringLength bounds the length of strings built by repetition.
func WithMaxStringLength(n int) Option {
	return func(opts *Options) {
		opts.MaxStringLength = n
	}
}

// WithParseOptions adds parser options used for every compilation.
func WithParseOptions(popts ...parser.CompileOption) Option {
	return func(opts *Options) {
		opts.ParseOptions = append(opts.ParseOptions, popts...)
	}
}
