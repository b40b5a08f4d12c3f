// Command gotox runs Lox scripts or, without arguments, an interactive prompt.
//
// Usage:
//
//	gotox [flags] [script]
//
// Flags:
//
//	-config path  read settings from path instead of ~/.gotox.yaml
//	-tokens       print the tokens of script and exit
//	-ast          print the syntax tree of script and exit
//	-sandbox wasm run script inside the given WASI build of gotox
//	-debug        enable debug logging on stderr
//	-no-color     disable coloured output
//	-version      print the version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sandrolain/gotox"
	"github.com/sandrolain/gotox/internal/wasihost"
	"github.com/sandrolain/gotox/pkg/parser"
	"github.com/sandrolain/gotox/pkg/types"
)

// Exit statuses, as in sysexits.h.
const (
	exitOK      = 0
	exitUsage   = 64
	exitDataErr = 65
	exitIOErr   = 74
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	sandbox    string
	tokens     bool
	ast        bool
	debug      bool
	noColor    bool
	version    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("gotox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path of the YAML config file")
	fs.StringVar(&opts.sandbox, "sandbox", "", "run the script inside this WASI build of gotox")
	fs.BoolVar(&opts.tokens, "tokens", false, "print the tokens of the script and exit")
	fs.BoolVar(&opts.ast, "ast", false, "print the syntax tree of the script and exit")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: gotox [flags] [script]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "gotox %s\n", gotox.Version())
		return exitOK
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	// Flags override the config file.
	if opts.debug {
		cfg.Debug = true
	}
	if opts.noColor {
		off := false
		cfg.Color = &off
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	pal := newPalette(cfg.ColorEnabled())

	if fs.NArg() == 0 {
		if opts.tokens || opts.ast || opts.sandbox != "" {
			fmt.Fprintln(stderr, "-tokens, -ast and -sandbox need a script")
			return exitUsage
		}
		return runREPL(cfg, newInterpreter(cfg, logger, stdout, true), pal, stdout, stderr)
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "gotox: %v\n", err)
		return exitIOErr
	}
	source := string(data)

	switch {
	case opts.tokens:
		return dumpTokens(source, path, pal, stdout, stderr)
	case opts.ast:
		return dumpAST(source, path, cfg, pal, stdout, stderr)
	case opts.sandbox != "":
		return runSandboxed(opts.sandbox, source, path, logger, pal, stdout, stderr)
	}

	logger.Debug("running script", "path", path, "bytes", len(data))
	it := newInterpreter(cfg, logger, stdout, false)
	if _, _, err := it.Exec(context.Background(), path, source); err != nil {
		reportError(stderr, pal, err, path, source)
		return exitDataErr
	}
	return exitOK
}

// runSandboxed runs source in a fresh instance of a WASI build of gotox.
func runSandboxed(module, source, path string, logger *slog.Logger, pal *palette, stdout, stderr io.Writer) int {
	ctx := context.Background()
	h, err := wasihost.Load(ctx, module, wasihost.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "gotox: %v\n", err)
		return exitIOErr
	}
	defer h.Close(ctx)

	resp, err := h.Run(ctx, source)
	if err != nil {
		fmt.Fprintf(stderr, "gotox: %v\n", err)
		return exitIOErr
	}
	fmt.Fprint(stdout, resp.Output)
	if resp.Failed() {
		fmt.Fprintln(stderr, pal.err(resp.Error))
		if resp.Details != "" {
			// The guest names its input <stdin>.
			fmt.Fprintln(stderr, strings.Replace(resp.Details, "--> <stdin>:", "--> "+path+":", 1))
		}
		return exitDataErr
	}
	return exitOK
}

func newInterpreter(cfg *Config, logger *slog.Logger, stdout io.Writer, caching bool) *gotox.Interpreter {
	return gotox.NewInterpreter(
		gotox.WithOutput(stdout),
		gotox.WithLogger(logger),
		gotox.WithDebug(cfg.Debug),
		gotox.WithCaching(caching),
		gotox.WithMaxStringLength(cfg.MaxStringLength),
		gotox.WithParseOptions(parser.WithMaxErrors(cfg.MaxErrors)),
	)
}

func dumpTokens(source, path string, pal *palette, stdout, stderr io.Writer) int {
	tokens, err := parser.ScanAll(source)
	for _, t := range tokens {
		lexeme := t.Lexeme
		if t.Kind == parser.TokenEOF {
			lexeme = ""
		}
		fmt.Fprintf(stdout, "%-8s %-12s %s\n", t.Location, t.Kind, lexeme)
	}
	if err != nil {
		reportError(stderr, pal, err, path, source)
		return exitDataErr
	}
	return exitOK
}

func dumpAST(source, path string, cfg *Config, pal *palette, stdout, stderr io.Writer) int {
	prog, err := parser.Compile(source, parser.WithSourceName(path), parser.WithMaxErrors(cfg.MaxErrors))
	if err != nil {
		reportError(stderr, pal, err, path, source)
		return exitDataErr
	}
	if len(prog.Stmts()) > 0 {
		fmt.Fprintln(stdout, parser.PrintProgram(prog))
	}
	return exitOK
}

// reportError prints the one-line summary of err followed by its source
// excerpt.
func reportError(w io.Writer, pal *palette, err error, path, source string) {
	fmt.Fprintln(w, pal.err(err.Error()))
	if d, ok := types.AsDiagnostic(err); ok {
		fmt.Fprintln(w, d.Details(path, source))
	}
}

// palette colours CLI output.
type palette struct {
	str  func(a ...interface{}) string
	num  func(a ...interface{}) string
	atom func(a ...interface{}) string
	err  func(a ...interface{}) string
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if !enabled {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &palette{
		str:  mk(color.FgGreen),
		num:  mk(color.FgBlue, color.Bold),
		atom: mk(color.FgCyan, color.Bold),
		err:  mk(color.FgRed, color.Bold),
	}
}

// value colours v by kind.
func (p *palette) value(v types.Value) string {
	switch v.Kind {
	case types.KindString:
		return p.str(v.String())
	case types.KindNumber:
		return p.num(v.String())
	default:
		return p.atom(v.String())
	}
}
