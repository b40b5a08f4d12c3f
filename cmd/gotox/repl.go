package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/sandrolain/gotox"
	"github.com/sandrolain/gotox/pkg/parser"
)

const (
	replSourceName = "repl"
	contPrompt     = "... "
)

// session evaluates REPL input against one interpreter. It holds no
// terminal state, so it can be driven without a TTY.
type session struct {
	it     *gotox.Interpreter
	pal    *palette
	out    io.Writer
	errOut io.Writer
}

// command handles a line starting with ':' or a bare quit word. It reports
// whether the line was a command and whether the REPL should stop.
func (s *session) command(line string) (handled, quit bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", ":quit", ":q":
		return true, true
	case ":env":
		globals := s.it.Evaluator().Globals()
		for _, name := range globals.Names() {
			v, _ := globals.Get(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, s.pal.value(v))
		}
		return true, false
	case ":help":
		fmt.Fprintln(s.out, "Commands: :env lists variables, :quit leaves (also quit, exit, Ctrl-D).")
		return true, false
	}
	if isCommand(line) {
		fmt.Fprintln(s.errOut, "unknown command. Type :help for help.")
		return true, false
	}
	return false, false
}

// exec runs one complete chunk of source. Errors are printed, never returned:
// the REPL always continues with the next line.
func (s *session) exec(ctx context.Context, src string) {
	v, ok, err := s.it.Exec(ctx, replSourceName, src)
	if err != nil {
		reportError(s.errOut, s.pal, err, replSourceName, src)
		return
	}
	if ok {
		fmt.Fprintln(s.out, s.pal.value(v))
	}
}

// isCommand reports whether line is REPL syntax rather than source.
func isCommand(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "quit" || line == "exit" || strings.HasPrefix(line, ":")
}

// needsMore reports whether src is a prefix of a longer statement, such as
// an open block. It compiles with the session's own options; a complete
// chunk lands in the cache for the Exec that follows.
func needsMore(it *gotox.Interpreter, src string) bool {
	_, err := it.Compile(replSourceName, src)
	return err != nil && parser.IsIncomplete(err)
}

func runREPL(cfg *Config, it *gotox.Interpreter, pal *palette, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "gotox %s. Type :help for help, :quit to exit.\n", gotox.Version())

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	s := &session{it: it, pal: pal, out: stdout, errOut: stderr}
	ctx := context.Background()

	for {
		src, ok := readChunk(ln, it, cfg.Prompt, stdout)
		if !ok {
			fmt.Fprintln(stdout)
			return exitOK
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if handled, quit := s.command(src); handled {
			if quit {
				return exitOK
			}
			continue
		}
		s.exec(ctx, src)
	}
}

// readChunk reads lines until they form input that is not merely cut short.
// An empty continuation line submits what was typed so far. ok is false on
// end of input.
func readChunk(ln *liner.State, it *gotox.Interpreter, prompt string, stdout io.Writer) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = contPrompt
		}
		line, err := ln.Prompt(p)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(stdout, "^C")
			return "", true
		case errors.Is(err, io.EOF):
			return "", false
		case err != nil:
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if isCommand(src) || !needsMore(it, src) {
			return src, true
		}
	}
}
