package parser

// Package parser implements the gotox lexer and parser.
//
// The parser uses a hand-written recursive descent approach with one method
// per precedence level. Syntax errors do not stop the parse: after an error
// the parser synchronizes on the next statement boundary and keeps going, so
// a single call reports every independent error in the source.
//
// # Architecture
//
// The package consists of three main components:
//   - Lexer: Tokenizes the source into a stream of tokens
//   - Parser: Builds an AST ([]types.Stmt) from tokens
//   - Printer: Renders an AST back in parenthesized prefix form
//
// # Example
//
//	prog, err := parser.Compile(`print 1 + 2;`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(parser.PrintProgram(prog))

import (
	"github.com/sandrolain/gotox/pkg/types"
)

// Parse builds the AST for an already scanned token sequence.
//
// All syntax errors found are returned together as an *types.AggregateError.
// The statements are only returned when there were no errors.
func Parse(tokens []Token, opts ...CompileOption) ([]types.Stmt, error) {
	p := NewParser(tokens, opts...)
	return p.Parse()
}

// Compile scans and parses source into a Program.
//
// Lexical errors do not prevent parsing; lexical and syntax errors are merged
// into one *types.AggregateError, lexical errors first.
//
// Example:
//
//	prog, err := parser.Compile(src, parser.WithSourceName("main.lox"))
//	if err != nil {
//	    d, _ := types.AsDiagnostic(err)
//	    fmt.Println(d.Details("main.lox", src))
//	    return
//	}
func Compile(source string, opts ...CompileOption) (*types.Program, error) {
	p := NewParser(nil, opts...)

	tokens, lexErr := ScanAll(source)
	p.tokens = normalizeTokens(tokens)
	stmts, parseErr := p.Parse()

	if lexErr != nil || parseErr != nil {
		var all []*types.Error
		for _, err := range []error{lexErr, parseErr} {
			if agg, ok := err.(*types.AggregateError); ok {
				all = append(all, agg.Errors...)
			}
		}
		if p.opts.MaxErrors > 0 && len(all) > p.opts.MaxErrors {
			all = all[:p.opts.MaxErrors]
		}
		return nil, &types.AggregateError{Errors: all}
	}

	return types.NewProgram(stmts, p.opts.SourceName, source), nil
}

// IsIncomplete reports whether err only complains about source ending too
// early, such as an unclosed block or string. An interactive caller can read
// more input and compile again.
func IsIncomplete(err error) bool {
	agg, ok := err.(*types.AggregateError)
	if !ok || len(agg.Errors) == 0 {
		return false
	}
	for _, e := range agg.Errors {
		switch {
		case e.Code == types.ErrStringNotClosed:
		case e.Kind == types.KindSyntax && e.Token == "" && e.Code != types.ErrNestingTooDeep:
			// Only the end-of-input token has no lexeme.
		default:
			return false
		}
	}
	return true
}

// CompileOption configures parsing behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxErrors stops the parse once this many errors were collected.
	// Zero means no limit.
	MaxErrors int
	// MaxDepth limits expression and block nesting to prevent stack overflow.
	MaxDepth int
	// SourceName is recorded on the compiled Program, e.g. a file path.
	SourceName string
}

// WithMaxErrors sets the maximum number of errors collected in one parse.
func WithMaxErrors(n int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxErrors = n
	}
}

// WithMaxDepth sets the maximum parsing depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}

// WithSourceName sets the name recorded on the compiled Program.
func WithSourceName(name string) CompileOption {
	return func(opts *CompileOptions) {
		opts.SourceName = name
	}
}
