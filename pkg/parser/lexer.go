package parser

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/sandrolain/gotox/pkg/types"
)

const eof = -1

// Lexer converts source text into a sequence of tokens.
// The implementation is based on Rob Pike's "Lexical Scanning in Go" technique.
type Lexer struct {
	input   string // Input string being scanned
	length  int    // Length of input string
	start   int    // Start position of current token
	current int    // Current position in input
	width   int    // Width of last rune read

	line     int            // Line of input[current]
	col      int            // Column of input[current], in runes
	prevLine int            // Line before the last nextRune
	prevCol  int            // Column before the last nextRune
	startLoc types.Location // Location of input[start]

	errs []*types.Error // Errors encountered, in source order
}

// NewLexer creates a new lexer from the provided source.
// The input is tokenized by successive calls to the Next method.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    input,
		length:   len(input),
		line:     1,
		col:      1,
		startLoc: types.NewLocation(1, 1),
	}
}

// Scan tokenizes the whole source and stops at the first lexical error.
// On success the returned slice always ends with a single TokenEOF.
func Scan(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		t := l.Next()
		if t.Kind == TokenError {
			return nil, l.errs[len(l.errs)-1]
		}
		tokens = append(tokens, t)
		if t.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

// ScanAll tokenizes the whole source, collecting every lexical error instead
// of stopping at the first one. Offending characters are dropped from the
// token stream. When errors occurred, the tokens are returned together with
// an *types.AggregateError.
func ScanAll(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		t := l.Next()
		if t.Kind == TokenError {
			continue
		}
		tokens = append(tokens, t)
		if t.Kind == TokenEOF {
			break
		}
	}
	if len(l.errs) > 0 {
		return tokens, &types.AggregateError{Errors: l.errs}
	}
	return tokens, nil
}

// Next returns the next token from the input.
// When the end of the input is reached, Next returns TokenEOF for all subsequent calls.
// Lexical errors are returned as TokenError and recorded; scanning can continue.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	l.ignore()

	ch := l.nextRune()
	if ch == eof {
		return l.eof()
	}

	// Check for two-character symbols first (e.g., !=, <=)
	if rts := lookupSymbol2(ch); rts != nil {
		for _, rt := range rts {
			if l.acceptRune(rt.r) {
				return l.newToken(rt.tk)
			}
		}
	}

	// Check for single-character symbols
	if tk := lookupSymbol1(ch); tk > 0 {
		return l.newToken(tk)
	}

	switch {
	case ch == '"':
		return l.scanString()
	case isDigit(ch):
		l.backup()
		return l.scanNumber()
	case isAlpha(ch):
		l.backup()
		return l.scanIdentifier()
	}

	return l.error(types.KindSyntax, types.ErrUnexpectedCharacter, fmt.Sprintf("Unexpected character %q", ch))
}

// Error returns the first error encountered during lexing, if any.
func (l *Lexer) Error() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[0]
}

// Errors returns every error encountered so far, in source order.
func (l *Lexer) Errors() []*types.Error {
	return l.errs
}

// scanString reads a string literal. The opening quote has already been
// consumed. Strings may span lines and have no escape sequences.
func (l *Lexer) scanString() Token {
	for {
		switch l.nextRune() {
		case '"':
			t := l.newToken(TokenString)
			t.Str = t.Lexeme[1 : len(t.Lexeme)-1]
			return t
		case eof:
			return l.error(types.KindSyntax, types.ErrStringNotClosed, "Unterminated string")
		}
	}
}

// scanNumber reads a number literal: digits, optionally followed by a
// fractional part. A '.' not followed by a digit is not part of the number.
func (l *Lexer) scanNumber() Token {
	l.acceptAll(isDigit)
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.nextRune()
		l.acceptAll(isDigit)
	}

	text := l.input[l.start:l.current]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		t := l.error(types.KindInternal, types.ErrNumberParse, fmt.Sprintf("Could not parse number literal %q", text))
		l.errs[len(l.errs)-1].WithCause(err)
		return t
	}

	t := l.newToken(TokenNumber)
	t.Num = n
	return t
}

// scanIdentifier reads an identifier or a keyword.
func (l *Lexer) scanIdentifier() Token {
	l.acceptAll(isAlphaNumeric)
	t := l.newToken(TokenIdentifier)
	t.Kind = lookupKeyword(t.Lexeme)
	return t
}

// Helper methods

func (l *Lexer) eof() Token {
	return Token{
		Kind:     TokenEOF,
		Location: l.startLoc,
	}
}

func (l *Lexer) error(kind types.ErrorKind, code types.ErrorCode, message string) Token {
	t := l.newToken(TokenError)
	l.errs = append(l.errs, types.NewError(kind, code, message, t.Location).WithToken(t.Lexeme))
	return t
}

func (l *Lexer) newToken(tk TokenKind) Token {
	t := Token{
		Kind:     tk,
		Lexeme:   l.input[l.start:l.current],
		Location: l.startLoc,
	}
	l.ignore()
	return t
}

func (l *Lexer) nextRune() rune {
	l.prevLine, l.prevCol = l.line, l.col
	if l.current >= l.length {
		l.width = 0
		return eof
	}

	r, w := utf8.DecodeRuneInString(l.input[l.current:])
	l.width = w
	l.current += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// backup steps back over the last rune read. It can only undo one nextRune.
func (l *Lexer) backup() {
	l.current -= l.width
	l.width = 0
	l.line, l.col = l.prevLine, l.prevCol
}

func (l *Lexer) ignore() {
	l.start = l.current
	l.width = 0
	l.startLoc = types.NewLocation(l.line, l.col)
}

func (l *Lexer) peek() rune {
	if l.current >= l.length {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.current >= l.length {
		return eof
	}
	_, w := utf8.DecodeRuneInString(l.input[l.current:])
	if l.current+w >= l.length {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.current+w:])
	return r
}

func (l *Lexer) acceptRune(r rune) bool {
	return l.accept(func(c rune) bool {
		return c == r
	})
}

func (l *Lexer) accept(isValid func(rune) bool) bool {
	if isValid(l.nextRune()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptAll(isValid func(rune) bool) bool {
	var matched bool
	for l.accept(isValid) {
		matched = true
	}
	return matched
}

// skipWhitespace skips blanks, newlines and // line comments.
func (l *Lexer) skipWhitespace() {
	for {
		l.acceptAll(isWhitespace)
		if l.peek() == '/' && l.peekNext() == '/' {
			l.acceptAll(func(r rune) bool { return r != '\n' && r != eof })
			continue
		}
		return
	}
}

// Character classification functions

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
