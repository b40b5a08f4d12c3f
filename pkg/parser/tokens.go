package parser

import "github.com/sandrolain/gotox/pkg/types"

// TokenKind represents the kind of a lexical token.
type TokenKind uint8

const (
	// Special tokens
	TokenEOF TokenKind = iota
	TokenError

	// Single-character tokens
	TokenLeftParen  // (
	TokenRightParen // )
	TokenLeftBrace  // {
	TokenRightBrace // }
	TokenComma      // ,
	TokenDot        // .
	TokenMinus      // -
	TokenPlus       // +
	TokenSemicolon  // ;
	TokenSlash      // /
	TokenStar       // *

	// One or two character tokens
	TokenBang         // !
	TokenBangEqual    // !=
	TokenEqual        // =
	TokenEqualEqual   // ==
	TokenGreater      // >
	TokenGreaterEqual // >=
	TokenLess         // <
	TokenLessEqual    // <=

	// Literals
	TokenIdentifier
	TokenString
	TokenNumber

	// Keywords
	TokenAnd
	TokenClass
	TokenElse
	TokenFalse
	TokenFor
	TokenFun
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenSuper
	TokenThis
	TokenTrue
	TokenVar
	TokenWhile
)

// String returns a string representation of the token kind.
func (tk TokenKind) String() string {
	switch tk {
	case TokenEOF:
		return "end of input"
	case TokenError:
		return "(error)"
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	}
	if s, ok := tokenText[tk]; ok {
		return s
	}
	return "(unknown)"
}

// IsKeyword reports whether the kind is a reserved word.
func (tk TokenKind) IsKeyword() bool {
	return tk >= TokenAnd && tk <= TokenWhile
}

var tokenText = map[TokenKind]string{
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenMinus:        "-",
	TokenPlus:         "+",
	TokenSemicolon:    ";",
	TokenSlash:        "/",
	TokenStar:         "*",
	TokenBang:         "!",
	TokenBangEqual:    "!=",
	TokenEqual:        "=",
	TokenEqualEqual:   "==",
	TokenGreater:      ">",
	TokenGreaterEqual: ">=",
	TokenLess:         "<",
	TokenLessEqual:    "<=",
	TokenAnd:          "and",
	TokenClass:        "class",
	TokenElse:         "else",
	TokenFalse:        "false",
	TokenFor:          "for",
	TokenFun:          "fun",
	TokenIf:           "if",
	TokenNil:          "nil",
	TokenOr:           "or",
	TokenPrint:        "print",
	TokenReturn:       "return",
	TokenSuper:        "super",
	TokenThis:         "this",
	TokenTrue:         "true",
	TokenVar:          "var",
	TokenWhile:        "while",
}

// Token is a lexical token.
type Token struct {
	Kind     TokenKind      // Kind of the token
	Lexeme   string         // Raw source text of the token
	Str      string         // Content of a string literal, without quotes
	Num      float64        // Value of a number literal
	Location types.Location // Location of the token's first character
}

// String renders the token for error messages, e.g. "`foo`" or "end of input".
func (t Token) String() string {
	if t.Kind == TokenEOF {
		return t.Kind.String()
	}
	return "`" + t.Lexeme + "`"
}

// symbols1 maps single-character symbols to token kinds.
var symbols1 = [...]TokenKind{
	'(': TokenLeftParen,
	')': TokenRightParen,
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	',': TokenComma,
	'.': TokenDot,
	'-': TokenMinus,
	'+': TokenPlus,
	';': TokenSemicolon,
	'/': TokenSlash,
	'*': TokenStar,
	'!': TokenBang,
	'=': TokenEqual,
	'>': TokenGreater,
	'<': TokenLess,
}

// runeTokenKind pairs a rune with its corresponding token kind.
type runeTokenKind struct {
	r  rune
	tk TokenKind
}

// symbols2 maps two-character symbol sequences to token kinds.
// The key is the first character of the sequence.
var symbols2 = [...][]runeTokenKind{
	'!': {{'=', TokenBangEqual}},
	'=': {{'=', TokenEqualEqual}},
	'>': {{'=', TokenGreaterEqual}},
	'<': {{'=', TokenLessEqual}},
}

const (
	symbol1Count = rune(len(symbols1))
	symbol2Count = rune(len(symbols2))
)

// lookupSymbol1 returns the token kind for a single-character symbol.
// Returns 0 if the rune is not a valid symbol.
func lookupSymbol1(r rune) TokenKind {
	if r < 0 || r >= symbol1Count {
		return 0
	}
	return symbols1[r]
}

// lookupSymbol2 returns possible two-character symbol completions.
// Returns nil if the rune cannot start a two-character symbol.
func lookupSymbol2(r rune) []runeTokenKind {
	if r < 0 || r >= symbol2Count {
		return nil
	}
	return symbols2[r]
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]TokenKind{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// lookupKeyword returns the token kind for a keyword.
// Returns TokenIdentifier if the string is not a reserved word.
func lookupKeyword(s string) TokenKind {
	if tk, ok := keywords[s]; ok {
		return tk
	}
	return TokenIdentifier
}
