// Package types defines the core data model shared by the gotox packages.
//
// This package contains type definitions for:
//   - Location: 1-based line/column positions
//   - Expr and Stmt: the AST produced by the parser
//   - Value: runtime values with their originating location
//   - Program: a parsed compilation unit
//   - Error types: located diagnostics with codes and source excerpts
package types

// Program is a parsed compilation unit.
//
// A Program is read-only once built and can be executed any number of times
// by any number of evaluators, including concurrently.
type Program struct {
	stmts  []Stmt
	name   string
	source string
}

// NewProgram creates a new Program from parsed statements.
func NewProgram(stmts []Stmt, name, source string) *Program {
	return &Program{
		stmts:  stmts,
		name:   name,
		source: source,
	}
}

// Stmts returns the top-level statements in source order.
func (p *Program) Stmts() []Stmt {
	return p.stmts
}

// Name returns the name the source was compiled under, e.g. a file path.
func (p *Program) Name() string {
	return p.name
}

// Source returns the original source code of the program.
func (p *Program) Source() string {
	return p.source
}

// String returns the program's source.
func (p *Program) String() string {
	return p.source
}
