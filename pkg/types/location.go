package types

import "fmt"

// Location is a 1-based line and column in a source text.
// Every token, AST node, runtime value and diagnostic carries one.
type Location struct {
	Line   int
	Column int
}

// NewLocation creates a Location.
func NewLocation(line, column int) Location {
	return Location{Line: line, Column: column}
}

// String renders the location as "line:column".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsZero reports whether the location was never set.
func (l Location) IsZero() bool {
	return l.Line == 0 && l.Column == 0
}

// Before reports whether l comes strictly before other in the source.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
