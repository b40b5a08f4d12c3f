package types

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// renderExcerpt builds the multi-line source excerpt for a diagnostic:
//
//	--> script.lox:3:10
//	  2 | var a = 1;
//	> 3 | print a +;
//	    |          ^
//	  4 | print b;
//
// At most one line of context is shown on each side. Line and column are
// 1-based and clamped to the source, so any location renders safely.
func renderExcerpt(path, source string, loc Location) string {
	lines := strings.Split(source, "\n")
	line := clamp(loc.Line, 1, len(lines))
	text := strings.TrimSuffix(lines[line-1], "\r")
	col := clamp(loc.Column, 1, utf8.RuneCountInString(text)+1)

	first, last := line, line
	if line > 1 {
		first = line - 1
	}
	if line < len(lines) {
		last = line + 1
	}
	width := len(strconv.Itoa(last))

	var b strings.Builder
	if path == "" {
		path = "<source>"
	}
	fmt.Fprintf(&b, "--> %s:%d:%d\n", path, line, col)
	for n := first; n <= last; n++ {
		marker := "  "
		if n == line {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%*d | %s\n", marker, width, n, strings.TrimSuffix(lines[n-1], "\r"))
		if n == line {
			fmt.Fprintf(&b, "%s | %s^\n", strings.Repeat(" ", width+2), caretPadding(text, col))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// caretPadding returns the whitespace that places a caret under column col,
// keeping tabs so the caret lines up with tab-indented code.
func caretPadding(text string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
