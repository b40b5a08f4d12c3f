package parser

import (
	"fmt"
	"strings"

	"github.com/sandrolain/gotox/pkg/types"
)

// Print renders an expression or statement in parenthesized prefix form,
// e.g. `(+ 1 (* 2 3))`. It is meant for debugging and tests.
func Print(node types.Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// PrintProgram renders every top-level statement of prog, one per line.
func PrintProgram(prog *types.Program) string {
	lines := make([]string, 0, len(prog.Stmts()))
	for _, stmt := range prog.Stmts() {
		lines = append(lines, Print(stmt))
	}
	return strings.Join(lines, "\n")
}

func writeNode(b *strings.Builder, node types.Node) {
	switch n := node.(type) {
	case *types.LiteralExpr:
		if n.Value.Kind == types.KindString {
			fmt.Fprintf(b, "%q", n.Value.Str)
		} else {
			b.WriteString(n.Value.String())
		}
	case *types.GroupingExpr:
		parenthesize(b, "group", n.Inner)
	case *types.UnaryExpr:
		parenthesize(b, string(n.Op), n.Operand)
	case *types.BinaryExpr:
		parenthesize(b, string(n.Op), n.Left, n.Right)
	case *types.LogicalExpr:
		parenthesize(b, string(n.Op), n.Left, n.Right)
	case *types.VariableExpr:
		b.WriteString(n.Name)
	case *types.AssignExpr:
		fmt.Fprintf(b, "(= %s ", n.Name)
		writeNode(b, n.Value)
		b.WriteByte(')')
	case *types.ExprStmt:
		parenthesize(b, ";", n.Expr)
	case *types.PrintStmt:
		parenthesize(b, "print", n.Expr)
	case *types.VarStmt:
		if n.Initializer == nil {
			fmt.Fprintf(b, "(var %s)", n.Name)
			return
		}
		fmt.Fprintf(b, "(var %s ", n.Name)
		writeNode(b, n.Initializer)
		b.WriteByte(')')
	case *types.BlockStmt:
		nodes := make([]types.Node, len(n.Stmts))
		for i, s := range n.Stmts {
			nodes[i] = s
		}
		parenthesize(b, "block", nodes...)
	case *types.IfStmt:
		if n.Else == nil {
			parenthesize(b, "if", n.Cond, n.Then)
		} else {
			parenthesize(b, "if", n.Cond, n.Then, n.Else)
		}
	default:
		fmt.Fprintf(b, "(unknown %T)", node)
	}
}

func parenthesize(b *strings.Builder, name string, nodes ...types.Node) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, n := range nodes {
		b.WriteByte(' ')
		writeNode(b, n)
	}
	b.WriteByte(')')
}
