package evaluator

import (
	"fmt"

	"github.com/sandrolain/gotox/pkg/types"
)

// evalExpr evaluates an expression node in the current scope.
func (e *Evaluator) evalExpr(expr types.Expr) (types.Value, error) {
	switch n := expr.(type) {
	case *types.LiteralExpr:
		return n.Value.WithLocation(n.Location), nil
	case *types.GroupingExpr:
		return e.evalExpr(n.Inner)
	case *types.UnaryExpr:
		return e.evalUnary(n)
	case *types.BinaryExpr:
		return e.evalBinary(n)
	case *types.LogicalExpr:
		return e.evalLogical(n)
	case *types.VariableExpr:
		v, ok := e.env.Get(n.Name)
		if !ok {
			return types.Value{}, undefinedVariable(n.Name, n.Location)
		}
		return v, nil
	case *types.AssignExpr:
		v, err := e.evalExpr(n.Value)
		if err != nil {
			return types.Value{}, err
		}
		if !e.env.Assign(n.Name, v) {
			return types.Value{}, undefinedVariable(n.Name, n.Location)
		}
		return v, nil
	default:
		return types.Value{}, unknownNode(expr)
	}
}

func undefinedVariable(name string, loc types.Location) error {
	return types.NewRuntimeError(types.ErrUndefinedVariable, fmt.Sprintf("Undefined variable `%s`", name), loc).WithToken(name)
}
