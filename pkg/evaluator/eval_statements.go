package evaluator

import (
	"fmt"

	"github.com/sandrolain/gotox/pkg/types"
)

func (e *Evaluator) execute(stmt types.Stmt) error {
	switch s := stmt.(type) {
	case *types.ExprStmt:
		_, err := e.evalExpr(s.Expr)
		return err
	case *types.PrintStmt:
		return e.execPrint(s)
	case *types.VarStmt:
		return e.execVar(s)
	case *types.BlockStmt:
		return e.executeBlock(s.Stmts, NewEnvironment(e.env))
	case *types.IfStmt:
		return e.execIf(s)
	default:
		return unknownNode(stmt)
	}
}

func (e *Evaluator) execPrint(s *types.PrintStmt) error {
	v, err := e.evalExpr(s.Expr)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(e.opts.Output, v.String()); err != nil {
		return types.NewRuntimeError(types.ErrOutputFailed, "Could not write output", s.Location).WithCause(err)
	}
	return nil
}

func (e *Evaluator) execVar(s *types.VarStmt) error {
	value := types.NilValue(s.Location)
	if s.Initializer != nil {
		v, err := e.evalExpr(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}

	e.env.Define(s.Name, value)
	if e.opts.Debug {
		e.logger.Debug("define", "name", s.Name, "value", value.Describe(), "depth", e.env.Depth())
	}
	return nil
}

// executeBlock runs stmts in env and restores the enclosing scope afterwards,
// whether or not a statement failed.
func (e *Evaluator) executeBlock(stmts []types.Stmt, env *Environment) error {
	previous := e.env
	e.env = env
	if e.opts.Debug {
		e.logger.Debug("enter scope", "depth", env.Depth())
	}
	defer func() {
		e.env = previous
		if e.opts.Debug {
			e.logger.Debug("leave scope", "depth", env.Depth())
		}
	}()

	for _, stmt := range stmts {
		if err := e.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) execIf(s *types.IfStmt) error {
	cond, err := e.evalExpr(s.Cond)
	if err != nil {
		return err
	}
	switch {
	case cond.Truthy():
		return e.execute(s.Then)
	case s.Else != nil:
		return e.execute(s.Else)
	}
	return nil
}

func unknownNode(node types.Node) error {
	var loc types.Location
	if node != nil {
		loc = node.Loc()
	}
	return types.NewInternalError(types.ErrUnknownNode, fmt.Sprintf("Cannot evaluate node of type %T", node), loc)
}
