package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/sandrolain/gotox/pkg/types"
)

func (e *Evaluator) evalUnary(node *types.UnaryExpr) (types.Value, error) {
	operand, err := e.evalExpr(node.Operand)
	if err != nil {
		return types.Value{}, err
	}

	switch node.Op {
	case types.OpNot:
		return types.BoolValue(!operand.Truthy(), node.Location), nil
	case types.OpNegate:
		if operand.Kind != types.KindNumber {
			return types.Value{}, types.NewRuntimeError(types.ErrInvalidUnary,
				fmt.Sprintf("Unary operator `-` can only be applied to numbers, but got %s", operand.Describe()),
				node.Location).WithToken(string(node.Op))
		}
		return types.NumberValue(-operand.Num, node.Location), nil
	default:
		return types.Value{}, unknownNode(node)
	}
}

// evalLogical short-circuits: the right operand is evaluated only when the
// left one does not decide the result. The deciding operand's own value is
// returned.
func (e *Evaluator) evalLogical(node *types.LogicalExpr) (types.Value, error) {
	left, err := e.evalExpr(node.Left)
	if err != nil {
		return types.Value{}, err
	}

	switch node.Op {
	case types.OpOr:
		if left.Truthy() {
			return left, nil
		}
	case types.OpAnd:
		if !left.Truthy() {
			return left, nil
		}
	default:
		return types.Value{}, unknownNode(node)
	}
	return e.evalExpr(node.Right)
}

func (e *Evaluator) evalBinary(node *types.BinaryExpr) (types.Value, error) {
	// Evaluate both sides
	left, err := e.evalExpr(node.Left)
	if err != nil {
		return types.Value{}, err
	}

	right, err := e.evalExpr(node.Right)
	if err != nil {
		return types.Value{}, err
	}

	loc := node.Location
	switch node.Op {
	case types.OpEqual:
		return types.BoolValue(left.Equal(right), loc), nil
	case types.OpNotEqual:
		return types.BoolValue(!left.Equal(right), loc), nil
	case types.OpLess, types.OpLessEqual, types.OpGreater, types.OpGreaterEqual:
		return compareValues(node.Op, left, right, loc)
	case types.OpAdd:
		return addValues(left, right, loc)
	case types.OpSubtract, types.OpDivide:
		if left.Kind != types.KindNumber || right.Kind != types.KindNumber {
			return types.Value{}, invalidOperands(node.Op, left, right, loc)
		}
		if node.Op == types.OpSubtract {
			return types.NumberValue(left.Num-right.Num, loc), nil
		}
		return types.NumberValue(left.Num/right.Num, loc), nil
	case types.OpMultiply:
		return e.multiplyValues(left, right, loc)
	default:
		return types.Value{}, unknownNode(node)
	}
}

// compareValues orders two numbers or two strings.
func compareValues(op types.BinaryOp, left, right types.Value, loc types.Location) (types.Value, error) {
	var cmp int
	switch {
	case left.Kind == types.KindNumber && right.Kind == types.KindNumber:
		// NaN compares false with everything.
		if math.IsNaN(left.Num) || math.IsNaN(right.Num) {
			return types.BoolValue(false, loc), nil
		}
		switch {
		case left.Num < right.Num:
			cmp = -1
		case left.Num > right.Num:
			cmp = 1
		}
	case left.Kind == types.KindString && right.Kind == types.KindString:
		cmp = strings.Compare(left.Str, right.Str)
	default:
		return types.Value{}, types.NewRuntimeError(types.ErrInvalidComparison,
			fmt.Sprintf("Cannot compare %s and %s", left.Describe(), right.Describe()),
			loc).WithToken(string(op))
	}

	var result bool
	switch op {
	case types.OpLess:
		result = cmp < 0
	case types.OpLessEqual:
		result = cmp <= 0
	case types.OpGreater:
		result = cmp > 0
	case types.OpGreaterEqual:
		result = cmp >= 0
	}
	return types.BoolValue(result, loc), nil
}

func addValues(left, right types.Value, loc types.Location) (types.Value, error) {
	switch {
	case left.Kind == types.KindNumber && right.Kind == types.KindNumber:
		return types.NumberValue(left.Num+right.Num, loc), nil
	case left.Kind == types.KindString && right.Kind == types.KindString:
		return types.StringValue(left.Str+right.Str, loc), nil
	default:
		return types.Value{}, invalidOperands(types.OpAdd, left, right, loc)
	}
}

func (e *Evaluator) multiplyValues(left, right types.Value, loc types.Location) (types.Value, error) {
	switch {
	case left.Kind == types.KindNumber && right.Kind == types.KindNumber:
		return types.NumberValue(left.Num*right.Num, loc), nil
	case left.Kind == types.KindString && right.Kind == types.KindNumber:
		return e.repeatString(left.Str, right.Num, loc)
	default:
		return types.Value{}, invalidOperands(types.OpMultiply, left, right, loc)
	}
}

// repeatString implements `string * number`. The count is truncated toward
// zero, so "ab" * 2.9 is "abab" and "ab" * 0.5 is "".
func (e *Evaluator) repeatString(s string, times float64, loc types.Location) (types.Value, error) {
	if math.IsNaN(times) || math.IsInf(times, 0) || times < 0 {
		return types.Value{}, types.NewRuntimeError(types.ErrInvalidOperands,
			fmt.Sprintf("Cannot repeat a string %s times", types.FormatNumber(times)),
			loc).WithToken(string(types.OpMultiply))
	}

	count := math.Trunc(times)
	if s == "" || count == 0 {
		return types.StringValue("", loc), nil
	}
	if float64(len(s))*count > float64(e.opts.MaxStringLength) {
		return types.Value{}, types.NewRuntimeError(types.ErrStringTooLong,
			fmt.Sprintf("Repeating a string of length %d %s times exceeds the limit of %d bytes",
				len(s), types.FormatNumber(count), e.opts.MaxStringLength),
			loc).WithToken(string(types.OpMultiply))
	}
	return types.StringValue(strings.Repeat(s, int(count)), loc), nil
}

func invalidOperands(op types.BinaryOp, left, right types.Value, loc types.Location) error {
	return types.NewRuntimeError(types.ErrInvalidOperands,
		fmt.Sprintf("Operator `%s` cannot be applied to %s and %s", op, left.Describe(), right.Describe()),
		loc).WithToken(string(op))
}
