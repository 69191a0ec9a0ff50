package types

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

func (tc *Checker) inferBinOp(ctx *InferenceContext, b *ast.BinOp) (Type, error) {
	left, err := tc.inferExpr(ctx, b.Left)
	if err != nil {
		return nil, err
	}
	right, err := tc.inferExpr(ctx, b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpIntDivide, ast.OpFloatDivide, ast.OpMod:
		t, err := tc.numericOperands(ctx, b, left, right)
		if err != nil {
			return nil, err
		}
		return t, nil

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if _, err := tc.numericOperands(ctx, b, left, right); err != nil {
			return nil, err
		}
		return TBool, nil

	case ast.OpEq, ast.OpNeq:
		// Polymorphic equality: both sides agree at a fresh variable.
		alpha := tc.freshVar(ctx.level)
		if err := tc.unifyAt(ctx, alpha, left, b.Left.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
		if err := tc.unifyAt(ctx, alpha, right, b.Right.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
		return TBool, nil

	case ast.OpAnd, ast.OpOr:
		for _, side := range []struct {
			t   Type
			loc ast.Location
		}{{left, b.Left.Position()}, {right, b.Right.Position()}} {
			if err := tc.unifyAt(ctx, TBool, side.t, side.loc, ""); err != nil {
				return nil, tc.operandError(ctx, diag.BooleanOperandExpected, b, side.t)
			}
		}
		return TBool, nil

	case ast.OpConcat:
		for _, side := range []struct {
			t   Type
			loc ast.Location
		}{{left, b.Left.Position()}, {right, b.Right.Position()}} {
			if err := tc.unifyAt(ctx, TString, side.t, side.loc, ""); err != nil {
				return nil, tc.operandError(ctx, diag.StringOperandExpected, b, side.t)
			}
		}
		return TString, nil

	case ast.OpRefAssign:
		elem := tc.freshVar(ctx.level)
		if err := tc.unifyAt(ctx, &TRef{Elem: elem}, left, b.Left.Position(), ""); err != nil {
			return nil, diag.Errorf(diag.AssignTargetNotRef, b.Left.Position(), map[string]string{
				"found": ctx.sub.Apply(left).String(),
			})
		}
		if err := tc.unifyAt(ctx, elem, right, b.Right.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
		return TUnit, nil

	case ast.OpCons:
		elem := ctx.sub.Apply(left)
		listType := &TApp{Ctor: &TCon{Name: "List"}, Args: []Type{elem}}
		if err := tc.unifyAt(ctx, listType, right, b.Right.Position(), ""); err != nil {
			return nil, diag.Errorf(diag.ConsNotList, b.Right.Position(), map[string]string{
				"found": ctx.sub.Apply(right).String(),
				"elem":  elem.String(),
			})
		}
		return ctx.sub.Apply(listType), nil
	}
	return nil, diag.Errorf(diag.UnificationFailure, b.Position(), map[string]string{
		"left":  left.String(),
		"right": right.String(),
	})
}

// numericOperands unifies both operands at one numeric type: Int
// unless something already forces Float. Mixing the two is an error,
// never a coercion.
func (tc *Checker) numericOperands(ctx *InferenceContext, b *ast.BinOp, left, right Type) (Type, error) {
	if err := tc.unifyAt(ctx, left, right, b.Position(), ""); err != nil {
		lt, rt := ctx.sub.Apply(left), ctx.sub.Apply(right)
		if isNumeric(lt) && isNumeric(rt) {
			return nil, diag.Errorf(diag.MixedNumericTypes, b.Position(), map[string]string{
				"op": b.Op.String(),
			})
		}
		return nil, tc.operandError(ctx, diag.NumericOperandExpected, b, pickNonNumeric(lt, rt))
	}

	switch resolved := ctx.sub.Apply(left).(type) {
	case *TVar:
		// No evidence either way: default to Int.
		if err := tc.unifyAt(ctx, TInt, left, b.Position(), ""); err != nil {
			return nil, err
		}
		return TInt, nil
	case *TCon:
		if resolved.Name == TInt.Name || resolved.Name == TFloat.Name {
			return resolved, nil
		}
		return nil, tc.operandError(ctx, diag.NumericOperandExpected, b, resolved)
	case *TNever:
		return TInt, nil
	default:
		return nil, tc.operandError(ctx, diag.NumericOperandExpected, b, resolved)
	}
}

func (tc *Checker) operandError(ctx *InferenceContext, code string, b *ast.BinOp, t Type) error {
	return diag.Errorf(code, b.Position(), map[string]string{
		"op":    b.Op.String(),
		"found": ctx.sub.Apply(t).String(),
	})
}

func isNumeric(t Type) bool {
	c, ok := t.(*TCon)
	return ok && (c.Name == TInt.Name || c.Name == TFloat.Name)
}

func pickNonNumeric(a, b Type) Type {
	if !isNumeric(a) {
		if _, ok := a.(*TVar); !ok {
			return a
		}
	}
	return b
}

func (tc *Checker) inferUnOp(ctx *InferenceContext, u *ast.UnOp) (Type, error) {
	operand, err := tc.inferExpr(ctx, u.Operand)
	if err != nil {
		return nil, err
	}

	switch u.Op {
	case ast.OpNegate:
		switch resolved := ctx.sub.Apply(operand).(type) {
		case *TVar:
			if err := tc.unifyAt(ctx, TInt, operand, u.Position(), ""); err != nil {
				return nil, err
			}
			return TInt, nil
		case *TCon:
			if isNumeric(resolved) {
				return resolved, nil
			}
		case *TNever:
			return TInt, nil
		}
		return nil, diag.Errorf(diag.NumericOperandExpected, u.Position(), map[string]string{
			"op":    u.Op.String(),
			"found": ctx.sub.Apply(operand).String(),
		})

	case ast.OpLogicalNot:
		if err := tc.unifyAt(ctx, TBool, operand, u.Position(), ""); err != nil {
			return nil, diag.Errorf(diag.BooleanOperandExpected, u.Position(), map[string]string{
				"op":    u.Op.String(),
				"found": ctx.sub.Apply(operand).String(),
			})
		}
		return TBool, nil

	case ast.OpDeref:
		elem := tc.freshVar(ctx.level)
		if err := tc.unifyAt(ctx, &TRef{Elem: elem}, operand, u.Position(), ""); err != nil {
			return nil, diag.Errorf(diag.DerefNonRef, u.Position(), map[string]string{
				"found": ctx.sub.Apply(operand).String(),
			})
		}
		return ctx.sub.Apply(elem), nil
	}
	return nil, diag.Errorf(diag.UnificationFailure, u.Position(), map[string]string{
		"left":  operand.String(),
		"right": operand.String(),
	})
}
