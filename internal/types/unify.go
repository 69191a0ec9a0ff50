package types

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// UnifyContext carries the source location unification failures are
// reported at.
type UnifyContext struct {
	Loc ast.Location
}

// Unify makes t1 and t2 equal by extending sub, or reports a VF402x /
// VF4300 / VF4501 diagnostic anchored at ctx.Loc. By convention t1 is
// the expected side (the annotation or the call site's requirement);
// record width subtyping treats it as the narrow side.
//
// sub is extended in place. Level adjustment lowers the Level field of
// variable cells found inside a solution so that no variable outlives
// the scope it was introduced in.
func Unify(t1, t2 Type, sub Subst, ctx *UnifyContext) error {
	t1 = sub.Apply(t1)
	t2 = sub.Apply(t2)

	// Never is bottom: it unifies with everything and solves nothing.
	if _, ok := t1.(*TNever); ok {
		return nil
	}
	if _, ok := t2.(*TNever); ok {
		return nil
	}

	if v1, ok := t1.(*TVar); ok {
		if v2, ok := t2.(*TVar); ok && v1.ID == v2.ID {
			return nil
		}
		return bindVar(v1, t2, sub, ctx)
	}
	if v2, ok := t2.(*TVar); ok {
		return bindVar(v2, t1, sub, ctx)
	}

	if u, ok := t1.(*TUnion); ok {
		return unifyUnion(u, t2, sub, ctx)
	}
	if u, ok := t2.(*TUnion); ok {
		return unifyUnion(u, t1, sub, ctx)
	}

	switch a := t1.(type) {
	case *TCon:
		if b, ok := t2.(*TCon); ok {
			if a.Name == b.Name {
				return nil
			}
			return mismatch(a, b, ctx)
		}
		// A zero-parameter variant is referenced by its declared name.
		if b, ok := t2.(*TVariant); ok {
			if a.Name == b.Name {
				return nil
			}
			return mismatch(a, b, ctx)
		}
		return mismatch(t1, t2, ctx)

	case *TFunc:
		b, ok := t2.(*TFunc)
		if !ok {
			return mismatch(t1, t2, ctx)
		}
		if len(a.Params) != len(b.Params) {
			return diag.Errorf(diag.FunctionArityMismatch, ctx.Loc, map[string]string{
				"expected": fmt.Sprintf("%d", len(a.Params)),
				"found":    fmt.Sprintf("%d", len(b.Params)),
			})
		}
		for i := range a.Params {
			if err := Unify(a.Params[i], b.Params[i], sub, ctx); err != nil {
				return err
			}
		}
		return Unify(a.Return, b.Return, sub, ctx)

	case *TApp:
		if b, ok := t2.(*TApp); ok {
			if len(a.Args) != len(b.Args) {
				return diag.Errorf(diag.TypeArgArityMismatch, ctx.Loc, map[string]string{
					"expected": fmt.Sprintf("%d", len(a.Args)),
					"found":    fmt.Sprintf("%d", len(b.Args)),
				})
			}
			if err := Unify(a.Ctor, b.Ctor, sub, ctx); err != nil {
				return err
			}
			for i := range a.Args {
				if err := Unify(a.Args[i], b.Args[i], sub, ctx); err != nil {
					return err
				}
			}
			return nil
		}
		// An instantiated variant matches its own type application.
		if b, ok := t2.(*TVariant); ok {
			return unifyAppVariant(a, b, sub, ctx)
		}
		return mismatch(t1, t2, ctx)

	case *TTuple:
		b, ok := t2.(*TTuple)
		if !ok {
			return mismatch(t1, t2, ctx)
		}
		if len(a.Elems) != len(b.Elems) {
			return diag.Errorf(diag.TupleArityMismatch, ctx.Loc, map[string]string{
				"expected": fmt.Sprintf("%d", len(a.Elems)),
				"found":    fmt.Sprintf("%d", len(b.Elems)),
			})
		}
		for i := range a.Elems {
			if err := Unify(a.Elems[i], b.Elems[i], sub, ctx); err != nil {
				return err
			}
		}
		return nil

	case *TRef:
		b, ok := t2.(*TRef)
		if !ok {
			return mismatch(t1, t2, ctx)
		}
		return Unify(a.Elem, b.Elem, sub, ctx)

	case *TRecord:
		b, ok := t2.(*TRecord)
		if !ok {
			return mismatch(t1, t2, ctx)
		}
		return unifyRecords(a, b, sub, ctx)

	case *TVariant:
		switch b := t2.(type) {
		case *TVariant:
			if a.Name != b.Name {
				return diag.Errorf(diag.VariantMismatch, ctx.Loc, map[string]string{
					"left":  a.String(),
					"right": b.String(),
				})
			}
			// Same declaration: constructor shapes are fixed, only the
			// instantiated parameters remain to unify.
			if len(a.Args) != len(b.Args) {
				return diag.Errorf(diag.TypeArgArityMismatch, ctx.Loc, map[string]string{
					"expected": fmt.Sprintf("%d", len(a.Args)),
					"found":    fmt.Sprintf("%d", len(b.Args)),
				})
			}
			for i := range a.Args {
				if err := Unify(a.Args[i], b.Args[i], sub, ctx); err != nil {
					return err
				}
			}
			return nil
		case *TCon:
			if a.Name == b.Name {
				return nil
			}
			return mismatch(a, b, ctx)
		case *TApp:
			return unifyAppVariant(b, a, sub, ctx)
		}
		return mismatch(t1, t2, ctx)
	}

	return mismatch(t1, t2, ctx)
}

// bindVar records v -> t after the occurs check, lowering the level of
// every variable inside t to at most v's level.
func bindVar(v *TVar, t Type, sub Subst, ctx *UnifyContext) error {
	t = sub.Apply(t)
	inT := FreeVars(t)
	if _, occurs := inT[v.ID]; occurs {
		return diag.Errorf(diag.InfiniteType, ctx.Loc, map[string]string{
			"var":  v.String(),
			"type": t.String(),
		})
	}
	for _, w := range inT {
		if w.Level > v.Level {
			w.Level = v.Level
		}
	}
	sub.Bind(v, t)
	return nil
}

// unifyRecords implements width subtyping: the expected side is the
// narrow one, and every field it requires must exist on the found side
// with a unifiable type. Extra fields on the found side are fine;
// fields the expectation requires but the found record lacks are
// VF4501. Callers consistently pass the annotated or required type
// first, which fixes the orientation.
func unifyRecords(expected, found *TRecord, sub Subst, ctx *UnifyContext) error {
	for name, expectedType := range expected.Fields {
		foundType, ok := found.Fields[name]
		if !ok {
			return diag.Errorf(diag.MissingField, ctx.Loc, map[string]string{
				"field":  name,
				"record": found.String(),
			})
		}
		if err := Unify(expectedType, foundType, sub, ctx); err != nil {
			return err
		}
	}
	return nil
}

// unifyAppVariant matches App(Con(name), args) against a variant
// instance of the same declared name.
func unifyAppVariant(app *TApp, variant *TVariant, sub Subst, ctx *UnifyContext) error {
	ctor, ok := app.Ctor.(*TCon)
	if !ok || ctor.Name != variant.Name {
		return mismatch(app, variant, ctx)
	}
	if len(app.Args) != len(variant.Args) {
		return diag.Errorf(diag.TypeArgArityMismatch, ctx.Loc, map[string]string{
			"expected": fmt.Sprintf("%d", len(variant.Args)),
			"found":    fmt.Sprintf("%d", len(app.Args)),
		})
	}
	for i := range app.Args {
		if err := Unify(app.Args[i], variant.Args[i], sub, ctx); err != nil {
			return err
		}
	}
	return nil
}

// unifyUnion is deliberately conservative: two unions must agree
// member by member in order; a single variant must match one member.
// Primitive narrowing is not supported.
func unifyUnion(u *TUnion, other Type, sub Subst, ctx *UnifyContext) error {
	if b, ok := other.(*TUnion); ok {
		if len(u.Types) != len(b.Types) {
			return mismatch(u, b, ctx)
		}
		for i := range u.Types {
			if err := Unify(u.Types[i], b.Types[i], sub, ctx); err != nil {
				return err
			}
		}
		return nil
	}
	switch other.(type) {
	case *TVariant, *TCon, *TApp:
		for _, member := range u.Types {
			trial := sub.Clone()
			if err := Unify(member, other, trial, ctx); err == nil {
				for id, t := range trial {
					sub[id] = t
				}
				return nil
			}
		}
	}
	return mismatch(u, other, ctx)
}

func mismatch(t1, t2 Type, ctx *UnifyContext) error {
	return diag.Errorf(diag.CannotUnify, ctx.Loc, map[string]string{
		"left":  t1.String(),
		"right": t2.String(),
	})
}
