package types

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// checkPattern types pat against the scrutinee type, extending the
// substitution, and returns the variables the pattern binds.
func (tc *Checker) checkPattern(ctx *InferenceContext, pat ast.Pattern, scrut Type) (map[string]Type, error) {
	switch pat := pat.(type) {
	case *ast.WildcardPattern:
		return map[string]Type{}, nil

	case *ast.VarPattern:
		return map[string]Type{pat.Name: ctx.sub.Apply(scrut)}, nil

	case *ast.LitPattern:
		if err := tc.unifyAt(ctx, litType(pat.Kind), scrut, pat.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
		return map[string]Type{}, nil

	case *ast.VariantPattern:
		return tc.checkVariantPattern(ctx, pat, scrut)

	case *ast.RecordPattern:
		want := &TRecord{Fields: make(map[string]Type, len(pat.Fields))}
		for _, f := range pat.Fields {
			if _, dup := want.Fields[f.Name]; dup {
				return nil, diag.Errorf(diag.DuplicateRecordField, f.Loc, map[string]string{"field": f.Name})
			}
			want.Fields[f.Name] = tc.freshVar(ctx.level)
		}
		if err := tc.unifyAt(ctx, want, scrut, pat.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
		bindings := map[string]Type{}
		for _, f := range pat.Fields {
			sub, err := tc.checkPattern(ctx, f.Pattern, ctx.sub.Apply(want.Fields[f.Name]))
			if err != nil {
				return nil, err
			}
			if err := mergeBindings(bindings, sub, f.Loc); err != nil {
				return nil, err
			}
		}
		return bindings, nil

	case *ast.TuplePattern:
		if resolved, ok := ctx.sub.Apply(scrut).(*TTuple); ok && len(resolved.Elems) != len(pat.Elems) {
			return nil, diag.Errorf(diag.TuplePatternArity, pat.Position(), map[string]string{
				"expected": fmt.Sprintf("%d", len(resolved.Elems)),
				"found":    fmt.Sprintf("%d", len(pat.Elems)),
			})
		}
		elems := make([]Type, len(pat.Elems))
		for i := range elems {
			elems[i] = tc.freshVar(ctx.level)
		}
		if err := tc.unifyAt(ctx, &TTuple{Elems: elems}, scrut, pat.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
		bindings := map[string]Type{}
		for i, el := range pat.Elems {
			sub, err := tc.checkPattern(ctx, el, ctx.sub.Apply(elems[i]))
			if err != nil {
				return nil, err
			}
			if err := mergeBindings(bindings, sub, el.Position()); err != nil {
				return nil, err
			}
		}
		return bindings, nil
	}
	return nil, fmt.Errorf("checkPattern: unhandled pattern %T", pat)
}

func (tc *Checker) checkVariantPattern(ctx *InferenceContext, pat *ast.VariantPattern, scrut Type) (map[string]Type, error) {
	tb, ok := ctx.env.LookupCtor(pat.Ctor)
	if !ok {
		params := map[string]string{"name": pat.Ctor}
		if s := suggest(pat.Ctor, ctx.env.CtorNames()); s != "" {
			params["suggestion"] = s
		}
		return nil, diag.Errorf(diag.UnknownConstructor, pat.Position(), params)
	}

	// A scrutinee already known to be something other than this
	// variant gets the dedicated pattern error rather than a generic
	// unification failure.
	switch resolved := ctx.sub.Apply(scrut).(type) {
	case *TVar, *TNever:
	case *TVariant:
		if resolved.Name != tb.Name {
			return nil, diag.Errorf(diag.CtorPatternNonVariant, pat.Position(), map[string]string{
				"ctor": pat.Ctor, "found": resolved.String(),
			})
		}
	case *TCon:
		if resolved.Name != tb.Name {
			return nil, diag.Errorf(diag.CtorPatternNonVariant, pat.Position(), map[string]string{
				"ctor": pat.Ctor, "found": resolved.String(),
			})
		}
	case *TApp:
		if c, ok := resolved.Ctor.(*TCon); !ok || c.Name != tb.Name {
			return nil, diag.Errorf(diag.CtorPatternNonVariant, pat.Position(), map[string]string{
				"ctor": pat.Ctor, "found": resolved.String(),
			})
		}
	default:
		return nil, diag.Errorf(diag.CtorPatternNonVariant, pat.Position(), map[string]string{
			"ctor": pat.Ctor, "found": resolved.String(),
		})
	}

	instance, ctorArgs := tc.instantiateVariant(tb, pat.Ctor, ctx.level)
	if err := tc.unifyAt(ctx, instance, scrut, pat.Position(), diag.TypeMismatch); err != nil {
		return nil, err
	}
	if len(ctorArgs) != len(pat.Args) {
		return nil, diag.Errorf(diag.CtorArityMismatch, pat.Position(), map[string]string{
			"ctor":     pat.Ctor,
			"expected": fmt.Sprintf("%d", len(ctorArgs)),
			"found":    fmt.Sprintf("%d", len(pat.Args)),
		})
	}

	bindings := map[string]Type{}
	for i, sub := range pat.Args {
		subBindings, err := tc.checkPattern(ctx, sub, ctx.sub.Apply(ctorArgs[i]))
		if err != nil {
			return nil, err
		}
		if err := mergeBindings(bindings, subBindings, sub.Position()); err != nil {
			return nil, err
		}
	}
	return bindings, nil
}

func mergeBindings(into, from map[string]Type, loc ast.Location) error {
	for name, t := range from {
		if _, dup := into[name]; dup {
			return diag.Errorf(diag.DuplicatePatternBinding, loc, map[string]string{"name": name})
		}
		into[name] = t
	}
	return nil
}

// inferMatch types a match expression: pattern-check each case in an
// extended environment, force guards to Bool, join every body at one
// result type, then run the exhaustiveness analysis on the fully
// resolved scrutinee type.
func (tc *Checker) inferMatch(ctx *InferenceContext, m *ast.Match) (Type, error) {
	scrutType, err := tc.inferExpr(ctx, m.Scrutinee)
	if err != nil {
		return nil, err
	}

	result := tc.freshVar(ctx.level)
	for _, c := range m.Cases {
		bindings, err := tc.checkPattern(ctx, c.Pattern, scrutType)
		if err != nil {
			return nil, err
		}
		caseEnv := ctx.env
		for name, t := range bindings {
			caseEnv = caseEnv.ExtendValue(name, &Value{Scheme: Mono(t), Loc: c.Loc})
		}
		caseCtx := &InferenceContext{env: caseEnv, sub: ctx.sub, level: ctx.level}

		if c.Guard != nil {
			guardType, err := tc.inferExpr(caseCtx, c.Guard)
			if err != nil {
				return nil, err
			}
			if err := tc.unifyAt(caseCtx, TBool, guardType, c.Guard.Position(), ""); err != nil {
				return nil, diag.Errorf(diag.ConditionNotBool, c.Guard.Position(), map[string]string{
					"found": ctx.sub.Apply(guardType).String(),
				})
			}
		}

		bodyType, err := tc.inferExpr(caseCtx, c.Body)
		if err != nil {
			return nil, err
		}
		if err := tc.unifyAt(caseCtx, result, bodyType, c.Body.Position(), diag.MatchArmTypeMismatch); err != nil {
			return nil, err
		}
	}

	if err := tc.checkExhaustiveness(ctx, m, ctx.sub.Apply(scrutType)); err != nil {
		return nil, err
	}
	return ctx.sub.Apply(result), nil
}
