package types

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// elaborateType turns a surface type expression into an internal type.
// scope maps type-variable names already in force; when declaredOnly
// is set an unknown lowercase name is an error (type declaration
// bodies may only use their declared parameters), otherwise it becomes
// a fresh variable recorded in scope (annotations and external
// signatures).
func (tc *Checker) elaborateType(env *TypeEnv, te ast.TypeExpr, scope map[string]*TVar, declaredOnly bool, level int) (Type, error) {
	switch te := te.(type) {
	case *ast.TypeName:
		if isTypeVarName(te.Name) {
			if v, ok := scope[te.Name]; ok {
				return v, nil
			}
			if declaredOnly {
				return nil, diag.Errorf(diag.UnboundTypeParameter, te.Position(), map[string]string{
					"name": te.Name,
				})
			}
			v := tc.freshVar(level)
			scope[te.Name] = v
			return v, nil
		}
		tb, ok := env.LookupType(te.Name)
		if !ok {
			return nil, tc.unknownType(env, te.Name, te.Position())
		}
		if tb.Arity() != 0 {
			return nil, diag.Errorf(diag.WrongTypeArguments, te.Position(), map[string]string{
				"name":     te.Name,
				"expected": fmt.Sprintf("%d", tb.Arity()),
				"found":    "0",
			})
		}
		return tc.instantiateBinding(tb, nil, te.Position())

	case *ast.TypeApply:
		if te.Name == "Ref" {
			if len(te.Args) != 1 {
				return nil, diag.Errorf(diag.WrongTypeArguments, te.Position(), map[string]string{
					"name": "Ref", "expected": "1", "found": fmt.Sprintf("%d", len(te.Args)),
				})
			}
			elem, err := tc.elaborateType(env, te.Args[0], scope, declaredOnly, level)
			if err != nil {
				return nil, err
			}
			return &TRef{Elem: elem}, nil
		}
		tb, ok := env.LookupType(te.Name)
		if !ok {
			return nil, tc.unknownType(env, te.Name, te.Position())
		}
		if tb.Arity() != len(te.Args) {
			return nil, diag.Errorf(diag.WrongTypeArguments, te.Position(), map[string]string{
				"name":     te.Name,
				"expected": fmt.Sprintf("%d", tb.Arity()),
				"found":    fmt.Sprintf("%d", len(te.Args)),
			})
		}
		args := make([]Type, len(te.Args))
		for i, a := range te.Args {
			t, err := tc.elaborateType(env, a, scope, declaredOnly, level)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return tc.instantiateBinding(tb, args, te.Position())

	case *ast.FunTypeExpr:
		// Annotations keep the written parameter list; the internal
		// form is curried to match single-argument application.
		ret, err := tc.elaborateType(env, te.Return, scope, declaredOnly, level)
		if err != nil {
			return nil, err
		}
		for i := len(te.Params) - 1; i >= 0; i-- {
			p, err := tc.elaborateType(env, te.Params[i], scope, declaredOnly, level)
			if err != nil {
				return nil, err
			}
			ret = &TFunc{Params: []Type{p}, Return: ret}
		}
		return ret, nil

	case *ast.RecordTypeExpr:
		fields := make(map[string]Type, len(te.Fields))
		for _, f := range te.Fields {
			if _, dup := fields[f.Name]; dup {
				return nil, diag.Errorf(diag.DuplicateRecordField, f.Loc, map[string]string{
					"field": f.Name,
				})
			}
			t, err := tc.elaborateType(env, f.Type, scope, declaredOnly, level)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = t
		}
		return &TRecord{Fields: fields}, nil

	case *ast.TupleTypeExpr:
		elems := make([]Type, len(te.Elems))
		for i, el := range te.Elems {
			t, err := tc.elaborateType(env, el, scope, declaredOnly, level)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &TTuple{Elems: elems}, nil
	}
	return nil, fmt.Errorf("elaborateType: unhandled type expression %T", te)
}

// instantiateBinding instantiates a declared type, guarding against an
// alias whose body is still unfilled: inside the two-pass declaration
// scheme that can only mean the alias refers back to itself.
func (tc *Checker) instantiateBinding(tb *TypeBinding, args []Type, loc ast.Location) (Type, error) {
	if (tb.Kind == AliasType || tb.Kind == RecordType) && tb.Body == nil {
		return nil, diag.Errorf(diag.CyclicTypeAlias, loc, map[string]string{"name": tb.Name})
	}
	return tb.Instantiate(args), nil
}

func (tc *Checker) unknownType(env *TypeEnv, name string, loc ast.Location) error {
	params := map[string]string{"name": name}
	if s := suggest(name, append(env.TypeNames(), "Ref")); s != "" {
		params["suggestion"] = s
	}
	return diag.Errorf(diag.UnknownTypeName, loc, params)
}

// elaborateClosedType elaborates an in-expression annotation. Fresh
// type variables introduced by lowercase names live at the current
// level and unify like any inference variable.
func (tc *Checker) elaborateClosedType(ctx *InferenceContext, te ast.TypeExpr) (Type, error) {
	scope := make(map[string]*TVar)
	return tc.elaborateType(ctx.env, te, scope, false, ctx.level)
}

// elaborateScheme elaborates an external signature: every lowercase
// name becomes a quantified variable of the resulting scheme.
func (tc *Checker) elaborateScheme(env *TypeEnv, te ast.TypeExpr) (*Scheme, error) {
	scope := make(map[string]*TVar)
	body, err := tc.elaborateType(env, te, scope, false, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(scope))
	for _, v := range scope {
		ids = append(ids, v.ID)
	}
	sort.Ints(ids)
	return &Scheme{Quantified: ids, Body: body}, nil
}

func isTypeVarName(name string) bool {
	for _, r := range name {
		return unicode.IsLower(r)
	}
	return false
}
