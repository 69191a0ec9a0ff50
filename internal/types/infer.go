package types

import (
	"fmt"
	"sort"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// Checker runs Algorithm W over one module. A Checker is not reused
// across modules; fresh-variable IDs are unique within one run.
type Checker struct {
	varCounter int
	warnings   *diag.WarningCollector
	nodeTypes  map[uint64]Type
}

// NewChecker creates a checker reporting warnings into wc.
func NewChecker(wc *diag.WarningCollector) *Checker {
	return &Checker{
		warnings:  wc,
		nodeTypes: make(map[uint64]Type),
	}
}

// InferenceContext threads the environment, the global substitution
// and the current let-nesting level through inference. The
// substitution map is shared and extended in place; env and level are
// per-scope values.
type InferenceContext struct {
	env   *TypeEnv
	sub   Subst
	level int
}

func (tc *Checker) freshVar(level int) *TVar {
	tc.varCounter++
	return &TVar{ID: tc.varCounter, Level: level}
}

// instantiate freshens every quantified variable of the scheme at the
// given level. The result contains no bound variables.
func (tc *Checker) instantiate(s *Scheme, level int) Type {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	sub := make(Subst, len(s.Quantified))
	for _, id := range s.Quantified {
		sub[id] = tc.freshVar(level)
	}
	return sub.Apply(s.Body)
}

// generalize quantifies every variable of t whose level is deeper than
// the current one. Level discipline makes this exact: a variable above
// the threshold cannot appear in any binding visible outside the let
// whose RHS produced it, so no environment scan is needed.
func (tc *Checker) generalize(t Type, level int, sub Subst) *Scheme {
	t = sub.Apply(t)
	free := FreeVars(t)
	var quantified []int
	for id, v := range free {
		if v.Level > level {
			quantified = append(quantified, id)
		}
	}
	sort.Ints(quantified)
	return &Scheme{Quantified: quantified, Body: t}
}

// unifyAt unifies expected with found and rewrites the unifier's
// generic VF4024 into the caller's context code with the fully applied
// types, so the user sees "annotation mismatch" rather than a bare
// unification failure. Structural codes (arity, occurs, missing field,
// nominal) pass through untouched.
func (tc *Checker) unifyAt(ctx *InferenceContext, expected, found Type, loc ast.Location, code string) error {
	err := Unify(expected, found, ctx.sub, &UnifyContext{Loc: loc})
	if err == nil {
		return nil
	}
	if code == "" {
		return err
	}
	if d, ok := diag.AsDiagnostic(err); ok && d.Code() == diag.CannotUnify {
		return diag.Errorf(code, loc, map[string]string{
			"expected": ctx.sub.Apply(expected).String(),
			"found":    ctx.sub.Apply(found).String(),
		})
	}
	return err
}

// inferExpr is the Algorithm W dispatcher: one case per Core form.
// The returned type is interpreted under ctx.sub, which has been
// extended with every constraint the subtree raised.
func (tc *Checker) inferExpr(ctx *InferenceContext, e ast.Expr) (Type, error) {
	t, err := tc.inferExprInner(ctx, e)
	if err != nil {
		return nil, err
	}
	tc.nodeTypes[e.ID()] = t
	return t, nil
}

func (tc *Checker) inferExprInner(ctx *InferenceContext, e ast.Expr) (Type, error) {
	switch e := e.(type) {
	case *ast.Lit:
		return litType(e.Kind), nil

	case *ast.Var:
		return tc.inferVar(ctx, e)

	case *ast.Lambda:
		param := tc.freshVar(ctx.level)
		bodyCtx := &InferenceContext{
			env:   ctx.env.ExtendValue(e.Param, &Value{Scheme: Mono(param)}),
			sub:   ctx.sub,
			level: ctx.level,
		}
		bodyType, err := tc.inferExpr(bodyCtx, e.Body)
		if err != nil {
			return nil, err
		}
		return &TFunc{Params: []Type{ctx.sub.Apply(param)}, Return: bodyType}, nil

	case *ast.App:
		return tc.inferApp(ctx, e)

	case *ast.Let:
		return tc.inferLet(ctx, e)

	case *ast.LetGroup:
		return tc.inferLetGroup(ctx, e)

	case *ast.BinOp:
		return tc.inferBinOp(ctx, e)

	case *ast.UnOp:
		return tc.inferUnOp(ctx, e)

	case *ast.Record:
		return tc.inferRecord(ctx, e)

	case *ast.RecordAccess:
		return tc.inferRecordAccess(ctx, e)

	case *ast.RecordUpdate:
		return tc.inferRecordUpdate(ctx, e)

	case *ast.VariantCtor:
		return tc.inferVariantCtor(ctx, e)

	case *ast.Annot:
		annotated, err := tc.elaborateClosedType(ctx, e.Type)
		if err != nil {
			return nil, err
		}
		inferred, err := tc.inferExpr(ctx, e.Expr)
		if err != nil {
			return nil, err
		}
		if err := tc.unifyAt(ctx, annotated, inferred, e.Position(), diag.AnnotationMismatch); err != nil {
			return nil, err
		}
		return ctx.sub.Apply(annotated), nil

	case *ast.Unsafe:
		// unsafe marks code for the generator; types flow through.
		return tc.inferExpr(ctx, e.Body)

	case *ast.Tuple:
		elems := make([]Type, len(e.Elems))
		for i, el := range e.Elems {
			t, err := tc.inferExpr(ctx, el)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return &TTuple{Elems: elems}, nil

	case *ast.Match:
		return tc.inferMatch(ctx, e)
	}
	return nil, fmt.Errorf("inferExpr: unhandled expression %T", e)
}

func litType(kind ast.LitKind) Type {
	switch kind {
	case ast.IntLit:
		return TInt
	case ast.FloatLit:
		return TFloat
	case ast.StringLit:
		return TString
	case ast.BoolLit:
		return TBool
	default:
		return TUnit
	}
}

func (tc *Checker) inferVar(ctx *InferenceContext, v *ast.Var) (Type, error) {
	binding, ok := ctx.env.LookupValue(v.Name)
	if !ok {
		params := map[string]string{"name": v.Name}
		if s := suggest(v.Name, ctx.env.ValueNames()); s != "" {
			params["suggestion"] = s
		}
		return nil, diag.Errorf(diag.UnknownVariable, v.Position(), params)
	}
	if _, ok := binding.(*ExternalOverload); ok {
		// Only a direct application can pick an overload.
		return nil, diag.Errorf(diag.UnappliedOverload, v.Position(), map[string]string{"name": v.Name})
	}
	return tc.instantiate(binding.BindingScheme(), ctx.level), nil
}

func (tc *Checker) inferApp(ctx *InferenceContext, app *ast.App) (Type, error) {
	// An application spine headed by an overloaded external is typed
	// as a whole: the argument count and types select the candidate.
	if head, args := flattenSpine(app); head != nil {
		if binding, ok := ctx.env.LookupValue(head.Name); ok {
			if overload, ok := binding.(*ExternalOverload); ok {
				return tc.inferOverloadedCall(ctx, app, head, overload, args)
			}
		}
	}

	fnType, err := tc.inferExpr(ctx, app.Fn)
	if err != nil {
		return nil, err
	}
	argType, err := tc.inferExpr(ctx, app.Arg)
	if err != nil {
		return nil, err
	}

	resolved := ctx.sub.Apply(fnType)
	switch resolved.(type) {
	case *TFunc, *TVar, *TNever:
	default:
		return nil, diag.Errorf(diag.NotAFunction, app.Position(), map[string]string{
			"found": resolved.String(),
		})
	}

	result := tc.freshVar(ctx.level)
	want := &TFunc{Params: []Type{argType}, Return: result}
	// The function type is the expected side: its parameter states
	// what the call site requires of the argument.
	if err := tc.unifyAt(ctx, fnType, want, app.Position(), diag.TypeMismatch); err != nil {
		return nil, err
	}
	return ctx.sub.Apply(result), nil
}

// flattenSpine unwinds nested single-argument applications. It returns
// the head variable and the arguments in source order, or a nil head
// when the callee is not a plain variable.
func flattenSpine(app *ast.App) (*ast.Var, []ast.Expr) {
	var args []ast.Expr
	cur := ast.Expr(app)
	for {
		a, ok := cur.(*ast.App)
		if !ok {
			break
		}
		args = append([]ast.Expr{a.Arg}, args...)
		cur = a.Fn
	}
	head, _ := cur.(*ast.Var)
	return head, args
}

func (tc *Checker) inferLet(ctx *InferenceContext, let *ast.Let) (Type, error) {
	scheme, err := tc.inferBinding(ctx, let.Name, let.Value, let.Recursive, let.Position())
	if err != nil {
		return nil, err
	}
	bodyCtx := &InferenceContext{
		env:   ctx.env.ExtendValue(let.Name, &Value{Scheme: scheme, Mutable: let.Mutable, Loc: let.Position()}),
		sub:   ctx.sub,
		level: ctx.level,
	}
	return tc.inferExpr(bodyCtx, let.Body)
}

// inferBinding types a single let RHS one level down and generalizes
// the result, subject to the value restriction.
func (tc *Checker) inferBinding(ctx *InferenceContext, name string, value ast.Expr, recursive bool, loc ast.Location) (*Scheme, error) {
	inner := &InferenceContext{env: ctx.env, sub: ctx.sub, level: ctx.level + 1}

	var recVar *TVar
	if recursive {
		recVar = tc.freshVar(inner.level)
		inner.env = inner.env.ExtendValue(name, &Value{Scheme: Mono(recVar), Loc: loc})
	}

	valueType, err := tc.inferExpr(inner, value)
	if err != nil {
		return nil, err
	}
	if recursive {
		if err := tc.unifyAt(inner, recVar, valueType, loc, diag.RecursiveBindingMismatch); err != nil {
			return nil, err
		}
	}

	if !IsSyntacticValue(value) {
		// Value restriction: an expansive RHS stays monomorphic. Its
		// leftover variables now live in the outer scope, so their
		// levels drop with it.
		applied := ctx.sub.Apply(valueType)
		lowerLevels(applied, ctx.level)
		return Mono(applied), nil
	}
	return tc.generalize(valueType, ctx.level, ctx.sub), nil
}

// lowerLevels caps the level of every variable in t, maintaining the
// invariant that a variable visible at level L has level <= L.
func lowerLevels(t Type, level int) {
	for _, v := range FreeVars(t) {
		if v.Level > level {
			v.Level = level
		}
	}
}

func (tc *Checker) inferLetGroup(ctx *InferenceContext, group *ast.LetGroup) (Type, error) {
	schemes, err := tc.inferGroupBindings(ctx, group.Bindings)
	if err != nil {
		return nil, err
	}
	env := ctx.env
	for i, b := range group.Bindings {
		env = env.ExtendValue(b.Name, &Value{Scheme: schemes[i], Loc: b.Loc})
	}
	bodyCtx := &InferenceContext{env: env, sub: ctx.sub, level: ctx.level}
	return tc.inferExpr(bodyCtx, group.Body)
}

// inferGroupBindings types a mutually recursive group: every binding
// is in scope monomorphically while the right-hand sides are inferred,
// then each result generalizes independently.
func (tc *Checker) inferGroupBindings(ctx *InferenceContext, bindings []ast.RecBinding) ([]*Scheme, error) {
	inner := &InferenceContext{env: ctx.env, sub: ctx.sub, level: ctx.level + 1}

	recVars := make([]*TVar, len(bindings))
	for i, b := range bindings {
		recVars[i] = tc.freshVar(inner.level)
		inner.env = inner.env.ExtendValue(b.Name, &Value{Scheme: Mono(recVars[i]), Loc: b.Loc})
	}

	valueTypes := make([]Type, len(bindings))
	for i, b := range bindings {
		t, err := tc.inferExpr(inner, b.Value)
		if err != nil {
			return nil, err
		}
		valueTypes[i] = t
	}
	for i, b := range bindings {
		if err := tc.unifyAt(inner, recVars[i], valueTypes[i], b.Loc, diag.RecursiveBindingMismatch); err != nil {
			return nil, err
		}
	}

	schemes := make([]*Scheme, len(bindings))
	for i, b := range bindings {
		if IsSyntacticValue(b.Value) {
			schemes[i] = tc.generalize(valueTypes[i], ctx.level, ctx.sub)
		} else {
			applied := ctx.sub.Apply(valueTypes[i])
			lowerLevels(applied, ctx.level)
			schemes[i] = Mono(applied)
		}
	}
	return schemes, nil
}

func (tc *Checker) inferRecord(ctx *InferenceContext, rec *ast.Record) (Type, error) {
	fields := make(map[string]Type)
	for _, item := range rec.Items {
		t, err := tc.inferExpr(ctx, item.Value)
		if err != nil {
			return nil, err
		}
		if item.IsSpread() {
			switch resolved := ctx.sub.Apply(t).(type) {
			case *TRecord:
				for name, ft := range resolved.Fields {
					fields[name] = ft
				}
			case *TVar:
				// Nothing is known about the spread yet; pin it to a
				// record so later use sites agree, contributing no
				// fields of its own.
				if err := tc.unifyAt(ctx, &TRecord{Fields: map[string]Type{}}, t, item.Loc, diag.SpreadNonRecord); err != nil {
					return nil, err
				}
			default:
				return nil, diag.Errorf(diag.SpreadNonRecord, item.Loc, map[string]string{
					"found": resolved.String(),
				})
			}
			continue
		}
		// Later fields overwrite earlier ones, spreads included.
		fields[item.Name] = t
	}
	return &TRecord{Fields: fields}, nil
}

func (tc *Checker) inferRecordAccess(ctx *InferenceContext, acc *ast.RecordAccess) (Type, error) {
	targetType, err := tc.inferExpr(ctx, acc.Target)
	if err != nil {
		return nil, err
	}
	switch resolved := ctx.sub.Apply(targetType).(type) {
	case *TVar:
		// Width subtyping lets a one-field requirement stand for the
		// eventual record.
		fieldType := tc.freshVar(ctx.level)
		want := &TRecord{Fields: map[string]Type{acc.Field: fieldType}}
		if err := tc.unifyAt(ctx, want, targetType, acc.Position(), diag.AccessNonRecord); err != nil {
			return nil, err
		}
		return ctx.sub.Apply(fieldType), nil
	case *TRecord:
		fieldType, ok := resolved.Fields[acc.Field]
		if !ok {
			return nil, diag.Errorf(diag.MissingField, acc.Position(), map[string]string{
				"field":  acc.Field,
				"record": resolved.String(),
			})
		}
		return fieldType, nil
	default:
		return nil, diag.Errorf(diag.AccessNonRecord, acc.Position(), map[string]string{
			"field": acc.Field,
			"found": resolved.String(),
		})
	}
}

func (tc *Checker) inferRecordUpdate(ctx *InferenceContext, upd *ast.RecordUpdate) (Type, error) {
	baseType, err := tc.inferExpr(ctx, upd.Base)
	if err != nil {
		return nil, err
	}
	resolved, ok := ctx.sub.Apply(baseType).(*TRecord)
	if !ok {
		return nil, diag.Errorf(diag.UpdateNonRecord, upd.Position(), map[string]string{
			"found": ctx.sub.Apply(baseType).String(),
		})
	}
	for _, f := range upd.Updates {
		fieldType, ok := resolved.Fields[f.Name]
		if !ok {
			return nil, diag.Errorf(diag.UpdateUnknownField, f.Loc, map[string]string{
				"field":  f.Name,
				"record": resolved.String(),
			})
		}
		valueType, err := tc.inferExpr(ctx, f.Value)
		if err != nil {
			return nil, err
		}
		if err := tc.unifyAt(ctx, fieldType, valueType, f.Loc, diag.TypeMismatch); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (tc *Checker) inferVariantCtor(ctx *InferenceContext, v *ast.VariantCtor) (Type, error) {
	tb, ok := ctx.env.LookupCtor(v.Ctor)
	if !ok {
		params := map[string]string{"name": v.Ctor}
		if s := suggest(v.Ctor, ctx.env.CtorNames()); s != "" {
			params["suggestion"] = s
		}
		return nil, diag.Errorf(diag.UnknownConstructor, v.Position(), params)
	}

	instance, ctorArgs := tc.instantiateVariant(tb, v.Ctor, ctx.level)
	if len(ctorArgs) != len(v.Args) {
		return nil, diag.Errorf(diag.CtorArityMismatch, v.Position(), map[string]string{
			"ctor":     v.Ctor,
			"expected": fmt.Sprintf("%d", len(ctorArgs)),
			"found":    fmt.Sprintf("%d", len(v.Args)),
		})
	}
	for i, arg := range v.Args {
		argType, err := tc.inferExpr(ctx, arg)
		if err != nil {
			return nil, err
		}
		if err := tc.unifyAt(ctx, ctorArgs[i], argType, arg.Position(), diag.TypeMismatch); err != nil {
			return nil, err
		}
	}
	return ctx.sub.Apply(instance), nil
}

// instantiateVariant builds a fresh instance of the declaring type and
// returns it together with the chosen constructor's argument types
// under the fresh parameters.
func (tc *Checker) instantiateVariant(tb *TypeBinding, ctor string, level int) (Type, []Type) {
	args := make([]Type, len(tb.Params))
	for i := range args {
		args[i] = tc.freshVar(level)
	}
	instance := tb.Instantiate(args)
	variant := instance.(*TVariant)
	return variant, variant.Ctors[ctor]
}

// IsSyntacticValue implements the OCaml-style value restriction
// predicate: only expressions whose evaluation cannot allocate or
// observe state may be generalized. Applications (ref included),
// matches, accesses and updates are expansive.
func IsSyntacticValue(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Lit, *ast.Var, *ast.Lambda:
		return true
	case *ast.VariantCtor:
		for _, a := range e.Args {
			if !IsSyntacticValue(a) {
				return false
			}
		}
		return true
	case *ast.Record:
		for _, item := range e.Items {
			if item.IsSpread() || !IsSyntacticValue(item.Value) {
				return false
			}
		}
		return true
	case *ast.Tuple:
		for _, el := range e.Elems {
			if !IsSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.Annot:
		return IsSyntacticValue(e.Expr)
	default:
		return false
	}
}
