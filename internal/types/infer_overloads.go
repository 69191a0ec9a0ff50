package types

import (
	"fmt"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// inferOverloadedCall types an application spine headed by an
// overloaded external. Arity narrows the candidate set first; the
// survivors are attempted in declaration order against the actual
// argument types on a trial substitution. Exactly one survivor
// commits; zero or several is an error.
func (tc *Checker) inferOverloadedCall(ctx *InferenceContext, app *ast.App, head *ast.Var, overload *ExternalOverload, args []ast.Expr) (Type, error) {
	argTypes := make([]Type, len(args))
	for i, arg := range args {
		t, err := tc.inferExpr(ctx, arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	type match struct {
		sub      Subst
		instance Type
	}
	var matches []match
	for _, ext := range overload.Overloads {
		instance := tc.instantiate(ext.Scheme, ctx.level)
		params, _, ok := uncurry(instance, len(args))
		if !ok {
			continue // arity narrowing
		}
		trial := ctx.sub.Clone()
		failed := false
		for i := range params {
			uctx := &UnifyContext{Loc: args[i].Position()}
			if err := Unify(params[i], argTypes[i], trial, uctx); err != nil {
				failed = true
				break
			}
		}
		if !failed {
			matches = append(matches, match{sub: trial, instance: instance})
		}
	}

	switch len(matches) {
	case 0:
		found := make([]string, len(argTypes))
		for i, t := range argTypes {
			found[i] = ctx.sub.Apply(t).String()
		}
		return nil, diag.Errorf(diag.NoMatchingOverload, app.Position(), map[string]string{
			"name":  head.Name,
			"found": strings.Join(found, ", "),
		})
	case 1:
		m := matches[0]
		for id, t := range m.sub {
			ctx.sub[id] = t
		}
		// Attach types along the spine: the head gets the selected
		// signature, each application node the next partial result.
		cur := ctx.sub.Apply(m.instance)
		tc.nodeTypes[head.ID()] = cur
		spine := spineNodes(app)
		for _, node := range spine {
			f, ok := cur.(*TFunc)
			if !ok {
				break
			}
			cur = f.Return
			tc.nodeTypes[node.ID()] = cur
		}
		return cur, nil
	default:
		return nil, diag.Errorf(diag.AmbiguousOverload, app.Position(), map[string]string{
			"name":  head.Name,
			"count": fmt.Sprintf("%d", len(matches)),
		})
	}
}

// spineNodes returns the application nodes of a spine innermost first.
func spineNodes(app *ast.App) []*ast.App {
	var spine []*ast.App
	cur := ast.Expr(app)
	for {
		a, ok := cur.(*ast.App)
		if !ok {
			break
		}
		spine = append([]*ast.App{a}, spine...)
		cur = a.Fn
	}
	return spine
}

// uncurry peels n single-parameter arrows off a curried type. ok is
// false when the type has fewer than n arrows.
func uncurry(t Type, n int) (params []Type, result Type, ok bool) {
	result = t
	for i := 0; i < n; i++ {
		f, isFn := result.(*TFunc)
		if !isFn || len(f.Params) != 1 {
			return nil, nil, false
		}
		params = append(params, f.Params[0])
		result = f.Return
	}
	return params, result, true
}
