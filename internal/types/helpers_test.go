package types

import (
	"sort"
	"strconv"
	"testing"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// builder builds Core AST nodes with sequential node IDs, the way the
// desugarer numbers them.
type builder struct {
	nextID uint64
}

func newBuilder() *builder { return &builder{} }

func (b *builder) base() ast.ExprBase {
	b.nextID++
	return ast.ExprBase{NodeID: b.nextID, Loc: ast.Location{File: "test.vf", Line: 1, Column: int(b.nextID)}}
}

func (b *builder) intLit(v int64) *ast.Lit {
	return &ast.Lit{ExprBase: b.base(), Kind: ast.IntLit, Value: v}
}

func (b *builder) floatLit(v float64) *ast.Lit {
	return &ast.Lit{ExprBase: b.base(), Kind: ast.FloatLit, Value: v}
}

func (b *builder) strLit(v string) *ast.Lit {
	return &ast.Lit{ExprBase: b.base(), Kind: ast.StringLit, Value: v}
}

func (b *builder) boolLit(v bool) *ast.Lit {
	return &ast.Lit{ExprBase: b.base(), Kind: ast.BoolLit, Value: v}
}

func (b *builder) unitLit() *ast.Lit {
	return &ast.Lit{ExprBase: b.base(), Kind: ast.UnitLit}
}

func (b *builder) ref(name string) *ast.Var {
	return &ast.Var{ExprBase: b.base(), Name: name}
}

func (b *builder) lam(param string, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{ExprBase: b.base(), Param: param, Body: body}
}

// app builds a curried application spine.
func (b *builder) app(fn ast.Expr, args ...ast.Expr) ast.Expr {
	out := fn
	for _, a := range args {
		out = &ast.App{ExprBase: b.base(), Fn: out, Arg: a}
	}
	return out
}

func (b *builder) call(name string, args ...ast.Expr) ast.Expr {
	return b.app(b.ref(name), args...)
}

func (b *builder) let(name string, value, body ast.Expr) *ast.Let {
	return &ast.Let{ExprBase: b.base(), Name: name, Value: value, Body: body}
}

func (b *builder) letRec(name string, value, body ast.Expr) *ast.Let {
	return &ast.Let{ExprBase: b.base(), Name: name, Recursive: true, Value: value, Body: body}
}

func (b *builder) binOp(op ast.BinOpKind, left, right ast.Expr) *ast.BinOp {
	return &ast.BinOp{ExprBase: b.base(), Op: op, Left: left, Right: right}
}

func (b *builder) unOp(op ast.UnOpKind, operand ast.Expr) *ast.UnOp {
	return &ast.UnOp{ExprBase: b.base(), Op: op, Operand: operand}
}

func (b *builder) record(fields ...ast.RecordItem) *ast.Record {
	return &ast.Record{ExprBase: b.base(), Items: fields}
}

func (b *builder) field(name string, value ast.Expr) ast.RecordItem {
	return ast.RecordItem{Name: name, Value: value}
}

func (b *builder) spread(value ast.Expr) ast.RecordItem {
	return ast.RecordItem{Value: value}
}

func (b *builder) access(target ast.Expr, field string) *ast.RecordAccess {
	return &ast.RecordAccess{ExprBase: b.base(), Target: target, Field: field}
}

func (b *builder) tuple(elems ...ast.Expr) *ast.Tuple {
	return &ast.Tuple{ExprBase: b.base(), Elems: elems}
}

func (b *builder) ctor(name string, args ...ast.Expr) *ast.VariantCtor {
	return &ast.VariantCtor{ExprBase: b.base(), Ctor: name, Args: args}
}

func (b *builder) match(scrut ast.Expr, cases ...ast.MatchCase) *ast.Match {
	return &ast.Match{ExprBase: b.base(), Scrutinee: scrut, Cases: cases}
}

func (b *builder) matchCase(pat ast.Pattern, body ast.Expr) ast.MatchCase {
	return ast.MatchCase{Pattern: pat, Body: body}
}

func (b *builder) guardedCase(pat ast.Pattern, guard, body ast.Expr) ast.MatchCase {
	return ast.MatchCase{Pattern: pat, Guard: guard, Body: body}
}

// Pattern builders.

func wild() ast.Pattern { return &ast.WildcardPattern{} }

func pvar(name string) ast.Pattern { return &ast.VarPattern{Name: name} }

func pint(v int64) ast.Pattern {
	return &ast.LitPattern{Kind: ast.IntLit, Value: v}
}

func pbool(v bool) ast.Pattern {
	return &ast.LitPattern{Kind: ast.BoolLit, Value: v}
}

func pctor(name string, args ...ast.Pattern) ast.Pattern {
	return &ast.VariantPattern{Ctor: name, Args: args}
}

func ptuple(elems ...ast.Pattern) ast.Pattern {
	return &ast.TuplePattern{Elems: elems}
}

// canonical renders a type with variables renumbered in first-use
// order, so two types compare equal exactly when they are equal up to
// renaming.
func canonical(t Type) string {
	var order []int
	seen := make(map[int]bool)
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *TVar:
			if !seen[t.ID] {
				seen[t.ID] = true
				order = append(order, t.ID)
			}
		case *TFunc:
			for _, p := range t.Params {
				walk(p)
			}
			walk(t.Return)
		case *TApp:
			walk(t.Ctor)
			for _, a := range t.Args {
				walk(a)
			}
		case *TRecord:
			names := make([]string, 0, len(t.Fields))
			for n := range t.Fields {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				walk(t.Fields[n])
			}
		case *TVariant:
			for _, a := range t.Args {
				walk(a)
			}
		case *TUnion:
			for _, m := range t.Types {
				walk(m)
			}
		case *TTuple:
			for _, e := range t.Elems {
				walk(e)
			}
		case *TRef:
			walk(t.Elem)
		}
	}
	walk(t)

	ren := make(Subst, len(order))
	for i, id := range order {
		ren[id] = &TCon{Name: "a" + strconv.Itoa(i)}
	}
	return ren.Apply(t).String()
}

// equivalent reports equality up to variable renaming.
func equivalent(a, b Type) bool {
	return canonical(a) == canonical(b)
}

// inferOne infers the type of a standalone expression against the
// builtin environment and returns the fully applied result.
func inferOne(t *testing.T, e ast.Expr) (Type, error) {
	t.Helper()
	tc := NewChecker(diag.NewWarningCollector())
	env := builtinEnv(func() *TVar { return tc.freshVar(0) })
	ctx := &InferenceContext{env: env, sub: make(Subst), level: 0}
	typ, err := tc.inferExpr(ctx, e)
	if err != nil {
		return nil, err
	}
	return ctx.sub.Apply(typ), nil
}

// mustInfer fails the test on inference errors.
func mustInfer(t *testing.T, e ast.Expr) Type {
	t.Helper()
	typ, err := inferOne(t, e)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	return typ
}

// diagCode extracts the VFxxxx code from an inference error.
func diagCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a diagnostic, got success")
	}
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	return d.Code()
}

// colorDecl declares `type Color = Red | Green | Blue` for
// variant-centric tests.
func colorDecl() *ast.TypeDecl {
	return &ast.TypeDecl{
		Name: "Color",
		Kind: ast.VariantDecl,
		Ctors: []ast.CtorDecl{
			{Name: "Red"}, {Name: "Green"}, {Name: "Blue"},
		},
	}
}

// checkModule runs the module-level checker over the declarations.
func checkModule(t *testing.T, wc *diag.WarningCollector, decls ...ast.Decl) (*TypedModule, error) {
	t.Helper()
	if wc == nil {
		wc = diag.NewWarningCollector()
	}
	mod := &ast.Module{Path: "/test.vf", Decls: decls}
	return Typecheck(mod, "", wc)
}
