package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

func TestLiterals(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"int", b.intLit(1), "Int"},
		{"float", b.floatLit(1.5), "Float"},
		{"string", b.strLit("x"), "String"},
		{"bool", b.boolLit(true), "Bool"},
		{"unit", b.unitLit(), "Unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustInfer(t, tt.expr).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPolymorphicIdentity(t *testing.T) {
	// let id = x -> x in (id(1), id("x"))
	b := newBuilder()
	expr := b.let("id", b.lam("x", b.ref("x")),
		b.tuple(b.call("id", b.intLit(1)), b.call("id", b.strLit("s"))))

	got := mustInfer(t, expr)
	require.Equal(t, "(Int, String)", got.String())
}

func TestIdentitySchemeIsPolymorphic(t *testing.T) {
	b := newBuilder()
	wc := diag.NewWarningCollector()
	tm, err := checkModule(t, wc,
		&ast.LetDecl{Name: "id", Value: b.lam("x", b.ref("x"))},
		&ast.LetDecl{Name: "a", Value: b.call("id", b.intLit(1))},
		&ast.LetDecl{Name: "b", Value: b.call("id", b.strLit("x"))},
	)
	require.NoError(t, err)

	id := tm.DeclTypes["id"]
	require.Len(t, id.Quantified, 1, "id must generalize its variable")
	assert.Equal(t, "Int", tm.DeclTypes["a"].Body.String())
	assert.Equal(t, "String", tm.DeclTypes["b"].Body.String())
	assert.False(t, wc.HasWarnings())
}

func TestValueRestriction(t *testing.T) {
	// let r = ref(None): the RHS is an application, so the option
	// parameter must stay monomorphic and a later use pins it.
	b := newBuilder()
	tm, err := checkModule(t, nil,
		&ast.LetDecl{Name: "r", Value: b.call("ref", b.ctor("None"))},
		&ast.LetDecl{Name: "use", Value: b.match(b.unOp(ast.OpDeref, b.ref("r")),
			b.matchCase(pctor("Some", pint(1)), b.intLit(1)),
			b.matchCase(pctor("None"), b.intLit(0)),
			b.matchCase(wild(), b.intLit(-1)),
		)},
	)
	require.NoError(t, err)

	r := tm.DeclTypes["r"]
	assert.Empty(t, r.Quantified, "expansive RHS must not generalize")
	assert.Equal(t, "Ref<Option<Int>>", r.Body.String(), "later match must pin the parameter")
}

func TestValueRestrictionConflict(t *testing.T) {
	// Pinning r's parameter to Int and then matching Some("x") is the
	// classic unsoundness the restriction exists to reject.
	b := newBuilder()
	_, err := checkModule(t, nil,
		&ast.LetDecl{Name: "r", Value: b.call("ref", b.ctor("None"))},
		&ast.LetDecl{Name: "useInt", Value: b.match(b.unOp(ast.OpDeref, b.ref("r")),
			b.matchCase(pctor("Some", pint(1)), b.intLit(1)),
			b.matchCase(pctor("None"), b.intLit(0)),
			b.matchCase(wild(), b.intLit(-1)),
		)},
		&ast.LetDecl{Name: "useString", Value: b.match(b.unOp(ast.OpDeref, b.ref("r")),
			b.matchCase(pctor("Some", &ast.LitPattern{Kind: ast.StringLit, Value: "x"}), b.intLit(1)),
			b.matchCase(pctor("None"), b.intLit(0)),
			b.matchCase(wild(), b.intLit(-1)),
		)},
	)
	require.Error(t, err)
	assert.Equal(t, diag.TypeMismatch, diagCode(t, err))
}

func TestSyntacticValuePredicate(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name  string
		expr  ast.Expr
		value bool
	}{
		{"literal", b.intLit(1), true},
		{"variable", b.ref("x"), true},
		{"lambda", b.lam("x", b.call("print", b.ref("x"))), true},
		{"constructor of values", b.ctor("Some", b.intLit(1)), true},
		{"tuple of values", b.tuple(b.intLit(1), b.strLit("a")), true},
		{"record of values", b.record(b.field("x", b.intLit(1))), true},
		{"annotated value", &ast.Annot{ExprBase: ast.ExprBase{NodeID: 999}, Expr: b.intLit(1), Type: &ast.TypeName{Name: "Int"}}, true},
		{"application", b.call("ref", b.intLit(1)), false},
		{"tuple with application", b.tuple(b.intLit(1), b.call("ref", b.intLit(1))), false},
		{"record with spread", b.record(b.spread(b.ref("r"))), false},
		{"match", b.match(b.intLit(1), b.matchCase(wild(), b.intLit(1))), false},
		{"record access", b.access(b.ref("r"), "x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSyntacticValue(tt.expr); got != tt.value {
				t.Errorf("IsSyntacticValue = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestWidthSubtypingAccess(t *testing.T) {
	// let getX = r -> r.x in getX({x: 1, y: 2})
	b := newBuilder()
	expr := b.let("getX", b.lam("r", b.access(b.ref("r"), "x")),
		b.call("getX", b.record(b.field("x", b.intLit(1)), b.field("y", b.intLit(2)))))
	require.Equal(t, "Int", mustInfer(t, expr).String())
}

func TestRecordAccessOnFreshVariable(t *testing.T) {
	b := newBuilder()
	got := mustInfer(t, b.lam("r", b.access(b.ref("r"), "name")))
	f, ok := got.(*TFunc)
	require.True(t, ok, "expected function type, got %s", got)
	rec, ok := f.Params[0].(*TRecord)
	require.True(t, ok, "parameter must become a record, got %s", f.Params[0])
	if _, ok := rec.Fields["name"]; !ok {
		t.Errorf("record missing accessed field: %s", rec)
	}
}

func TestRecordMissingField(t *testing.T) {
	b := newBuilder()
	_, err := inferOne(t, b.access(b.record(b.field("x", b.intLit(1))), "y"))
	assert.Equal(t, diag.MissingField, diagCode(t, err))
}

func TestRecordAccessOnNonRecord(t *testing.T) {
	b := newBuilder()
	_, err := inferOne(t, b.access(b.intLit(1), "x"))
	assert.Equal(t, diag.AccessNonRecord, diagCode(t, err))
}

func TestRecordSpreadAndOverwrite(t *testing.T) {
	// { ...base, y: "s" } where base = {x: 1, y: 2}: later fields win.
	b := newBuilder()
	expr := b.let("base", b.record(b.field("x", b.intLit(1)), b.field("y", b.intLit(2))),
		b.record(b.spread(b.ref("base")), b.field("y", b.strLit("s"))))
	got := mustInfer(t, expr)
	rec, ok := got.(*TRecord)
	require.True(t, ok)
	assert.Equal(t, "Int", rec.Fields["x"].String())
	assert.Equal(t, "String", rec.Fields["y"].String())
}

func TestRecordUpdate(t *testing.T) {
	b := newBuilder()
	base := b.record(b.field("x", b.intLit(1)), b.field("y", b.strLit("a")))

	t.Run("known field", func(t *testing.T) {
		expr := &ast.RecordUpdate{ExprBase: b.base(), Base: base, Updates: []ast.FieldUpdate{
			{Name: "x", Value: b.intLit(2)},
		}}
		got := mustInfer(t, expr)
		assert.Equal(t, "{ x: Int, y: String }", got.String())
	})

	t.Run("unknown field", func(t *testing.T) {
		b := newBuilder()
		base := b.record(b.field("x", b.intLit(1)))
		expr := &ast.RecordUpdate{ExprBase: b.base(), Base: base, Updates: []ast.FieldUpdate{
			{Name: "z", Value: b.intLit(2)},
		}}
		_, err := inferOne(t, expr)
		assert.Equal(t, diag.UpdateUnknownField, diagCode(t, err))
	})
}

func TestOperators(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"int add", b.binOp(ast.OpAdd, b.intLit(1), b.intLit(2)), "Int"},
		{"float mul", b.binOp(ast.OpMul, b.floatLit(1), b.floatLit(2)), "Float"},
		{"comparison", b.binOp(ast.OpLt, b.intLit(1), b.intLit(2)), "Bool"},
		{"equality polymorphic", b.binOp(ast.OpEq, b.strLit("a"), b.strLit("b")), "Bool"},
		{"logic", b.binOp(ast.OpAnd, b.boolLit(true), b.boolLit(false)), "Bool"},
		{"concat", b.binOp(ast.OpConcat, b.strLit("a"), b.strLit("b")), "String"},
		{"cons", b.binOp(ast.OpCons, b.intLit(1), b.call("listRange", b.intLit(0), b.intLit(3))), "List<Int>"},
		{"negate", b.unOp(ast.OpNegate, b.intLit(1)), "Int"},
		{"not", b.unOp(ast.OpLogicalNot, b.boolLit(true)), "Bool"},
		{"deref", b.unOp(ast.OpDeref, b.call("ref", b.intLit(1))), "Int"},
		{"assign", b.binOp(ast.OpRefAssign, b.call("ref", b.intLit(1)), b.intLit(2)), "Unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustInfer(t, tt.expr).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name string
		expr ast.Expr
		code string
	}{
		{"mixed numerics", b.binOp(ast.OpAdd, b.intLit(1), b.floatLit(2)), diag.MixedNumericTypes},
		{"string arith", b.binOp(ast.OpMul, b.strLit("a"), b.strLit("b")), diag.NumericOperandExpected},
		{"non-bool logic", b.binOp(ast.OpAnd, b.intLit(1), b.boolLit(true)), diag.BooleanOperandExpected},
		{"concat non-string", b.binOp(ast.OpConcat, b.strLit("a"), b.intLit(1)), diag.StringOperandExpected},
		{"equality mismatch", b.binOp(ast.OpEq, b.intLit(1), b.strLit("a")), diag.TypeMismatch},
		{"assign to non-ref", b.binOp(ast.OpRefAssign, b.intLit(1), b.intLit(2)), diag.AssignTargetNotRef},
		{"deref non-ref", b.unOp(ast.OpDeref, b.intLit(1)), diag.DerefNonRef},
		{"cons to non-list", b.binOp(ast.OpCons, b.intLit(1), b.intLit(2)), diag.ConsNotList},
		{"negate string", b.unOp(ast.OpNegate, b.strLit("a")), diag.NumericOperandExpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inferOne(t, tt.expr)
			assert.Equal(t, tt.code, diagCode(t, err))
		})
	}
}

func TestNumericDefaulting(t *testing.T) {
	// With no other evidence, arithmetic on unknowns picks Int.
	b := newBuilder()
	got := mustInfer(t, b.lam("x", b.binOp(ast.OpAdd, b.ref("x"), b.ref("x"))))
	require.Equal(t, "Int -> Int", got.String())
}

func TestUnknownVariableSuggestion(t *testing.T) {
	b := newBuilder()
	_, err := inferOne(t, b.call("lisMap", b.lam("x", b.ref("x"))))
	require.Error(t, err)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.UnknownVariable, d.Code())
	assert.Contains(t, d.Hint, "listMap")
}

func TestOccursCheckInference(t *testing.T) {
	// x -> x(x) has no finite type.
	b := newBuilder()
	_, err := inferOne(t, b.lam("x", b.call("x", b.ref("x"))))
	assert.Equal(t, diag.InfiniteType, diagCode(t, err))
}

func TestApplyNonFunction(t *testing.T) {
	b := newBuilder()
	_, err := inferOne(t, b.let("x", b.intLit(1), b.call("x", b.intLit(2))))
	assert.Equal(t, diag.NotAFunction, diagCode(t, err))
}

func TestAnnotation(t *testing.T) {
	b := newBuilder()

	t.Run("matching", func(t *testing.T) {
		expr := &ast.Annot{ExprBase: b.base(), Expr: b.intLit(1), Type: &ast.TypeName{Name: "Int"}}
		require.Equal(t, "Int", mustInfer(t, expr).String())
	})

	t.Run("mismatch", func(t *testing.T) {
		expr := &ast.Annot{ExprBase: b.base(), Expr: b.intLit(1), Type: &ast.TypeName{Name: "String"}}
		_, err := inferOne(t, expr)
		assert.Equal(t, diag.AnnotationMismatch, diagCode(t, err))
	})

	t.Run("unknown type with suggestion", func(t *testing.T) {
		expr := &ast.Annot{ExprBase: b.base(), Expr: b.strLit("a"), Type: &ast.TypeName{Name: "Strng"}}
		_, err := inferOne(t, expr)
		require.Error(t, err)
		d, _ := diag.AsDiagnostic(err)
		assert.Equal(t, diag.UnknownTypeName, d.Code())
		assert.Contains(t, d.Hint, "String")
	})
}

func TestUnsafePassesThrough(t *testing.T) {
	b := newBuilder()
	expr := &ast.Unsafe{ExprBase: b.base(), Body: b.intLit(1)}
	require.Equal(t, "Int", mustInfer(t, expr).String())
}

func TestLetRec(t *testing.T) {
	// let rec count = n -> match n { 0 -> 0, _ -> count(n - 1) }
	b := newBuilder()
	body := b.match(b.ref("n"),
		b.matchCase(pint(0), b.intLit(0)),
		b.matchCase(wild(), b.call("count", b.binOp(ast.OpSub, b.ref("n"), b.intLit(1)))),
	)
	expr := b.letRec("count", b.lam("n", body), b.call("count", b.intLit(3)))
	require.Equal(t, "Int", mustInfer(t, expr).String())
}

func TestLetGroupMutualRecursion(t *testing.T) {
	// let rec isEven = n -> ... isOdd(n-1) and isOdd = n -> ... isEven(n-1)
	b := newBuilder()
	isEven := b.lam("n", b.match(b.ref("n"),
		b.matchCase(pint(0), b.boolLit(true)),
		b.matchCase(wild(), b.call("isOdd", b.binOp(ast.OpSub, b.ref("n"), b.intLit(1)))),
	))
	isOdd := b.lam("n", b.match(b.ref("n"),
		b.matchCase(pint(0), b.boolLit(false)),
		b.matchCase(wild(), b.call("isEven", b.binOp(ast.OpSub, b.ref("n"), b.intLit(1)))),
	))
	group := &ast.LetGroup{
		ExprBase: b.base(),
		Bindings: []ast.RecBinding{{Name: "isEven", Value: isEven}, {Name: "isOdd", Value: isOdd}},
		Body:     b.call("isEven", b.intLit(4)),
	}
	require.Equal(t, "Bool", mustInfer(t, group).String())
}

func TestLevelDisciplineNoEscape(t *testing.T) {
	// The classic escape case: a variable introduced for the lambda
	// parameter must not be generalized by the inner let.
	b := newBuilder()
	expr := b.lam("x", b.let("y", b.ref("x"), b.ref("y")))
	got := mustInfer(t, expr)
	f, ok := got.(*TFunc)
	require.True(t, ok)
	require.True(t, equivalent(f.Params[0], f.Return),
		"parameter and result must be the same variable, got %s", got)
}

func TestStdlibSchemes(t *testing.T) {
	b := newBuilder()
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"listMap", b.call("listMap", b.lam("x", b.binOp(ast.OpAdd, b.ref("x"), b.intLit(1))), b.call("listRange", b.intLit(0), b.intLit(3))), "List<Int>"},
		{"listHead", b.call("listHead", b.call("listRange", b.intLit(0), b.intLit(3))), "Option<Int>"},
		{"optionGetOr", b.call("optionGetOr", b.intLit(0), b.ctor("Some", b.intLit(4))), "Int"},
		{"stringSplit", b.call("stringSplit", b.strLit(","), b.strLit("a,b")), "List<String>"},
		{"stringToInt", b.call("stringToInt", b.strLit("3")), "Option<Int>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustInfer(t, tt.expr).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTypecheckIdempotent(t *testing.T) {
	build := func() []ast.Decl {
		b := newBuilder()
		return []ast.Decl{
			colorDecl(),
			&ast.LetDecl{Name: "id", Value: b.lam("x", b.ref("x"))},
			&ast.LetDecl{Name: "a", Value: b.call("id", b.intLit(1))},
			&ast.LetDecl{Name: "pick", Value: b.lam("c", b.match(b.ref("c"),
				b.matchCase(pctor("Red"), b.intLit(1)),
				b.matchCase(pctor("Green"), b.intLit(2)),
				b.matchCase(pctor("Blue"), b.intLit(3)),
			))},
		}
	}
	tm1, err := checkModule(t, nil, build()...)
	require.NoError(t, err)
	tm2, err := checkModule(t, nil, build()...)
	require.NoError(t, err)

	require.Equal(t, len(tm1.DeclTypes), len(tm2.DeclTypes))
	for name, s1 := range tm1.DeclTypes {
		s2 := tm2.DeclTypes[name]
		require.NotNil(t, s2, "missing %s in second run", name)
		if !equivalent(s1.Body, s2.Body) {
			t.Errorf("%s: %s vs %s", name, s1.Body, s2.Body)
		}
	}
}

func TestNodeTypesAttached(t *testing.T) {
	b := newBuilder()
	lit := b.intLit(1)
	tm, err := checkModule(t, nil, &ast.LetDecl{Name: "x", Value: lit})
	require.NoError(t, err)
	got, ok := tm.NodeTypes[lit.ID()]
	require.True(t, ok, "literal node has no recorded type")
	assert.Equal(t, "Int", got.String())
}

func TestCurriedApplication(t *testing.T) {
	// Partial application of a curried two-argument function.
	b := newBuilder()
	add := b.lam("x", b.lam("y", b.binOp(ast.OpAdd, b.ref("x"), b.ref("y"))))
	expr := b.let("add", add, b.call("add", b.intLit(1)))
	require.Equal(t, "Int -> Int", mustInfer(t, expr).String())
}

func TestMatchArmMismatch(t *testing.T) {
	b := newBuilder()
	expr := b.match(b.intLit(1),
		b.matchCase(pint(0), b.intLit(1)),
		b.matchCase(wild(), b.strLit("a")),
	)
	_, err := inferOne(t, expr)
	assert.Equal(t, diag.MatchArmTypeMismatch, diagCode(t, err))
}

func TestGuardMustBeBool(t *testing.T) {
	b := newBuilder()
	expr := b.match(b.intLit(1),
		b.guardedCase(pvar("n"), b.intLit(1), b.intLit(1)),
		b.matchCase(wild(), b.intLit(0)),
	)
	_, err := inferOne(t, expr)
	assert.Equal(t, diag.ConditionNotBool, diagCode(t, err))
}

func TestTypeMismatchMessageShape(t *testing.T) {
	b := newBuilder()
	expr := &ast.Annot{ExprBase: b.base(), Expr: b.intLit(1), Type: &ast.TypeName{Name: "String"}}
	_, err := inferOne(t, expr)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.True(t, strings.Contains(d.Message, "String") && strings.Contains(d.Message, "Int"),
		"message should name both types: %s", d.Message)
}
