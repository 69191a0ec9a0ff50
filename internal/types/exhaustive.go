package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// Exhaustiveness and reachability analysis over the pattern matrix,
// using the classic usefulness recursion: a pattern vector is useful
// against a matrix when some value matches it and none of the matrix
// rows. A match is exhaustive when the wildcard vector is useless, and
// a case is unreachable when its own row is useless against the rows
// above it.
//
// Guarded rows never count towards coverage: the guard may be false.

// checkExhaustiveness reports VF4400 when cases are missing and emits
// a VF4900 warning per unreachable case.
func (tc *Checker) checkExhaustiveness(ctx *InferenceContext, m *ast.Match, scrut Type) error {
	var covering [][]ast.Pattern // unguarded rows only
	for _, c := range m.Cases {
		if c.Guard == nil {
			covering = append(covering, []ast.Pattern{c.Pattern})
		}
	}

	// Reachability: every case, guarded or not, must be useful with
	// respect to the unguarded rows above it.
	var prior [][]ast.Pattern
	for _, c := range m.Cases {
		if !tc.useful(ctx, prior, []ast.Pattern{c.Pattern}, []Type{scrut}) {
			d, err := diag.New(diag.UnreachableMatchCase, c.Loc, nil)
			if err != nil {
				return err
			}
			if err := tc.warnings.Add(d); err != nil {
				return err
			}
		}
		if c.Guard == nil {
			prior = append(prior, []ast.Pattern{c.Pattern})
		}
	}

	missing := tc.missingCases(ctx, covering, scrut)
	if len(missing) > 0 {
		return diag.Errorf(diag.NonExhaustiveMatch, m.Position(), map[string]string{
			"missing": strings.Join(missing, ", "),
		})
	}
	return nil
}

// missingCases names the uncovered constructors of the scrutinee type,
// or ["_"] when a non-enumerable scrutinee lacks a catch-all case.
func (tc *Checker) missingCases(ctx *InferenceContext, matrix [][]ast.Pattern, scrut Type) []string {
	if sig, ok := tc.signature(ctx, scrut); ok {
		var missing []string
		for _, c := range sig {
			probe := []ast.Pattern{c.probe()}
			if tc.useful(ctx, matrix, probe, []Type{scrut}) {
				missing = append(missing, c.display())
			}
		}
		return missing
	}
	wildcard := []ast.Pattern{&ast.WildcardPattern{}}
	if tc.useful(ctx, matrix, wildcard, []Type{scrut}) {
		return []string{"_"}
	}
	return nil
}

// useful implements U(P, q) over one-or-more-column matrices.
func (tc *Checker) useful(ctx *InferenceContext, matrix [][]ast.Pattern, vector []ast.Pattern, colTypes []Type) bool {
	if len(vector) == 0 {
		return len(matrix) == 0
	}
	colType := ctx.sub.Apply(colTypes[0])
	q := vector[0]

	if head, ok := tc.headOf(ctx, q, colType); ok {
		spec, specTypes := tc.specialize(ctx, matrix, head, colType, colTypes[1:])
		specVector := concatPatterns(head.subPatterns(q), vector[1:])
		return tc.useful(ctx, spec, specVector, specTypes)
	}

	// Wildcard or variable head.
	if sig, ok := tc.signature(ctx, colType); ok && tc.columnCovers(ctx, matrix, sig) {
		for _, c := range sig {
			spec, specTypes := tc.specialize(ctx, matrix, c, colType, colTypes[1:])
			wilds := make([]ast.Pattern, c.arity)
			for i := range wilds {
				wilds[i] = &ast.WildcardPattern{}
			}
			if tc.useful(ctx, spec, concatPatterns(wilds, vector[1:]), specTypes) {
				return true
			}
		}
		return false
	}

	return tc.useful(ctx, tc.defaultMatrix(matrix), vector[1:], colTypes[1:])
}

// head identifies the constructor a pattern is built with: a variant
// constructor, a literal, the tuple constructor or the record
// constructor.
type head struct {
	kind     string // "ctor", "lit", "tuple", "record"
	name     string // constructor name or literal key
	arity    int
	subTypes []Type
	// fields is the sorted field list of a record column, shared so
	// every pattern expands the same way.
	fields []string
}

func (h *head) key() string { return h.kind + ":" + h.name }

// display renders the head for the missing-case list.
func (h *head) display() string {
	blanks := make([]string, h.arity)
	for i := range blanks {
		blanks[i] = "_"
	}
	switch h.kind {
	case "ctor":
		if h.arity > 0 {
			return fmt.Sprintf("%s(%s)", h.name, strings.Join(blanks, ", "))
		}
		return h.name
	case "tuple":
		return "(" + strings.Join(blanks, ", ") + ")"
	case "record":
		return "{ .. }"
	default:
		return h.name
	}
}

// probe builds a synthetic pattern matching exactly this head.
func (h *head) probe() ast.Pattern {
	switch h.kind {
	case "ctor":
		args := make([]ast.Pattern, h.arity)
		for i := range args {
			args[i] = &ast.WildcardPattern{}
		}
		return &ast.VariantPattern{Ctor: h.name, Args: args}
	case "lit":
		switch h.name {
		case "true":
			return &ast.LitPattern{Kind: ast.BoolLit, Value: true}
		case "false":
			return &ast.LitPattern{Kind: ast.BoolLit, Value: false}
		default:
			return &ast.LitPattern{Kind: ast.UnitLit}
		}
	case "tuple":
		elems := make([]ast.Pattern, h.arity)
		for i := range elems {
			elems[i] = &ast.WildcardPattern{}
		}
		return &ast.TuplePattern{Elems: elems}
	default:
		return &ast.WildcardPattern{}
	}
}

func concatPatterns(a, b []ast.Pattern) []ast.Pattern {
	out := make([]ast.Pattern, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// subPatterns expands a pattern with this head into its argument
// columns.
func (h *head) subPatterns(p ast.Pattern) []ast.Pattern {
	switch p := p.(type) {
	case *ast.VariantPattern:
		return p.Args
	case *ast.TuplePattern:
		return p.Elems
	case *ast.RecordPattern:
		byName := make(map[string]ast.Pattern, len(p.Fields))
		for _, f := range p.Fields {
			byName[f.Name] = f.Pattern
		}
		out := make([]ast.Pattern, len(h.fields))
		for i, name := range h.fields {
			if sub, ok := byName[name]; ok {
				out[i] = sub
			} else {
				out[i] = &ast.WildcardPattern{}
			}
		}
		return out
	default:
		return nil
	}
}

// headOf classifies a pattern; wildcard and variable patterns have no
// head.
func (tc *Checker) headOf(ctx *InferenceContext, p ast.Pattern, colType Type) (*head, bool) {
	switch p := p.(type) {
	case *ast.WildcardPattern, *ast.VarPattern:
		return nil, false
	case *ast.LitPattern:
		return &head{kind: "lit", name: litKey(p.Kind, p.Value)}, true
	case *ast.VariantPattern:
		subTypes := tc.ctorArgTypes(ctx, colType, p.Ctor, len(p.Args))
		return &head{kind: "ctor", name: p.Ctor, arity: len(p.Args), subTypes: subTypes}, true
	case *ast.TuplePattern:
		h := &head{kind: "tuple", name: "tuple", arity: len(p.Elems)}
		if t, ok := colType.(*TTuple); ok {
			h.subTypes = t.Elems
		}
		return h, true
	case *ast.RecordPattern:
		h := tc.recordHead(colType)
		return h, true
	}
	return nil, false
}

func (tc *Checker) recordHead(colType Type) *head {
	h := &head{kind: "record", name: "record"}
	if r, ok := colType.(*TRecord); ok {
		names := make([]string, 0, len(r.Fields))
		for name := range r.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		h.fields = names
		h.arity = len(names)
		h.subTypes = make([]Type, len(names))
		for i, name := range names {
			h.subTypes[i] = r.Fields[name]
		}
	}
	return h
}

func litKey(kind ast.LitKind, value interface{}) string {
	if kind == ast.UnitLit {
		return "unit"
	}
	return fmt.Sprintf("%v", value)
}

// ctorArgTypes resolves the instantiated argument types of a variant
// constructor via the environment, so even instances recorded during
// recursive declaration elaboration expand with a full table.
func (tc *Checker) ctorArgTypes(ctx *InferenceContext, colType Type, ctor string, arity int) []Type {
	name, args := variantNameArgs(colType)
	if name != "" {
		if tb, ok := ctx.env.LookupCtor(ctor); ok && tb.Name == name {
			instance, ok := tb.Instantiate(args).(*TVariant)
			if ok {
				if sub, found := instance.Ctors[ctor]; found {
					return sub
				}
			}
		}
	}
	// Unknown scrutinee: sub-columns stay unconstrained.
	out := make([]Type, arity)
	for i := range out {
		out[i] = &TNever{}
	}
	return out
}

// variantNameArgs extracts the declared name and instantiation
// arguments from any of the forms a variant instance may take.
func variantNameArgs(t Type) (string, []Type) {
	switch t := t.(type) {
	case *TVariant:
		return t.Name, t.Args
	case *TCon:
		return t.Name, nil
	case *TApp:
		if c, ok := t.Ctor.(*TCon); ok {
			return c.Name, t.Args
		}
	}
	return "", nil
}

// signature returns the complete constructor set of a column type when
// it has one: variants, Bool, Unit, tuples and records are
// enumerable; Int, Float, String and unresolved variables are not.
func (tc *Checker) signature(ctx *InferenceContext, colType Type) ([]*head, bool) {
	switch t := colType.(type) {
	case *TVariant, *TApp, *TCon:
		if name, args := variantNameArgs(colType); name != "" {
			if c, ok := colType.(*TCon); ok {
				switch c.Name {
				case TBool.Name:
					return []*head{{kind: "lit", name: "true"}, {kind: "lit", name: "false"}}, true
				case TUnit.Name:
					return []*head{{kind: "lit", name: "unit"}}, true
				case TInt.Name, TFloat.Name, TString.Name:
					return nil, false
				}
			}
			tb, ok := tc.lookupVariantBinding(ctx, name)
			if !ok {
				return nil, false
			}
			instance, ok := tb.Instantiate(args).(*TVariant)
			if !ok {
				return nil, false
			}
			heads := make([]*head, 0, len(tb.CtorOrder))
			for _, ctor := range tb.CtorOrder {
				sub := instance.Ctors[ctor]
				heads = append(heads, &head{kind: "ctor", name: ctor, arity: len(sub), subTypes: sub})
			}
			return heads, true
		}
		return nil, false
	case *TTuple:
		return []*head{{kind: "tuple", name: "tuple", arity: len(t.Elems), subTypes: t.Elems}}, true
	case *TRecord:
		return []*head{tc.recordHead(t)}, true
	default:
		return nil, false
	}
}

func (tc *Checker) lookupVariantBinding(ctx *InferenceContext, name string) (*TypeBinding, bool) {
	tb, ok := ctx.env.LookupType(name)
	if !ok || tb.Kind != VariantType {
		return nil, false
	}
	return tb, true
}

// columnCovers reports whether the first column of the matrix mentions
// every constructor of the signature.
func (tc *Checker) columnCovers(ctx *InferenceContext, matrix [][]ast.Pattern, sig []*head) bool {
	seen := make(map[string]bool)
	for _, row := range matrix {
		if h, ok := tc.headOf(ctx, row[0], &TNever{}); ok {
			seen[h.key()] = true
		}
	}
	for _, c := range sig {
		if !seen[c.key()] {
			return false
		}
	}
	return true
}

// specialize filters and expands the matrix for one constructor.
func (tc *Checker) specialize(ctx *InferenceContext, matrix [][]ast.Pattern, c *head, colType Type, restTypes []Type) ([][]ast.Pattern, []Type) {
	subTypes := c.subTypes
	if subTypes == nil {
		subTypes = make([]Type, c.arity)
		for i := range subTypes {
			subTypes[i] = &TNever{}
		}
	}
	var out [][]ast.Pattern
	for _, row := range matrix {
		switch p := row[0].(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			wilds := make([]ast.Pattern, c.arity)
			for i := range wilds {
				wilds[i] = &ast.WildcardPattern{}
			}
			out = append(out, concatPatterns(wilds, row[1:]))
		default:
			if h, ok := tc.headOf(ctx, p, colType); ok && h.key() == c.key() {
				if c.kind == "record" {
					// Record rows expand over the shared field list.
					h = c
				}
				out = append(out, concatPatterns(h.subPatterns(p), row[1:]))
			}
		}
	}
	return out, append(append([]Type{}, subTypes...), restTypes...)
}

// defaultMatrix keeps only rows whose first column matches anything.
func (tc *Checker) defaultMatrix(matrix [][]ast.Pattern) [][]ast.Pattern {
	var out [][]ast.Pattern
	for _, row := range matrix {
		switch row[0].(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			out = append(out, row[1:])
		}
	}
	return out
}
