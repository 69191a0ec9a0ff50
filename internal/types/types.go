// Package types implements the type system: the type algebra,
// first-order unification with occurs check, the type environment and
// Algorithm W inference with level-based generalization and the
// syntactic value restriction.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is a type in the algebra. The concrete implementations form a
// closed sum; dispatch is a type switch in each consumer.
type Type interface {
	String() string
	typeNode()
}

// TVar is a unification variable. ID is unique within a checker run;
// Level bounds the scope the variable may be generalized at and is
// lowered in place during unification, so TVar is always handled by
// pointer and never copied.
type TVar struct {
	ID    int
	Level int
}

func (t *TVar) typeNode() {}
func (t *TVar) String() string {
	return fmt.Sprintf("t%d", t.ID)
}

// TCon is a type constant: a primitive or a declared type name.
type TCon struct {
	Name string
}

func (t *TCon) typeNode()      {}
func (t *TCon) String() string { return t.Name }

// TFunc is a function type. After desugaring Params always has length
// 1; the representation keeps a slice so annotations print the way
// they were written.
type TFunc struct {
	Params []Type
	Return Type
}

func (t *TFunc) typeNode() {}
func (t *TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	if len(params) == 1 {
		if _, ok := t.Params[0].(*TFunc); !ok {
			return fmt.Sprintf("%s -> %s", params[0], t.Return)
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
}

// TApp applies a type constructor to arguments, e.g. List<Int>.
type TApp struct {
	Ctor Type
	Args []Type
}

func (t *TApp) typeNode() {}
func (t *TApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Ctor, strings.Join(args, ", "))
}

// TRecord is a structural record type. Field order is irrelevant for
// identity; unification uses width subtyping.
type TRecord struct {
	Fields map[string]Type
}

func (t *TRecord) typeNode() {}
func (t *TRecord) String() string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, t.Fields[name])
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// TVariant is a nominal sum type. Name carries the identity: two
// declarations with identical constructors remain distinct types.
// Args are the instantiated type parameters; Ctors maps constructor
// names to their argument types under those parameters.
type TVariant struct {
	Name  string
	Args  []Type
	Ctors map[string][]Type
}

func (t *TVariant) typeNode() {}
func (t *TVariant) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

// TUnion is an ordered union of types. Narrowing is not supported;
// unification is deliberately conservative.
type TUnion struct {
	Types []Type
}

func (t *TUnion) typeNode() {}
func (t *TUnion) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// TTuple is a tuple type.
type TTuple struct {
	Elems []Type
}

func (t *TTuple) typeNode() {}
func (t *TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TRef is a mutable reference cell type.
type TRef struct {
	Elem Type
}

func (t *TRef) typeNode()      {}
func (t *TRef) String() string { return fmt.Sprintf("Ref<%s>", t.Elem) }

// TNever is the bottom type; it unifies with anything.
type TNever struct{}

func (t *TNever) typeNode()      {}
func (t *TNever) String() string { return "Never" }

// Primitive singletons. Identity is by name, so fresh &TCon values
// compare equal to these in unification.
var (
	TInt    = &TCon{Name: "Int"}
	TFloat  = &TCon{Name: "Float"}
	TString = &TCon{Name: "String"}
	TBool   = &TCon{Name: "Bool"}
	TUnit   = &TCon{Name: "Unit"}
)

// Scheme is a polymorphic type: a body quantified over variable IDs.
// A monomorphic binding has an empty Quantified list.
type Scheme struct {
	Quantified []int
	Body       Type
}

// Mono wraps a type in a trivial scheme.
func Mono(t Type) *Scheme {
	return &Scheme{Body: t}
}

func (s *Scheme) String() string {
	if len(s.Quantified) == 0 {
		return s.Body.String()
	}
	vars := make([]string, len(s.Quantified))
	for i, id := range s.Quantified {
		vars[i] = fmt.Sprintf("t%d", id)
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(vars, " "), s.Body)
}

// freeVars appends every TVar reachable in t to acc, deduplicated by
// identity of the cell.
func freeVars(t Type, acc map[int]*TVar) {
	switch t := t.(type) {
	case *TVar:
		acc[t.ID] = t
	case *TCon, *TNever, nil:
	case *TFunc:
		for _, p := range t.Params {
			freeVars(p, acc)
		}
		freeVars(t.Return, acc)
	case *TApp:
		freeVars(t.Ctor, acc)
		for _, a := range t.Args {
			freeVars(a, acc)
		}
	case *TRecord:
		for _, f := range t.Fields {
			freeVars(f, acc)
		}
	case *TVariant:
		for _, a := range t.Args {
			freeVars(a, acc)
		}
		for _, args := range t.Ctors {
			for _, a := range args {
				freeVars(a, acc)
			}
		}
	case *TUnion:
		for _, m := range t.Types {
			freeVars(m, acc)
		}
	case *TTuple:
		for _, e := range t.Elems {
			freeVars(e, acc)
		}
	case *TRef:
		freeVars(t.Elem, acc)
	}
}

// FreeVars returns the unification variables free in t.
func FreeVars(t Type) map[int]*TVar {
	acc := make(map[int]*TVar)
	freeVars(t, acc)
	return acc
}
