package types

import (
	"sort"

	"github.com/vibefun/vibefun/internal/ast"
)

// ValueBinding is what a name in the value namespace resolves to.
type ValueBinding interface {
	valueBinding()
	// BindingScheme returns the scheme used at reference sites.
	// Overload groups have no single scheme and return nil.
	BindingScheme() *Scheme
}

// Value is an ordinary let-bound or builtin value.
type Value struct {
	Scheme  *Scheme
	Mutable bool
	Loc     ast.Location
}

func (v *Value) valueBinding()          {}
func (v *Value) BindingScheme() *Scheme { return v.Scheme }

// External is a value implemented in JavaScript with a declared type.
type External struct {
	Scheme *Scheme
	JSName string
	From   string
	Loc    ast.Location
}

func (e *External) valueBinding()          {}
func (e *External) BindingScheme() *Scheme { return e.Scheme }

// ExternalOverload groups several externals sharing one name. A
// reference outside an application position cannot pick a candidate
// and is rejected.
type ExternalOverload struct {
	Overloads []*External
	JSName    string
	From      string
	Loc       ast.Location
}

func (e *ExternalOverload) valueBinding()          {}
func (e *ExternalOverload) BindingScheme() *Scheme { return nil }

// TypeKind discriminates the bindings of the type namespace.
type TypeKind int

const (
	AliasType TypeKind = iota
	RecordType
	VariantType
	ExternalType
)

// TypeBinding is a declared type: its parameters as placeholder
// variables plus a body in terms of them. Variant bodies keep the
// constructor table used for nominal construction, pattern checking
// and exhaustiveness.
type TypeBinding struct {
	Name   string
	Kind   TypeKind
	Params []*TVar
	// Body is the alias or record body; nil for variants and
	// external types. During the first declaration pass it is nil for
	// every kind and is filled in by the second pass.
	Body Type
	// Ctors maps constructor names to argument types in terms of
	// Params; only set for variants.
	Ctors map[string][]Type
	// CtorOrder preserves declaration order for deterministic
	// missing-case lists.
	CtorOrder []string
	Loc       ast.Location
}

// Arity returns the number of type parameters.
func (tb *TypeBinding) Arity() int { return len(tb.Params) }

// TypeEnv maps names to value and type bindings. Environments are
// immutable: extension returns a child that shadows the parent.
type TypeEnv struct {
	values map[string]ValueBinding
	types  map[string]*TypeBinding
	// ctors indexes constructor names to their declaring type.
	ctors  map[string]*TypeBinding
	parent *TypeEnv
}

// NewTypeEnv creates an empty environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{
		values: make(map[string]ValueBinding),
		types:  make(map[string]*TypeBinding),
		ctors:  make(map[string]*TypeBinding),
	}
}

func (e *TypeEnv) child() *TypeEnv {
	return &TypeEnv{
		values: make(map[string]ValueBinding, 1),
		types:  make(map[string]*TypeBinding),
		ctors:  make(map[string]*TypeBinding),
		parent: e,
	}
}

// ExtendValue returns a new environment with name bound.
func (e *TypeEnv) ExtendValue(name string, b ValueBinding) *TypeEnv {
	c := e.child()
	c.values[name] = b
	return c
}

// ExtendType returns a new environment with the type and its
// constructors bound.
func (e *TypeEnv) ExtendType(tb *TypeBinding) *TypeEnv {
	c := e.child()
	c.types[tb.Name] = tb
	for ctor := range tb.Ctors {
		c.ctors[ctor] = tb
	}
	return c
}

// LookupValue resolves a value name through the shadowing chain.
func (e *TypeEnv) LookupValue(name string) (ValueBinding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupType resolves a type name.
func (e *TypeEnv) LookupType(name string) (*TypeBinding, bool) {
	for env := e; env != nil; env = env.parent {
		if tb, ok := env.types[name]; ok {
			return tb, true
		}
	}
	return nil, false
}

// LookupCtor resolves a constructor name to its declaring type.
func (e *TypeEnv) LookupCtor(name string) (*TypeBinding, bool) {
	for env := e; env != nil; env = env.parent {
		if tb, ok := env.ctors[name]; ok {
			return tb, true
		}
	}
	return nil, false
}

// ValueNames returns every bound value name, sorted; used for typo
// suggestions.
func (e *TypeEnv) ValueNames() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.parent {
		for name := range env.values {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeNames returns every bound type name, sorted.
func (e *TypeEnv) TypeNames() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.parent {
		for name := range env.types {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CtorNames returns every known constructor name, sorted.
func (e *TypeEnv) CtorNames() []string {
	seen := make(map[string]bool)
	for env := e; env != nil; env = env.parent {
		for name := range env.ctors {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
