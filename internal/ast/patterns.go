package ast

// Pattern is a Core match pattern. Or-patterns are expanded into
// separate cases before reaching the type checker.
type Pattern interface {
	Node
	patternNode()
}

// PatternBase carries the location shared by all patterns.
type PatternBase struct {
	Loc Location
}

func (b *PatternBase) Position() Location { return b.Loc }
func (b *PatternBase) patternNode()       {}

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct {
	PatternBase
}

// VarPattern matches anything and binds it to Name.
type VarPattern struct {
	PatternBase
	Name string
}

// LitPattern matches a literal. A UnitLit pattern is written `null` in
// the surface syntax.
type LitPattern struct {
	PatternBase
	Kind  LitKind
	Value interface{}
}

// VariantPattern matches a constructor of a nominal variant type.
type VariantPattern struct {
	PatternBase
	Ctor string
	Args []Pattern
}

// FieldPattern is one `name: pat` entry of a record pattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
	Loc     Location
}

// RecordPattern matches a record with at least the listed fields.
type RecordPattern struct {
	PatternBase
	Fields []FieldPattern
}

// TuplePattern matches a tuple of the exact arity.
type TuplePattern struct {
	PatternBase
	Elems []Pattern
}
