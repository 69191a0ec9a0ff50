package ast

// TypeExpr is a surface-level type expression as written in
// annotations, type declarations and external signatures. The type
// checker elaborates these into internal types.
type TypeExpr interface {
	Node
	typeExprNode()
}

// TypeExprBase carries the location shared by all type expressions.
type TypeExprBase struct {
	Loc Location
}

func (b *TypeExprBase) Position() Location { return b.Loc }
func (b *TypeExprBase) typeExprNode()      {}

// TypeName references a named type: a primitive, a declared type or a
// lowercase type variable (`a`, `b`).
type TypeName struct {
	TypeExprBase
	Name string
}

// TypeApply applies a type constructor to arguments, e.g. List<Int>.
type TypeApply struct {
	TypeExprBase
	Name string
	Args []TypeExpr
}

// FunTypeExpr is a function type annotation. Params has one element
// per arrow segment; the desugarer currifies so inference only ever
// sees length 1, but annotations keep the written shape.
type FunTypeExpr struct {
	TypeExprBase
	Params []TypeExpr
	Return TypeExpr
}

// RecordTypeField is one `name: T` entry of a record type.
type RecordTypeField struct {
	Name string
	Type TypeExpr
	Loc  Location
}

// RecordTypeExpr is a record type annotation.
type RecordTypeExpr struct {
	TypeExprBase
	Fields []RecordTypeField
}

// TupleTypeExpr is a tuple type annotation.
type TupleTypeExpr struct {
	TypeExprBase
	Elems []TypeExpr
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// DeclBase carries the location shared by all declarations.
type DeclBase struct {
	Loc Location
}

func (b *DeclBase) Position() Location { return b.Loc }
func (b *DeclBase) declNode()          {}

// LetDecl is a top-level let binding.
type LetDecl struct {
	DeclBase
	Name      string
	Mutable   bool
	Recursive bool
	Value     Expr
	Exported  bool
}

// LetGroupDecl is a top-level mutually recursive binding group.
type LetGroupDecl struct {
	DeclBase
	Bindings []RecBinding
	Exported bool
}

// TypeDeclKind discriminates the three forms of type declaration.
type TypeDeclKind int

const (
	AliasDecl TypeDeclKind = iota
	RecordDecl
	VariantDecl
)

// CtorDecl is one constructor of a variant declaration.
type CtorDecl struct {
	Name string
	Args []TypeExpr
	Loc  Location
}

// TypeDecl declares a type alias, a named record type or a nominal
// variant type. Params are the lowercase type parameters.
type TypeDecl struct {
	DeclBase
	Name     string
	Params   []string
	Kind     TypeDeclKind
	Alias    TypeExpr          // AliasDecl
	Fields   []RecordTypeField // RecordDecl
	Ctors    []CtorDecl        // VariantDecl
	Exported bool
}

// ExternalDecl binds a name to a JavaScript value with a declared type.
// Several externals may share a name with different signatures; the
// type checker groups them into an overload set.
type ExternalDecl struct {
	DeclBase
	Name     string
	Type     TypeExpr
	JSName   string
	From     string // import source, empty for globals
	Exported bool
}

// ExternalTypeDecl declares an opaque external type.
type ExternalTypeDecl struct {
	DeclBase
	Name     string
	Params   []string
	JSName   string
	Exported bool
}

// ImportItem is one imported name. TypeOnly items import only the
// type-level entity and do not force runtime initialization order.
type ImportItem struct {
	Name     string
	Alias    string
	TypeOnly bool
	Loc      Location
}

// ImportDecl imports names from another module. An empty Items list is
// a side-effect-only import.
type ImportDecl struct {
	DeclBase
	Path  string
	Items []ImportItem
}

// ExportDecl exports already-declared names.
type ExportDecl struct {
	DeclBase
	Names []string
}

// ReexportDecl re-exports names from another module. Re-exports always
// create a value dependency on the source module.
type ReexportDecl struct {
	DeclBase
	Path  string
	Items []ImportItem
}

// Module is a parsed, desugared compilation unit.
type Module struct {
	Path  string // absolute real path of the source file
	Decls []Decl
	Loc   Location
}

func (m *Module) Position() Location { return m.Loc }

// Imports returns the module's import declarations in source order.
func (m *Module) Imports() []*ImportDecl {
	var out []*ImportDecl
	for _, d := range m.Decls {
		if imp, ok := d.(*ImportDecl); ok {
			out = append(out, imp)
		}
	}
	return out
}

// Reexports returns the module's re-export declarations in source order.
func (m *Module) Reexports() []*ReexportDecl {
	var out []*ReexportDecl
	for _, d := range m.Decls {
		if re, ok := d.(*ReexportDecl); ok {
			out = append(out, re)
		}
	}
	return out
}
