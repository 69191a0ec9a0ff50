package types

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// TypedModule is a module plus the inference results: a type for every
// expression node and a scheme for every top-level binding.
type TypedModule struct {
	Module    *ast.Module
	NodeTypes map[uint64]Type
	DeclTypes map[string]*Scheme
	Exports   *ModuleExports
}

// ModuleExports is the typed surface a module offers its importers.
type ModuleExports struct {
	Values map[string]*Scheme
	Types  map[string]*TypeBinding
}

// Typecheck type checks a standalone module against the builtin
// environment. Warnings go into wc; the first error aborts.
func Typecheck(mod *ast.Module, source string, wc *diag.WarningCollector) (*TypedModule, error) {
	return TypecheckModule(mod, source, wc, nil)
}

// TypecheckModule type checks a module with its dependencies' exports
// available for import resolution, keyed by the import path as
// written. A nil deps map skips import binding entirely, which suits
// single-module tools and tests.
func TypecheckModule(mod *ast.Module, source string, wc *diag.WarningCollector, deps map[string]*ModuleExports) (*TypedModule, error) {
	tc := NewChecker(wc)
	env := builtinEnv(func() *TVar { return tc.freshVar(0) })

	env, err := tc.bindImports(env, mod, deps)
	if err != nil {
		return nil, err
	}

	env, err = tc.declareTypes(env, mod)
	if err != nil {
		return nil, err
	}

	env, err = tc.bindExternals(env, mod)
	if err != nil {
		return nil, err
	}

	declTypes := make(map[string]*Scheme)
	declared := make(map[string]ast.Location)
	exportedValues := make(map[string]bool)
	exportedTypes := make(map[string]bool)

	ctx := &InferenceContext{env: env, sub: make(Subst), level: 0}

	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ast.LetDecl:
			if _, dup := declared[d.Name]; dup {
				return nil, diag.Errorf(diag.DuplicateDefinition, d.Position(), map[string]string{"name": d.Name})
			}
			declared[d.Name] = d.Position()
			scheme, err := tc.inferBinding(ctx, d.Name, d.Value, d.Recursive, d.Position())
			if err != nil {
				return nil, err
			}
			ctx.env = ctx.env.ExtendValue(d.Name, &Value{Scheme: scheme, Mutable: d.Mutable, Loc: d.Position()})
			declTypes[d.Name] = scheme
			if d.Exported {
				exportedValues[d.Name] = true
			}

		case *ast.LetGroupDecl:
			for _, b := range d.Bindings {
				if _, dup := declared[b.Name]; dup {
					return nil, diag.Errorf(diag.DuplicateDefinition, b.Loc, map[string]string{"name": b.Name})
				}
				declared[b.Name] = b.Loc
			}
			schemes, err := tc.inferGroupBindings(ctx, d.Bindings)
			if err != nil {
				return nil, err
			}
			for i, b := range d.Bindings {
				ctx.env = ctx.env.ExtendValue(b.Name, &Value{Scheme: schemes[i], Loc: b.Loc})
				declTypes[b.Name] = schemes[i]
				if d.Exported {
					exportedValues[b.Name] = true
				}
			}

		case *ast.ExportDecl:
			for _, name := range d.Names {
				if _, ok := ctx.env.LookupValue(name); ok {
					exportedValues[name] = true
					continue
				}
				if _, ok := ctx.env.LookupType(name); ok {
					exportedTypes[name] = true
					continue
				}
				return nil, diag.Errorf(diag.UnknownVariable, d.Position(), map[string]string{"name": name})
			}

		case *ast.TypeDecl:
			if d.Exported {
				exportedTypes[d.Name] = true
			}
		case *ast.ExternalTypeDecl:
			if d.Exported {
				exportedTypes[d.Name] = true
			}
		case *ast.ExternalDecl:
			if d.Exported {
				exportedValues[d.Name] = true
			}
		case *ast.ImportDecl, *ast.ReexportDecl:
			// Handled by bindImports and the module graph.
		}
	}

	// Resolve every recorded type under the final substitution; later
	// declarations may have refined variables earlier ones left open.
	for id, t := range tc.nodeTypes {
		tc.nodeTypes[id] = ctx.sub.Apply(t)
	}
	for name, s := range declTypes {
		declTypes[name] = &Scheme{Quantified: s.Quantified, Body: ctx.sub.Apply(s.Body)}
	}

	exports := &ModuleExports{Values: map[string]*Scheme{}, Types: map[string]*TypeBinding{}}
	for name := range exportedValues {
		if s, ok := declTypes[name]; ok {
			exports.Values[name] = s
		} else if b, ok := ctx.env.LookupValue(name); ok {
			if s := b.BindingScheme(); s != nil {
				exports.Values[name] = s
			}
		}
	}
	for name := range exportedTypes {
		if tb, ok := ctx.env.LookupType(name); ok {
			exports.Types[name] = tb
		}
	}

	return &TypedModule{
		Module:    mod,
		NodeTypes: tc.nodeTypes,
		DeclTypes: declTypes,
		Exports:   exports,
	}, nil
}

// bindImports brings each imported name into scope from the exporting
// module's typed surface.
func (tc *Checker) bindImports(env *TypeEnv, mod *ast.Module, deps map[string]*ModuleExports) (*TypeEnv, error) {
	if deps == nil {
		return env, nil
	}
	for _, imp := range mod.Imports() {
		exports, ok := deps[imp.Path]
		if !ok {
			continue // side-effect import or unresolved dependency
		}
		for _, item := range imp.Items {
			name := item.Name
			bound := item.Alias
			if bound == "" {
				bound = name
			}
			if tb, ok := exports.Types[name]; ok {
				// The binding keeps its declared name, so nominal
				// identity survives aliasing.
				env = env.ExtendType(tb)
				if bound != tb.Name {
					c := env.child()
					c.types[bound] = tb
					env = c
				}
				continue
			}
			if scheme, ok := exports.Values[name]; ok {
				env = env.ExtendValue(bound, &Value{Scheme: scheme, Loc: item.Loc})
				continue
			}
			return nil, diag.Errorf(diag.ImportNotExported, item.Loc, map[string]string{
				"module": imp.Path,
				"name":   name,
			})
		}
	}
	return env, nil
}

// declareTypes runs the two-pass type declaration scheme: pass one
// registers every constructor name with its arity so recursive and
// mutually recursive types resolve, pass two elaborates the bodies.
func (tc *Checker) declareTypes(env *TypeEnv, mod *ast.Module) (*TypeEnv, error) {
	type pending struct {
		decl *ast.TypeDecl
		tb   *TypeBinding
	}
	var work []pending
	localTypes := make(map[string]bool)

	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ast.TypeDecl:
			if localTypes[d.Name] {
				return nil, diag.Errorf(diag.DuplicateDefinition, d.Position(), map[string]string{"name": d.Name})
			}
			localTypes[d.Name] = true
			tb := &TypeBinding{Name: d.Name, Loc: d.Position()}
			switch d.Kind {
			case ast.AliasDecl:
				tb.Kind = AliasType
			case ast.RecordDecl:
				tb.Kind = RecordType
			case ast.VariantDecl:
				tb.Kind = VariantType
			}
			tb.Params = make([]*TVar, len(d.Params))
			for i := range d.Params {
				tb.Params[i] = tc.freshVar(0)
			}
			env = env.ExtendType(tb)
			work = append(work, pending{decl: d, tb: tb})

		case *ast.ExternalTypeDecl:
			if localTypes[d.Name] {
				return nil, diag.Errorf(diag.DuplicateDefinition, d.Position(), map[string]string{"name": d.Name})
			}
			localTypes[d.Name] = true
			tb := &TypeBinding{Name: d.Name, Kind: ExternalType, Loc: d.Position()}
			tb.Params = make([]*TVar, len(d.Params))
			for i := range d.Params {
				tb.Params[i] = tc.freshVar(0)
			}
			env = env.ExtendType(tb)
		}
	}

	for _, p := range work {
		scope := make(map[string]*TVar, len(p.decl.Params))
		for i, name := range p.decl.Params {
			scope[name] = p.tb.Params[i]
		}

		switch p.decl.Kind {
		case ast.AliasDecl:
			body, err := tc.elaborateType(env, p.decl.Alias, scope, true, 0)
			if err != nil {
				return nil, err
			}
			p.tb.Body = body

		case ast.RecordDecl:
			fields := make(map[string]Type, len(p.decl.Fields))
			for _, f := range p.decl.Fields {
				if _, dup := fields[f.Name]; dup {
					return nil, diag.Errorf(diag.DuplicateRecordField, f.Loc, map[string]string{"field": f.Name})
				}
				t, err := tc.elaborateType(env, f.Type, scope, true, 0)
				if err != nil {
					return nil, err
				}
				fields[f.Name] = t
			}
			p.tb.Body = &TRecord{Fields: fields}

		case ast.VariantDecl:
			ctors := make(map[string][]Type, len(p.decl.Ctors))
			order := make([]string, 0, len(p.decl.Ctors))
			for _, c := range p.decl.Ctors {
				if _, dup := ctors[c.Name]; dup {
					return nil, diag.Errorf(diag.DuplicateConstructor, c.Loc, map[string]string{"ctor": c.Name})
				}
				if existing, clash := env.LookupCtor(c.Name); clash && existing != p.tb {
					return nil, diag.Errorf(diag.DuplicateConstructor, c.Loc, map[string]string{"ctor": c.Name})
				}
				args := make([]Type, len(c.Args))
				for i, a := range c.Args {
					t, err := tc.elaborateType(env, a, scope, true, 0)
					if err != nil {
						return nil, err
					}
					args[i] = t
				}
				ctors[c.Name] = args
				order = append(order, c.Name)
			}
			p.tb.Ctors = ctors
			p.tb.CtorOrder = order
			// Re-extend so the constructor index sees the full table.
			env = env.ExtendType(p.tb)
		}
	}

	// Variant constructors become value-level functions from their
	// argument types to the declared type.
	for _, p := range work {
		if p.decl.Kind != ast.VariantDecl {
			continue
		}
		paramArgs := make([]Type, len(p.tb.Params))
		quantified := make([]int, len(p.tb.Params))
		for i, v := range p.tb.Params {
			paramArgs[i] = v
			quantified[i] = v.ID
		}
		instance := p.tb.Instantiate(paramArgs)
		for ctor, args := range p.tb.Ctors {
			sig := make([]Type, 0, len(args)+1)
			sig = append(sig, args...)
			sig = append(sig, instance)
			env = env.ExtendValue(ctor, &Value{Scheme: &Scheme{
				Quantified: quantified,
				Body:       fn(sig...),
			}, Loc: p.tb.Loc})
		}
	}
	return env, nil
}

// bindExternals registers external value declarations, grouping same
// name declarations into overload sets.
func (tc *Checker) bindExternals(env *TypeEnv, mod *ast.Module) (*TypeEnv, error) {
	groups := make(map[string][]*External)
	var order []string

	for _, d := range mod.Decls {
		ext, ok := d.(*ast.ExternalDecl)
		if !ok {
			continue
		}
		if ext.Type == nil {
			return nil, diag.Errorf(diag.InvalidExternalSignature, ext.Position(), map[string]string{"name": ext.Name})
		}
		scheme, err := tc.elaborateScheme(env, ext.Type)
		if err != nil {
			return nil, err
		}
		binding := &External{Scheme: scheme, JSName: ext.JSName, From: ext.From, Loc: ext.Position()}
		for _, existing := range groups[ext.Name] {
			if alphaEqual(existing.Scheme, scheme) {
				return nil, diag.Errorf(diag.DuplicateExternal, ext.Position(), map[string]string{"name": ext.Name})
			}
		}
		if len(groups[ext.Name]) == 0 {
			order = append(order, ext.Name)
		}
		groups[ext.Name] = append(groups[ext.Name], binding)
	}

	for _, name := range order {
		exts := groups[name]
		if len(exts) == 1 {
			env = env.ExtendValue(name, exts[0])
			continue
		}
		env = env.ExtendValue(name, &ExternalOverload{
			Overloads: exts,
			JSName:    exts[0].JSName,
			From:      exts[0].From,
			Loc:       exts[0].Loc,
		})
	}
	return env, nil
}

// alphaEqual compares two schemes up to renaming of their quantified
// variables.
func alphaEqual(a, b *Scheme) bool {
	if len(a.Quantified) != len(b.Quantified) {
		return false
	}
	ren := make(map[int]int, len(a.Quantified))
	for i, id := range a.Quantified {
		ren[id] = b.Quantified[i]
	}
	return alphaEqualTypes(a.Body, b.Body, ren)
}

func alphaEqualTypes(a, b Type, ren map[int]int) bool {
	switch a := a.(type) {
	case *TVar:
		bv, ok := b.(*TVar)
		if !ok {
			return false
		}
		if mapped, ok := ren[a.ID]; ok {
			return mapped == bv.ID
		}
		return a.ID == bv.ID
	case *TCon:
		bc, ok := b.(*TCon)
		return ok && a.Name == bc.Name
	case *TNever:
		_, ok := b.(*TNever)
		return ok
	case *TFunc:
		bf, ok := b.(*TFunc)
		if !ok || len(a.Params) != len(bf.Params) {
			return false
		}
		for i := range a.Params {
			if !alphaEqualTypes(a.Params[i], bf.Params[i], ren) {
				return false
			}
		}
		return alphaEqualTypes(a.Return, bf.Return, ren)
	case *TApp:
		ba, ok := b.(*TApp)
		if !ok || len(a.Args) != len(ba.Args) || !alphaEqualTypes(a.Ctor, ba.Ctor, ren) {
			return false
		}
		for i := range a.Args {
			if !alphaEqualTypes(a.Args[i], ba.Args[i], ren) {
				return false
			}
		}
		return true
	case *TRecord:
		br, ok := b.(*TRecord)
		if !ok || len(a.Fields) != len(br.Fields) {
			return false
		}
		for name, t := range a.Fields {
			bt, ok := br.Fields[name]
			if !ok || !alphaEqualTypes(t, bt, ren) {
				return false
			}
		}
		return true
	case *TVariant:
		bv, ok := b.(*TVariant)
		if !ok || a.Name != bv.Name || len(a.Args) != len(bv.Args) {
			return false
		}
		for i := range a.Args {
			if !alphaEqualTypes(a.Args[i], bv.Args[i], ren) {
				return false
			}
		}
		return true
	case *TUnion:
		bu, ok := b.(*TUnion)
		if !ok || len(a.Types) != len(bu.Types) {
			return false
		}
		for i := range a.Types {
			if !alphaEqualTypes(a.Types[i], bu.Types[i], ren) {
				return false
			}
		}
		return true
	case *TTuple:
		bt, ok := b.(*TTuple)
		if !ok || len(a.Elems) != len(bt.Elems) {
			return false
		}
		for i := range a.Elems {
			if !alphaEqualTypes(a.Elems[i], bt.Elems[i], ren) {
				return false
			}
		}
		return true
	case *TRef:
		br, ok := b.(*TRef)
		return ok && alphaEqualTypes(a.Elem, br.Elem, ren)
	}
	return false
}
