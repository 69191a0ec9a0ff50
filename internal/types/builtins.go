package types

// Builtin primitive and standard-library signatures. These are data:
// the runtime implementations live in the JavaScript support library,
// the checker only needs the schemes.

// builtinEnv builds the initial environment: primitive types, the
// stdlib variants Option and Result, the List and Ref constructors and
// the stdlib function table. fresh supplies unification variables from
// the checker's counter so quantified IDs never collide with inference
// variables.
func builtinEnv(fresh func() *TVar) *TypeEnv {
	env := NewTypeEnv()

	for _, prim := range []*TCon{TInt, TFloat, TString, TBool, TUnit} {
		env.types[prim.Name] = &TypeBinding{Name: prim.Name, Kind: AliasType, Body: prim}
	}
	env.types["Never"] = &TypeBinding{Name: "Never", Kind: AliasType, Body: &TNever{}}

	listParam := fresh()
	env.types["List"] = &TypeBinding{Name: "List", Kind: ExternalType, Params: []*TVar{listParam}}

	optParam := fresh()
	option := &TypeBinding{
		Name: "Option", Kind: VariantType,
		Params:    []*TVar{optParam},
		Ctors:     map[string][]Type{"Some": {optParam}, "None": {}},
		CtorOrder: []string{"Some", "None"},
	}
	env.types["Option"] = option
	env.ctors["Some"] = option
	env.ctors["None"] = option

	okParam, errParam := fresh(), fresh()
	result := &TypeBinding{
		Name: "Result", Kind: VariantType,
		Params:    []*TVar{okParam, errParam},
		Ctors:     map[string][]Type{"Ok": {okParam}, "Err": {errParam}},
		CtorOrder: []string{"Ok", "Err"},
	}
	env.types["Result"] = result
	env.ctors["Ok"] = result
	env.ctors["Err"] = result

	bind := func(name string, scheme *Scheme) {
		env.values[name] = &Value{Scheme: scheme}
	}

	// poly builds a scheme quantified over n fresh variables.
	poly := func(n int, build func(vs []*TVar) Type) *Scheme {
		vs := make([]*TVar, n)
		ids := make([]int, n)
		for i := range vs {
			vs[i] = fresh()
			ids[i] = vs[i].ID
		}
		return &Scheme{Quantified: ids, Body: build(vs)}
	}
	mono := func(t Type) *Scheme { return &Scheme{Body: t} }

	list := func(t Type) Type { return &TApp{Ctor: &TCon{Name: "List"}, Args: []Type{t}} }
	opt := func(t Type) Type { return option.Instantiate([]Type{t}) }
	res := func(a, e Type) Type { return result.Instantiate([]Type{a, e}) }

	// ref is the one primitive whose result is a reference cell. Its
	// application form keeps ref-typed bindings off the generalization
	// path: `ref e` is never a syntactic value.
	bind("ref", poly(1, func(vs []*TVar) Type {
		return fn(vs[0], &TRef{Elem: vs[0]})
	}))
	bind("print", mono(fn(TString, TUnit)))

	// Lists
	bind("listLength", poly(1, func(vs []*TVar) Type { return fn(list(vs[0]), TInt) }))
	bind("listIsEmpty", poly(1, func(vs []*TVar) Type { return fn(list(vs[0]), TBool) }))
	bind("listMap", poly(2, func(vs []*TVar) Type {
		return fn(fn(vs[0], vs[1]), list(vs[0]), list(vs[1]))
	}))
	bind("listFilter", poly(1, func(vs []*TVar) Type {
		return fn(fn(vs[0], TBool), list(vs[0]), list(vs[0]))
	}))
	bind("listFold", poly(2, func(vs []*TVar) Type {
		return fn(fn(vs[1], vs[0], vs[1]), vs[1], list(vs[0]), vs[1])
	}))
	bind("listFoldRight", poly(2, func(vs []*TVar) Type {
		return fn(fn(vs[0], vs[1], vs[1]), vs[1], list(vs[0]), vs[1])
	}))
	bind("listHead", poly(1, func(vs []*TVar) Type { return fn(list(vs[0]), opt(vs[0])) }))
	bind("listTail", poly(1, func(vs []*TVar) Type { return fn(list(vs[0]), opt(list(vs[0]))) }))
	bind("listReverse", poly(1, func(vs []*TVar) Type { return fn(list(vs[0]), list(vs[0])) }))
	bind("listAppend", poly(1, func(vs []*TVar) Type {
		return fn(list(vs[0]), list(vs[0]), list(vs[0]))
	}))
	bind("listNth", poly(1, func(vs []*TVar) Type { return fn(TInt, list(vs[0]), opt(vs[0])) }))
	bind("listRange", mono(fn(TInt, TInt, list(TInt))))
	bind("listZip", poly(2, func(vs []*TVar) Type {
		return fn(list(vs[0]), list(vs[1]), list(&TTuple{Elems: []Type{vs[0], vs[1]}}))
	}))
	bind("listAll", poly(1, func(vs []*TVar) Type {
		return fn(fn(vs[0], TBool), list(vs[0]), TBool)
	}))
	bind("listAny", poly(1, func(vs []*TVar) Type {
		return fn(fn(vs[0], TBool), list(vs[0]), TBool)
	}))
	bind("listFind", poly(1, func(vs []*TVar) Type {
		return fn(fn(vs[0], TBool), list(vs[0]), opt(vs[0]))
	}))

	// Options
	bind("optionMap", poly(2, func(vs []*TVar) Type {
		return fn(fn(vs[0], vs[1]), opt(vs[0]), opt(vs[1]))
	}))
	bind("optionFlatMap", poly(2, func(vs []*TVar) Type {
		return fn(fn(vs[0], opt(vs[1])), opt(vs[0]), opt(vs[1]))
	}))
	bind("optionGetOr", poly(1, func(vs []*TVar) Type { return fn(vs[0], opt(vs[0]), vs[0]) }))
	bind("optionIsSome", poly(1, func(vs []*TVar) Type { return fn(opt(vs[0]), TBool) }))
	bind("optionIsNone", poly(1, func(vs []*TVar) Type { return fn(opt(vs[0]), TBool) }))

	// Results
	bind("resultMap", poly(3, func(vs []*TVar) Type {
		return fn(fn(vs[0], vs[1]), res(vs[0], vs[2]), res(vs[1], vs[2]))
	}))
	bind("resultMapErr", poly(3, func(vs []*TVar) Type {
		return fn(fn(vs[1], vs[2]), res(vs[0], vs[1]), res(vs[0], vs[2]))
	}))
	bind("resultFlatMap", poly(3, func(vs []*TVar) Type {
		return fn(fn(vs[0], res(vs[1], vs[2])), res(vs[0], vs[2]), res(vs[1], vs[2]))
	}))
	bind("resultGetOr", poly(2, func(vs []*TVar) Type { return fn(vs[0], res(vs[0], vs[1]), vs[0]) }))
	bind("resultIsOk", poly(2, func(vs []*TVar) Type { return fn(res(vs[0], vs[1]), TBool) }))
	bind("resultIsErr", poly(2, func(vs []*TVar) Type { return fn(res(vs[0], vs[1]), TBool) }))

	// Strings
	bind("stringLength", mono(fn(TString, TInt)))
	bind("toUpper", mono(fn(TString, TString)))
	bind("toLower", mono(fn(TString, TString)))
	bind("trim", mono(fn(TString, TString)))
	bind("stringSplit", mono(fn(TString, TString, list(TString))))
	bind("stringContains", mono(fn(TString, TString, TBool)))
	bind("startsWith", mono(fn(TString, TString, TBool)))
	bind("endsWith", mono(fn(TString, TString, TBool)))
	bind("charAt", mono(fn(TInt, TString, opt(TString))))
	bind("substring", mono(fn(TInt, TInt, TString, TString)))
	bind("indexOf", mono(fn(TString, TString, opt(TInt))))
	bind("stringReplace", mono(fn(TString, TString, TString, TString)))
	bind("stringJoin", mono(fn(TString, list(TString), TString)))

	// Numeric conversions and math
	bind("intToFloat", mono(fn(TInt, TFloat)))
	bind("floatToInt", mono(fn(TFloat, TInt)))
	bind("intToString", mono(fn(TInt, TString)))
	bind("floatToString", mono(fn(TFloat, TString)))
	bind("stringToInt", mono(fn(TString, opt(TInt))))
	bind("stringToFloat", mono(fn(TString, opt(TFloat))))
	bind("abs", mono(fn(TInt, TInt)))
	bind("absFloat", mono(fn(TFloat, TFloat)))
	bind("min", mono(fn(TInt, TInt, TInt)))
	bind("max", mono(fn(TInt, TInt, TInt)))
	bind("sqrt", mono(fn(TFloat, TFloat)))
	bind("pow", mono(fn(TFloat, TFloat, TFloat)))
	bind("floor", mono(fn(TFloat, TInt)))
	bind("ceil", mono(fn(TFloat, TInt)))
	bind("round", mono(fn(TFloat, TInt)))

	return env
}

// fn builds a curried function type from the argument list: the last
// element is the result, the rest are parameters taken one at a time.
func fn(ts ...Type) Type {
	if len(ts) == 1 {
		return ts[0]
	}
	return &TFunc{Params: []Type{ts[0]}, Return: fn(ts[1:]...)}
}

// Instantiate builds a concrete instance of a declared type at the
// given arguments: parameters are substituted through the body and
// constructor table.
func (tb *TypeBinding) Instantiate(args []Type) Type {
	sub := make(Subst, len(tb.Params))
	for i, p := range tb.Params {
		if i < len(args) {
			sub[p.ID] = args[i]
		}
	}
	switch tb.Kind {
	case VariantType:
		ctors := make(map[string][]Type, len(tb.Ctors))
		for name, cargs := range tb.Ctors {
			applied := make([]Type, len(cargs))
			for i, a := range cargs {
				applied[i] = sub.Apply(a)
			}
			ctors[name] = applied
		}
		return &TVariant{Name: tb.Name, Args: args, Ctors: ctors}
	case AliasType, RecordType:
		return sub.Apply(tb.Body)
	default:
		if len(args) == 0 {
			return &TCon{Name: tb.Name}
		}
		return &TApp{Ctor: &TCon{Name: tb.Name}, Args: args}
	}
}
