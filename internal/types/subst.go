package types

// Subst is a finite map from variable IDs to types. Application is
// idempotent: a solved variable's replacement is itself fully applied
// before use, so the result never mentions a variable in the domain.
type Subst map[int]Type

// Apply expands every solved variable in t. The walk is structural and
// rebuilds every composite node it visits; only an empty substitution
// returns t as is.
func (s Subst) Apply(t Type) Type {
	if len(s) == 0 {
		return t
	}
	return s.apply(t, make(map[int]bool))
}

func (s Subst) apply(t Type, seen map[int]bool) Type {
	switch t := t.(type) {
	case *TVar:
		rep, ok := s[t.ID]
		if !ok || seen[t.ID] {
			return t
		}
		// Chase chains v1 -> v2 -> T while guarding against a
		// malformed cyclic substitution. The marker is scoped to the
		// current chase path: it is removed once the chain resolves,
		// so other occurrences of the same variable in sibling
		// positions expand too.
		seen[t.ID] = true
		out := s.apply(rep, seen)
		delete(seen, t.ID)
		return out
	case *TCon, *TNever, nil:
		return t
	case *TFunc:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = s.apply(p, seen)
		}
		return &TFunc{Params: params, Return: s.apply(t.Return, seen)}
	case *TApp:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.apply(a, seen)
		}
		return &TApp{Ctor: s.apply(t.Ctor, seen), Args: args}
	case *TRecord:
		fields := make(map[string]Type, len(t.Fields))
		for name, f := range t.Fields {
			fields[name] = s.apply(f, seen)
		}
		return &TRecord{Fields: fields}
	case *TVariant:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.apply(a, seen)
		}
		ctors := make(map[string][]Type, len(t.Ctors))
		for name, cargs := range t.Ctors {
			applied := make([]Type, len(cargs))
			for i, a := range cargs {
				applied[i] = s.apply(a, seen)
			}
			ctors[name] = applied
		}
		return &TVariant{Name: t.Name, Args: args, Ctors: ctors}
	case *TUnion:
		members := make([]Type, len(t.Types))
		for i, m := range t.Types {
			members[i] = s.apply(m, seen)
		}
		return &TUnion{Types: members}
	case *TTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = s.apply(e, seen)
		}
		return &TTuple{Elems: elems}
	case *TRef:
		return &TRef{Elem: s.apply(t.Elem, seen)}
	}
	return t
}

// Bind records v -> t. Callers have already run the occurs check.
func (s Subst) Bind(v *TVar, t Type) {
	s[v.ID] = t
}

// Clone returns an independent copy of the substitution.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for id, t := range s {
		out[id] = t
	}
	return out
}
