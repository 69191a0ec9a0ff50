package diag

import (
	"fmt"
	"sort"

	"github.com/vibefun/vibefun/internal/ast"
)

// Registry maps diagnostic codes to their definitions. The process
// holds a single registry, populated once at startup; it is read-only
// afterwards.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Duplicate codes are a wiring bug, not a
// user error, so they come back as a plain error.
func (r *Registry) Register(def *Definition) error {
	if def.Code == "" {
		return fmt.Errorf("diagnostic definition has no code")
	}
	if _, exists := r.defs[def.Code]; exists {
		return fmt.Errorf("duplicate diagnostic code %s", def.Code)
	}
	r.defs[def.Code] = def
	return nil
}

// Lookup returns the definition for a code.
func (r *Registry) Lookup(code string) (*Definition, bool) {
	def, ok := r.defs[code]
	return def, ok
}

// All returns every definition sorted by code.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ByPhase returns every definition of a phase sorted by code.
func (r *Registry) ByPhase(phase Phase) []*Definition {
	var out []*Definition
	for _, def := range r.defs {
		if def.Phase == phase {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// BySeverity returns every definition of a severity sorted by code.
func (r *Registry) BySeverity(sev Severity) []*Definition {
	var out []*Definition
	for _, def := range r.defs {
		if def.Severity == sev {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Explain renders the long-form documentation for a code: title,
// explanation and the bad/good example. The CLI docs generator
// consumes this.
func (r *Registry) Explain(code string) (string, error) {
	def, ok := r.defs[code]
	if !ok {
		return "", fmt.Errorf("unknown diagnostic code %s", code)
	}
	s := fmt.Sprintf("%s: %s\n\n%s\n", def.Code, def.Title, def.Explanation)
	if def.Example.Bad != "" {
		s += fmt.Sprintf("\nIncorrect:\n\n%s\n", indent(def.Example.Bad))
	}
	if def.Example.Good != "" {
		s += fmt.Sprintf("\nCorrect:\n\n%s\n", indent(def.Example.Good))
	}
	if def.Example.Description != "" {
		s += "\n" + def.Example.Description + "\n"
	}
	if len(def.RelatedCodes) > 0 {
		s += "\nRelated: "
		for i, c := range def.RelatedCodes {
			if i > 0 {
				s += ", "
			}
			s += c
		}
		s += "\n"
	}
	return s, nil
}

func indent(s string) string {
	out := "    "
	for _, c := range s {
		out += string(c)
		if c == '\n' {
			out += "    "
		}
	}
	return out
}

// defaultRegistry holds every definition from codes.go; it is built by
// init and never mutated afterwards.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// New creates a Diagnostic for a registered code, interpolating the
// message and hint templates with params. An unknown code is a
// compiler bug and comes back as a plain error.
func New(code string, loc ast.Location, params map[string]string) (*Diagnostic, error) {
	return defaultRegistry.New(code, loc, params)
}

// New creates a Diagnostic from this registry.
func (r *Registry) New(code string, loc ast.Location, params map[string]string) (*Diagnostic, error) {
	def, ok := r.defs[code]
	if !ok {
		return nil, fmt.Errorf("unknown diagnostic code %s", code)
	}
	d := &Diagnostic{
		Definition: def,
		Message:    Interpolate(def.MessageTemplate, params),
		Location:   loc,
	}
	if def.HintTemplate != "" {
		d.Hint = Interpolate(def.HintTemplate, params)
	}
	return d, nil
}

// Errorf builds the diagnostic for code and wraps it as an error. It
// is the raising counterpart of New: inference treats the returned
// error as normal control flow and the first one wins.
func Errorf(code string, loc ast.Location, params map[string]string) error {
	d, err := New(code, loc, params)
	if err != nil {
		return err
	}
	return &Error{Diag: d}
}

// mustRegister is used by the codes table; a duplicate at startup is a
// programming error.
func mustRegister(def *Definition) {
	if err := defaultRegistry.Register(def); err != nil {
		panic(err)
	}
}
