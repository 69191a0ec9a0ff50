package module

import (
	"os"
	"path/filepath"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// ModuleResolution composes the loader, graph and cycle detector into
// the single structure the orchestrator consumes.
type ModuleResolution struct {
	EntryPoint       string
	Modules          map[string]*ast.Module
	Sources          map[string]string
	Resolved         map[string]map[string]string
	Graph            *ModuleGraph
	CompilationOrder []string
	Cycles           []*Cycle
	SelfImports      []*SelfImportRef
	Warnings         []*diag.Diagnostic
	Errors           []*diag.Diagnostic
}

// LoadAndResolveModules loads the entry point transitively, builds the
// dependency graph and runs cycle analysis. Value cycles come back as
// warnings, self-imports as errors; file-level failures collected by
// the loader land in Errors.
func LoadAndResolveModules(entryPoint string, parse ParseFunc) (*ModuleResolution, error) {
	warnings := diag.NewWarningCollector()

	startDir := entryPoint
	if fi, err := os.Stat(entryPoint); err == nil && !fi.IsDir() {
		startDir = filepath.Dir(entryPoint)
	}
	config, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}

	loader := NewLoader(parse, NewResolver(config, warnings))
	result, err := loader.LoadModules(entryPoint)
	if err != nil {
		return nil, err
	}
	res := ResolveModules(result)
	res.Warnings = append(warnings.Warnings(), res.Warnings...)
	return res, nil
}

// ResolveModules builds the graph from an existing load result and
// classifies its cycles. Calling it twice on the same result produces
// structurally equal resolutions.
func ResolveModules(result *LoadResult) *ModuleResolution {
	graph := buildGraph(result)
	analysis := AnalyzeCycles(graph)

	res := &ModuleResolution{
		EntryPoint:       result.EntryPoint,
		Modules:          result.Modules,
		Sources:          result.Sources,
		Resolved:         result.Resolved,
		Graph:            graph,
		CompilationOrder: analysis.Order,
		Cycles:           analysis.Cycles,
		SelfImports:      analysis.SelfImports,
		Errors:           append([]*diag.Diagnostic{}, result.Errors...),
	}

	for _, cycle := range res.Cycles {
		if cycle.AllTypeOnly {
			continue
		}
		loc := ast.Location{}
		if len(cycle.Locations) > 0 {
			loc = cycle.Locations[0]
		}
		if d, err := diag.New(diag.CircularDependency, loc, map[string]string{
			"cycle": cycle.Format(),
		}); err == nil {
			res.Warnings = append(res.Warnings, d)
		}
	}
	for _, self := range res.SelfImports {
		if d, err := diag.New(diag.SelfImport, self.Loc, map[string]string{
			"path": self.Path,
		}); err == nil {
			res.Errors = append(res.Errors, d)
		}
	}
	return res
}

// buildGraph walks every loaded module's imports and re-exports. A
// module imported with only `type` items gets a type-only edge;
// re-exports and side-effect imports are conservatively value edges.
func buildGraph(result *LoadResult) *ModuleGraph {
	graph := NewModuleGraph()
	for path, mod := range result.Modules {
		graph.AddNode(path)
		resolved := result.Resolved[path]
		for _, d := range mod.Decls {
			switch d := d.(type) {
			case *ast.ImportDecl:
				target, ok := resolved[d.Path]
				if !ok {
					continue
				}
				typeOnly := len(d.Items) > 0
				for _, item := range d.Items {
					if !item.TypeOnly {
						typeOnly = false
						break
					}
				}
				graph.AddDependency(path, target, typeOnly, d.Position())
			case *ast.ReexportDecl:
				target, ok := resolved[d.Path]
				if !ok {
					continue
				}
				graph.AddDependency(path, target, false, d.Position())
			}
		}
	}
	return graph
}

// HasErrors reports whether the resolution contains any hard error.
func HasErrors(res *ModuleResolution) bool {
	return len(res.Errors) > 0
}

// HasWarnings reports whether the resolution produced warnings.
func HasWarnings(res *ModuleResolution) bool {
	return len(res.Warnings) > 0
}

// FormatErrors renders every error with source context.
func FormatErrors(res *ModuleResolution) string {
	return diag.FormatAll(res.Errors, res.Sources)
}

// FormatWarnings renders every warning with source context.
func FormatWarnings(res *ModuleResolution) string {
	return diag.FormatAll(res.Warnings, res.Sources)
}

// AggregateErrors wraps the collected errors as a single error value,
// or nil when the load was clean.
func (res *ModuleResolution) AggregateErrors() error {
	if len(res.Errors) == 0 {
		return nil
	}
	return &diag.List{Diags: append([]*diag.Diagnostic{}, res.Errors...)}
}
