package module

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// ParseFunc is the parser collaborator: it produces a desugared Core
// module or fails with diagnostics (a *diag.Error or *diag.List).
type ParseFunc func(source []byte, filename string) (*ast.Module, error)

// LoadResult is the outcome of a transitive load: every reachable
// module keyed by real path, their sources, the per-module resolution
// of import strings to real paths, and every error collected along
// the way. Loading is deliberately not fail-fast so a single run can
// report every missing file.
type LoadResult struct {
	EntryPoint string
	Modules    map[string]*ast.Module
	Sources    map[string]string
	// Resolved maps module real path -> import string -> target real
	// path, for graph construction.
	Resolved map[string]map[string]string
	Errors   []*diag.Diagnostic
}

// Loader drives the transitive parse of a module universe.
type Loader struct {
	parse    ParseFunc
	resolver *Resolver
}

// NewLoader creates a loader with the given parser and resolver.
func NewLoader(parse ParseFunc, resolver *Resolver) *Loader {
	return &Loader{parse: parse, resolver: resolver}
}

// LoadModules loads the entry point and everything reachable from it.
// Parse and resolution failures are collected in the result; only an
// unusable entry point fails the call outright.
func (l *Loader) LoadModules(entryPoint string) (*LoadResult, error) {
	entry, err := l.validateEntry(entryPoint)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		EntryPoint: entry,
		Modules:    make(map[string]*ast.Module),
		Sources:    make(map[string]string),
		Resolved:   make(map[string]map[string]string),
	}

	queue := []string{entry}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if _, seen := result.Modules[path]; seen {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			result.collect(diag.Errorf(diag.ModuleNotFound, ast.Location{File: path, Line: 1, Column: 1},
				map[string]string{"path": path}))
			continue
		}
		result.Sources[path] = string(data)

		mod, err := l.parse(data, path)
		if err != nil {
			// Parser errors are collected, not thrown; the cache still
			// records the attempt so the file is not re-read.
			result.Modules[path] = &ast.Module{Path: path, Loc: ast.Location{File: path, Line: 1, Column: 1}}
			result.collect(err)
			continue
		}
		mod.Path = path
		result.Modules[path] = mod

		resolved := make(map[string]string)
		result.Resolved[path] = resolved
		for _, ref := range moduleRefs(mod) {
			target, err := l.resolver.Resolve(path, ref.path, ref.loc)
			if err != nil {
				result.collect(err)
				continue
			}
			resolved[ref.path] = target
			if _, seen := result.Modules[target]; !seen {
				queue = append(queue, target)
			}
		}
	}
	return result, nil
}

// validateEntry normalizes the entry point: directories fall back to
// index.vf, anything unreadable is VF5005 with the attempted paths.
func (l *Loader) validateEntry(entryPoint string) (string, error) {
	abs, err := filepath.Abs(entryPoint)
	if err != nil {
		abs = entryPoint
	}
	tried := []string{abs}

	if info, statErr := os.Stat(abs); statErr == nil {
		if info.IsDir() {
			index := filepath.Join(abs, "index"+SourceExt)
			tried = append(tried, index)
			if fi, ierr := os.Stat(index); ierr == nil && !fi.IsDir() {
				return l.entryRealpath(index, tried)
			}
			return "", entryError(entryPoint, tried)
		}
		return l.entryRealpath(abs, tried)
	}
	return "", entryError(entryPoint, tried)
}

func (l *Loader) entryRealpath(path string, tried []string) (string, error) {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", entryError(path, tried)
	}
	return real, nil
}

func entryError(path string, tried []string) error {
	return diag.Errorf(diag.InvalidEntryPoint, ast.Location{File: path, Line: 1, Column: 1}, map[string]string{
		"path":  path,
		"tried": strings.Join(tried, ", "),
	})
}

func (r *LoadResult) collect(err error) {
	if d, ok := diag.AsDiagnostic(err); ok {
		r.Errors = append(r.Errors, d)
		return
	}
	if list, ok := diag.AsList(err); ok {
		r.Errors = append(r.Errors, list.Diags...)
		return
	}
	// Non-diagnostic errors indicate compiler bugs; surface them as
	// an uncoded entry is impossible, so panic loudly.
	panic(err)
}

// moduleRef is an import or re-export occurrence.
type moduleRef struct {
	path string
	loc  ast.Location
}

func moduleRefs(mod *ast.Module) []moduleRef {
	var refs []moduleRef
	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *ast.ImportDecl:
			refs = append(refs, moduleRef{path: d.Path, loc: d.Position()})
		case *ast.ReexportDecl:
			refs = append(refs, moduleRef{path: d.Path, loc: d.Position()})
		}
	}
	return refs
}
