// Package pipeline drives a compilation end to end: load and resolve
// the module universe, order it, desugar and type check each module,
// then hand the typed modules to the code generator. Parsing,
// desugaring and code generation are collaborators injected as
// functions; the pipeline owns only the sequencing and the shared
// warning collector.
package pipeline

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
	"github.com/vibefun/vibefun/internal/module"
	"github.com/vibefun/vibefun/internal/types"
)

// DesugarFunc lowers a parsed module further; the default is the
// identity because ParseFunc already yields Core.
type DesugarFunc func(*ast.Module) (*ast.Module, error)

// EmitFunc receives the typed modules in compilation order.
type EmitFunc func([]*types.TypedModule) error

// Pipeline is a configured compilation driver.
type Pipeline struct {
	Parse    module.ParseFunc
	Desugar  DesugarFunc
	Emit     EmitFunc
	Warnings *diag.WarningCollector
}

// New creates a pipeline around a parser with a fresh warning
// collector and no-op desugar and emit stages.
func New(parse module.ParseFunc) *Pipeline {
	return &Pipeline{
		Parse:    parse,
		Warnings: diag.NewWarningCollector(),
	}
}

// Result is the outcome of a Compile run.
type Result struct {
	Resolution   *module.ModuleResolution
	TypedModules []*types.TypedModule
	Warnings     []*diag.Diagnostic
}

// Compile runs the full pipeline for one entry point. The first hard
// failure aborts: resolution errors and self-imports before any type
// checking, a type error when its module is reached. Warnings from
// every phase accumulate and are returned on success.
func (p *Pipeline) Compile(entryPoint string) (*Result, error) {
	if p.Parse == nil {
		return nil, fmt.Errorf("pipeline: no parser configured")
	}

	res, err := module.LoadAndResolveModules(entryPoint, p.Parse)
	if err != nil {
		return nil, err
	}
	result := &Result{Resolution: res}
	result.Warnings = append(result.Warnings, res.Warnings...)

	if err := res.AggregateErrors(); err != nil {
		return result, err
	}

	exports := make(map[string]*types.ModuleExports)
	var typed []*types.TypedModule

	for _, path := range res.CompilationOrder {
		mod, ok := res.Modules[path]
		if !ok {
			continue
		}
		if p.Desugar != nil {
			mod, err = p.Desugar(mod)
			if err != nil {
				return result, err
			}
		}

		deps := make(map[string]*types.ModuleExports)
		for importStr, target := range res.Resolved[path] {
			if ex, ok := exports[target]; ok {
				deps[importStr] = ex
			}
		}

		tm, err := types.TypecheckModule(mod, res.Sources[path], p.Warnings, deps)
		if err != nil {
			return result, err
		}
		typed = append(typed, tm)
		exports[path] = tm.Exports
	}

	result.TypedModules = typed
	result.Warnings = append(result.Warnings, p.Warnings.Warnings()...)

	if p.Emit != nil {
		if err := p.Emit(typed); err != nil {
			return result, err
		}
	}
	return result, nil
}
