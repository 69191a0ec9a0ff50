// Package module loads, resolves and orders the module universe: path
// resolution with vibefun.json mappings, transitive loading keyed by
// real paths, dependency-graph construction and Tarjan-based cycle
// detection with deterministic compilation ordering.
package module

import (
	"sort"

	"github.com/vibefun/vibefun/internal/ast"
)

// DependencyEdge is one import relationship. TypeOnly is true iff
// every import item from the target was a `type` item; type-only
// edges impose no runtime initialization order.
type DependencyEdge struct {
	To        string
	TypeOnly  bool
	ImportLoc ast.Location
}

// ModuleGraph is the dependency graph over real paths.
type ModuleGraph struct {
	nodes map[string]bool
	edges map[string]map[string]*DependencyEdge
}

// NewModuleGraph creates an empty graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{
		nodes: make(map[string]bool),
		edges: make(map[string]map[string]*DependencyEdge),
	}
}

// AddNode registers a module with no dependencies yet.
func (g *ModuleGraph) AddNode(path string) {
	g.nodes[path] = true
}

// AddDependency records from -> to. The call is idempotent on the
// (from, to) pair; a value-kind edge always wins over type-only, in
// either arrival order.
func (g *ModuleGraph) AddDependency(from, to string, typeOnly bool, loc ast.Location) {
	g.nodes[from] = true
	g.nodes[to] = true
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]*DependencyEdge)
	}
	if existing, ok := g.edges[from][to]; ok {
		if !typeOnly {
			existing.TypeOnly = false
		}
		return
	}
	g.edges[from][to] = &DependencyEdge{To: to, TypeOnly: typeOnly, ImportLoc: loc}
}

// Nodes returns every module path in sorted order.
func (g *ModuleGraph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EdgesFrom returns from's out-edges sorted by target path.
func (g *ModuleGraph) EdgesFrom(from string) []*DependencyEdge {
	targets := g.edges[from]
	out := make([]*DependencyEdge, 0, len(targets))
	for _, e := range targets {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

// Edge returns the edge from -> to if present.
func (g *ModuleGraph) Edge(from, to string) (*DependencyEdge, bool) {
	e, ok := g.edges[from][to]
	return e, ok
}

// HasNode reports whether path is in the graph.
func (g *ModuleGraph) HasNode(path string) bool {
	return g.nodes[path]
}
