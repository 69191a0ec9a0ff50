package module

import (
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
)

// Cycle is a strongly connected component of two or more modules. The
// reported path is sorted by real path so the listing is stable across
// runs. AllTypeOnly marks a cycle whose internal edges are all
// type-only; such cycles need no runtime initialization order and are
// safe.
type Cycle struct {
	Path        []string
	AllTypeOnly bool
	Locations   []ast.Location
}

// Format renders the cycle as "a.vf -> b.vf -> a.vf".
func (c *Cycle) Format() string {
	return strings.Join(append(append([]string{}, c.Path...), c.Path[0]), " -> ")
}

// SelfImportRef is a module importing itself: always an error, never
// merely a warning.
type SelfImportRef struct {
	Path string
	Loc  ast.Location
}

// CycleAnalysis is the outcome of running Tarjan over the graph.
type CycleAnalysis struct {
	Cycles      []*Cycle
	SelfImports []*SelfImportRef
	// Order is the compilation order: dependencies before dependents,
	// ties broken by path. Cycle members appear consecutively in
	// sorted order; self-importing modules are excluded.
	Order []string
}

// tarjan carries the DFS state: indices, lowlinks and the explicit
// component stack.
type tarjan struct {
	graph   *ModuleGraph
	index   map[string]int
	lowlink map[string]int
	onStack map[string]bool
	stack   []string
	counter int
	sccs    [][]string
}

// AnalyzeCycles runs Tarjan's strongly-connected-components algorithm
// and classifies every component. Iteration is over sorted nodes and
// sorted edges, which pins the emission order and therefore the
// compilation order.
func AnalyzeCycles(graph *ModuleGraph) *CycleAnalysis {
	t := &tarjan{
		graph:   graph,
		index:   make(map[string]int),
		lowlink: make(map[string]int),
		onStack: make(map[string]bool),
	}
	for _, node := range graph.Nodes() {
		if _, visited := t.index[node]; !visited {
			t.strongConnect(node)
		}
	}

	analysis := &CycleAnalysis{}
	for _, scc := range t.sccs {
		if len(scc) == 1 {
			node := scc[0]
			if edge, ok := graph.Edge(node, node); ok {
				analysis.SelfImports = append(analysis.SelfImports, &SelfImportRef{
					Path: node,
					Loc:  edge.ImportLoc,
				})
				continue
			}
			analysis.Order = append(analysis.Order, node)
			continue
		}

		members := append([]string{}, scc...)
		sort.Strings(members)
		cycle := &Cycle{Path: members, AllTypeOnly: true}
		inSCC := make(map[string]bool, len(members))
		for _, m := range members {
			inSCC[m] = true
		}
		for _, m := range members {
			for _, edge := range graph.EdgesFrom(m) {
				if !inSCC[edge.To] {
					continue
				}
				cycle.Locations = append(cycle.Locations, edge.ImportLoc)
				if !edge.TypeOnly {
					cycle.AllTypeOnly = false
				}
			}
		}
		analysis.Cycles = append(analysis.Cycles, cycle)
		// Cycle members still compile; within the component the order
		// is the sorted path order.
		analysis.Order = append(analysis.Order, members...)
	}
	return analysis
}

func (t *tarjan) strongConnect(node string) {
	t.index[node] = t.counter
	t.lowlink[node] = t.counter
	t.counter++
	t.stack = append(t.stack, node)
	t.onStack[node] = true

	for _, edge := range t.graph.EdgesFrom(node) {
		if _, visited := t.index[edge.To]; !visited {
			t.strongConnect(edge.To)
			if t.lowlink[edge.To] < t.lowlink[node] {
				t.lowlink[node] = t.lowlink[edge.To]
			}
		} else if t.onStack[edge.To] {
			if t.index[edge.To] < t.lowlink[node] {
				t.lowlink[node] = t.index[edge.To]
			}
		}
	}

	if t.lowlink[node] == t.index[node] {
		var scc []string
		for {
			top := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[top] = false
			scc = append(scc, top)
			if top == node {
				break
			}
		}
		// Components complete only after all their dependencies have,
		// so the emission order is already dependencies-first.
		t.sccs = append(t.sccs, scc)
	}
}
