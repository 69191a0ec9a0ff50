package module

import (
	"testing"

	"github.com/vibefun/vibefun/internal/ast"
)

func loc(line int) ast.Location {
	return ast.Location{File: "/a.vf", Line: line, Column: 1}
}

func TestAddDependencyIdempotent(t *testing.T) {
	g := NewModuleGraph()
	g.AddDependency("/a.vf", "/b.vf", true, loc(1))
	g.AddDependency("/a.vf", "/b.vf", true, loc(2))

	edges := g.EdgesFrom("/a.vf")
	if len(edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(edges))
	}
	if !edges[0].TypeOnly {
		t.Error("two type-only imports must stay type-only")
	}
	if edges[0].ImportLoc.Line != 1 {
		t.Error("first edge location must win")
	}
}

func TestValueEdgeWins(t *testing.T) {
	tests := []struct {
		name  string
		order []bool // typeOnly flags in arrival order
	}{
		{"value then type", []bool{false, true}},
		{"type then value", []bool{true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewModuleGraph()
			for i, typeOnly := range tt.order {
				g.AddDependency("/a.vf", "/b.vf", typeOnly, loc(i+1))
			}
			edges := g.EdgesFrom("/a.vf")
			if len(edges) != 1 || edges[0].TypeOnly {
				t.Errorf("edge = %+v, want single value edge", edges)
			}
		})
	}
}

func TestNodesAndEdgesSorted(t *testing.T) {
	g := NewModuleGraph()
	g.AddDependency("/m.vf", "/z.vf", false, loc(1))
	g.AddDependency("/m.vf", "/a.vf", false, loc(2))
	g.AddNode("/b.vf")

	nodes := g.Nodes()
	want := []string{"/a.vf", "/b.vf", "/m.vf", "/z.vf"}
	for i, n := range want {
		if nodes[i] != n {
			t.Fatalf("nodes = %v, want %v", nodes, want)
		}
	}

	edges := g.EdgesFrom("/m.vf")
	if edges[0].To != "/a.vf" || edges[1].To != "/z.vf" {
		t.Errorf("edges not sorted: %v, %v", edges[0].To, edges[1].To)
	}
}
