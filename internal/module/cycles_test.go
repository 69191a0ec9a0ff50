package module

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibefun/vibefun/internal/diag"
)

func TestValueCycleWarns(t *testing.T) {
	// a -> b -> c -> a: one SCC, reported alphabetically, warned,
	// compilation proceeds.
	res, root := loadTree(t, map[string]string{
		"a.vf": "import { x } from \"./b\"\nexport let xa = 1\n",
		"b.vf": "import { x } from \"./c\"\nexport let x = 1\n",
		"c.vf": "import { x } from \"./a\"\nexport let x = 2\n",
	}, "a.vf")

	require.Empty(t, res.Errors)
	require.Len(t, res.Cycles, 1)

	cycle := res.Cycles[0]
	assert.Equal(t, []string{"a.vf", "b.vf", "c.vf"}, rel(t, root, cycle.Path), "cycle path alphabetized")
	assert.False(t, cycle.AllTypeOnly)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diag.CircularDependency, res.Warnings[0].Code())

	// All three modules still compile.
	assert.Len(t, res.CompilationOrder, 3)
}

func TestTypeOnlyCycleIsSafe(t *testing.T) {
	res, _ := loadTree(t, map[string]string{
		"a.vf": "import { type TB } from \"./b\"\nexport let x = 1\n",
		"b.vf": "import { type TA } from \"./a\"\nexport let y = 2\n",
	}, "a.vf")

	require.Empty(t, res.Errors)
	require.Len(t, res.Cycles, 1, "type-only cycles are still recorded")
	assert.True(t, res.Cycles[0].AllTypeOnly)
	assert.Empty(t, res.Warnings, "type-only cycles produce no warning")
	assert.Len(t, res.CompilationOrder, 2)
}

func TestMixedCycleIsValueCycle(t *testing.T) {
	// One value edge anywhere in the component taints it.
	res, _ := loadTree(t, map[string]string{
		"a.vf": "import { type TB } from \"./b\"\n",
		"b.vf": "import { y } from \"./a\"\nexport let y = 1\n",
	}, "a.vf")

	require.Len(t, res.Cycles, 1)
	assert.False(t, res.Cycles[0].AllTypeOnly)
	assert.Len(t, res.Warnings, 1)
}

func TestSelfImportIsError(t *testing.T) {
	res, root := loadTree(t, map[string]string{
		"a.vf": "import { x } from \"./a\"\nexport let x = 1\n",
	}, "a.vf")

	require.Len(t, res.SelfImports, 1)
	assert.Equal(t, filepath.Join(root, "a.vf"), res.SelfImports[0].Path)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, diag.SelfImport, res.Errors[0].Code())
	assert.Empty(t, res.Warnings, "a self-import is never a VF5900 warning")
	assert.Empty(t, res.Cycles)
	assert.Empty(t, res.CompilationOrder, "self-importing module does not compile")
}

func TestReexportIsValueEdge(t *testing.T) {
	res, _ := loadTree(t, map[string]string{
		"a.vf": "reexport { x } from \"./b\"\n",
		"b.vf": "import { type T } from \"./a\"\nexport let x = 1\n",
	}, "a.vf")

	require.Len(t, res.Cycles, 1)
	assert.False(t, res.Cycles[0].AllTypeOnly, "re-exports are conservatively value edges")
}

func TestSideEffectImportIsValueEdge(t *testing.T) {
	res, root := loadTree(t, map[string]string{
		"a.vf": "import \"./b\"\n",
		"b.vf": "let x = 1\n",
	}, "a.vf")

	edge, ok := res.Graph.Edge(filepath.Join(root, "a.vf"), filepath.Join(root, "b.vf"))
	require.True(t, ok)
	assert.False(t, edge.TypeOnly)
}

func TestCycleFormat(t *testing.T) {
	c := &Cycle{Path: []string{"/a.vf", "/b.vf", "/c.vf"}}
	assert.Equal(t, "/a.vf -> /b.vf -> /c.vf -> /a.vf", c.Format())
}

func TestDeterministicOrdering(t *testing.T) {
	files := map[string]string{
		"main.vf": "import { a } from \"./x\"\nimport { b } from \"./y\"\nimport { c } from \"./z\"\n",
		"x.vf":    "import { s } from \"./shared\"\nexport let a = 1\n",
		"y.vf":    "import { s } from \"./shared\"\nexport let b = 1\n",
		"z.vf":    "export let c = 1\n",
		"shared.vf": "export let s = 1\n",
	}
	res1, _ := loadTree(t, files, "main.vf")
	res2, err := LoadAndResolveModules(res1.EntryPoint, testParse)
	require.NoError(t, err)

	if diff := cmp.Diff(res1.CompilationOrder, res2.CompilationOrder); diff != "" {
		t.Errorf("compilation order not deterministic (-first +second):\n%s", diff)
	}

	// Resolution is idempotent: rebuilding from the same load result
	// yields the same order and cycles.
	redo := ResolveModules(&LoadResult{
		EntryPoint: res1.EntryPoint,
		Modules:    res1.Modules,
		Sources:    res1.Sources,
		Resolved:   res1.Resolved,
	})
	if diff := cmp.Diff(res1.CompilationOrder, redo.CompilationOrder); diff != "" {
		t.Errorf("resolution not idempotent:\n%s", diff)
	}
	require.Equal(t, len(res1.Cycles), len(redo.Cycles))
}

func TestTarjanCoverage(t *testing.T) {
	// Every node lands in the order exactly once (no cycles here).
	res, _ := loadTree(t, map[string]string{
		"main.vf": "import { a } from \"./a\"\nimport { b } from \"./b\"\n",
		"a.vf":    "import { b } from \"./b\"\nexport let a = 1\n",
		"b.vf":    "export let b = 1\n",
	}, "main.vf")

	seen := map[string]int{}
	for _, p := range res.CompilationOrder {
		seen[p]++
	}
	for _, node := range res.Graph.Nodes() {
		if seen[node] != 1 {
			t.Errorf("node %s appears %d times in order", node, seen[node])
		}
	}
}

func TestGraphClosure(t *testing.T) {
	// Every edge target is itself a loaded module.
	res, _ := loadTree(t, map[string]string{
		"main.vf": "import { a } from \"./a\"\n",
		"a.vf":    "import { b } from \"./b\"\nexport let a = 1\n",
		"b.vf":    "export let b = 1\n",
	}, "main.vf")

	for _, from := range res.Graph.Nodes() {
		for _, edge := range res.Graph.EdgesFrom(from) {
			if _, ok := res.Modules[edge.To]; !ok {
				t.Errorf("edge target %s not loaded", edge.To)
			}
		}
	}
}
