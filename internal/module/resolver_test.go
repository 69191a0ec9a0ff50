package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

func resolveFrom(t *testing.T, root, fromRel, importStr string) (string, error) {
	t.Helper()
	r := NewResolver(nil, diag.NewWarningCollector())
	return r.Resolve(filepath.Join(root, fromRel), importStr, ast.Location{File: fromRel, Line: 1, Column: 1})
}

func TestResolveRelative(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.vf":          "",
		"utils.vf":         "",
		"lib/index.vf":     "",
		"lib/helpers.vf":   "",
		"data/index.vf":    "",
		"data/data.vf":     "",
		"explicit/file.vf": "",
	})

	tests := []struct {
		name      string
		from      string
		importStr string
		want      string
	}{
		{"sibling file", "main.vf", "./utils", "utils.vf"},
		{"explicit extension", "main.vf", "./utils.vf", "utils.vf"},
		{"directory index", "main.vf", "./lib", "lib/index.vf"},
		{"trailing slash forces index", "main.vf", "./data/", "data/index.vf"},
		{"parent traversal", "lib/helpers.vf", "../utils", "utils.vf"},
		{"nested explicit", "main.vf", "./explicit/file.vf", "explicit/file.vf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFrom(t, root, tt.from, tt.importStr)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, tt.want), got)
		})
	}
}

func TestFileBeatsDirectory(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.vf":      "",
		"thing.vf":     "",
		"thing/index.vf": "",
	})
	got, err := resolveFrom(t, root, "main.vf", "./thing")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "thing.vf"), got)
}

func TestResolveErrors(t *testing.T) {
	root := writeTree(t, map[string]string{"main.vf": "", "utils.vf": ""})

	tests := []struct {
		name      string
		importStr string
		code      string
	}{
		{"url http", "http://example.com/m.vf", diag.UnsupportedURLImport},
		{"url https", "https://example.com/m.vf", diag.UnsupportedURLImport},
		{"url file", "file:///m.vf", diag.UnsupportedURLImport},
		{"foreign extension", "./data.json", diag.UnsupportedExtension},
		{"missing module", "./nothing", diag.ModuleNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveFrom(t, root, "main.vf", tt.importStr)
			require.Error(t, err)
			d, ok := diag.AsDiagnostic(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, d.Code())
		})
	}
}

func TestMissingModuleSuggestsNearest(t *testing.T) {
	root := writeTree(t, map[string]string{"main.vf": "", "utils.vf": ""})
	_, err := resolveFrom(t, root, "main.vf", "./utls")
	require.Error(t, err)
	d, _ := diag.AsDiagnostic(err)
	require.Equal(t, diag.ModuleNotFound, d.Code())
	assert.Contains(t, d.Hint, "utils.vf")
}

func TestSymlinkResolvesToRealPath(t *testing.T) {
	root := writeTree(t, map[string]string{"main.vf": "", "real.vf": ""})
	link := filepath.Join(root, "alias.vf")
	if err := os.Symlink(filepath.Join(root, "real.vf"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	direct, err := resolveFrom(t, root, "main.vf", "./real")
	require.NoError(t, err)
	viaLink, err := resolveFrom(t, root, "main.vf", "./alias.vf")
	require.NoError(t, err)
	assert.Equal(t, direct, viaLink, "symlink and target must share one identity")
}

func TestNodeModulesWalk(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/deep/main.vf":                       "",
		"node_modules/mylib.vf":                  "",
		"node_modules/withdir/index.vf":          "",
		"node_modules/@scope/pkg/index.vf":       "",
		"node_modules/@scope/pkg/sub.vf":         "",
		"src/node_modules/closer.vf":             "",
	})

	tests := []struct {
		name      string
		importStr string
		want      string
	}{
		{"plain file", "mylib", "node_modules/mylib.vf"},
		{"package dir", "withdir", "node_modules/withdir/index.vf"},
		{"scoped package", "@scope/pkg", "node_modules/@scope/pkg/index.vf"},
		{"scoped subpath", "@scope/pkg/sub", "node_modules/@scope/pkg/sub.vf"},
		{"nearest node_modules wins", "closer", "src/node_modules/closer.vf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFrom(t, root, "src/deep/main.vf", tt.importStr)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, tt.want), got)
		})
	}
}

func TestPathMappingsBeatNodeModules(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.vf":                 "",
		"src/app/thing.vf":        "",
		"node_modules/@app/thing.vf": "",
	})
	cfg := &Config{
		Dir: root,
		CompilerOptions: CompilerOptions{Paths: map[string][]string{
			"@app/*": {"./src/app/*"},
		}},
	}
	r := NewResolver(cfg, diag.NewWarningCollector())
	got, err := r.Resolve(filepath.Join(root, "main.vf"), "@app/thing", ast.Location{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src/app/thing.vf"), got)
}

func TestCasingWarning(t *testing.T) {
	root := writeTree(t, map[string]string{"main.vf": "", "utils.vf": ""})
	wc := diag.NewWarningCollector()
	r := NewResolver(nil, wc)

	// Drive the casing check directly: on a case-sensitive filesystem
	// the mis-cased stat cannot succeed, but the check itself must
	// flag a candidate that differs from the on-disk entry only by
	// case.
	r.checkCasing(filepath.Join(root, "Utils.vf"), "./Utils", ast.Location{File: "main.vf", Line: 1, Column: 1})
	require.True(t, wc.HasWarnings())
	assert.Equal(t, diag.CasingMismatch, wc.Warnings()[0].Code())
	assert.Contains(t, wc.Warnings()[0].Message, "utils.vf")
}
