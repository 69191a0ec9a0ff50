package module

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// testParse is the parser collaborator for tests: a line-based
// miniature syntax that covers exactly what the loader and graph need.
//
//	import "./x"
//	import { a, type B } from "./x"
//	reexport { a } from "./x"
//	export let name = <int>
//	let name = <int>
//	syntax-error
func testParse(source []byte, filename string) (*ast.Module, error) {
	mod := &ast.Module{Path: filename, Loc: ast.Location{File: filename, Line: 1, Column: 1}}
	var nextID uint64
	for i, line := range strings.Split(string(source), "\n") {
		loc := ast.Location{File: filename, Line: i + 1, Column: 1}
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "//"):

		case line == "syntax-error":
			return nil, diag.Errorf(diag.UnexpectedToken, loc, map[string]string{
				"found": "syntax-error", "expected": "a declaration",
			})

		case strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "reexport "):
			decl, err := parseImportLine(line, loc)
			if err != nil {
				return nil, err
			}
			mod.Decls = append(mod.Decls, decl)

		case strings.HasPrefix(line, "let ") || strings.HasPrefix(line, "export let "):
			exported := strings.HasPrefix(line, "export ")
			rest := strings.TrimPrefix(strings.TrimPrefix(line, "export "), "let ")
			parts := strings.SplitN(rest, "=", 2)
			if len(parts) != 2 {
				return nil, diag.Errorf(diag.ExpectedExpression, loc, map[string]string{"found": "end of line"})
			}
			name := strings.TrimSpace(parts[0])
			value, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
			if err != nil {
				return nil, diag.Errorf(diag.InvalidNumberLiteral, loc, map[string]string{"literal": parts[1]})
			}
			nextID++
			mod.Decls = append(mod.Decls, &ast.LetDecl{
				DeclBase: ast.DeclBase{Loc: loc},
				Name:     name,
				Exported: exported,
				Value:    &ast.Lit{ExprBase: ast.ExprBase{NodeID: nextID, Loc: loc}, Kind: ast.IntLit, Value: value},
			})

		default:
			return nil, diag.Errorf(diag.InvalidDeclaration, loc, map[string]string{"found": line})
		}
	}
	return mod, nil
}

func parseImportLine(line string, loc ast.Location) (ast.Decl, error) {
	reexport := strings.HasPrefix(line, "reexport ")
	quoteStart := strings.IndexByte(line, '"')
	quoteEnd := strings.LastIndexByte(line, '"')
	if quoteStart < 0 || quoteEnd <= quoteStart {
		return nil, diag.Errorf(diag.InvalidImport, loc, nil)
	}
	path := line[quoteStart+1 : quoteEnd]

	var items []ast.ImportItem
	if open := strings.IndexByte(line, '{'); open >= 0 {
		closeIdx := strings.IndexByte(line, '}')
		if closeIdx < open {
			return nil, diag.Errorf(diag.InvalidImport, loc, nil)
		}
		for _, raw := range strings.Split(line[open+1:closeIdx], ",") {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			typeOnly := false
			if strings.HasPrefix(name, "type ") {
				typeOnly = true
				name = strings.TrimSpace(strings.TrimPrefix(name, "type "))
			}
			items = append(items, ast.ImportItem{Name: name, TypeOnly: typeOnly, Loc: loc})
		}
	}

	if reexport {
		return &ast.ReexportDecl{DeclBase: ast.DeclBase{Loc: loc}, Path: path, Items: items}, nil
	}
	return &ast.ImportDecl{DeclBase: ast.DeclBase{Loc: loc}, Path: path, Items: items}, nil
}

// writeTree lays out a module tree under a fresh temp dir and returns
// its root. Keys are relative paths, values file contents.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	// Resolve the temp dir itself: on darwin /tmp is a symlink and
	// every loader path comparison is against real paths.
	if real, err := filepath.EvalSymlinks(root); err == nil {
		root = real
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func loadTree(t *testing.T, files map[string]string, entry string) (*ModuleResolution, string) {
	t.Helper()
	root := writeTree(t, files)
	res, err := LoadAndResolveModules(filepath.Join(root, entry), testParse)
	if err != nil {
		t.Fatalf("LoadAndResolveModules: %v", err)
	}
	return res, root
}

// codesOf projects diagnostics onto their codes for assertions.
func codesOf(diags []*diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code()
	}
	return out
}

// rel maps absolute order entries back to root-relative paths.
func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = r
	}
	return out
}
