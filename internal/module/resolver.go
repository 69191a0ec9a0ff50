package module

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// SourceExt is the module source file extension.
const SourceExt = ".vf"

// Resolver turns import specifiers into real paths. It consults the
// project configuration for bare specifiers before walking
// node_modules, and resolves symlinks so every module has exactly one
// cache identity.
type Resolver struct {
	config *Config
	// warnings receives VF5901 casing diagnostics.
	warnings *diag.WarningCollector
}

// NewResolver creates a resolver; config may be nil.
func NewResolver(config *Config, warnings *diag.WarningCollector) *Resolver {
	return &Resolver{config: config, warnings: warnings}
}

// Resolve maps the import string `to`, appearing in the file `from`,
// to the real path of the target module.
func (r *Resolver) Resolve(from, to string, loc ast.Location) (string, error) {
	switch {
	case strings.HasPrefix(to, "http://"), strings.HasPrefix(to, "https://"), strings.HasPrefix(to, "file://"):
		return "", diag.Errorf(diag.UnsupportedURLImport, loc, map[string]string{"path": to})

	case to == "." || to == ".." || strings.HasPrefix(to, "./") || strings.HasPrefix(to, "../"):
		base := filepath.Join(filepath.Dir(from), to)
		return r.resolvePath(base, to, strings.HasSuffix(to, "/"), loc)

	case strings.HasPrefix(to, "/"):
		return r.resolvePath(filepath.Clean(to), to, strings.HasSuffix(to, "/"), loc)

	default:
		return r.resolveBare(from, to, loc)
	}
}

// resolvePath applies the candidate rules to an absolute base path:
// an explicit .vf name is tried exactly; an explicit foreign extension
// is rejected; otherwise base.vf is tried before base/index.vf, and a
// trailing slash means only the index form.
func (r *Resolver) resolvePath(base, original string, dirOnly bool, loc ast.Location) (string, error) {
	var candidates []string
	switch {
	case strings.HasSuffix(original, SourceExt):
		candidates = []string{base}
	case hasForeignExtension(original):
		return "", diag.Errorf(diag.UnsupportedExtension, loc, map[string]string{"path": original})
	case dirOnly:
		candidates = []string{filepath.Join(base, "index"+SourceExt)}
	default:
		candidates = []string{base + SourceExt, filepath.Join(base, "index"+SourceExt)}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		r.checkCasing(candidate, original, loc)
		return r.realpath(candidate, loc)
	}
	return "", r.notFound(candidates, original, loc)
}

// resolveBare resolves a specifier with no path prefix: configuration
// path mappings first (matching TypeScript's precedence), then
// node_modules directories walking upward from the importing file.
func (r *Resolver) resolveBare(from, spec string, loc ast.Location) (string, error) {
	if targets, ok := r.config.MatchPaths(spec); ok {
		var tried []string
		for _, target := range targets {
			candidates := []string{target}
			if !strings.HasSuffix(target, SourceExt) {
				candidates = []string{target + SourceExt, filepath.Join(target, "index"+SourceExt)}
			}
			for _, candidate := range candidates {
				tried = append(tried, candidate)
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					return r.realpath(candidate, loc)
				}
			}
		}
		return "", r.notFound(tried, spec, loc)
	}

	// Scoped specifiers (@org/pkg[/sub]) stay whole under
	// node_modules.
	var tried []string
	for dir := filepath.Dir(from); ; dir = filepath.Dir(dir) {
		nm := filepath.Join(dir, "node_modules")
		candidates := []string{
			filepath.Join(nm, spec+SourceExt),
			filepath.Join(nm, spec, "index"+SourceExt),
		}
		for _, candidate := range candidates {
			tried = append(tried, candidate)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return r.realpath(candidate, loc)
			}
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return "", r.notFound(tried, spec, loc)
}

// realpath resolves symlinks; a link loop is its own diagnostic.
func (r *Resolver) realpath(path string, loc ast.Location) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", diag.Errorf(diag.CircularSymlink, loc, map[string]string{"path": path})
	}
	return resolved, nil
}

// checkCasing warns when the import matches the target only because
// the filesystem ignores case.
func (r *Resolver) checkCasing(candidate, original string, loc ast.Location) {
	if r.warnings == nil {
		return
	}
	dir := filepath.Dir(candidate)
	want := filepath.Base(candidate)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.Name() == want {
			return
		}
		if strings.EqualFold(e.Name(), want) {
			d, derr := diag.New(diag.CasingMismatch, loc, map[string]string{
				"path":   original,
				"actual": e.Name(),
			})
			if derr == nil {
				_ = r.warnings.Add(d)
			}
			return
		}
	}
}

// notFound builds the VF5000 diagnostic, suggesting the nearest
// existing filename by edit distance.
func (r *Resolver) notFound(tried []string, original string, loc ast.Location) error {
	params := map[string]string{"path": original}
	if s := nearestEntry(tried, original); s != "" {
		params["suggestion"] = s
	}
	return diag.Errorf(diag.ModuleNotFound, loc, params)
}

// nearestEntry scans the directories of the attempted candidates for
// the entry closest to the imported name.
func nearestEntry(tried []string, original string) string {
	base := strings.TrimSuffix(filepath.Base(original), SourceExt)
	if base == "" {
		return ""
	}
	dirs := make(map[string]bool)
	for _, t := range tried {
		dirs[filepath.Dir(t)] = true
	}
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	best, bestDist := "", len(base)/2+2
	for _, dir := range sorted {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := strings.TrimSuffix(e.Name(), SourceExt)
			d := levenshtein.ComputeDistance(strings.ToLower(base), strings.ToLower(name))
			if d > 0 && d < bestDist {
				best, bestDist = e.Name(), d
			}
		}
	}
	return best
}

// hasForeignExtension reports whether the final segment names an
// explicit non-source extension like ./data.json.
func hasForeignExtension(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return ext != "" && ext != SourceExt && ext != "." && !strings.HasPrefix(base, ".")
}
