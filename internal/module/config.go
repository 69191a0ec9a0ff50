package module

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/diag"
)

// ConfigFileName is the project configuration file searched for from
// the entry point upward.
const ConfigFileName = "vibefun.json"

// Config is a parsed vibefun.json plus the directory it was found in;
// mapping targets resolve relative to that directory.
type Config struct {
	CompilerOptions CompilerOptions `json:"compilerOptions"`
	Dir             string          `json:"-"`
}

// CompilerOptions mirrors the compilerOptions object.
type CompilerOptions struct {
	Paths map[string][]string `json:"paths"`
}

// FindConfig walks upward from startDir looking for vibefun.json.
// A missing file returns (nil, nil); a malformed one is a hard error.
func FindConfig(startDir string) (*Config, error) {
	dir := startDir
	for {
		path := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(path)
		if err == nil {
			return parseConfig(path, data, dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func parseConfig(path string, data []byte, dir string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, diag.Errorf(diag.MalformedConfig, ast.Location{File: path, Line: 1, Column: 1}, map[string]string{
			"path":  path,
			"error": err.Error(),
		})
	}
	cfg.Dir = dir
	return &cfg, nil
}

// MatchPaths applies the path mappings to an import specifier. The
// first matching pattern wins; its targets come back in array order
// with the wildcard substituted, resolved against the config
// directory. ok is false when no pattern matches.
func (c *Config) MatchPaths(spec string) (targets []string, ok bool) {
	if c == nil || len(c.CompilerOptions.Paths) == 0 {
		return nil, false
	}
	// Deterministic pattern order: exact patterns first, then longer
	// patterns before shorter ones, then by pattern text.
	patterns := make([]string, 0, len(c.CompilerOptions.Paths))
	for p := range c.CompilerOptions.Paths {
		patterns = append(patterns, p)
	}
	sortPatterns(patterns)

	for _, pattern := range patterns {
		captured, matched := matchPattern(pattern, spec)
		if !matched {
			continue
		}
		for _, target := range c.CompilerOptions.Paths[pattern] {
			expanded := strings.Replace(target, "*", captured, 1)
			if !filepath.IsAbs(expanded) {
				expanded = filepath.Join(c.Dir, expanded)
			}
			targets = append(targets, expanded)
		}
		return targets, true
	}
	return nil, false
}

// matchPattern matches a specifier against a mapping pattern where *
// is a single-segment wildcard.
func matchPattern(pattern, spec string) (captured string, ok bool) {
	star := strings.IndexByte(pattern, '*')
	if star < 0 {
		return "", pattern == spec
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	if !strings.HasPrefix(spec, prefix) || !strings.HasSuffix(spec, suffix) {
		return "", false
	}
	middle := spec[len(prefix) : len(spec)-len(suffix)]
	if middle == "" || strings.Contains(middle, "/") {
		return "", false
	}
	return middle, true
}

// sortPatterns orders exact patterns before wildcard ones, longest
// first, so the most specific pattern is tried first.
func sortPatterns(patterns []string) {
	rank := func(p string) int {
		if strings.Contains(p, "*") {
			return 1
		}
		return 0
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		a, b := patterns[i], patterns[j]
		if rank(a) != rank(b) {
			return rank(a) < rank(b)
		}
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}
