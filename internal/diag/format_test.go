package diag

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/vibefun/vibefun/internal/ast"
)

func init() {
	// Keep rendered output byte-stable under test.
	color.NoColor = true
}

func TestFormatBasic(t *testing.T) {
	d := mustNew(t, UnknownVariable, map[string]string{"name": "lenght", "suggestion": "length"})
	source := "let x = 1\nlet y = 2\nlet n = lenght(xs)\n"

	out := Format(d, source)

	for _, want := range []string{
		"error[VF4100]: Unknown variable 'lenght'",
		"--> test.vf:3:9",
		"let n = lenght(xs)",
		"= hint: did you mean 'length'?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Caret sits under column 9, i.e. under the 'l' of "lenght".
	var sourceLine, caretLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "lenght(xs)") {
			sourceLine = line
		} else if strings.Contains(line, "^") {
			caretLine = line
		}
	}
	if sourceLine == "" || caretLine == "" {
		t.Fatalf("missing context lines in:\n%s", out)
	}
	contentStart := strings.Index(sourceLine, "let n")
	caretIdx := strings.Index(caretLine, "^")
	if caretIdx != contentStart+8 {
		t.Errorf("caret at %d, want %d:\n%s", caretIdx, contentStart+8, out)
	}
}

func TestFormatWithoutSource(t *testing.T) {
	d := mustNew(t, SelfImport, map[string]string{"path": "/a.vf"})
	out := Format(d, "")
	if strings.Contains(out, "|") {
		t.Errorf("source context rendered without source:\n%s", out)
	}
	if !strings.Contains(out, "error[VF5004]") {
		t.Errorf("missing header:\n%s", out)
	}
}

func TestFormatTruncatesLongLines(t *testing.T) {
	long := strings.Repeat("x", 200) + "BANG" + strings.Repeat("y", 200)
	d, err := Default().New(UnknownVariable, ast.Location{File: "t.vf", Line: 1, Column: 201}, map[string]string{"name": "BANG"})
	if err != nil {
		t.Fatal(err)
	}

	out := Format(d, long)

	var sourceLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "BANG") {
			sourceLine = line
		}
	}
	if sourceLine == "" {
		t.Fatalf("column content truncated away:\n%s", out)
	}
	content := sourceLine[strings.Index(sourceLine, "| ")+2:]
	if len([]rune(content)) > maxSourceWidth {
		t.Errorf("line still %d chars wide", len([]rune(content)))
	}
	if !strings.HasPrefix(content, "...") || !strings.HasSuffix(content, "...") {
		t.Errorf("truncation markers missing: %q", content)
	}
	// The caret still points at the B of BANG.
	caretIdx := -1
	bangIdx := -1
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if strings.Contains(line, "BANG") {
			bangIdx = strings.Index(line, "BANG")
		} else if strings.Contains(line, "^") && bangIdx >= 0 && i > 0 {
			caretIdx = strings.Index(line, "^")
		}
	}
	if caretIdx != bangIdx {
		t.Errorf("caret at %d, BANG at %d\n%s", caretIdx, bangIdx, out)
	}
}

func TestFormatAllGroupsSources(t *testing.T) {
	d1 := mustNew(t, ModuleNotFound, map[string]string{"path": "./a"})
	d2 := mustNew(t, ModuleNotFound, map[string]string{"path": "./b"})
	out := FormatAll([]*Diagnostic{d1, d2}, map[string]string{"test.vf": "import a\n"})
	if strings.Count(out, "error[VF5000]") != 2 {
		t.Errorf("expected two rendered diagnostics:\n%s", out)
	}
}
