// Package diag is the structured diagnostic engine shared by every
// compiler phase. All user-facing failures are Diagnostics carrying a
// VFxxxx code from the registry; compiler bugs stay plain errors and
// never get codes.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
)

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Phase identifies the compiler phase a code belongs to.
type Phase string

const (
	PhaseLexer       Phase = "lexer"
	PhaseParser      Phase = "parser"
	PhaseDesugarer   Phase = "desugarer"
	PhaseTypechecker Phase = "typechecker"
	PhaseModules     Phase = "modules"
	PhaseCodegen     Phase = "codegen"
	PhaseRuntime     Phase = "runtime"
)

// Example is a bad/good source pair attached to a definition; the doc
// generator renders these into the error reference.
type Example struct {
	Bad         string `json:"bad" yaml:"bad"`
	Good        string `json:"good" yaml:"good"`
	Description string `json:"description" yaml:"description"`
}

// Definition is the registry entry for one diagnostic code.
type Definition struct {
	Code            string   `json:"code" yaml:"code"`
	Title           string   `json:"title" yaml:"title"`
	MessageTemplate string   `json:"messageTemplate" yaml:"messageTemplate"`
	Severity        Severity `json:"severity" yaml:"severity"`
	Phase           Phase    `json:"phase" yaml:"phase"`
	Category        string   `json:"category" yaml:"category"`
	HintTemplate    string   `json:"hintTemplate,omitempty" yaml:"hintTemplate,omitempty"`
	Explanation     string   `json:"explanation" yaml:"explanation"`
	Example         Example  `json:"example" yaml:"example"`
	RelatedCodes    []string `json:"relatedCodes,omitempty" yaml:"relatedCodes,omitempty"`
	SeeAlso         []string `json:"seeAlso,omitempty" yaml:"seeAlso,omitempty"`
}

// Diagnostic is one concrete occurrence of a code: the definition plus
// the interpolated message and hint, anchored to a source location.
type Diagnostic struct {
	Definition *Definition
	Message    string
	Location   ast.Location
	Hint       string
}

// Code returns the diagnostic's VFxxxx code.
func (d *Diagnostic) Code() string { return d.Definition.Code }

// IsWarning reports whether the diagnostic is a warning.
func (d *Diagnostic) IsWarning() bool { return d.Definition.Severity == SeverityWarning }

// Error carries a Diagnostic through Go error returns so the
// structured value survives errors.As unwrapping.
type Error struct {
	Diag *Diagnostic
}

func (e *Error) Error() string {
	if e.Diag == nil {
		return "unknown diagnostic"
	}
	return fmt.Sprintf("%s[%s]: %s", e.Diag.Definition.Severity, e.Diag.Code(), e.Diag.Message)
}

// AsDiagnostic extracts a Diagnostic from an error chain.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag, true
	}
	return nil, false
}

// List aggregates several diagnostics into one error. The module
// loader uses it to report every missing file in a run rather than
// just the first.
type List struct {
	Diags []*Diagnostic
}

func (l *List) Error() string {
	if len(l.Diags) == 1 {
		return (&Error{Diag: l.Diags[0]}).Error()
	}
	parts := make([]string, len(l.Diags))
	for i, d := range l.Diags {
		parts[i] = (&Error{Diag: d}).Error()
	}
	return fmt.Sprintf("%d errors:\n%s", len(l.Diags), strings.Join(parts, "\n"))
}

// AsList extracts an aggregated diagnostic list from an error chain.
func AsList(err error) (*List, bool) {
	var dl *List
	if errors.As(err, &dl) {
		return dl, true
	}
	return nil, false
}

// Interpolate replaces every {placeholder} in template with its value
// from params. Unmatched placeholders are preserved verbatim so a
// missing parameter is visible in the rendered message instead of
// silently vanishing.
func Interpolate(template string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			b.WriteString(template[i:])
			break
		}
		close += open
		b.WriteString(template[i:open])
		key := template[open+1 : close]
		if val, ok := params[key]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(template[open : close+1])
		}
		i = close + 1
	}
	return b.String()
}
