package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// maxSourceWidth is the widest source line printed verbatim; longer
// lines are truncated around the caret column.
const maxSourceWidth = 120

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
)

// Format renders a diagnostic for terminal output:
//
//	error[VF4100]: Unknown variable 'lenght'
//	  --> main.vf:3:9
//	   |
//	 3 | let n = lenght(xs)
//	   |         ^
//	  = hint: did you mean 'length'?
//
// source is the full text of the file the location points into; when
// empty the source-context block is omitted.
func Format(d *Diagnostic, source string) string {
	var b strings.Builder

	sev := string(d.Definition.Severity)
	if color.NoColor {
		b.WriteString(sev)
	} else if d.IsWarning() {
		b.WriteString(warnColor.Sprint(sev))
	} else {
		b.WriteString(errorColor.Sprint(sev))
	}
	fmt.Fprintf(&b, "[%s]: %s\n", d.Code(), d.Message)
	fmt.Fprintf(&b, "  --> %s\n", d.Location)

	if source != "" {
		writeContext(&b, d, source)
	}
	if d.Hint != "" {
		fmt.Fprintf(&b, "  = hint: %s\n", d.Hint)
	}
	return b.String()
}

func writeContext(b *strings.Builder, d *Diagnostic, source string) {
	lines := strings.Split(source, "\n")
	if d.Location.Line < 1 || d.Location.Line > len(lines) {
		return
	}
	line := lines[d.Location.Line-1]
	col := d.Location.Column
	if col < 1 {
		col = 1
	}

	line, col = truncateAround(line, col)

	gutter := fmt.Sprintf("%d", d.Location.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(b, " %s |\n", pad)
	fmt.Fprintf(b, " %s | %s\n", gutter, line)
	fmt.Fprintf(b, " %s | %s^\n", pad, strings.Repeat(" ", col-1))
}

// truncateAround shortens lines wider than maxSourceWidth to a window
// around col, marking the removed leading/trailing text with "..." and
// shifting col so the caret stays under the offending character.
func truncateAround(line string, col int) (string, int) {
	runes := []rune(line)
	if len(runes) <= maxSourceWidth {
		return line, col
	}

	half := maxSourceWidth / 2
	start := col - 1 - half
	if start < 0 {
		start = 0
	}
	end := start + maxSourceWidth
	if end > len(runes) {
		end = len(runes)
		start = end - maxSourceWidth
	}

	window := runes[start:end]
	newCol := col - start

	if start > 0 {
		window = append([]rune("..."), window[3:]...)
	}
	if end < len(runes) {
		window = append(window[:len(window)-3], []rune("...")...)
	}
	return string(window), newCol
}

// FormatAll renders a slice of diagnostics, one block per entry.
// sources maps file paths to their contents; missing entries render
// without source context.
func FormatAll(diags []*Diagnostic, sources map[string]string) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Format(d, sources[d.Location.File]))
	}
	return b.String()
}
