package diag

import (
	"encoding/json"

	"github.com/vibefun/vibefun/internal/ast"
)

// jsonDiagnostic is the stable wire form of a rendered diagnostic,
// consumed by editor tooling and the documentation generator.
type jsonDiagnostic struct {
	Schema   string       `json:"schema"`
	Code     string       `json:"code"`
	Severity Severity     `json:"severity"`
	Phase    Phase        `json:"phase"`
	Message  string       `json:"message"`
	Location ast.Location `json:"location"`
	Hint     string       `json:"hint,omitempty"`
}

// schemaVersion identifies the diagnostic wire format.
const schemaVersion = "vibefun.diagnostic/v1"

// ToJSON encodes the diagnostic deterministically; compact chooses
// between one-line and indented output.
func (d *Diagnostic) ToJSON(compact bool) (string, error) {
	wire := jsonDiagnostic{
		Schema:   schemaVersion,
		Code:     d.Code(),
		Severity: d.Definition.Severity,
		Phase:    d.Definition.Phase,
		Message:  d.Message,
		Location: d.Location,
		Hint:     d.Hint,
	}
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(wire)
	} else {
		data, err = json.MarshalIndent(wire, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
