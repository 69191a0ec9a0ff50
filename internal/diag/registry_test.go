package diag

import (
	"strconv"
	"strings"
	"testing"

	"github.com/vibefun/vibefun/internal/ast"
)

func testLoc() ast.Location {
	return ast.Location{File: "test.vf", Line: 3, Column: 9, Offset: 42}
}

func mustNew(t *testing.T, code string, params map[string]string) *Diagnostic {
	t.Helper()
	d, err := New(code, testLoc(), params)
	if err != nil {
		t.Fatalf("New(%s): %v", code, err)
	}
	return d
}

func TestRegistryDuplicateRejected(t *testing.T) {
	r := NewRegistry()
	def := &Definition{Code: "VF0001", Title: "x", MessageTemplate: "x", Severity: SeverityError, Phase: PhaseLexer}
	if err := r.Register(def); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if err := r.Register(def); err == nil {
		t.Fatal("duplicate registration must fail")
	}
}

func TestRegistryLookup(t *testing.T) {
	def, ok := Default().Lookup(NonExhaustiveMatch)
	if !ok {
		t.Fatal("VF4400 not registered")
	}
	if def.Severity != SeverityError || def.Phase != PhaseTypechecker {
		t.Errorf("VF4400 = %s/%s", def.Severity, def.Phase)
	}
}

func TestRequiredCodesRegistered(t *testing.T) {
	ranges := []struct{ from, to int }{
		{1001, 1012}, {1100, 1104}, {1300, 1300}, {1400, 1400},
		{2001, 2001}, {2010, 2011}, {2100, 2105}, {2200, 2200},
		{2300, 2300}, {2400, 2402}, {2500, 2500},
		{3101, 3101},
		{4001, 4016}, {4020, 4025}, {4100, 4103}, {4200, 4205},
		{4300, 4301}, {4400, 4403}, {4500, 4502}, {4600, 4602},
		{4700, 4701}, {4800, 4804}, {4900, 4900},
		{5000, 5005}, {5100, 5102}, {5900, 5901},
	}
	for _, r := range ranges {
		for n := r.from; n <= r.to; n++ {
			code := "VF" + strconv.Itoa(n)
			if _, ok := Default().Lookup(code); !ok {
				t.Errorf("required code %s is not registered", code)
			}
		}
	}
}

func TestWarningCodesInWarningBand(t *testing.T) {
	// Within a phase, x900-x999 are warnings and everything else is
	// an error.
	for _, def := range Default().All() {
		n, err := strconv.Atoi(strings.TrimPrefix(def.Code, "VF"))
		if err != nil {
			t.Fatalf("malformed code %s", def.Code)
		}
		inBand := n%1000 >= 900
		isWarning := def.Severity == SeverityWarning
		if inBand != isWarning {
			t.Errorf("%s: severity %s does not match code band", def.Code, def.Severity)
		}
	}
}

func TestByPhaseAndBySeverity(t *testing.T) {
	mods := Default().ByPhase(PhaseModules)
	if len(mods) == 0 {
		t.Fatal("no module-phase codes")
	}
	for _, def := range mods {
		if def.Phase != PhaseModules {
			t.Errorf("%s leaked into modules phase", def.Code)
		}
	}

	warnings := Default().BySeverity(SeverityWarning)
	codes := make(map[string]bool)
	for _, def := range warnings {
		codes[def.Code] = true
	}
	for _, want := range []string{UnreachableMatchCase, CircularDependency, CasingMismatch} {
		if !codes[want] {
			t.Errorf("%s missing from warning listing", want)
		}
	}
}

func TestExplain(t *testing.T) {
	text, err := Default().Explain(NonExhaustiveMatch)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"VF4400", "Incorrect:", "Correct:"} {
		if !strings.Contains(text, want) {
			t.Errorf("explain output missing %q:\n%s", want, text)
		}
	}

	if _, err := Default().Explain("VF0000"); err == nil {
		t.Error("unknown code must error")
	}
}

func TestDefinitionsHaveExplanations(t *testing.T) {
	for _, def := range Default().All() {
		if def.Explanation == "" {
			t.Errorf("%s has no explanation", def.Code)
		}
		if def.MessageTemplate == "" {
			t.Errorf("%s has no message template", def.Code)
		}
		if def.Example.Bad == "" || def.Example.Good == "" {
			t.Errorf("%s has an incomplete example", def.Code)
		}
	}
}
