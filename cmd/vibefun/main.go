// Command vibefun is the compiler driver for the semantic middle-end:
// module resolution, type checking and the diagnostic catalog. The
// surface-syntax frontend registers itself through RegisterParser; a
// build without a frontend still serves the catalog commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vibefun/vibefun/internal/diag"
	"github.com/vibefun/vibefun/internal/module"
	"github.com/vibefun/vibefun/internal/pipeline"
)

// Version is set by ldflags at release build time.
var Version = "dev"

// parseFn is the registered frontend; nil in a middle-end-only build.
var parseFn module.ParseFunc

// RegisterParser installs the surface-syntax frontend. The full
// compiler distribution calls this from an init function.
func RegisterParser(fn module.ParseFunc) {
	parseFn = fn
}

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	root := &cobra.Command{
		Use:           "vibefun",
		Short:         "vibefun compiler",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(checkCmd(), orderCmd(), explainCmd(), codesCmd())

	if err := root.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func requireParser() error {
	if parseFn == nil {
		return fmt.Errorf("no parser is linked into this build; install the full vibefun distribution")
	}
	return nil
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <entry>",
		Short: "Type check a module and everything it imports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireParser(); err != nil {
				return err
			}
			p := pipeline.New(parseFn)
			result, err := p.Compile(args[0])
			if result != nil {
				for _, w := range result.Warnings {
					source := ""
					if result.Resolution != nil {
						source = result.Resolution.Sources[w.Location.File]
					}
					fmt.Fprint(os.Stderr, diag.Format(w, source))
				}
			}
			if err != nil {
				return err
			}
			fmt.Printf("checked %d module(s)\n", len(result.TypedModules))
			return nil
		},
	}
}

func orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <entry>",
		Short: "Print the compilation order and any cycles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireParser(); err != nil {
				return err
			}
			res, err := module.LoadAndResolveModules(args[0], parseFn)
			if err != nil {
				return err
			}
			for _, path := range res.CompilationOrder {
				fmt.Println(path)
			}
			for _, c := range res.Cycles {
				kind := "value cycle"
				if c.AllTypeOnly {
					kind = "type-only cycle"
				}
				fmt.Fprintf(os.Stderr, "%s: %s\n", kind, c.Format())
			}
			if err := res.AggregateErrors(); err != nil {
				return err
			}
			return nil
		},
	}
}

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <code>",
		Short: "Explain a diagnostic code (e.g. VF4400)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := diag.Default().Explain(args[0])
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
}

func codesCmd() *cobra.Command {
	var format string
	var phase string
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Dump the diagnostic catalog for the documentation generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := diag.Default().All()
			if phase != "" {
				defs = diag.Default().ByPhase(diag.Phase(phase))
			}
			switch format {
			case "json":
				out, err := json.MarshalIndent(defs, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			case "yaml":
				out, err := yaml.Marshal(defs)
				if err != nil {
					return err
				}
				fmt.Print(string(out))
			default:
				for _, d := range defs {
					fmt.Printf("%s  %-7s  %s\n", d.Code, d.Severity, d.Title)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json or yaml")
	cmd.Flags().StringVar(&phase, "phase", "", "restrict to one phase (lexer, parser, typechecker, modules, ...)")
	return cmd
}

func reportError(err error) {
	if d, ok := diag.AsDiagnostic(err); ok {
		fmt.Fprint(os.Stderr, diag.Format(d, ""))
		return
	}
	if list, ok := diag.AsList(err); ok {
		fmt.Fprint(os.Stderr, diag.FormatAll(list.Diags, nil))
		return
	}
	errLabel := color.New(color.FgRed, color.Bold).Sprint("error")
	fmt.Fprintf(os.Stderr, "%s: %v\n", errLabel, err)
}
