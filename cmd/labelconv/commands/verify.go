package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/terramap/labelconv/pkg/label"
)

// exitCodeDrift is the exit code when converted output differs from the
// expected expressions.
const exitCodeDrift = 2

// Mismatch is one definition whose converted expression differs from the
// golden expectation.
type Mismatch struct {
	Name     string
	Expected string
	Actual   string
	Err      error
}

// VerifyCommand holds flags for the verify command.
type VerifyCommand struct {
	noColor bool
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	vc := &VerifyCommand{}

	cmd := &cobra.Command{
		Use:   "verify <manifest>",
		Short: "Convert a manifest and compare against expected expressions",
		Long: `Convert every definition in a YAML manifest and compare each result
against the manifest's expected field. Differences are shown as inline diffs.

Exits with code 2 when any definition drifts from its expectation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return vc.run(cmd, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&vc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (vc *VerifyCommand) run(cmd *cobra.Command, manifestPath string) error {
	manifest, err := label.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	mismatches, checked := verifyDefinitions(manifest.ToDefinitions())

	out := cmd.OutOrStdout()

	if len(mismatches) == 0 {
		vc.statusColor(color.FgGreen).Fprintf(out, "all %d definitions match\n", checked)

		return nil
	}

	vc.reportMismatches(out, mismatches, checked)

	os.Exit(exitCodeDrift)

	return nil
}

// verifyDefinitions converts every definition carrying an expectation and
// collects the ones that drift. Definitions without an expected field are
// skipped. Returns the mismatches and the number of definitions checked.
func verifyDefinitions(defs []label.Definition) ([]Mismatch, int) {
	var mismatches []Mismatch

	checked := 0

	for _, def := range defs {
		if def.Expected == "" {
			continue
		}

		checked++

		res := label.Convert(def)
		if res.Err != nil {
			mismatches = append(mismatches, Mismatch{Name: def.Name, Expected: def.Expected, Err: res.Err})

			continue
		}

		if res.Expression != def.Expected {
			mismatches = append(mismatches, Mismatch{
				Name:     def.Name,
				Expected: def.Expected,
				Actual:   res.Expression,
			})
		}
	}

	return mismatches, checked
}

func (vc *VerifyCommand) reportMismatches(w io.Writer, mismatches []Mismatch, checked int) {
	vc.statusColor(color.FgRed).Fprintf(w, "%d of %d definitions drifted\n", len(mismatches), checked)

	dmp := diffmatchpatch.New()

	for _, mismatch := range mismatches {
		fmt.Fprintf(w, "\n%s:\n", mismatch.Name)

		if mismatch.Err != nil {
			vc.statusColor(color.FgRed).Fprintf(w, "  conversion failed: %v\n", mismatch.Err)

			continue
		}

		diffs := dmp.DiffMain(mismatch.Expected, mismatch.Actual, false)

		if vc.noColor {
			fmt.Fprintf(w, "  expected: %s\n  actual:   %s\n", mismatch.Expected, mismatch.Actual)
		} else {
			fmt.Fprintf(w, "  %s\n", dmp.DiffPrettyText(diffs))
		}
	}
}

func (vc *VerifyCommand) statusColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if vc.noColor {
		c.DisableColor()
	}

	return c
}
