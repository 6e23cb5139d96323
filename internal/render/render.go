// Package render prints finding-engine output to a terminal or as JSON.
// Table layout uses fixed-width columns with a colored status cell,
// rendered through github.com/fatih/color rather than raw ANSI escapes.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/1homsi/loctree/internal/findings/cycles"
	"github.com/1homsi/loctree/internal/findings/deadcode"
	"github.com/1homsi/loctree/internal/findings/twins"
)

// JSON writes v as indented JSON, the common encoding used by every
// --json output mode across the CLI.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DeadExports prints the dead-exports table.
func DeadExports(w io.Writer, findings []deadcode.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, color.GreenString("no dead exports found"))
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintln(w, "FILE:LINE\tNAME")
	for _, f := range findings {
		fmt.Fprintf(w, "%s:%d\t%s\n", f.File, f.Line, color.YellowString(f.Name))
	}
}

// Cycles prints the import-cycle table.
func Cycles(w io.Writer, findings []cycles.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, color.GreenString("no import cycles found"))
		return
	}
	for _, f := range findings {
		fmt.Fprintf(w, "%s (%d files):\n", color.RedString("cycle"), f.Size)
		for _, id := range f.Path {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
}

// Twins prints the ranked duplicate-symbol table.
func Twins(w io.Writer, findings []twins.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, color.GreenString("no duplicated definitions found"))
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintln(w, "SCORE\tSYMBOL\tCANONICAL\tSITES")
	for _, f := range findings {
		fmt.Fprintf(w, "%5d\t%s\t%s\t%d\n", f.Score, color.CyanString(f.Symbol), f.Canonical, len(f.Locations))
	}
}
