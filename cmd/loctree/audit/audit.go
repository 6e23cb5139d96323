// Package audit implements `loctree audit`: the full report Section
// rendered as a single static HTML page via go:embed + html/template.
package audit

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/reportsection"
)

//go:embed templates/audit.html.tmpl
var auditTemplateSource string

var auditTemplate = template.Must(template.New("audit").Parse(auditTemplateSource))

// Command builds the `audit` subcommand.
func Command() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Render the full report section to HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := cli.ReadCommonFlags(cmd)
			if err != nil {
				return err
			}
			cli.ApplyColorMode(flags.Color)

			cfg, err := cli.BuildConfig(flags)
			if err != nil {
				return err
			}
			outcome, err := analyzer.Run(cmd.Context(), analyzer.Options{Root: flags.Root, Config: cfg, UseCache: true})
			if err != nil {
				return err
			}

			section := reportsection.Assemble(flags.Root, outcome.Snapshot.Graph(), cfg, outcome.Partial)

			f, err := os.Create(outPath)
			if err != nil {
				return errs.IO(outPath, err)
			}
			defer f.Close()

			if err := auditTemplate.Execute(f, section); err != nil {
				return errs.IO(outPath, err)
			}
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "loctree-audit.html", "output HTML file path")
	return cmd
}
