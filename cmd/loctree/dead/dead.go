// Package dead implements `loctree dead`: print exported symbols with no
// reachable reference anywhere in the graph.
package dead

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/findings/deadcode"
	"github.com/1homsi/loctree/internal/render"
)

// Command builds the `dead` subcommand.
func Command() *cobra.Command {
	var jsonOut, strict bool

	cmd := &cobra.Command{
		Use:   "dead",
		Short: "Print dead exports",
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

			g := outcome.Snapshot.Graph()
			findings := deadcode.Detect(g, cfg)

			if jsonOut {
				if err := render.JSON(os.Stdout, findings); err != nil {
					return err
				}
			} else {
				render.DeadExports(os.Stdout, findings)
			}

			if strict && len(findings) > 0 {
				return &cli.StrictFindingsError{Count: len(findings)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 1 if any dead export is found")
	return cmd
}
