// Package cycles implements `loctree cycles`: print import cycles.
package cycles

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/findings/cycles"
	"github.com/1homsi/loctree/internal/render"
)

// Command builds the `cycles` subcommand.
func Command() *cobra.Command {
	var jsonOut, strict bool

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Print import cycles",
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

			findings := cycles.Detect(outcome.Snapshot.Graph(), cfg)

			if jsonOut {
				if err := render.JSON(os.Stdout, findings); err != nil {
					return err
				}
			} else {
				render.Cycles(os.Stdout, findings)
			}

			if strict && len(findings) > 0 {
				return &cli.StrictFindingsError{Count: len(findings)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 1 if any cycle is found")
	return cmd
}
