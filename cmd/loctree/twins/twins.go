// Package twins implements `loctree twins`: print ranked duplicate
// symbol definitions.
package twins

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/findings/twins"
	"github.com/1homsi/loctree/internal/render"
)

const defaultStrictThreshold = 0 // any duplicate trips --strict by default

// Command builds the `twins` subcommand.
func Command() *cobra.Command {
	var jsonOut, strict bool
	var threshold int

	cmd := &cobra.Command{
		Use:   "twins",
		Short: "Print ranked duplicate definitions",
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

			findings := twins.Detect(outcome.Snapshot.Graph(), cfg)

			if jsonOut {
				if err := render.JSON(os.Stdout, findings); err != nil {
					return err
				}
			} else {
				render.Twins(os.Stdout, findings)
			}

			if strict {
				above := 0
				for _, f := range findings {
					if f.Score > threshold {
						above++
					}
				}
				if above > 0 {
					return &cli.StrictFindingsError{Count: above}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 1 if any duplicate scores above --threshold")
	cmd.Flags().IntVar(&threshold, "threshold", defaultStrictThreshold, "--strict fails on any duplicate scoring above this value")
	return cmd
}
