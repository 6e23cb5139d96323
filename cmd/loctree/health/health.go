// Package health implements `loctree health`: an aggregate one-screen
// summary across all four finding engines — one rolled-up view per run
// over import-graph findings.
package health

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/reportsection"
)

// Command builds the `health` subcommand.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Aggregate summary across all finding engines",
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

			s := reportsection.Assemble(flags.Root, outcome.Snapshot.Graph(), cfg, outcome.Partial)

			bold := color.New(color.Bold)
			bold.Println("=== loctree health ===")
			fmt.Printf("files analyzed:    %d\n", s.FilesAnalyzed)
			fmt.Printf("dead exports:      %d\n", len(s.DeadExports))
			fmt.Printf("import cycles:     %d\n", len(s.Cycles))
			fmt.Printf("re-export cascades:%d\n", len(s.Cascades))
			fmt.Printf("duplicate symbols: %d\n", len(s.Duplicates))
			fmt.Printf("commands declared: %d\n", s.CommandCounts.Declared)
			fmt.Printf("commands invoked:  %d\n", s.CommandCounts.Invoked)
			fmt.Printf("missing handlers:  %d\n", len(s.MissingHandlers))
			fmt.Printf("unused handlers:   %d\n", len(s.UnusedHandlers))
			if s.Partial {
				fmt.Println(color.YellowString("partial: --limit reached before the walk finished"))
			}
			return nil
		},
	}
}
