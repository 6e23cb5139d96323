// Package scan implements `loctree scan`: walk the tree and refresh the
// snapshot, printing a one-line summary.
package scan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/errs"
)

// Command builds the `scan` subcommand.
func Command() *cobra.Command {
	var initConfig bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Walk the tree and refresh the snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := cli.ReadCommonFlags(cmd)
			if err != nil {
				return err
			}
			cli.ApplyColorMode(flags.Color)
			if len(args) > 0 {
				flags.Root = args[0]
			}

			if initConfig {
				if err := config.WriteDefault(flags.Root); err != nil {
					return errs.IO(flags.Root, err)
				}
				fmt.Println("wrote .loctree.yaml")
				return nil
			}

			cfg, err := cli.BuildConfig(flags)
			if err != nil {
				return err
			}
			outcome, err := analyzer.Run(cmd.Context(), analyzer.Options{Root: flags.Root, Config: cfg, UseCache: true})
			if err != nil {
				return err
			}

			fmt.Printf("analyzed %d file(s)", len(outcome.Snapshot.Entries))
			if outcome.Partial {
				fmt.Print(" (partial: --limit reached)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&initConfig, "init", false, "scaffold a .loctree.yaml with the built-in defaults and exit")
	return cmd
}
