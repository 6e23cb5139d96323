// Package root assembles the loctree cobra.Command tree and maps the
// error a RunE returns to a process exit code. Common persistent flags
// are registered once here and read back by each subcommand package.
package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/logging"

	"github.com/1homsi/loctree/cmd/loctree/audit"
	"github.com/1homsi/loctree/cmd/loctree/cycles"
	"github.com/1homsi/loctree/cmd/loctree/dead"
	"github.com/1homsi/loctree/cmd/loctree/health"
	"github.com/1homsi/loctree/cmd/loctree/query"
	"github.com/1homsi/loctree/cmd/loctree/scan"
	"github.com/1homsi/loctree/cmd/loctree/twins"
)

var rootCmd = &cobra.Command{
	Use:           "loctree",
	Short:         "Static import-graph intelligence for mixed-language projects",
	Long:          `loctree builds an import/reference graph over Rust, Python, JS/TS, HTML, and CSS sources and reports dead exports, import cycles, duplicated definitions, and command/handler gaps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cli.RegisterCommonFlags(rootCmd)
	rootCmd.AddCommand(scan.Command())
	rootCmd.AddCommand(dead.Command())
	rootCmd.AddCommand(cycles.Command())
	rootCmd.AddCommand(twins.Command())
	rootCmd.AddCommand(health.Command())
	rootCmd.AddCommand(audit.Command())
	rootCmd.AddCommand(query.Command())
}

// Execute runs the command tree and returns the process exit code,
// translating any *errs.Error to the code its Kind names and any
// *cli.StrictFindingsError to 1. Called once from main.main.
func Execute() int {
	applyDeprecatedAlias()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var aerr *errs.Error
		if errors.As(err, &aerr) {
			return aerr.Kind.ExitCode()
		}
		var sferr *cli.StrictFindingsError
		if errors.As(err, &sferr) {
			return 1
		}
		return 2 // unclassified cobra/usage error
	}
	logging.Sync()
	return 0
}

// applyDeprecatedAlias rewrites a deprecated subcommand name in os.Args
// to its stable replacement, warning on stderr first, before cobra ever
// sees it.
func applyDeprecatedAlias() {
	if len(os.Args) < 2 {
		return
	}
	if repl, ok := cli.ResolveAlias(os.Args[1]); ok {
		cli.WarnDeprecated(os.Args[1], repl)
		os.Args[1] = repl
	}
}
