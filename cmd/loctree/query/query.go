// Package query implements `loctree query .<selector>`: a jq-style
// selector over the snapshot's JSON form — marshal to JSON, then
// gjson.GetBytes, checking result.Exists() to distinguish "no match"
// from "empty value".
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/1homsi/loctree/internal/analyzer"
	"github.com/1homsi/loctree/internal/cli"
	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/reportsection"
)

// Command builds the `query` subcommand.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query .<selector>",
		Short: "jq-style selector over the snapshot's report-section JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := strings.TrimPrefix(args[0], ".")

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
			data, err := json.Marshal(section)
			if err != nil {
				return errs.Snapshot(err)
			}

			result := gjson.GetBytes(data, selector)
			if !result.Exists() {
				return errs.Usage(fmt.Errorf("query: selector %q matched nothing", args[0]))
			}

			fmt.Println(result.String())
			return nil
		},
	}
	return cmd
}
