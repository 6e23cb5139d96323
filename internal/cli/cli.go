// Package cli holds the small set of concerns every loctree subcommand
// shares: a three-state auto/always/never color mode resolved over
// github.com/fatih/color, and a deprecated-command-alias table with a
// warn-on-stderr-and-forward mechanism.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1homsi/loctree/internal/config"
)

// ColorMode is an explicit three-state enum rather than a bare boolean
// --no-color flag.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates the --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("invalid --color value %q: must be auto, always, or never", s)
	}
}

// ApplyColorMode configures the global github.com/fatih/color state for
// the run. LOCTREE_NO_COLOR always wins over an explicit --color. In
// ColorAuto, fatih/color's own NoColor default (TTY detection via
// mattn/go-isatty) is left untouched.
func ApplyColorMode(mode ColorMode) {
	if os.Getenv("LOCTREE_NO_COLOR") != "" {
		color.NoColor = true
		return
	}
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
		// leave fatih/color's own TTY-detected default in place
	}
}

// Alias is a deprecated command name that warns and forwards to its
// replacement, e.g. "loctree zombie" -> "loctree dead".
type Alias struct {
	Old string
	New string
}

// Aliases is the fixed deprecated-command table: "zombie" is a redundant
// synonym for "dead", "index" for "scan".
var Aliases = []Alias{
	{Old: "zombie", New: "dead"},
	{Old: "index", New: "scan"},
}

// ResolveAlias returns the stable replacement for a deprecated command
// name, and whether name was in fact an alias.
func ResolveAlias(name string) (string, bool) {
	for _, a := range Aliases {
		if a.Old == name {
			return a.New, true
		}
	}
	return "", false
}

// WarnDeprecated prints the standard deprecation notice to stderr. A
// deprecated alias exits normally (0) after forwarding.
func WarnDeprecated(oldCmd, newCmd string) {
	fmt.Fprintf(os.Stderr, "[DEPRECATED] 'loctree %s' will be removed in a future release. Use: %s\n", oldCmd, newCmd)
}

// StrictFindingsError signals that a --strict run found one or more
// findings; the root command maps it to exit 1.
type StrictFindingsError struct {
	Count int
}

func (e *StrictFindingsError) Error() string {
	return fmt.Sprintf("%d finding(s) reported under --strict", e.Count)
}

// CommonFlags are the persistent flags every subcommand shares (--root,
// --color {auto,always,never}, --limit N, --exclude <glob>), registered
// once on the root command.
type CommonFlags struct {
	Root    string
	Color   ColorMode
	Limit   int
	Exclude []string
}

// RegisterCommonFlags attaches the shared persistent flags to cmd, meant
// to be called once on the root command.
func RegisterCommonFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("root", ".", "project root to analyze")
	cmd.PersistentFlags().String("color", "auto", "color output: auto, always, or never")
	cmd.PersistentFlags().Int("limit", 0, "maximum number of files to analyze (0 = unlimited)")
	cmd.PersistentFlags().StringArray("exclude", nil, "additional exclude glob (repeatable)")
}

// ReadCommonFlags resolves CommonFlags from a command's flag set,
// validating --color. Every subcommand calls this first thing in RunE.
func ReadCommonFlags(cmd *cobra.Command) (CommonFlags, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return CommonFlags{}, err
	}
	colorStr, err := cmd.Flags().GetString("color")
	if err != nil {
		return CommonFlags{}, err
	}
	mode, err := ParseColorMode(colorStr)
	if err != nil {
		return CommonFlags{}, err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return CommonFlags{}, err
	}
	exclude, err := cmd.Flags().GetStringArray("exclude")
	if err != nil {
		return CommonFlags{}, err
	}
	return CommonFlags{Root: root, Color: mode, Limit: limit, Exclude: exclude}, nil
}

// BuildConfig loads `.loctree.yaml` from flags.Root and overlays the
// --limit / --exclude flag values on top, so every subcommand resolves
// its working config identically.
func BuildConfig(flags CommonFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.Root)
	if err != nil {
		return nil, err
	}
	if flags.Limit > 0 {
		cfg.AnalyzeLimit = flags.Limit
	}
	if len(flags.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, flags.Exclude...)
	}
	return cfg, nil
}
