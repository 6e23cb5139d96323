// Package config loads the analyzer's project-level configuration:
// workspace aliases, per-language extension-search lists, twin risk
// weights, and walk excludes, via mapstructure/yaml tags and a
// github.com/spf13/viper search-path + env override.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/1homsi/loctree/internal/model"
)

// entrypointBasenames are the default basename stems treated as entrypoints
// (binaries, library roots, explicitly pinned files), independent of
// extension.
var entrypointBasenames = []string{"main", "lib", "index", "mod"}

// AliasConfig is one workspace alias prefix rewrite, e.g. "@/" -> "src/".
type AliasConfig struct {
	Prefix      string `mapstructure:"prefix" yaml:"prefix"`
	Replacement string `mapstructure:"replacement" yaml:"replacement"`
}

// TwinWeights holds the risk-score modifiers for the twins finding engine:
// score = Prod*prodCount + Dev*devCount.
type TwinWeights struct {
	Prod int `mapstructure:"prod" yaml:"prod"`
	Dev  int `mapstructure:"dev" yaml:"dev"`
}

// Config is the analyzer's resolved project configuration.
type Config struct {
	Root    string          `mapstructure:"root" yaml:"root"`
	Aliases []AliasConfig   `mapstructure:"aliases" yaml:"aliases"`
	// ExtensionSearch maps a language tag to its ordered extension-search
	// list used by the relative-path resolution step.
	ExtensionSearch map[model.Language][]string `mapstructure:"extensionSearch" yaml:"extensionSearch"`
	Exclude         []string                    `mapstructure:"exclude" yaml:"exclude"`
	UseGitignore    bool                        `mapstructure:"useGitignore" yaml:"useGitignore"`
	TwinWeights     TwinWeights                 `mapstructure:"twinWeights" yaml:"twinWeights"`
	AnalyzeLimit    int                         `mapstructure:"analyzeLimit" yaml:"analyzeLimit"`

	// Entrypoints names files (relative to Root, forward-slash) that are
	// never candidates for the dead-exports finding, on top of the
	// basename-pattern defaults (main.*, lib.*, index.*, mod.*) that
	// IsEntrypoint applies automatically.
	Entrypoints []string `mapstructure:"entrypoints" yaml:"entrypoints"`
	// TestPathPatterns are doublestar globs identifying dev-location files
	// for the twins engine: tests/, fixtures/, examples/ plus these.
	TestPathPatterns []string `mapstructure:"testPathPatterns" yaml:"testPathPatterns"`
	// ReportSelfImports controls whether a length-1 cycle (a file importing
	// itself) is reported by the cycles engine. Default false.
	ReportSelfImports bool `mapstructure:"reportSelfImports" yaml:"reportSelfImports"`
	// TightenWildcardLiveness controls the wildcard re-export liveness
	// policy: false (default) keeps every target export alive; true keeps
	// alive only names a downstream import actually names.
	TightenWildcardLiveness bool `mapstructure:"tightenWildcardLiveness" yaml:"tightenWildcardLiveness"`
	// CascadeMinLength is the minimum re-export chain length counted as a
	// cascade (default 3).
	CascadeMinLength int `mapstructure:"cascadeMinLength" yaml:"cascadeMinLength"`
}

// Default returns the built-in configuration used when no `.loctree.yaml`
// is present.
func Default(root string) *Config {
	return &Config{
		Root: root,
		Aliases: []AliasConfig{
			{Prefix: "@/", Replacement: "src/"},
		},
		ExtensionSearch: map[model.Language][]string{
			model.LangJavaScript: {".ts", ".tsx", ".d.ts", ".js", ".jsx", ".mjs", ".cjs", "/index.ts", "/index.tsx", "/index.js"},
			model.LangPython:     {".py", "/__init__.py"},
			model.LangRust:       {".rs", "/mod.rs"},
			model.LangCSS:        {".css"},
			model.LangHTML:       {".html", ".htm"},
		},
		Exclude:          []string{"**/node_modules/**", "**/target/**", "**/.git/**", "**/dist/**"},
		UseGitignore:     true,
		TwinWeights:      TwinWeights{Prod: 2, Dev: 1},
		AnalyzeLimit:     0,
		Entrypoints:      []string{},
		TestPathPatterns: []string{"**/tests/**", "**/test/**", "**/fixtures/**", "**/examples/**", "**/*_test.*", "**/*.test.*", "**/*.spec.*"},
		ReportSelfImports:       false,
		TightenWildcardLiveness: false,
		CascadeMinLength:        3,
	}
}

// Load reads `.loctree.yaml` from root (if present), overlays it onto the
// defaults, and returns the resolved configuration. A missing config file
// is not an error; viper.ConfigFileNotFoundError is treated as "use
// defaults", a deliberately tolerant config-loading style.
func Load(root string) (*Config, error) {
	cfg := Default(root)

	v := viper.New()
	v.SetConfigName(".loctree")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	v.SetEnvPrefix("LOCTREE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", filepath.Join(root, ".loctree.yaml"), err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Root = root
	return cfg, nil
}

// WriteDefault scaffolds a `.loctree.yaml` at root containing the
// built-in defaults, serialized directly with gopkg.in/yaml.v3 rather
// than through viper (which only reads config, never writes it). Used by
// `loctree scan --init`. Fails if the file already exists, to avoid
// silently clobbering a hand-edited config.
func WriteDefault(root string) error {
	path := filepath.Join(root, ".loctree.yaml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}

	data, err := yaml.Marshal(Default(root))
	if err != nil {
		return fmt.Errorf("config: marshal defaults: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// IsEntrypoint reports whether file is a configured or conventional
// entrypoint: explicitly pinned in cfg.Entrypoints, or its basename stem
// (without extension) matches one of the default entrypoint names (main,
// lib, index, mod — the last covering Rust's lib.rs/mod.rs convention).
// Entrypoints never contribute to the dead-exports finding.
func (c *Config) IsEntrypoint(file model.FileID) bool {
	s := string(file)
	for _, pinned := range c.Entrypoints {
		if pinned == s {
			return true
		}
	}
	base := filepath.Base(s)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, n := range entrypointBasenames {
		if stem == n {
			return true
		}
	}
	return false
}

// IsDevLocation reports whether file matches one of the configured
// test/fixture/example path patterns, used by the twins engine to split
// prod_count from dev_count.
func (c *Config) IsDevLocation(file model.FileID) bool {
	s := string(file)
	for _, pat := range c.TestPathPatterns {
		if ok, _ := doublestar.Match(pat, s); ok {
			return true
		}
	}
	return false
}
