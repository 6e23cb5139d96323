// Package walk discovers the set of in-tree files the runner hands to the
// extractors, built on a doublestar/go-gitignore pairing: glob-based
// project excludes layered on top of the root .gitignore.
package walk

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/1homsi/loctree/internal/config"
)

// Result is the outcome of a walk: the in-tree relative paths considered
// for extraction, in deterministic (lexicographic) order, plus whether the
// configured analyze-limit truncated the walk.
type Result struct {
	Paths   []string
	Partial bool
}

// Walk collects every regular file under root, skipping directories and
// files matched by cfg.Exclude (doublestar glob patterns) or, when
// cfg.UseGitignore is set, the root .gitignore. Files with an extension no
// extractor recognizes are still returned and count toward cfg.AnalyzeLimit;
// internal/extractor.For finds no extractor for them, so they produce no
// FileAnalysis and no snapshot entry.
func Walk(root string, cfg *config.Config) (Result, error) {
	var gi *ignore.GitIgnore
	if cfg.UseGitignore {
		if g, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			gi = g
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if excluded(rel, d.IsDir(), cfg.Exclude) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	sort.Strings(paths)

	partial := false
	if cfg.AnalyzeLimit > 0 && len(paths) > cfg.AnalyzeLimit {
		paths = paths[:cfg.AnalyzeLimit]
		partial = true
	}

	return Result{Paths: paths, Partial: partial}, nil
}

func excluded(rel string, isDir bool, patterns []string) bool {
	candidate := rel
	if isDir {
		candidate = rel + "/"
	}
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(strings.TrimSuffix(pat, "/**")+"/**", candidate); ok {
				return true
			}
		}
	}
	return false
}
