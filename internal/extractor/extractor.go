// Package extractor implements the lexical, per-language file analyzers.
// Each extractor is a deterministic function of content + path + extractor
// version: re-running it on identical bytes yields identical output.
// Extractors use regex-level lexers with lightweight state, a two-pass
// (bind, then resolve) shape deliberately chosen over a real parser —
// fast, dependency-free, and tolerant of unparseable/partial source.
package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/logging"
	"github.com/1homsi/loctree/internal/model"
)

// Extractor is the contract every language extractor implements.
type Extractor interface {
	Language() model.Language
	Version() int
	Analyze(content []byte, relPath string) (model.FileAnalysis, error)
}

// registry maps a file extension (lowercase, with leading dot) to the
// extractor responsible for it. Adding a language means adding a tag and an
// extractor function, not growing an open-ended object hierarchy.
var registry = map[string]Extractor{}

func register(exts []string, e Extractor) {
	for _, ext := range exts {
		registry[ext] = e
	}
}

func init() {
	register([]string{".rs"}, NewRust())
	register([]string{".py", ".pyi"}, NewPython())
	register([]string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}, NewJSTS())
	register([]string{".html", ".htm"}, NewHTML())
	register([]string{".css"}, NewCSS())
}

// For looks up the extractor responsible for a path by its extension.
// Returns (nil, false) for unrecognized extensions; the runner skips such
// files entirely rather than emitting an empty analysis for them.
func For(path string) (Extractor, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := registry[ext]
	return e, ok
}

// Result pairs a completed FileAnalysis with any non-fatal parse diagnostic.
type Result struct {
	Analysis model.FileAnalysis
	// Warning is non-nil for a ParseError (Analysis is still usable, empty)
	// or an IoError (Analysis is zero, so the runner drops the file).
	Warning error
}

// RunAll dispatches every path to its extractor using a work-stealing
// worker pool sized to the machine's parallelism (golang.org/x/sync/
// errgroup.Group with SetLimit), per the concurrency model: extraction is
// CPU-bound and has no suspension points, so files are simply handed out to
// GOMAXPROCS workers. The cancellation token is checked between files, and
// partial results are never merged into a result set on cancellation.
func RunAll(ctx context.Context, root string, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))

	for i, relPath := range paths {
		i, relPath := i, relPath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, ok := For(relPath)
			if !ok {
				return nil
			}
			full := filepath.Join(root, relPath)
			info, err := os.Stat(full)
			if err != nil {
				logging.Warnf("extractor: stat %s: %v", relPath, err)
				results[i] = Result{Warning: errs.IO(relPath, err)}
				return nil
			}
			content, err := os.ReadFile(full)
			if err != nil {
				logging.Warnf("extractor: read %s: %v", relPath, err)
				results[i] = Result{Warning: errs.IO(relPath, err)}
				return nil
			}
			fa, err := e.Analyze(content, relPath)
			if err != nil {
				logging.Debugf("extractor: parse %s: %v", relPath, err)
				results[i] = Result{
					Analysis: emptyAnalysis(e, relPath, content, info.ModTime().Unix()),
					Warning:  errs.Parse(relPath, err),
				}
				return nil
			}
			fillFileMeta(&fa, e, relPath, content, info.ModTime().Unix())
			results[i] = Result{Analysis: fa}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func emptyAnalysis(e Extractor, relPath string, content []byte, modTimeUnix int64) model.FileAnalysis {
	fa := model.FileAnalysis{}
	fillFileMeta(&fa, e, relPath, content, modTimeUnix)
	return fa
}

// lineAt converts a byte offset into a 1-based line number, for extractors
// that scan with FindAllStringSubmatchIndex over the whole file rather than
// line-by-line (css, html).
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func fillFileMeta(fa *model.FileAnalysis, e Extractor, relPath string, content []byte, modTimeUnix int64) {
	sum := sha256.Sum256(content)
	fa.File.ID = model.FileID(filepath.ToSlash(relPath))
	fa.File.Language = e.Language()
	fa.File.ContentHash = hex.EncodeToString(sum[:])
	fa.File.ByteLength = len(content)
	fa.File.LineCount = strings.Count(string(content), "\n") + 1
	fa.File.ExtractorVersion = e.Version()
	fa.File.ModTimeUnix = modTimeUnix
}
