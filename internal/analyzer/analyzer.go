// Package analyzer is the runner: it ties the pipeline stages together —
// walk the root, dispatch each file to its extractor, resolve each import
// specifier, merge into the graph, and persist or reuse the snapshot.
// Everything downstream (finding engines, query API, report assembly)
// reads only the Snapshot this package produces.
package analyzer

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/extractor"
	"github.com/1homsi/loctree/internal/logging"
	"github.com/1homsi/loctree/internal/model"
	"github.com/1homsi/loctree/internal/resolver"
	"github.com/1homsi/loctree/internal/snapshot"
	"github.com/1homsi/loctree/internal/walk"
)

// Options configures one Run.
type Options struct {
	Root    string
	Config  *config.Config // nil means config.Load(Root) is used
	UseCache bool           // when true, Run loads and diffs against the prior snapshot
}

// Outcome is the result of one analyzer run: the snapshot plus whether the
// walk hit the configured analyze-limit (a partial section).
type Outcome struct {
	Snapshot    *snapshot.Snapshot
	Diagnostics []error
	Partial     bool
}

// Run executes one full pipeline pass: walk, extract, resolve, build,
// persist. It is the sole entrypoint every CLI command (scan, dead,
// cycles, twins, health, audit, query) goes through to get a Snapshot.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errs.IO(opts.Root, err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg, err = config.Load(root)
		if err != nil {
			return nil, err
		}
	}

	store := snapshot.NewStore(root)
	var prior *snapshot.Snapshot
	if opts.UseCache {
		prior, err = store.Load()
		if err != nil {
			return nil, err
		}
	} else {
		prior = snapshot.Empty(root)
	}

	wres, err := walk.Walk(root, cfg)
	if err != nil {
		return nil, errs.IO(root, err)
	}

	refreshed, diagnostics, err := snapshot.Refresh(ctx, prior, root, wres.Paths)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, errs.Cancelled(cerr)
		}
		return nil, err
	}

	resolveEntries(cfg, refreshed)

	if err := store.Save(refreshed); err != nil {
		return nil, err
	}

	for _, d := range diagnostics {
		if e, ok := d.(*errs.Error); ok && e.Kind == errs.ParseErr {
			continue // already logged at debug level by the extractor
		}
		logging.Warnf("analyzer: %v", d)
	}

	return &Outcome{Snapshot: refreshed, Diagnostics: diagnostics, Partial: wres.Partial}, nil
}

// resolveEntries runs the path resolver over every import in every entry,
// filling in Import.Resolved (or Import.Unresolved) in place. It runs
// after extraction and before the entries are handed to graph.Build.
func resolveEntries(cfg *config.Config, snap *snapshot.Snapshot) {
	files := make([]model.FileID, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		files = append(files, e.Analysis.File.ID)
	}

	res := resolver.New(cfg, files)
	var warnings []string
	for i := range snap.Entries {
		fa := &snap.Entries[i].Analysis
		for j := range fa.Imports {
			imp := &fa.Imports[j]
			raw := imp.Raw
			if imp.Kind == model.ModDecl {
				// `mod foo;` names a submodule by identifier; it sits
				// beside the declaring file (foo.rs) or as foo/mod.rs, so
				// resolution reuses the resolver's relative-path step by
				// spelling it as a "./"-prefixed specifier.
				raw = "./" + raw
			}
			target, rerr := res.Resolve(fa.File.ID, fa.File.Language, raw)
			if rerr != nil {
				imp.Unresolved = rerr.Error()
				warnings = append(warnings, rerr.Error())
				continue
			}
			imp.Resolved = target
		}
		for j := range fa.Invocations {
			fa.Invocations[j].File = fa.File.ID
		}
	}
	sort.Strings(warnings) // not returned: each reason stays on its import as Import.Unresolved
}
