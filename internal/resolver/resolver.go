// Package resolver implements the four-step import-specifier resolution
// order: relative path, workspace alias, package-root lookup, external.
// Deterministic tie-breaking (earliest extension in the search list, then
// lexicographically smallest path) favors stable, order-independent
// combination of graph data over map-iteration order.
package resolver

import (
	"path"
	"sort"
	"strings"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/errs"
	"github.com/1homsi/loctree/internal/model"
)

// Resolver resolves import specifiers against a fixed file set.
type Resolver struct {
	cfg     *config.Config
	exists  map[model.FileID]bool
	byDir   map[string][]model.FileID // directory -> file ids directly inside it
}

// New builds a Resolver over the given set of known in-tree files.
func New(cfg *config.Config, files []model.FileID) *Resolver {
	r := &Resolver{
		cfg:    cfg,
		exists: make(map[model.FileID]bool, len(files)),
		byDir:  make(map[string][]model.FileID),
	}
	for _, f := range files {
		r.exists[f] = true
		dir := path.Dir(string(f))
		r.byDir[dir] = append(r.byDir[dir], f)
	}
	return r
}

// Resolve resolves imp.Raw as imported from importer (a LangX source file).
// It returns the canonical target FileID, or ("", err) with err a
// *errs.Error(ResolveWarn) for External/ambiguous/unresolved specifiers —
// never a hard failure.
func (r *Resolver) Resolve(importer model.FileID, lang model.Language, raw string) (model.FileID, error) {
	spec := raw

	// Step 2: workspace alias, applied before relative-path rules.
	if aliased, ok := r.applyAlias(spec); ok {
		spec = aliased
		if target, ok := r.searchExtensions(path.Dir(string(importer)), spec, lang, true); ok {
			return target, nil
		}
	}

	// Step 1: relative path against the importer's directory.
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		if target, ok := r.searchExtensions(path.Dir(string(importer)), spec, lang, false); ok {
			return target, nil
		}
		return "", errs.Resolve(string(importer), 0, errUnresolved(spec))
	}

	// Step 3: package-root lookup for root-anchored module hierarchies
	// (systems-language crate::, Python absolute, CSS/HTML root-relative).
	switch lang {
	case model.LangRust:
		rootRelative := strings.ReplaceAll(strings.TrimPrefix(spec, "crate::"), "::", "/")
		if target, ok := r.searchExtensions("", rootRelative, lang, true); ok {
			return target, nil
		}
	case model.LangPython:
		rootRelative := strings.ReplaceAll(spec, ".", "/")
		if target, ok := r.searchExtensions("", rootRelative, lang, true); ok {
			return target, nil
		}
	case model.LangCSS, model.LangHTML:
		if target, ok := r.searchExtensions("", strings.TrimPrefix(spec, "/"), lang, true); ok {
			return target, nil
		}
	}

	// Step 4: external — a dependency-manifest entry, not part of the graph.
	return "", errs.Resolve(string(importer), 0, errExternal(spec))
}

// applyAlias rewrites a specifier's configured prefix, returning the
// rewritten path and true if a prefix matched.
func (r *Resolver) applyAlias(spec string) (string, bool) {
	for _, a := range r.cfg.Aliases {
		if strings.HasPrefix(spec, a.Prefix) {
			return a.Replacement + strings.TrimPrefix(spec, a.Prefix), true
		}
	}
	return "", false
}

// searchExtensions tries spec as an exact path, then each entry in the
// language's extension-search list, rooted at baseDir (relative resolution)
// or the project root (rootRelative). Deterministic tie-breaking: first
// list entry that yields a candidate wins; if that entry alone yields more
// than one lexically-distinct existing candidate (only possible via the
// "/index.*" wildcard entries) the lexicographically smallest wins.
func (r *Resolver) searchExtensions(baseDir, spec string, lang model.Language, rootRelative bool) (model.FileID, bool) {
	resolveTo := func(p string) model.FileID {
		if rootRelative {
			return model.FileID(path.Clean(p))
		}
		return model.FileID(path.Clean(path.Join(baseDir, p)))
	}

	if exact := resolveTo(spec); r.exists[exact] {
		return exact, true
	}

	for _, ext := range r.cfg.ExtensionSearch[lang] {
		if strings.HasPrefix(ext, "/") {
			candidates := r.globIndex(resolveTo(spec), ext)
			if len(candidates) == 1 {
				return candidates[0], true
			}
			if len(candidates) > 1 {
				sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
				return candidates[0], true
			}
			continue
		}
		if c := resolveTo(spec + ext); r.exists[c] {
			return c, true
		}
	}
	return "", false
}

// globIndex resolves an "/index.*"-style search entry (e.g. "/index.ts")
// against every file directly inside dir.
func (r *Resolver) globIndex(dir model.FileID, pattern string) []model.FileID {
	want := strings.TrimPrefix(pattern, "/")
	var out []model.FileID
	for _, f := range r.byDir[string(dir)] {
		if path.Base(string(f)) == want {
			out = append(out, f)
		}
	}
	return out
}

func errUnresolved(spec string) error { return &resolveError{spec: spec, reason: "not found"} }
func errExternal(spec string) error   { return &resolveError{spec: spec, reason: "external"} }

type resolveError struct {
	spec   string
	reason string
}

func (e *resolveError) Error() string { return e.spec + ": " + e.reason }
