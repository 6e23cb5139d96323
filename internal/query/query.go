// Package query implements the read-only, snapshot-bound lookups:
// who-imports, where-symbol, component-of, impact, and focus. Every
// function is a pure function of the graph it is handed — none mutate
// state; query consumers hold shared read references only. Impact's
// reverse-BFS-with-depth shape computes file-level blast radius.
package query

import (
	"path"
	"sort"

	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// ImportRef pairs an importing file with the edge kind it used.
type ImportRef struct {
	Importer model.FileID
	Kind     model.ImportKind
}

// WhoImports returns every file importing file, paired with the edge kind,
// sorted by importer then kind for deterministic output.
func WhoImports(g *graph.Graph, file model.FileID) []ImportRef {
	edges := g.ReverseIndex(file)
	refs := make([]ImportRef, 0, len(edges))
	for _, e := range edges {
		refs = append(refs, ImportRef{Importer: e.From, Kind: e.Kind})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Importer != refs[j].Importer {
			return refs[i].Importer < refs[j].Importer
		}
		return refs[i].Kind < refs[j].Kind
	})
	return refs
}

// SymbolHit is one declaration site returned by WhereSymbol.
type SymbolHit struct {
	File model.FileID
	Line int
	Kind model.ExportKind
}

// WhereSymbol returns every declaration site for an exported symbol name.
func WhereSymbol(g *graph.Graph, name string) []SymbolHit {
	locs := g.SymbolIndex(name)
	hits := make([]SymbolHit, 0, len(locs))
	for _, l := range locs {
		hits = append(hits, SymbolHit{File: l.File, Line: l.Line, Kind: l.Kind})
	}
	return hits
}

// ComponentOf returns the enclosing top-level directory (relative to
// root) for file, or "." if file sits at the project root.
func ComponentOf(file model.FileID) string {
	dir := path.Dir(string(file))
	if dir == "." {
		return "."
	}
	for {
		parent := path.Dir(dir)
		if parent == "." {
			return dir
		}
		dir = parent
	}
}

// ImpactEntry is one file reached by a reverse-import traversal, along
// with the shortest hop count at which it was reached.
type ImpactEntry struct {
	File  model.FileID
	Depth int
}

// Impact returns the transitive closure of reverse-imports of file, up to
// depth hops, used to estimate refactor blast radius. depth <= 0 means
// unbounded.
func Impact(g *graph.Graph, file model.FileID, depth int) []ImpactEntry {
	visitedDepth := map[model.FileID]int{file: 0}
	queue := []model.FileID{file}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curDepth := visitedDepth[cur]
		if depth > 0 && curDepth >= depth {
			continue
		}
		for _, e := range g.ReverseIndex(cur) {
			if _, seen := visitedDepth[e.From]; seen {
				continue
			}
			visitedDepth[e.From] = curDepth + 1
			queue = append(queue, e.From)
		}
	}

	entries := make([]ImpactEntry, 0, len(visitedDepth)-1)
	for f, d := range visitedDepth {
		if f == file {
			continue
		}
		entries = append(entries, ImpactEntry{File: f, Depth: d})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Depth != entries[j].Depth {
			return entries[i].Depth < entries[j].Depth
		}
		return entries[i].File < entries[j].File
	})
	return entries
}

// FocusConfig bounds a Focus neighborhood.
type FocusConfig struct {
	ForwardDepth int // d1: forward-import depth
	ReverseDepth int // d2: reverse-import depth
	MaxSize      int // size budget; 0 means unbounded
}

// Focus is a bounded neighborhood of a file: forward imports, reverse
// imports, and siblings sharing the parent directory, clipped to
// cfg.MaxSize.
type Focus struct {
	File     model.FileID
	Forward  []model.FileID
	Reverse  []model.FileID
	Siblings []model.FileID
	Clipped  bool
}

// ComputeFocus builds the holographic neighborhood around file: forward
// imports, reverse imports, and directory siblings, unioned and clipped
// to the configured size budget.
func ComputeFocus(g *graph.Graph, file model.FileID, cfg FocusConfig) Focus {
	f := Focus{File: file}

	f.Forward = bfsForward(g, file, cfg.ForwardDepth)
	rev := Impact(g, file, cfg.ReverseDepth)
	for _, e := range rev {
		f.Reverse = append(f.Reverse, e.File)
	}

	dir := path.Dir(string(file))
	for _, id := range g.FileIDs() {
		if id == file {
			continue
		}
		if path.Dir(string(id)) == dir {
			f.Siblings = append(f.Siblings, id)
		}
	}

	if cfg.MaxSize > 0 {
		total := len(f.Forward) + len(f.Reverse) + len(f.Siblings)
		if total > cfg.MaxSize {
			f.Clipped = true
			f.Forward, f.Reverse, f.Siblings = clip(f.Forward, f.Reverse, f.Siblings, cfg.MaxSize)
		}
	}
	return f
}

func bfsForward(g *graph.Graph, start model.FileID, depth int) []model.FileID {
	visitedDepth := map[model.FileID]int{start: 0}
	queue := []model.FileID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curDepth := visitedDepth[cur]
		if depth > 0 && curDepth >= depth {
			continue
		}
		for _, e := range g.EdgesFrom(cur) {
			if _, seen := visitedDepth[e.To]; seen {
				continue
			}
			visitedDepth[e.To] = curDepth + 1
			queue = append(queue, e.To)
		}
	}
	out := make([]model.FileID, 0, len(visitedDepth)-1)
	for f := range visitedDepth {
		if f != start {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// clip trims forward, then reverse, then siblings (in that priority order,
// forward/reverse being the more structurally meaningful neighbors) down
// to a combined budget, preserving each slice's existing sorted order.
func clip(forward, reverse, siblings []model.FileID, budget int) ([]model.FileID, []model.FileID, []model.FileID) {
	take := func(s []model.FileID, n int) []model.FileID {
		if n < 0 {
			n = 0
		}
		if n >= len(s) {
			return s
		}
		return s[:n]
	}
	f := take(forward, budget)
	budget -= len(f)
	r := take(reverse, budget)
	budget -= len(r)
	s := take(siblings, budget)
	return f, r, s
}
