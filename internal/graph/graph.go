// Package graph builds and indexes the unified import/reference graph from
// per-file analyses, as typed, multi-edge file nodes: nodes never hold
// owning references to each other, only IDs resolved through an
// arena-of-maps index.
package graph

import (
	"sort"

	"github.com/1homsi/loctree/internal/model"
)

// Edge is one typed reference between two files. Graphs are multi-edge: two
// files may be joined by both a Static and a ReExport edge simultaneously,
// each tracked as a distinct Edge value.
type Edge struct {
	From  model.FileID
	To    model.FileID
	Kind  model.ImportKind
	Names []model.ImportedName
	Wild  bool
	Line  int
}

// SymbolLocation is one declaration site for an exported symbol name, used
// by the symbol index (consumed by the twins engine and the query API).
type SymbolLocation struct {
	File model.FileID
	Line int
	Kind model.ExportKind
}

// Graph is the arena-owned, immutable-per-run import/reference graph.
type Graph struct {
	Files    map[model.FileID]*model.File
	Analyses map[model.FileID]*model.FileAnalysis
	Edges    []Edge

	reverse     map[model.FileID][]Edge
	bySource    map[model.FileID][]Edge
	symbolIndex map[string][]SymbolLocation
}

// New returns an empty graph with all indices initialized.
func New() *Graph {
	return &Graph{
		Files:       make(map[model.FileID]*model.File),
		Analyses:    make(map[model.FileID]*model.FileAnalysis),
		reverse:     make(map[model.FileID][]Edge),
		bySource:    make(map[model.FileID][]Edge),
		symbolIndex: make(map[string][]SymbolLocation),
	}
}

// Build merges a set of per-file analyses into one graph, computing the
// reverse index and symbol index eagerly, per spec.
func Build(analyses []model.FileAnalysis) *Graph {
	g := New()
	for i := range analyses {
		fa := analyses[i]
		f := fa.File
		g.Files[f.ID] = &f
		g.Analyses[f.ID] = &analyses[i]

		for _, imp := range fa.Imports {
			if imp.Resolved == "" {
				continue // unresolved imports never enter the graph as edges
			}
			e := Edge{
				From:  f.ID,
				To:    imp.Resolved,
				Kind:  imp.Kind,
				Names: imp.Names,
				Wild:  imp.Wildcard,
				Line:  imp.Line,
			}
			g.Edges = append(g.Edges, e)
			g.bySource[f.ID] = append(g.bySource[f.ID], e)
			g.reverse[imp.Resolved] = append(g.reverse[imp.Resolved], e)
		}

		for _, exp := range fa.Exports {
			g.symbolIndex[exp.Name] = append(g.symbolIndex[exp.Name], SymbolLocation{
				File: f.ID,
				Line: exp.Line,
				Kind: exp.Kind,
			})
		}
	}

	for name := range g.symbolIndex {
		locs := g.symbolIndex[name]
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].File != locs[j].File {
				return locs[i].File < locs[j].File
			}
			return locs[i].Line < locs[j].Line
		})
		g.symbolIndex[name] = locs
	}

	return g
}

// EdgesFrom returns the out-edges of file (callers filter by kind as needed).
func (g *Graph) EdgesFrom(file model.FileID) []Edge {
	return g.bySource[file]
}

// ReverseIndex returns the edges whose target is file — i.e. everything
// importing it.
func (g *Graph) ReverseIndex(file model.FileID) []Edge {
	return g.reverse[file]
}

// SymbolIndex returns every declaration site for an exported symbol name.
func (g *Graph) SymbolIndex(name string) []SymbolLocation {
	return g.symbolIndex[name]
}

// SymbolNames returns every exported symbol name in the graph, sorted
// lexicographically.
func (g *Graph) SymbolNames() []string {
	names := make([]string, 0, len(g.symbolIndex))
	for name := range g.symbolIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileIDs returns every file id in the graph, sorted lexicographically.
func (g *Graph) FileIDs() []model.FileID {
	ids := make([]model.FileID, 0, len(g.Files))
	for id := range g.Files {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ReExportClosure follows ReExport edges only, starting from file, looking
// for symbol, until it reaches a file that declares the symbol directly
// (not via re-export). If a cycle is found within the re-export subgraph,
// the longest acyclic prefix is returned and cascade is true.
func (g *Graph) ReExportClosure(file model.FileID, symbol string) (origin model.FileID, cascade bool) {
	visited := map[model.FileID]bool{}
	cur := file
	var last model.FileID
	for {
		if visited[cur] {
			return last, true
		}
		visited[cur] = true
		last = cur

		fa := g.Analyses[cur]
		if fa == nil {
			return cur, false
		}

		for _, exp := range fa.Exports {
			if exp.Name == symbol && exp.CanonicalOrigin == "" {
				return cur, false
			}
		}

		next := model.FileID("")
		for _, imp := range fa.Imports {
			if imp.Kind != model.ReExport || imp.Resolved == "" {
				continue
			}
			if imp.Wildcard {
				next = imp.Resolved
				break
			}
			for _, n := range imp.Names {
				effective := n.Name
				if n.Alias != "" {
					effective = n.Alias
				}
				if effective == symbol {
					next = imp.Resolved
					break
				}
			}
			if next != "" {
				break
			}
		}
		if next == "" {
			return cur, false
		}
		cur = next
	}
}
