// Package deadcode implements the "dead exports" finding: a
// publicly-visible export with no reachable reference from anywhere in the
// graph, and whose declaring file is not an entrypoint. Liveness
// propagates through named imports, non-underscore-prefixed wildcard
// imports, and ReExport closures; command-decorated symbols are exempt
// and judged instead by internal/findings/commands.
package deadcode

import (
	"sort"
	"strings"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// Finding is one dead export.
type Finding struct {
	File model.FileID
	Name string
	Line int
	Kind model.ExportKind
}

// Detect returns every dead export, sorted by file then line then name for
// deterministic output.
func Detect(g *graph.Graph, cfg *config.Config) []Finding {
	live := computeLiveSymbols(g, cfg)

	var findings []Finding
	for _, id := range g.FileIDs() {
		if cfg.IsEntrypoint(id) {
			continue
		}
		fa := g.Analyses[id]
		if fa == nil {
			continue
		}
		for _, exp := range fa.Exports {
			if exp.Visibility != model.Public {
				continue
			}
			if exp.Kind == model.Command {
				// Command-decorated symbols are never dead on import
				// grounds alone, whether or not a frontend invokes them;
				// an unused handler is surfaced only through
				// commands.Report.Unused, never re-emitted here.
				continue
			}
			if live[symbolKey{id, exp.Name}] {
				continue
			}
			findings = append(findings, Finding{File: id, Name: exp.Name, Line: exp.Line, Kind: exp.Kind})
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Name < findings[j].Name
	})
	return findings
}

type symbolKey struct {
	file model.FileID
	name string
}

// computeLiveSymbols walks every import edge in the graph and marks live
// both the (imported-file, symbol) pair the edge names and the pair at its
// canonical origin, reached by following ReExport closures, propagating
// wildcard liveness per cfg.TightenWildcardLiveness.
func computeLiveSymbols(g *graph.Graph, cfg *config.Config) map[symbolKey]bool {
	live := map[symbolKey]bool{}

	markOrigin := func(from model.FileID, symbol string) {
		live[symbolKey{from, symbol}] = true
		origin, _ := g.ReExportClosure(from, symbol)
		live[symbolKey{origin, symbol}] = true
	}

	for _, e := range g.Edges {
		if e.To == "" {
			continue
		}
		switch e.Kind {
		case model.ModDecl, model.CommandBridge:
			continue
		}

		if e.Wild {
			targetExports := g.Analyses[e.To]
			if targetExports == nil {
				continue
			}
			for _, exp := range targetExports.Exports {
				if strings.HasPrefix(exp.Name, "_") {
					continue // underscore-prefixed convention: private, not live via wildcard
				}
				if cfg.TightenWildcardLiveness {
					// Tightened policy: a wildcard import only keeps a
					// name live if some downstream import actually
					// names it — approximated here by requiring the
					// name to appear in the importer's own named usage,
					// which a plain wildcard edge never carries, so
					// nothing is marked; named edges below cover it.
					continue
				}
				markOrigin(e.To, exp.Name)
			}
			continue
		}

		for _, n := range e.Names {
			name := n.Name
			if name == "*" {
				continue // namespace import handled by the Wild branch above
			}
			markOrigin(e.To, name)
		}
	}

	return live
}
