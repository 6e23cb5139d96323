// Package twins implements the "duplicated definitions" finding: for
// every exported symbol name declared in two or more files, a composite
// risk score weighting production over dev/test locations, a
// canonicalized location, and free-form refactor suggestions. The score
// is a composite of named integer-count modifiers (production count,
// dev/test count) combined into one weighted value.
package twins

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// Location is one declaration site contributing to a twin finding.
type Location struct {
	File model.FileID
	Line int
	Kind model.ExportKind
	Dev  bool // true when File matches a configured test/fixture/example path
}

// Finding is one duplicated-symbol-name report.
type Finding struct {
	Symbol     string
	Locations  []Location
	ProdCount  int
	DevCount   int
	Score      int
	Canonical  model.FileID
	Refactors  []string
}

// Detect returns one Finding per exported symbol name appearing in >= 2
// files, ranked by descending score, then descending prod_count, then
// lexicographically.
func Detect(g *graph.Graph, cfg *config.Config) []Finding {
	var findings []Finding

	for _, name := range g.SymbolNames() {
		locs := g.SymbolIndex(name)
		if len(locs) < 2 {
			continue
		}

		f := Finding{Symbol: name}
		for _, loc := range locs {
			dev := cfg.IsDevLocation(loc.File)
			f.Locations = append(f.Locations, Location{File: loc.File, Line: loc.Line, Kind: loc.Kind, Dev: dev})
			if dev {
				f.DevCount++
			} else {
				f.ProdCount++
			}
		}
		f.Score = cfg.TwinWeights.Prod*f.ProdCount + cfg.TwinWeights.Dev*f.DevCount
		f.Canonical = canonicalize(g, f.Locations)
		f.Refactors = suggestRefactors(f)
		findings = append(findings, f)
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Score != findings[j].Score {
			return findings[i].Score > findings[j].Score
		}
		if findings[i].ProdCount != findings[j].ProdCount {
			return findings[i].ProdCount > findings[j].ProdCount
		}
		return findings[i].Symbol < findings[j].Symbol
	})
	return findings
}

// canonicalize picks the location with the most inbound imports; ties
// break by shallowest directory depth, then lexicographically on file id.
func canonicalize(g *graph.Graph, locs []Location) model.FileID {
	best := locs[0]
	bestInbound := len(g.ReverseIndex(best.File))
	bestDepth := depth(best.File)

	for _, loc := range locs[1:] {
		inbound := len(g.ReverseIndex(loc.File))
		d := depth(loc.File)
		switch {
		case inbound > bestInbound:
			best, bestInbound, bestDepth = loc, inbound, d
		case inbound == bestInbound && d < bestDepth:
			best, bestInbound, bestDepth = loc, inbound, d
		case inbound == bestInbound && d == bestDepth && loc.File < best.File:
			best, bestInbound, bestDepth = loc, inbound, d
		}
	}
	return best.File
}

func depth(id model.FileID) int {
	dir := path.Dir(string(id))
	if dir == "." {
		return 0
	}
	return strings.Count(dir, "/") + 1
}

// suggestRefactors produces free-form suggestion strings from templates.
func suggestRefactors(f Finding) []string {
	var out []string
	for _, loc := range f.Locations {
		if loc.File == f.Canonical {
			continue
		}
		if loc.Dev {
			out = append(out, fmt.Sprintf("delete %q in %s and import %q from canonical location %s", f.Symbol, loc.File, f.Symbol, f.Canonical))
		} else {
			out = append(out, fmt.Sprintf("re-export %q from %s instead of redefining it in %s", f.Symbol, f.Canonical, loc.File))
		}
	}
	if f.ProdCount > 1 {
		out = append(out, fmt.Sprintf("consider renaming one of the %d production definitions of %q to disambiguate call sites", f.ProdCount, f.Symbol))
	}
	return out
}
