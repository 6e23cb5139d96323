// Package commands implements the "command/handler gaps" finding:
// declared backend command handlers vs. frontend invocations of those
// commands by string name, reconciled through the same rename_all/rename
// precedence internal/model.CommandDecl.EffectiveName implements
// (explicit rename wins over convention).
package commands

import (
	"sort"

	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// Declaration is one backend command handler, keyed by its effective
// (post-rename) name.
type Declaration struct {
	EffectiveName string
	File          model.FileID
	Symbol        string
	Line          int
}

// Invocation is one frontend call site naming a command by string.
type Invocation struct {
	Name string
	File model.FileID
	Line int
}

// Report is the full command-gap analysis for one snapshot.
type Report struct {
	Missing map[string][]Invocation  // invoked name -> every call site with no matching declaration
	Unused  map[string]Declaration   // declared effective name -> declaration with no invocation
}

// Detect builds the declared and invoked command sets and returns the two
// gap findings.
func Detect(g *graph.Graph) Report {
	declared := map[string]Declaration{}
	var invocations []Invocation

	for _, id := range g.FileIDs() {
		fa := g.Analyses[id]
		if fa == nil {
			continue
		}
		for _, cmd := range fa.Commands {
			declared[cmd.EffectiveName()] = Declaration{
				EffectiveName: cmd.EffectiveName(),
				File:          id,
				Symbol:        cmd.Symbol,
				Line:          cmd.Line,
			}
		}
		for _, inv := range fa.Invocations {
			invocations = append(invocations, Invocation{Name: inv.Name, File: id, Line: inv.Line})
		}
	}

	missing := map[string][]Invocation{}
	invoked := map[string]bool{}
	for _, inv := range invocations {
		invoked[inv.Name] = true
		if _, ok := declared[inv.Name]; !ok {
			missing[inv.Name] = append(missing[inv.Name], inv)
		}
	}
	for name := range missing {
		sort.Slice(missing[name], func(i, j int) bool {
			if missing[name][i].File != missing[name][j].File {
				return missing[name][i].File < missing[name][j].File
			}
			return missing[name][i].Line < missing[name][j].Line
		})
	}

	unused := map[string]Declaration{}
	for name, decl := range declared {
		if !invoked[name] {
			unused[name] = decl
		}
	}

	return Report{Missing: missing, Unused: unused}
}

// UnusedSymbolSet returns the set of declared symbol names (pre-rename,
// matching model.Export.Name as recorded by the extractors) that have no
// invocation. internal/findings/deadcode does not consult it: it exempts
// every command-kind export unconditionally.
func (r Report) UnusedSymbolSet() map[string]bool {
	out := make(map[string]bool, len(r.Unused))
	for _, decl := range r.Unused {
		out[decl.Symbol] = true
	}
	return out
}

// MissingNames returns every invoked-but-undeclared command name, sorted
// lexicographically.
func (r Report) MissingNames() []string {
	names := make([]string, 0, len(r.Missing))
	for n := range r.Missing {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// UnusedNames returns every declared-but-uninvoked effective command name,
// sorted lexicographically.
func (r Report) UnusedNames() []string {
	names := make([]string, 0, len(r.Unused))
	for n := range r.Unused {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
