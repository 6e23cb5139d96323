// Package cycles detects strongly-connected components in the import
// graph and, as a distinct pass, re-export cascades. Tarjan's algorithm
// runs over model.FileID file nodes (index/lowlink/onStack bookkeeping)
// restricted to the filtered edge subgraph.
package cycles

import (
	"sort"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// Finding is one reported import cycle.
type Finding struct {
	// Path is the shortest cycle recovered within the SCC, e.g.
	// [a.ts, b.ts, a.ts] — first and last entries equal.
	Path []model.FileID
	Size int // number of distinct files in the enclosing SCC
}

// Cascade is a chain of >= cfg.CascadeMinLength re-exports through files
// that add no substantive exports of their own — distinct from a cycle,
// never reported by Detect.
type Cascade struct {
	Chain []model.FileID
}

// participates reports the edge kinds that take part in cycle analysis;
// ModDecl (parent/child module declarations) and CommandBridge are
// excluded — they describe structural or cross-boundary relationships,
// not the import cycles this engine is looking for.
func participates(k model.ImportKind) bool {
	switch k {
	case model.Static, model.ReExport, model.SideEffect:
		return true
	default:
		return false
	}
}

// Detect runs Tarjan's SCC over the filtered subgraph and returns one
// Finding per SCC of size >= 2 (or size 1 with a self-loop when
// cfg.ReportSelfImports is set), deterministically ordered by the
// lexicographically smallest file id in each cycle.
func Detect(g *graph.Graph, cfg *config.Config) []Finding {
	adj := buildAdjacency(g)

	type state struct {
		index, lowlink int
		onStack        bool
	}
	var (
		index   = 0
		stack   []model.FileID
		visited = map[model.FileID]*state{}
		sccs    [][]model.FileID
	)

	ids := g.FileIDs()

	var strongConnect func(v model.FileID)
	strongConnect = func(v model.FileID) {
		visited[v] = &state{index: index, lowlink: index, onStack: true}
		index++
		stack = append(stack, v)

		for _, w := range adj[v] {
			ws := visited[w]
			if ws == nil {
				strongConnect(w)
				if visited[w].lowlink < visited[v].lowlink {
					visited[v].lowlink = visited[w].lowlink
				}
			} else if ws.onStack {
				if ws.index < visited[v].lowlink {
					visited[v].lowlink = ws.index
				}
			}
		}

		if visited[v].lowlink == visited[v].index {
			var nodes []model.FileID
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				visited[w].onStack = false
				nodes = append(nodes, w)
				if w == v {
					break
				}
			}
			if len(nodes) > 1 || (cfg.ReportSelfImports && hasSelfLoop(adj, nodes[0])) {
				sccs = append(sccs, nodes)
			}
		}
	}

	for _, id := range ids {
		if visited[id] == nil {
			strongConnect(id)
		}
	}

	findings := make([]Finding, 0, len(sccs))
	for _, scc := range sccs {
		findings = append(findings, Finding{
			Path: shortestCycle(adj, scc),
			Size: len(scc),
		})
	}

	sort.Slice(findings, func(i, j int) bool {
		return lexFirst(findings[i].Path) < lexFirst(findings[j].Path)
	})
	return findings
}

func lexFirst(path []model.FileID) model.FileID {
	if len(path) == 0 {
		return ""
	}
	min := path[0]
	for _, p := range path {
		if p < min {
			min = p
		}
	}
	return min
}

func hasSelfLoop(adj map[model.FileID][]model.FileID, v model.FileID) bool {
	for _, w := range adj[v] {
		if w == v {
			return true
		}
	}
	return false
}

func buildAdjacency(g *graph.Graph) map[model.FileID][]model.FileID {
	adj := map[model.FileID][]model.FileID{}
	for _, e := range g.Edges {
		if !participates(e.Kind) {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	for k := range adj {
		sort.Slice(adj[k], func(i, j int) bool { return adj[k][i] < adj[k][j] })
	}
	return adj
}

// shortestCycle recovers the shortest cycle inside an SCC by BFS from the
// lexicographically smallest member, restricted to edges whose endpoints
// are both inside the SCC, with deterministic tie-breaking on file id at
// every branch.
func shortestCycle(adj map[model.FileID][]model.FileID, scc []model.FileID) []model.FileID {
	inSCC := map[model.FileID]bool{}
	for _, n := range scc {
		inSCC[n] = true
	}
	start := lexFirst(scc)

	type step struct {
		node model.FileID
		path []model.FileID
	}
	queue := []step{{node: start, path: []model.FileID{start}}}
	visited := map[model.FileID]bool{start: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		neighbors := append([]model.FileID{}, adj[cur.node]...)
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })

		for _, next := range neighbors {
			if !inSCC[next] {
				continue
			}
			if next == start {
				return append(append([]model.FileID{}, cur.path...), start)
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			np := append(append([]model.FileID{}, cur.path...), next)
			queue = append(queue, step{node: next, path: np})
		}
	}
	// Unreachable for a true SCC of size >= 2, but fall back to the raw
	// membership list rather than panicking.
	sorted := append([]model.FileID{}, scc...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return append(sorted, sorted[0])
}

// DetectCascades finds re-export chains of length >= cfg.CascadeMinLength
// where every file in the chain adds no substantive export of its own
// (every export it carries is itself a re-export, CanonicalOrigin set).
// Distinct from Detect: a cascade is acyclic by construction. A cyclic
// re-export chain shows up only as the cascade return value of
// graph.ReExportClosure; internal/findings/deadcode ignores that value, so
// such chains are not reported anywhere.
func DetectCascades(g *graph.Graph, cfg *config.Config) []Cascade {
	min := cfg.CascadeMinLength
	if min < 3 {
		min = 3
	}

	reexportAdj := map[model.FileID][]model.FileID{}
	for _, e := range g.Edges {
		if e.Kind != model.ReExport {
			continue
		}
		reexportAdj[e.From] = append(reexportAdj[e.From], e.To)
	}
	for k := range reexportAdj {
		sort.Slice(reexportAdj[k], func(i, j int) bool { return reexportAdj[k][i] < reexportAdj[k][j] })
	}

	isSubstanceFree := func(id model.FileID) bool {
		fa := g.Analyses[id]
		if fa == nil {
			return true
		}
		for _, exp := range fa.Exports {
			if exp.CanonicalOrigin == "" {
				return false
			}
		}
		return true
	}

	var cascades []Cascade
	ids := g.FileIDs()
	for _, start := range ids {
		if !isSubstanceFree(start) {
			continue
		}
		chain := []model.FileID{start}
		visited := map[model.FileID]bool{start: true}
		cur := start
		for {
			next, ok := singleTarget(reexportAdj, cur)
			if !ok || visited[next] || !isSubstanceFree(next) {
				break
			}
			chain = append(chain, next)
			visited[next] = true
			cur = next
		}
		if len(chain) >= min {
			cascades = append(cascades, Cascade{Chain: chain})
		}
	}

	sort.Slice(cascades, func(i, j int) bool {
		return lexFirst(cascades[i].Chain) < lexFirst(cascades[j].Chain)
	})
	return cascades
}

func singleTarget(adj map[model.FileID][]model.FileID, from model.FileID) (model.FileID, bool) {
	targets := adj[from]
	if len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}
