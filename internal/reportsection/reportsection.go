// Package reportsection assembles the Section artifact: the single
// structured contract every renderer (CLI text/JSON, the HTML audit
// report) treats as ground truth. One stable struct, populated from all
// four finding engines plus the query API's Impact.
package reportsection

import (
	"sort"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/findings/commands"
	"github.com/1homsi/loctree/internal/findings/cycles"
	"github.com/1homsi/loctree/internal/findings/deadcode"
	"github.com/1homsi/loctree/internal/findings/twins"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
	"github.com/1homsi/loctree/internal/query"
)

// DynamicImportEntry is one unresolved dynamic-import expression recorded
// during extraction: a non-literal import target recorded as a raw
// expression rather than resolved to a FileID.
type DynamicImportEntry struct {
	File       model.FileID `json:"file"`
	Expression string       `json:"expression"`
}

// RefactorPlanEntry pairs a twin remediation with its blast radius,
// surfaced through `loctree query .refactor_plan`. Cascades contribute no
// entries.
type RefactorPlanEntry struct {
	Symbol     string              `json:"symbol"`
	Suggestion string              `json:"suggestion"`
	File       model.FileID        `json:"file"`
	Impact     []query.ImpactEntry `json:"impact"`
}

// Section is the ReportSection artifact: root path, files-analyzed count,
// ranked duplicates, cascades, dynamic-imports summary, missing/unused
// command handlers, command counts, and an optional graph payload.
type Section struct {
	Root          string                `json:"root"`
	FilesAnalyzed int                   `json:"files_analyzed"`
	Partial       bool                  `json:"partial"`

	DeadExports []deadcode.Finding `json:"dead_exports"`
	Cycles      []cycles.Finding   `json:"cycles"`
	Cascades    []cycles.Cascade   `json:"cascades"`
	Duplicates  []twins.Finding    `json:"duplicates"`

	DynamicImports []DynamicImportEntry `json:"dynamic_imports"`

	MissingHandlers []string `json:"missing_handlers"`
	UnusedHandlers  []string `json:"unused_handlers"`
	CommandCounts   struct {
		Declared int `json:"declared"`
		Invoked  int `json:"invoked"`
	} `json:"command_counts"`

	RefactorPlan []RefactorPlanEntry `json:"refactor_plan,omitempty"`

	OpenInBrowserBaseURL string      `json:"open_in_browser_base_url,omitempty"`
	GraphData            interface{} `json:"graph_data,omitempty"`
}

// Assemble builds the Section for one analyzed root, running all four
// finding engines over g and ranking each deterministically: duplicates
// by descending score, then descending prod_count, then lexicographically
// (already the order twins.Detect returns); cascades by their smallest
// file id (the order cycles.DetectCascades returns), dynamic entries by
// file then expression.
func Assemble(root string, g *graph.Graph, cfg *config.Config, partial bool) Section {
	cmdReport := commands.Detect(g)

	s := Section{
		Root:            root,
		FilesAnalyzed:   len(g.FileIDs()),
		Partial:         partial,
		DeadExports:     deadcode.Detect(g, cfg),
		Cycles:          cycles.Detect(g, cfg),
		Cascades:        cycles.DetectCascades(g, cfg),
		Duplicates:      twins.Detect(g, cfg),
		MissingHandlers: cmdReport.MissingNames(),
		UnusedHandlers:  cmdReport.UnusedNames(),
	}

	declared := 0
	invoked := 0
	for _, id := range g.FileIDs() {
		fa := g.Analyses[id]
		if fa == nil {
			continue
		}
		declared += len(fa.Commands)
		invoked += len(fa.Invocations)
		for _, expr := range fa.DynamicImports {
			s.DynamicImports = append(s.DynamicImports, DynamicImportEntry{File: id, Expression: expr})
		}
	}
	s.CommandCounts.Declared = declared
	s.CommandCounts.Invoked = invoked

	sort.Slice(s.DynamicImports, func(i, j int) bool {
		if s.DynamicImports[i].File != s.DynamicImports[j].File {
			return s.DynamicImports[i].File < s.DynamicImports[j].File
		}
		return s.DynamicImports[i].Expression < s.DynamicImports[j].Expression
	})

	s.RefactorPlan = buildRefactorPlan(g, s.Duplicates)
	return s
}

func buildRefactorPlan(g *graph.Graph, dups []twins.Finding) []RefactorPlanEntry {
	var plan []RefactorPlanEntry
	for _, d := range dups {
		for _, suggestion := range d.Refactors {
			plan = append(plan, RefactorPlanEntry{
				Symbol:     d.Symbol,
				Suggestion: suggestion,
				File:       d.Canonical,
				Impact:     query.Impact(g, d.Canonical, 2),
			})
		}
	}
	return plan
}
