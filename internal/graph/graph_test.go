package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/model"
)

func analysisOf(id string, imports []model.Import, exports []model.Export) model.FileAnalysis {
	return model.FileAnalysis{
		File:    model.File{ID: model.FileID(id)},
		Imports: imports,
		Exports: exports,
	}
}

func TestNew(t *testing.T) {
	g := New()
	assert.NotNil(t, g.Files)
	assert.NotNil(t, g.Analyses)
	assert.Empty(t, g.Edges)
}

func TestBuildEdgesAndReverseIndex(t *testing.T) {
	a := analysisOf("a.rs", []model.Import{
		{Raw: "./b", Resolved: "b.rs", Kind: model.Static},
	}, nil)
	b := analysisOf("b.rs", []model.Import{
		{Raw: "./a", Resolved: "a.rs", Kind: model.Static},
	}, nil)

	g := Build([]model.FileAnalysis{a, b})

	require.Len(t, g.Edges, 2)
	rev := g.ReverseIndex("b.rs")
	require.Len(t, rev, 1)
	assert.Equal(t, model.FileID("a.rs"), rev[0].From)
}

func TestBuildSkipsUnresolvedImports(t *testing.T) {
	a := analysisOf("a.ts", []model.Import{
		{Raw: "left-pad", Unresolved: "external", Kind: model.Static},
	}, nil)

	g := Build([]model.FileAnalysis{a})
	assert.Empty(t, g.Edges)
}

func TestSymbolIndex(t *testing.T) {
	a := analysisOf("a.rs", nil, []model.Export{{Name: "save", Line: 3}})
	b := analysisOf("b.rs", nil, []model.Export{{Name: "save", Line: 9}})

	g := Build([]model.FileAnalysis{a, b})
	locs := g.SymbolIndex("save")
	require.Len(t, locs, 2)
	assert.Equal(t, model.FileID("a.rs"), locs[0].File)
	assert.Equal(t, model.FileID("b.rs"), locs[1].File)
}

func TestReExportClosureFollowsChain(t *testing.T) {
	leaf := analysisOf("leaf.ts", nil, []model.Export{{Name: "foo", Line: 1}})
	mid := analysisOf("mid.ts", []model.Import{
		{Raw: "./leaf", Resolved: "leaf.ts", Kind: model.ReExport, Names: []model.ImportedName{{Name: "foo"}}},
	}, []model.Export{{Name: "foo", Line: 1, CanonicalOrigin: "leaf.ts"}})

	g := Build([]model.FileAnalysis{leaf, mid})

	origin, cascade := g.ReExportClosure("mid.ts", "foo")
	assert.Equal(t, model.FileID("leaf.ts"), origin)
	assert.False(t, cascade)
}

func TestReExportClosureDetectsCycle(t *testing.T) {
	a := analysisOf("a.ts", []model.Import{
		{Raw: "./b", Resolved: "b.ts", Kind: model.ReExport, Wildcard: true},
	}, nil)
	b := analysisOf("b.ts", []model.Import{
		{Raw: "./a", Resolved: "a.ts", Kind: model.ReExport, Wildcard: true},
	}, nil)

	g := Build([]model.FileAnalysis{a, b})

	_, cascade := g.ReExportClosure("a.ts", "foo")
	assert.True(t, cascade)
}
