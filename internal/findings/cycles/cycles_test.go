package cycles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

func analysisOf(id string, imports ...model.Import) model.FileAnalysis {
	return model.FileAnalysis{File: model.File{ID: model.FileID(id)}, Imports: imports}
}

// S1: two files importing each other is reported as one cycle [a, b].
func TestDetectReportsTwoFileCycle(t *testing.T) {
	a := analysisOf("a.ts", model.Import{Raw: "./b", Resolved: "b.ts", Kind: model.Static})
	b := analysisOf("b.ts", model.Import{Raw: "./a", Resolved: "a.ts", Kind: model.Static})
	g := graph.Build([]model.FileAnalysis{a, b})

	findings := Detect(g, config.Default("."))
	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Size)
	assert.Equal(t, []model.FileID{"a.ts", "b.ts", "a.ts"}, findings[0].Path)
}

// S2: lib.rs declares `mod config;`, config/mod.rs uses `super::Config` —
// a ModDecl edge must never be reported as a cycle.
func TestDetectExcludesModDecl(t *testing.T) {
	lib := analysisOf("lib.rs", model.Import{Raw: "config", Resolved: "config/mod.rs", Kind: model.ModDecl})
	cfgMod := analysisOf("config/mod.rs", model.Import{Raw: "super", Resolved: "lib.rs", Kind: model.Static})
	g := graph.Build([]model.FileAnalysis{lib, cfgMod})

	findings := Detect(g, config.Default("."))
	assert.Empty(t, findings)
}

func TestDetectSelfImportDefaultNotReported(t *testing.T) {
	a := analysisOf("a.ts", model.Import{Raw: "./a", Resolved: "a.ts", Kind: model.Static})
	g := graph.Build([]model.FileAnalysis{a})

	findings := Detect(g, config.Default("."))
	assert.Empty(t, findings)
}

func TestDetectSelfImportReportedWhenConfigured(t *testing.T) {
	a := analysisOf("a.ts", model.Import{Raw: "./a", Resolved: "a.ts", Kind: model.Static})
	g := graph.Build([]model.FileAnalysis{a})

	cfg := config.Default(".")
	cfg.ReportSelfImports = true
	findings := Detect(g, cfg)
	require.Len(t, findings, 1)
	assert.Equal(t, 1, findings[0].Size)
}

// A cascade is a chain of forwarding-only re-exports; the file that
// finally declares the symbol (and so adds a substantive export) is the
// chain's terminus, not a member of it.
func TestDetectCascadesFindsSubstanceFreeChain(t *testing.T) {
	leaf := model.FileAnalysis{
		File:    model.File{ID: "leaf.ts"},
		Exports: []model.Export{{Name: "foo"}},
	}
	mid := model.FileAnalysis{
		File:    model.File{ID: "mid.ts"},
		Imports: []model.Import{{Raw: "./leaf", Resolved: "leaf.ts", Kind: model.ReExport, Names: []model.ImportedName{{Name: "foo"}}}},
		Exports: []model.Export{{Name: "foo", CanonicalOrigin: "leaf.ts"}},
	}
	top := model.FileAnalysis{
		File:    model.File{ID: "top.ts"},
		Imports: []model.Import{{Raw: "./mid", Resolved: "mid.ts", Kind: model.ReExport, Names: []model.ImportedName{{Name: "foo"}}}},
		Exports: []model.Export{{Name: "foo", CanonicalOrigin: "mid.ts"}},
	}
	top2 := model.FileAnalysis{
		File:    model.File{ID: "top2.ts"},
		Imports: []model.Import{{Raw: "./top", Resolved: "top.ts", Kind: model.ReExport, Names: []model.ImportedName{{Name: "foo"}}}},
		Exports: []model.Export{{Name: "foo", CanonicalOrigin: "top.ts"}},
	}

	g := graph.Build([]model.FileAnalysis{leaf, mid, top, top2})
	cascades := DetectCascades(g, config.Default("."))
	require.Len(t, cascades, 1)
	assert.Equal(t, []model.FileID{"top2.ts", "top.ts", "mid.ts"}, cascades[0].Chain)
}
