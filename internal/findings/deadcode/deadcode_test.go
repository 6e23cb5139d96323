package deadcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// S3: main.ts re-exports foo from helpers.ts; nothing imports main.ts;
// lib entrypoint is main.ts. dead emits nothing; helpers.ts::foo is live.
func TestDeadEmptyWhenReexportedFromEntrypoint(t *testing.T) {
	helpers := model.FileAnalysis{
		File:    model.File{ID: "helpers.ts"},
		Exports: []model.Export{{Name: "foo", Kind: model.Value, Visibility: model.Public}},
	}
	main := model.FileAnalysis{
		File: model.File{ID: "main.ts"},
		Imports: []model.Import{
			{Raw: "./helpers", Resolved: "helpers.ts", Kind: model.ReExport, Names: []model.ImportedName{{Name: "foo"}}},
		},
		Exports: []model.Export{{Name: "foo", Visibility: model.Public, CanonicalOrigin: "helpers.ts"}},
	}
	g := graph.Build([]model.FileAnalysis{helpers, main})

	findings := Detect(g, config.Default("."))
	assert.Empty(t, findings)
}

func TestDeadReportsUnreferencedPublicExport(t *testing.T) {
	orphan := model.FileAnalysis{
		File:    model.File{ID: "orphan.ts"},
		Exports: []model.Export{{Name: "unused", Visibility: model.Public, Line: 4}},
	}
	g := graph.Build([]model.FileAnalysis{orphan})

	findings := Detect(g, config.Default("."))
	require.Len(t, findings, 1)
	assert.Equal(t, "unused", findings[0].Name)
	assert.Equal(t, model.FileID("orphan.ts"), findings[0].File)
}

func TestDeadSkipsEntrypointFiles(t *testing.T) {
	main := model.FileAnalysis{
		File:    model.File{ID: "main.rs"},
		Exports: []model.Export{{Name: "run", Visibility: model.Public}},
	}
	g := graph.Build([]model.FileAnalysis{main})

	findings := Detect(g, config.Default("."))
	assert.Empty(t, findings)
}

// Testable property #4: a symbol statically named-imported anywhere,
// even through a ReExport closure, is never reported dead.
func TestDeadSoundnessThroughReexportClosure(t *testing.T) {
	origin := model.FileAnalysis{
		File:    model.File{ID: "origin.ts"},
		Exports: []model.Export{{Name: "thing", Visibility: model.Public}},
	}
	bridge := model.FileAnalysis{
		File: model.File{ID: "bridge.ts"},
		Imports: []model.Import{
			{Raw: "./origin", Resolved: "origin.ts", Kind: model.ReExport, Names: []model.ImportedName{{Name: "thing"}}},
		},
		Exports: []model.Export{{Name: "thing", CanonicalOrigin: "origin.ts"}},
	}
	consumer := model.FileAnalysis{
		File: model.File{ID: "consumer.ts"},
		Imports: []model.Import{
			{Raw: "./bridge", Resolved: "bridge.ts", Kind: model.Static, Names: []model.ImportedName{{Name: "thing"}}},
		},
	}
	g := graph.Build([]model.FileAnalysis{origin, bridge, consumer})

	findings := Detect(g, config.Default("."))
	assert.Empty(t, findings)
}

// S6: an unused command-decorated handler is reported by the command-gap
// engine; dead never reports it, whether or not any frontend invokes it —
// command decoration exempts the export from import-liveness judgment
// entirely.
func TestDeadExemptsCommandsEvenWhenUnused(t *testing.T) {
	backend := model.FileAnalysis{
		File: model.File{ID: "backend.rs"},
		Exports: []model.Export{
			{Name: "unused_handler", Kind: model.Command, Visibility: model.Public},
		},
	}
	g := graph.Build([]model.FileAnalysis{backend})

	findings := Detect(g, config.Default("."))
	assert.Empty(t, findings)
	for _, f := range findings {
		assert.NotEqual(t, "unused_handler", f.Name)
	}
}
