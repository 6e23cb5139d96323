package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/graph"
	"github.com/1homsi/loctree/internal/model"
)

// S5: backend declares `#[cmd(rename_all = "camelCase")] fn
// save_user_data()`; frontend calls `invoke("saveUserData")`. No gap.
func TestDetectNoGapWhenRenameAllMatches(t *testing.T) {
	backend := model.FileAnalysis{
		File: model.File{ID: "backend.rs"},
		Commands: []model.CommandDecl{
			{Symbol: "save_user_data", Convention: model.CamelCase, Line: 10},
		},
	}
	frontend := model.FileAnalysis{
		File:        model.File{ID: "frontend.ts"},
		Invocations: []model.CommandInvocation{{Name: "saveUserData", Line: 5}},
	}
	g := graph.Build([]model.FileAnalysis{backend, frontend})

	report := Detect(g)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Unused)
}

// S6: backend declares `unused_handler`; no frontend call. unused_handlers
// emits it.
func TestDetectUnusedHandlerWhenNoInvocation(t *testing.T) {
	backend := model.FileAnalysis{
		File:     model.File{ID: "backend.rs"},
		Commands: []model.CommandDecl{{Symbol: "unused_handler", Line: 2}},
	}
	g := graph.Build([]model.FileAnalysis{backend})

	report := Detect(g)
	require.Contains(t, report.Unused, "unused_handler")
	assert.True(t, report.UnusedSymbolSet()["unused_handler"])
}

func TestDetectMissingHandlerWhenInvokedWithoutDeclaration(t *testing.T) {
	frontend := model.FileAnalysis{
		File:        model.File{ID: "frontend.ts"},
		Invocations: []model.CommandInvocation{{Name: "ghost", Line: 1}},
	}
	g := graph.Build([]model.FileAnalysis{frontend})

	report := Detect(g)
	require.Contains(t, report.Missing, "ghost")
	assert.Equal(t, []string{"ghost"}, report.MissingNames())
}

func TestDetectExplicitRenameWinsOverConvention(t *testing.T) {
	backend := model.FileAnalysis{
		File: model.File{ID: "backend.rs"},
		Commands: []model.CommandDecl{
			{Symbol: "save_user_data", Rename: "custom_name", Convention: model.CamelCase},
		},
	}
	frontend := model.FileAnalysis{
		File:        model.File{ID: "frontend.ts"},
		Invocations: []model.CommandInvocation{{Name: "custom_name"}},
	}
	g := graph.Build([]model.FileAnalysis{backend, frontend})

	report := Detect(g)
	assert.Empty(t, report.Missing)
	assert.Empty(t, report.Unused)
}
