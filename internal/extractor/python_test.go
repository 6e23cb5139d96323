package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/model"
)

func TestPythonAnalyzeFromImportTopLevel(t *testing.T) {
	fa, err := NewPython().Analyze([]byte("from .util import helper\n"), "pkg/mod.py")
	require.NoError(t, err)
	require.Len(t, fa.Imports, 1)
	assert.Equal(t, model.Static, fa.Imports[0].Kind)
	assert.Equal(t, ".util", fa.Imports[0].Raw)
}

func TestPythonAnalyzeConditionalImportIsDynamic(t *testing.T) {
	src := "def load():\n    import json\n"
	fa, err := NewPython().Analyze([]byte(src), "pkg/mod.py")
	require.NoError(t, err)
	require.Len(t, fa.Imports, 1)
	assert.Equal(t, model.Dynamic, fa.Imports[0].Kind)
}

func TestPythonAnalyzeImportlibCallIsRecordedAsDynamic(t *testing.T) {
	src := "mod = importlib.import_module(name)\n"
	fa, err := NewPython().Analyze([]byte(src), "pkg/mod.py")
	require.NoError(t, err)
	require.Len(t, fa.DynamicImports, 1)
}

func TestPythonAnalyzeTopLevelDefAndClassAreExports(t *testing.T) {
	src := "def run():\n    pass\n\n\nclass Runner:\n    pass\n"
	fa, err := NewPython().Analyze([]byte(src), "pkg/mod.py")
	require.NoError(t, err)
	require.Len(t, fa.Exports, 2)
	assert.Equal(t, "run", fa.Exports[0].Name)
	assert.Equal(t, model.Value, fa.Exports[0].Kind)
	assert.Equal(t, "Runner", fa.Exports[1].Name)
	assert.Equal(t, model.Type, fa.Exports[1].Kind)
}

func TestPythonAnalyzeUnderscorePrefixedDefIsNotExported(t *testing.T) {
	fa, err := NewPython().Analyze([]byte("def _private():\n    pass\n"), "pkg/mod.py")
	require.NoError(t, err)
	assert.Empty(t, fa.Exports)
}
