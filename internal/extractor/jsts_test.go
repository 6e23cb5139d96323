package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/model"
)

func TestJSTSAnalyzeESModuleImportsAndExports(t *testing.T) {
	src := []byte(`import { helper } from './util';
export function run() {}
`)
	fa, err := NewJSTS().Analyze(src, "a.ts")
	require.NoError(t, err)
	require.Len(t, fa.Imports, 1)
	assert.Equal(t, "./util", fa.Imports[0].Raw)
	assert.Equal(t, model.Static, fa.Imports[0].Kind)
	require.Len(t, fa.Exports, 1)
	assert.Equal(t, "run", fa.Exports[0].Name)
}

func TestJSTSAnalyzeCommonJSPropertyExport(t *testing.T) {
	src := []byte(`module.exports.helper = function() {};
exports.other = 1;
`)
	fa, err := NewJSTS().Analyze(src, "a.js")
	require.NoError(t, err)
	require.Len(t, fa.Exports, 2)
	assert.Equal(t, "helper", fa.Exports[0].Name)
	assert.Equal(t, "other", fa.Exports[1].Name)
}

func TestJSTSAnalyzeCommonJSListExport(t *testing.T) {
	src := []byte(`module.exports = { a, b: bRenamed };
`)
	fa, err := NewJSTS().Analyze(src, "a.js")
	require.NoError(t, err)
	require.Len(t, fa.Exports, 2)
	assert.Equal(t, "a", fa.Exports[0].Name)
	assert.Equal(t, "b", fa.Exports[1].Name)
}

func TestJSTSAnalyzeCommonJSNameExport(t *testing.T) {
	src := []byte(`module.exports = MyClass;
`)
	fa, err := NewJSTS().Analyze(src, "a.js")
	require.NoError(t, err)
	require.Len(t, fa.Exports, 1)
	assert.Equal(t, "default", fa.Exports[0].Name)
	assert.Equal(t, "MyClass", fa.Exports[0].LocalName)
}

func TestJSTSAnalyzeInvokeCallSite(t *testing.T) {
	src := []byte(`await invoke("save_user_data");
`)
	fa, err := NewJSTS().Analyze(src, "front.ts")
	require.NoError(t, err)
	require.Len(t, fa.Invocations, 1)
	assert.Equal(t, "save_user_data", fa.Invocations[0].Name)
}
