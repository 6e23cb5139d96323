package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/model"
)

func newTestResolver(files ...string) *Resolver {
	cfg := config.Default("")
	ids := make([]model.FileID, len(files))
	for i, f := range files {
		ids[i] = model.FileID(f)
	}
	return New(cfg, ids)
}

func TestResolveRelativeExact(t *testing.T) {
	r := newTestResolver("src/a.ts", "src/b.ts")
	target, err := r.Resolve("src/a.ts", model.LangJavaScript, "./b.ts")
	require.NoError(t, err)
	assert.Equal(t, model.FileID("src/b.ts"), target)
}

func TestResolveRelativeExtensionSearch(t *testing.T) {
	r := newTestResolver("src/a.ts", "src/b.tsx")
	target, err := r.Resolve("src/a.ts", model.LangJavaScript, "./b")
	require.NoError(t, err)
	assert.Equal(t, model.FileID("src/b.tsx"), target)
}

func TestResolveRelativeIndexFile(t *testing.T) {
	r := newTestResolver("src/a.ts", "src/util/index.ts")
	target, err := r.Resolve("src/a.ts", model.LangJavaScript, "./util")
	require.NoError(t, err)
	assert.Equal(t, model.FileID("src/util/index.ts"), target)
}

func TestResolveWorkspaceAlias(t *testing.T) {
	r := newTestResolver("src/util.ts", "other/a.ts")
	target, err := r.Resolve("other/a.ts", model.LangJavaScript, "@/util.ts")
	require.NoError(t, err)
	assert.Equal(t, model.FileID("src/util.ts"), target)
}

func TestResolvePackageRootRust(t *testing.T) {
	r := newTestResolver("config/mod.rs", "lib.rs")
	target, err := r.Resolve("lib.rs", model.LangRust, "crate::config")
	require.NoError(t, err)
	assert.Equal(t, model.FileID("config/mod.rs"), target)
}

func TestResolvePackageRootPython(t *testing.T) {
	r := newTestResolver("pkg/sub/mod.py", "main.py")
	target, err := r.Resolve("main.py", model.LangPython, "pkg.sub.mod")
	require.NoError(t, err)
	assert.Equal(t, model.FileID("pkg/sub/mod.py"), target)
}

func TestResolveExternalReturnsResolveWarning(t *testing.T) {
	r := newTestResolver("src/a.ts")
	_, err := r.Resolve("src/a.ts", model.LangJavaScript, "left-pad")
	require.Error(t, err)
}

func TestResolveUnresolvedRelativeReturnsError(t *testing.T) {
	r := newTestResolver("src/a.ts")
	_, err := r.Resolve("src/a.ts", model.LangJavaScript, "./missing")
	require.Error(t, err)
}
