package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1homsi/loctree/internal/config"
	"github.com/1homsi/loctree/internal/model"
)

func defaultTestConfig(root string) *config.Config {
	cfg := config.Default(root)
	cfg.UseGitignore = false
	return cfg
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunResolvesStaticImportsIntoEdges(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", `import { helper } from './b';`)
	writeFile(t, root, "b.ts", `export function helper() {}`)

	out, err := Run(context.Background(), Options{Root: root})
	require.NoError(t, err)
	require.False(t, out.Partial)

	g := out.Snapshot.Graph()
	rev := g.ReverseIndex("b.ts")
	require.Len(t, rev, 1)
	assert.Equal(t, model.FileID("a.ts"), rev[0].From)
	assert.Equal(t, model.Static, rev[0].Kind)
}

func TestRunResolvesRustModDecl(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib.rs", "mod config;\n")
	writeFile(t, root, "config.rs", "pub struct Config {}\n")

	out, err := Run(context.Background(), Options{Root: root})
	require.NoError(t, err)

	g := out.Snapshot.Graph()
	rev := g.ReverseIndex("config.rs")
	require.Len(t, rev, 1)
	assert.Equal(t, model.ModDecl, rev[0].Kind)
}

func TestRunMarksExternalSpecifiersUnresolved(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", `import left from 'left-pad';`)

	out, err := Run(context.Background(), Options{Root: root})
	require.NoError(t, err)

	fa := out.Snapshot.Graph().Analyses["a.ts"]
	require.NotNil(t, fa)
	require.Len(t, fa.Imports, 1)
	assert.Empty(t, fa.Imports[0].Resolved)
	assert.NotEmpty(t, fa.Imports[0].Unresolved)
}

func TestRunRespectsAnalyzeLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "export const a = 1;")
	writeFile(t, root, "b.ts", "export const b = 1;")
	writeFile(t, root, "c.ts", "export const c = 1;")

	cfg := defaultTestConfig(root)
	cfg.AnalyzeLimit = 2

	out, err := Run(context.Background(), Options{Root: root, Config: cfg})
	require.NoError(t, err)
	assert.True(t, out.Partial)
	assert.Len(t, out.Snapshot.Entries, 2)
}
