package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCommandScansRootFlag(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "export const a = 1;")

	cmd := Command()
	cmd.Flags().String("root", ".", "")
	cmd.Flags().String("color", "auto", "")
	cmd.Flags().Int("limit", 0, "")
	cmd.Flags().StringArray("exclude", nil, "")
	cmd.SetArgs([]string{"--root", root})

	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(root, ".loctree", "snapshot.json"))
	require.NoError(t, err)
}
