package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/wavedeck/internal/render"
)

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run_0001")
	files := render.OutputSet{
		"Par_file":    "NPROC = 16\n",
		"CMTSOLUTION": "PDE ...\n",
		"STATIONS":    "",
	}

	require.NoError(t, Write(dir, files))

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, want, string(got), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(files), "no temp files left behind")
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, render.OutputSet{"setup": "old"}))
	require.NoError(t, Write(dir, render.OutputSet{"setup": "new"}))

	got, err := os.ReadFile(filepath.Join(dir, "setup"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteBadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not_a_dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := Write(file, render.OutputSet{"setup": "content"})
	assert.Error(t, err)
}
