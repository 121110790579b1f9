package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSink_Download(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := DirSink{Dir: dir}

	loc, err := sink.Download(DefaultFilename, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cropped-image.png"), loc)

	// A second export replaces the first.
	_, err = sink.Download(DefaultFilename, []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestDirSink_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	loc, err := DirSink{Dir: dir}.Download("../../escape.png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.png"), loc)
}

func TestMemorySink(t *testing.T) {
	var sink MemorySink

	_, ok := sink.File(DefaultFilename)
	assert.False(t, ok)

	buf := []byte("png")
	loc, err := sink.Download(DefaultFilename, buf)
	require.NoError(t, err)
	assert.Equal(t, "memory:cropped-image.png", loc)

	buf[0] = 'x'
	got, ok := sink.File(DefaultFilename)
	require.True(t, ok)
	assert.Equal(t, "png", string(got), "sink keeps its own copy")
	assert.Equal(t, 1, sink.Count())
}
