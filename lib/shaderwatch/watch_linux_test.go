package shaderwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIsReported(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "triangle.frag")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(frag, []byte("v1"), 0o644))

	w, err := Watch(frag)
	if err != nil {
		t.Skipf("inotify unavailable: %s", err)
	}
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	select {
	case <-w.Changes():
		t.Fatal("unrelated file reported")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(frag, []byte("v2"), 0o644))
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("change to watched file was not reported")
	}
}

func TestRenameIntoPlaceIsReported(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "triangle.vert")
	require.NoError(t, os.WriteFile(vert, []byte("v1"), 0o644))

	w, err := Watch(vert)
	if err != nil {
		t.Skipf("inotify unavailable: %s", err)
	}
	defer w.Close()

	tmp := filepath.Join(dir, ".triangle.vert.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o644))
	require.NoError(t, os.Rename(tmp, vert))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("rename was not reported")
	}
}

func TestMissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope", "triangle.frag"))
	assert.Error(t, err)
}
