package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorageRoundTrip(t *testing.T) {
	s := NewDiskStorage(t.TempDir())

	path, size, err := s.Save("ab12cd34", strings.NewReader("blob-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
	assert.Equal(t, "ab", filepath.Base(filepath.Dir(path)))

	rc, err := s.Open("ab12cd34")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "blob-bytes", string(got))

	require.NoError(t, s.Delete("ab12cd34"))
	_, err = s.Open("ab12cd34")
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStorageShortID(t *testing.T) {
	// Ids of two characters or fewer land in a directory named after
	// themselves rather than panicking on the shard slice.
	s := NewDiskStorage(t.TempDir())

	_, _, err := s.Save("ab", strings.NewReader("x"))
	require.NoError(t, err)

	rc, err := s.Open("ab")
	require.NoError(t, err)
	rc.Close()
}

func TestDiskStorageDeleteMissing(t *testing.T) {
	s := NewDiskStorage(t.TempDir())
	assert.Error(t, s.Delete("never-saved"))
}
