package storage

import (
	"io"
	"os"
	"path/filepath"
)

// Storage persists uploaded media blobs keyed by public id.
type Storage interface {
	Save(publicID string, r io.Reader) (path string, size int64, err error)
	Open(publicID string) (io.ReadCloser, error)
	Delete(publicID string) error
}

// diskStorage implements Storage on the local filesystem. Files are
// sharded by the first two characters of the public id to keep directory
// sizes bounded.
type diskStorage struct {
	baseDir string
}

func NewDiskStorage(baseDir string) *diskStorage {
	return &diskStorage{baseDir: baseDir}
}

func (s *diskStorage) path(publicID string) string {
	shard := publicID
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join(s.baseDir, shard, publicID)
}

func (s *diskStorage) Save(publicID string, r io.Reader) (string, int64, error) {
	path := s.path(publicID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", 0, err
	}
	return path, size, nil
}

func (s *diskStorage) Open(publicID string) (io.ReadCloser, error) {
	return os.Open(s.path(publicID))
}

func (s *diskStorage) Delete(publicID string) error {
	return os.Remove(s.path(publicID))
}
