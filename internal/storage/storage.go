// Package storage persists finished media files.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage is the media storage interface. SaveVideo relocates a rendered
// file under the storage root and returns its final path.
type Storage interface {
	SaveVideo(sourcePath, filename string) (string, error)
	URL(filename string) string
}

// LocalStorage implements Storage on the local filesystem.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a LocalStorage rooted at baseDir, creating the
// directory if needed.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: abs, baseURL: baseURL}, nil
}

func (s *LocalStorage) SaveVideo(sourcePath, filename string) (string, error) {
	target := filepath.Join(s.baseDir, filename)

	srcAbs, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", fmt.Errorf("resolve source path: %w", err)
	}
	if srcAbs == target {
		return target, nil
	}

	if err := os.Rename(srcAbs, target); err != nil {
		// Rename fails across filesystems; fall back to copy+remove.
		if copyErr := copyFile(srcAbs, target); copyErr != nil {
			return "", fmt.Errorf("move video to storage: %w", copyErr)
		}
		_ = os.Remove(srcAbs)
	}
	return target, nil
}

func (s *LocalStorage) URL(filename string) string {
	return s.baseURL + "/" + filename
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// Compile-time check that LocalStorage implements Storage.
var _ Storage = (*LocalStorage)(nil)
