// Package storage persists generated image binaries and hands back the
// public URL they will be served under.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore writes an image and returns its public reference URL.
type ImageStore interface {
	Put(data []byte, filename string) (string, error)
}

// DiskStore keeps images on the local filesystem under a single directory
// that the HTTP layer serves as static files.
type DiskStore struct {
	dir        string
	publicPath string
}

func NewDiskStore(dir, publicPath string) *DiskStore {
	return &DiskStore{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}
}

// Dir returns the backing directory, for the static file server.
func (s *DiskStore) Dir() string { return s.dir }

// PublicPath returns the URL prefix images are served under.
func (s *DiskStore) PublicPath() string { return s.publicPath }

func (s *DiskStore) Put(data []byte, filename string) (string, error) {
	// Reject path traversal in generated filenames.
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid filename %q", filename)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return s.publicPath + "/" + filename, nil
}

// Remove deletes a stored image by filename. Missing files are not an
// error; the image may never have been written.
func (s *DiskStore) Remove(filename string) error {
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename %q", filename)
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
