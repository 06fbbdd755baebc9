// Package storage persists uploaded cover images. The store runs before any
// book row is written, so a failed upload never leaves a book without a cover.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CoverStore saves cover images and yields the URL they will be served under.
type CoverStore interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(coverURL string) error
}

// DiskCoverStore keeps covers on the local filesystem, served statically
// under /covers.
type DiskCoverStore struct {
	dir string
}

func NewDiskCoverStore(dir string) (*DiskCoverStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover directory: %w", err)
	}
	return &DiskCoverStore{dir: dir}, nil
}

// Dir returns the directory covers are written to, for the static file route.
func (s *DiskCoverStore) Dir() string {
	return s.dir
}

// Save writes the image under a fresh random name, keeping the original
// extension, and returns the public URL path.
func (s *DiskCoverStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported cover image type %q", ext)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write cover file: %w", err)
	}

	return "/covers/" + name, nil
}

// Remove deletes a stored cover by its public URL. A missing file is not an
// error; the cover may already be gone.
func (s *DiskCoverStore) Remove(coverURL string) error {
	name := strings.TrimPrefix(coverURL, "/covers/")
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid cover url %q", coverURL)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
