package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PublicPathPrefix is where the HTTP layer serves stored images from.
const PublicPathPrefix = "/uploads/"

// DiskStore writes images into a directory served as static files.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the uploads directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir exposes the backing directory for static file serving.
func (d *DiskStore) Dir() string {
	return d.dir
}

// Save streams the image to disk and returns its public path.
func (d *DiskStore) Save(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// filepath.Base guards against path traversal in the stored name.
	name := filepath.Base(fileName)
	path := filepath.Join(d.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close image file: %w", err)
	}
	return PublicPathPrefix + name, nil
}

// Load reads the stored image bytes.
func (d *DiskStore) Load(ctx context.Context, fileName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.dir, filepath.Base(fileName)))
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return data, nil
}

// Remove deletes the stored image.
func (d *DiskStore) Remove(ctx context.Context, fileName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(filepath.Join(d.dir, filepath.Base(fileName)))
}
