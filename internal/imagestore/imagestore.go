// Package imagestore persists uploaded complaint photos. The disk backend
// serves files from a public uploads directory; the MinIO backend targets an
// S3 bucket for multi-instance deployments.
package imagestore

import (
	"context"
	"io"
)

// ImageStore saves and retrieves complaint photos by file name. File names
// are derived from the owning complaint id, so the photo stays recoverable
// from the record alone.
type ImageStore interface {
	// Save persists the image and returns the URL clients use to fetch it.
	Save(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (string, error)

	// Load returns the raw image bytes, for classification.
	Load(ctx context.Context, fileName string) ([]byte, error)

	// Remove deletes the image. Used as best-effort cleanup when a record
	// append fails after the image was already written.
	Remove(ctx context.Context, fileName string) error
}
