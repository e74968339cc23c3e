// Package store contains the complaint persistence layer. The canonical
// backend is a single JSON document; a Postgres-backed implementation of the
// same interface lives in internal/repository for larger deployments.
package store

import (
	"context"
	"errors"

	"github.com/civicpulse/civicpulse/internal/model"
)

var (
	// ErrNotFound is exported so callers elsewhere can compare errors using
	// errors.Is.
	ErrNotFound = errors.New("complaint not found")
)

// Store is the durable complaint collection. Appends must be serialized:
// no two Append calls may interleave their read and write phases.
type Store interface {
	// Append durably adds a complaint at the head of the collection.
	Append(ctx context.Context, c *model.Complaint) error

	// ListAll returns the collection newest-first. The order is stable
	// across calls absent new writes.
	ListAll(ctx context.Context) ([]model.Complaint, error)

	// SetAnalysis attaches advisory classification metadata to a stored
	// complaint that has none yet. It never touches any other field.
	SetAnalysis(ctx context.Context, id string, a *model.Analysis) error
}
