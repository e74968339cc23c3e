package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/civicpulse/civicpulse/internal/model"
)

// document is the on-disk shape: one JSON object holding the full collection.
type document struct {
	Complaints []model.Complaint `json:"complaints"`
}

// dataFileMode is the mode of the data file and its lock file.
const dataFileMode = 0o640

// JSONStore persists the complaint collection in a single JSON file. Every
// write is a full read-modify-write of that file, so both phases run under a
// lock: a mutex serializes goroutines sharing one store, and an exclusive
// flock on a sibling lock file serializes writers in other processes (the
// worker binary and the API can share the data file over a volume). Reads
// need neither; the atomic rename in write guarantees they never observe a
// document mid-replace.
type JSONStore struct {
	mu       sync.Mutex
	path     string
	lockPath string
}

// NewJSONStore opens (or creates) the backing document. A missing file is
// initialized with an empty collection before first use.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &JSONStore{path: path, lockPath: path + ".lock"}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		lockFile, err := s.lock()
		if err != nil {
			return nil, err
		}
		defer unlock(lockFile)
		// Re-check under the lock: another process may have seeded (or
		// already written to) the document since the stat.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := s.write(&document{Complaints: []model.Complaint{}}); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, fmt.Errorf("stat data file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	return s, nil
}

// lock takes the cross-process write lock. The returned file must be handed
// back to unlock once the read-modify-write completes.
func (s *JSONStore) lock() (*os.File, error) {
	f, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, dataFileMode)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock data file: %w", err)
	}
	return f, nil
}

func unlock(f *os.File) {
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
	_ = f.Close()
}

// Append prepends the complaint so the collection stays newest-first.
func (s *JSONStore) Append(ctx context.Context, c *model.Complaint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lockFile, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock(lockFile)
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Complaints = append([]model.Complaint{*c}, doc.Complaints...)
	return s.write(doc)
}

// ListAll returns a copy of the collection, newest-first. Reads run lock-free
// against the last completed rename.
func (s *JSONStore) ListAll(ctx context.Context) ([]model.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]model.Complaint, len(doc.Complaints))
	copy(out, doc.Complaints)
	return out, nil
}

// SetAnalysis fills the analysis of a stored complaint that has none yet.
func (s *JSONStore) SetAnalysis(ctx context.Context, id string, a *model.Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lockFile, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock(lockFile)
	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Complaints {
		if doc.Complaints[i].ID != id {
			continue
		}
		if doc.Complaints[i].Analysis != nil {
			// First analysis wins; enrichment never overwrites.
			return nil
		}
		doc.Complaints[i].Analysis = a
		return s.write(doc)
	}
	return fmt.Errorf("set analysis for %s: %w", id, ErrNotFound)
}

func (s *JSONStore) read() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}
	if doc.Complaints == nil {
		doc.Complaints = []model.Complaint{}
	}
	return &doc, nil
}

// write replaces the document atomically: marshal to a sibling temp file,
// then rename over the original so readers never see a torn write.
func (s *JSONStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".complaints-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	// CreateTemp opens 0600; widen before the rename makes it the data file.
	if err := tmp.Chmod(dataFileMode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
