package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/civicpulse/civicpulse/internal/model"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "complaints.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return s
}

func sampleComplaint(id string) *model.Complaint {
	return &model.Complaint{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		Status:       model.StatusSubmitted,
		MainCategory: "road",
		SubCategory:  "pothole",
		Description:  "Large pothole near the junction",
	}
}

func TestNewJSONStoreInitializesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.json")
	if _, err := NewJSONStore(path); err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if string(raw) == "" {
		t.Fatalf("expected initialized document")
	}
	// Opening an existing document must not clobber it.
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}
}

func TestAppendRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	lat := 18.52
	c := sampleComplaint("c-1")
	c.Location = &model.Location{Latitude: lat, Longitude: 73.85}
	c.Image = &model.ImageAttachment{FileName: "c-1.jpg", OriginalName: "pothole.jpg", MimeType: "image/jpeg", URL: "/uploads/c-1.jpg"}
	if err := s.Append(ctx, c); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 complaint, got %d", len(got))
	}
	if got[0].ID != "c-1" || got[0].Image.URL != "/uploads/c-1.jpg" || got[0].Location.Latitude != lat {
		t.Fatalf("round-trip mismatch: %+v", got[0])
	}
}

func TestListAllNewestFirstAndStable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, sampleComplaint(fmt.Sprintf("c-%d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	first, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if first[0].ID != "c-4" || first[4].ID != "c-0" {
		t.Fatalf("expected newest-first order, got %s ... %s", first[0].ID, first[4].ID)
	}
	second, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ without writes")
	}
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Append(ctx, sampleComplaint(fmt.Sprintf("c-%d", i)))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != n {
		t.Fatalf("lost updates: expected %d complaints, got %d", n, len(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

// Two store instances on the same path behave like the API and the worker
// binary sharing a data volume: the file lock must keep their read-modify-
// write cycles from interleaving.
func TestAppendsAcrossInstancesLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.json")
	first, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	second, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore (second): %v", err)
	}
	ctx := context.Background()
	const perInstance = 50
	var wg sync.WaitGroup
	errs := make(chan error, 2*perInstance)
	for i := 0; i < perInstance; i++ {
		for name, s := range map[string]*JSONStore{"a": first, "b": second} {
			wg.Add(1)
			go func(s *JSONStore, id string) {
				defer wg.Done()
				errs <- s.Append(ctx, sampleComplaint(id))
			}(s, fmt.Sprintf("%s-%d", name, i))
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got, err := first.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 2*perInstance {
		t.Fatalf("lost updates across instances: expected %d complaints, got %d", 2*perInstance, len(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestDataFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := s.Append(context.Background(), sampleComplaint("c-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat data file: %v", err)
	}
	if got := info.Mode().Perm(); got != dataFileMode {
		t.Fatalf("data file mode = %o, want %o", got, dataFileMode)
	}
}

func TestSetAnalysis(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Append(ctx, sampleComplaint("c-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	main := "road"
	sub := "pothole"
	conf := 0.9
	a := &model.Analysis{Provider: "openai", SuggestedMainCategory: &main, SuggestedSubCategory: &sub, Confidence: &conf}
	if err := s.SetAnalysis(ctx, "c-1", a); err != nil {
		t.Fatalf("SetAnalysis: %v", err)
	}
	got, _ := s.ListAll(ctx)
	if got[0].Analysis == nil || got[0].Analysis.Provider != "openai" {
		t.Fatalf("analysis not attached: %+v", got[0])
	}
	// A second analysis must not overwrite the first.
	other := &model.Analysis{Provider: "other"}
	if err := s.SetAnalysis(ctx, "c-1", other); err != nil {
		t.Fatalf("SetAnalysis (second): %v", err)
	}
	got, _ = s.ListAll(ctx)
	if got[0].Analysis.Provider != "openai" {
		t.Fatalf("enrichment overwrote existing analysis")
	}
	if err := s.SetAnalysis(ctx, "missing", a); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
