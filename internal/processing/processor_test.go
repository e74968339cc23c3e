package processing

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/civicpulse/civicpulse/internal/imagestore"
	"github.com/civicpulse/civicpulse/internal/intake"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/store"
)

type stubClassifier struct {
	suggestion *model.ClassificationSuggestion
	err        error
}

func (s *stubClassifier) Classify(ctx context.Context, image []byte, contentType string) (*model.ClassificationSuggestion, error) {
	return s.suggestion, s.err
}

func (s *stubClassifier) Provider() string {
	return "stub"
}

func setup(t *testing.T, cls *stubClassifier) (*Processor, *store.JSONStore, *imagestore.DiskStore) {
	t.Helper()
	st, err := store.NewJSONStore(filepath.Join(t.TempDir(), "complaints.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	images, err := imagestore.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return New(st, images, cls, 2), st, images
}

func waitForAnalysis(t *testing.T, st *store.JSONStore, id string) *model.Analysis {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		all, err := st.ListAll(context.Background())
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		for _, c := range all {
			if c.ID == id && c.Analysis != nil {
				return c.Analysis
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil
}

func TestProcessorAttachesAnalysis(t *testing.T) {
	main := "road"
	sub := "pothole"
	proc, st, images := setup(t, &stubClassifier{suggestion: &model.ClassificationSuggestion{
		MainCategory: &main,
		SubCategory:  &sub,
		Description:  "Pothole detected.",
		Confidence:   0.9,
	}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	if _, err := images.Save(ctx, "c-1.jpg", "image/jpeg", strings.NewReader("jpeg"), 4); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c := &model.Complaint{ID: "c-1", Status: model.StatusSubmitted, MainCategory: "road", SubCategory: "pothole", Description: "x"}
	if err := st.Append(ctx, c); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := proc.Submit(ctx, intake.Job{ComplaintID: "c-1", FileName: "c-1.jpg", ContentType: "image/jpeg"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	analysis := waitForAnalysis(t, st, "c-1")
	if analysis == nil {
		t.Fatalf("analysis never attached")
	}
	if analysis.Provider != "stub" || analysis.SuggestedMainCategory == nil || *analysis.SuggestedMainCategory != "road" {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestProcessorSwallowsClassifierFailure(t *testing.T) {
	proc, st, images := setup(t, &stubClassifier{err: errors.New("model offline")})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.Start(ctx)

	if _, err := images.Save(ctx, "c-2.jpg", "image/jpeg", strings.NewReader("jpeg"), 4); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c := &model.Complaint{ID: "c-2", Status: model.StatusSubmitted, MainCategory: "road", SubCategory: "pothole", Description: "x"}
	if err := st.Append(ctx, c); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := proc.Submit(ctx, intake.Job{ComplaintID: "c-2", FileName: "c-2.jpg", ContentType: "image/jpeg"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	// The complaint stays intact with no analysis; give the worker a moment.
	time.Sleep(100 * time.Millisecond)
	all, err := st.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].Analysis != nil {
		t.Fatalf("classifier failure must leave the complaint untouched: %+v", all)
	}
}
