package intake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/civicpulse/civicpulse/internal/imagestore"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/taxonomy"
)

// memStore is a minimal in-memory Store with failure injection.
type memStore struct {
	mu         sync.Mutex
	complaints []model.Complaint
	failAppend error
}

func (m *memStore) Append(ctx context.Context, c *model.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend != nil {
		return m.failAppend
	}
	m.complaints = append([]model.Complaint{*c}, m.complaints...)
	return nil
}

func (m *memStore) ListAll(ctx context.Context) ([]model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Complaint, len(m.complaints))
	copy(out, m.complaints)
	return out, nil
}

func (m *memStore) SetAnalysis(ctx context.Context, id string, a *model.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Analysis = a
			return nil
		}
	}
	return errors.New("not found")
}

type recordingEnricher struct {
	mu   sync.Mutex
	jobs []Job
}

func (r *recordingEnricher) Submit(ctx context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	return nil
}

func newTestService(t *testing.T) (*Service, *memStore, *recordingEnricher, string) {
	t.Helper()
	dir := t.TempDir()
	images, err := imagestore.NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	st := &memStore{}
	enrich := &recordingEnricher{}
	return New(st, images, enrich), st, enrich, dir
}

func imageRequest() SubmissionRequest {
	return SubmissionRequest{
		Description:  "Large pothole",
		MainCategory: "road",
		SubCategory:  "pothole",
		Latitude:     "18.52",
		Longitude:    "73.85",
		Image: &ImagePayload{
			OriginalName: "pothole.jpg",
			ContentType:  "image/jpeg",
			Reader:       strings.NewReader("jpegbytes"),
			Size:         9,
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	svc, st, _, dir := newTestService(t)
	got, err := svc.Submit(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.ID == "" || got.Status != model.StatusSubmitted {
		t.Fatalf("unexpected complaint: %+v", got)
	}
	if got.Image == nil || got.Image.URL != "/uploads/"+got.ID+".jpg" {
		t.Fatalf("unexpected image: %+v", got.Image)
	}
	if got.Location == nil || got.Location.Latitude != 18.52 {
		t.Fatalf("unexpected location: %+v", got.Location)
	}
	if _, err := os.Stat(filepath.Join(dir, got.ID+".jpg")); err != nil {
		t.Fatalf("image file missing: %v", err)
	}
	stored, _ := st.ListAll(context.Background())
	if len(stored) != 1 || stored[0].ID != got.ID {
		t.Fatalf("complaint not stored: %+v", stored)
	}
}

// Extension-less uploads must get a stable extension from the MIME type;
// .jfif and friends from platform MIME tables would break stored URLs.
func TestSubmitImageExtensionFromMIME(t *testing.T) {
	cases := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/webp", ".webp"},
		{"application/octet-stream", ".jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.contentType, func(t *testing.T) {
			svc, _, _, _ := newTestService(t)
			req := imageRequest()
			req.Image = &ImagePayload{
				OriginalName: "camera-upload",
				ContentType:  tc.contentType,
				Reader:       strings.NewReader("bytes"),
				Size:         5,
			}
			got, err := svc.Submit(context.Background(), req)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if got.Image.FileName != got.ID+tc.want {
				t.Fatalf("file name = %q, want %q", got.Image.FileName, got.ID+tc.want)
			}
		})
	}
}

func TestSubmitAllValidPairs(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	for _, cat := range taxonomy.MainCategories() {
		for _, sub := range cat.SubCategories {
			req := imageRequest()
			req.MainCategory = cat.ID
			req.SubCategory = sub.ID
			req.Image.Reader = strings.NewReader("jpegbytes")
			if _, err := svc.Submit(context.Background(), req); err != nil {
				t.Fatalf("Submit(%s/%s): %v", cat.ID, sub.ID, err)
			}
		}
	}
}

func TestSubmitRejectsForeignSubCategory(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	req := imageRequest()
	req.MainCategory = "drainage"
	req.SubCategory = "pothole"
	_, err := svc.Submit(context.Background(), req)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if stored, _ := st.ListAll(context.Background()); len(stored) != 0 {
		t.Fatalf("validation failure must not persist anything")
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	cases := []struct {
		name string
		req  SubmissionRequest
		want string
	}{
		{"blank description", SubmissionRequest{Description: "   ", MainCategory: "road", SubCategory: "pothole"}, "description"},
		{"missing categories", SubmissionRequest{Description: "x"}, "category"},
		{"unknown main", SubmissionRequest{Description: "x", MainCategory: "nope", SubCategory: "pothole"}, "invalid category"},
		{"image required", SubmissionRequest{Description: "x", MainCategory: "road", SubCategory: "pothole"}, "image is required"},
	}
	for _, tc := range cases {
		_, err := svc.Submit(context.Background(), tc.req)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
		if !strings.Contains(verr.Msg, tc.want) {
			t.Fatalf("%s: message %q does not mention %q", tc.name, verr.Msg, tc.want)
		}
	}
}

func TestSubmitWithoutImageForOptionalCategory(t *testing.T) {
	svc, _, enrich, _ := newTestService(t)
	req := SubmissionRequest{
		Description:  "Certificate still not issued",
		MainCategory: "birth-death",
		SubCategory:  "certificate-not-issued",
	}
	got, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Image != nil {
		t.Fatalf("expected no image, got %+v", got.Image)
	}
	if len(enrich.jobs) != 0 {
		t.Fatalf("no enrichment without an image")
	}
}

func TestSubmitDropsBadLocation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	for _, coords := range [][2]string{{"", ""}, {"abc", "73.85"}, {"18.52", "NaN"}, {"+Inf", "73.85"}} {
		req := imageRequest()
		req.Latitude, req.Longitude = coords[0], coords[1]
		req.Image.Reader = strings.NewReader("jpegbytes")
		got, err := svc.Submit(context.Background(), req)
		if err != nil {
			t.Fatalf("Submit with coords %v: %v", coords, err)
		}
		if got.Location != nil {
			t.Fatalf("expected dropped location for coords %v, got %+v", coords, got.Location)
		}
	}
}

func TestSubmitFoldsSuggestionIntoAnalysis(t *testing.T) {
	svc, _, enrich, _ := newTestService(t)
	req := imageRequest()
	req.Suggestion = &Suggestion{
		Provider:     "openai",
		MainCategory: "road",
		SubCategory:  "pothole",
		Description:  "Pothole spanning the lane.",
		Confidence:   "0.91",
	}
	got, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	a := got.Analysis
	if a == nil || a.Provider != "openai" || a.SuggestedMainCategory == nil || *a.SuggestedMainCategory != "road" {
		t.Fatalf("unexpected analysis: %+v", a)
	}
	if a.Confidence == nil || *a.Confidence != 0.91 {
		t.Fatalf("confidence not parsed: %+v", a.Confidence)
	}
	// A supplied suggestion suppresses async enrichment.
	if len(enrich.jobs) != 0 {
		t.Fatalf("unexpected enrichment jobs: %+v", enrich.jobs)
	}
}

func TestSubmitOffersEnrichment(t *testing.T) {
	svc, _, enrich, _ := newTestService(t)
	got, err := svc.Submit(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(enrich.jobs) != 1 {
		t.Fatalf("expected one enrichment job, got %d", len(enrich.jobs))
	}
	job := enrich.jobs[0]
	if job.ComplaintID != got.ID || job.FileName != got.Image.FileName {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestSubmitAppendFailure(t *testing.T) {
	svc, st, _, dir := newTestService(t)
	st.failAppend = errors.New("disk full")
	req := imageRequest()
	_, err := svc.Submit(context.Background(), req)
	if err == nil || errors.As(err, new(*ValidationError)) {
		t.Fatalf("expected server error, got %v", err)
	}
	// Best-effort cleanup removed the orphaned image.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected orphan cleanup, found %d files", len(entries))
	}
}

func TestConcurrentSubmitsYieldDistinctComplaints(t *testing.T) {
	svc, st, _, _ := newTestService(t)
	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			req := imageRequest()
			req.Description = fmt.Sprintf("pothole %d", i)
			req.Image.Reader = strings.NewReader("jpegbytes")
			_, err := svc.Submit(context.Background(), req)
			done <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-done; err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	stored, _ := st.ListAll(context.Background())
	if len(stored) != n {
		t.Fatalf("expected %d complaints, got %d", n, len(stored))
	}
	seen := map[string]bool{}
	for _, c := range stored {
		if seen[c.ID] {
			t.Fatalf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}
