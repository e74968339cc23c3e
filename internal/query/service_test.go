package query

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/store"
)

func seedStore(t *testing.T, complaints ...*model.Complaint) *store.JSONStore {
	t.Helper()
	s, err := store.NewJSONStore(filepath.Join(t.TempDir(), "complaints.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	for _, c := range complaints {
		if err := s.Append(context.Background(), c); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return s
}

func complaint(id, phone, userID string) *model.Complaint {
	return &model.Complaint{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		Status:       model.StatusSubmitted,
		MainCategory: "road",
		SubCategory:  "pothole",
		Description:  "test",
		UserPhone:    phone,
		UserID:       userID,
	}
}

func TestListForUser(t *testing.T) {
	svc := New(seedStore(t,
		complaint("c-1", "+911111111111", "u-1"),
		complaint("c-2", "+922222222222", "u-2"),
		complaint("c-3", "+911111111111", ""),
	))
	ctx := context.Background()

	byPhone, err := svc.ListForUser(ctx, "+911111111111", "")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(byPhone) != 2 {
		t.Fatalf("expected 2 complaints by phone, got %d", len(byPhone))
	}

	byID, err := svc.ListForUser(ctx, "", "u-2")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != "c-2" {
		t.Fatalf("unexpected result by user id: %+v", byID)
	}

	none, err := svc.ListForUser(ctx, "", "")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty identity must match nothing, got %d", len(none))
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]model.Complaint{
		{Status: "Submitted"},
		{Status: "in progress"},
		{Status: "Resolved"},
		{Status: "weird"},
	})
	want := Summary{Total: 4, Submitted: 2, InProgress: 1, Resolved: 1}
	if got != want {
		t.Fatalf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarizeNormalizesDashes(t *testing.T) {
	got := Summarize([]model.Complaint{{Status: "In-Progress"}, {Status: " RESOLVED "}})
	if got.InProgress != 1 || got.Resolved != 1 || got.Submitted != 0 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got.Total != 0 || got.Submitted != 0 {
		t.Fatalf("unexpected summary for empty input: %+v", got)
	}
}
