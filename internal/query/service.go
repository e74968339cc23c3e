// Package query is the read side: complaint listing for the admin view,
// per-citizen filtering for dashboards, and the status summary.
package query

import (
	"context"
	"strings"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/store"
)

// Summary counts complaints by status bucket. Unknown statuses land in
// Submitted, the default bucket.
type Summary struct {
	Total      int `json:"total"`
	Submitted  int `json:"submitted"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

// Service reads complaints through the store.
type Service struct {
	store store.Store
}

// New constructs the query service.
func New(st store.Store) *Service {
	return &Service{store: st}
}

// ListAll returns every complaint, newest-first.
func (s *Service) ListAll(ctx context.Context) ([]model.Complaint, error) {
	return s.store.ListAll(ctx)
}

// ListForUser returns the complaints attributed to the given identity,
// matching on phone or user id. Empty identity fields match nothing.
func (s *Service) ListForUser(ctx context.Context, phone, userID string) ([]model.Complaint, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Complaint{}
	for _, c := range all {
		if (phone != "" && c.UserPhone == phone) || (userID != "" && c.UserID == userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Summarize buckets complaints by status. Matching is case-insensitive and
// tolerates dashes for spaces, mirroring what the admin view accepted.
func Summarize(complaints []model.Complaint) Summary {
	sum := Summary{Total: len(complaints)}
	for _, c := range complaints {
		switch normalizeStatus(string(c.Status)) {
		case "in progress":
			sum.InProgress++
		case "resolved":
			sum.Resolved++
		default:
			sum.Submitted++
		}
	}
	return sum
}

func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	return strings.ReplaceAll(s, "-", " ")
}
