// Package intake is the validated creation path for complaints: taxonomy
// validation, optional image persistence, id/timestamp assignment, and the
// durable append.
package intake

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicpulse/civicpulse/internal/imagestore"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/store"
	"github.com/civicpulse/civicpulse/internal/taxonomy"
)

// ValidationError reports bad or missing client input. The message is safe
// to return to the client and names the offending field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ImagePayload is an uploaded photo ready to persist.
type ImagePayload struct {
	OriginalName string
	ContentType  string
	Reader       io.Reader
	Size         int64
}

// Suggestion carries classification fields the client obtained from an
// earlier standalone analyse call. All fields are optional.
type Suggestion struct {
	Provider     string
	Category     string
	MainCategory string
	SubCategory  string
	Description  string
	Confidence   string
}

func (s *Suggestion) empty() bool {
	return s == nil || (s.Provider == "" && s.Category == "" && s.MainCategory == "" &&
		s.SubCategory == "" && s.Description == "" && s.Confidence == "")
}

// SubmissionRequest is the declared shape of an incoming submission. The
// latitude/longitude/accuracy fields hold the raw form values; parsing and
// the drop-if-not-finite rule live here, once, at the boundary.
type SubmissionRequest struct {
	Description  string
	Category     string
	MainCategory string
	SubCategory  string
	Latitude     string
	Longitude    string
	Accuracy     string
	UserPhone    string
	UserID       string
	UserName     string
	Image        *ImagePayload
	Suggestion   *Suggestion
}

// Job identifies a stored complaint whose image still needs classification.
type Job struct {
	ComplaintID string `json:"complaint_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// Enricher accepts post-submission classification work. Implementations may
// drop work; enrichment is advisory and never blocks or fails a submission.
type Enricher interface {
	Submit(ctx context.Context, job Job) error
}

// Service orchestrates complaint creation.
type Service struct {
	store  store.Store
	images imagestore.ImageStore
	enrich Enricher
}

// New constructs the intake service. enrich may be nil when no classifier is
// configured.
func New(st store.Store, images imagestore.ImageStore, enrich Enricher) *Service {
	return &Service{store: st, images: images, enrich: enrich}
}

// Submit validates the request, persists the image and the record, and
// returns the stored complaint. Validation failures happen before any side
// effect; a failed append after a successful image write still fails the
// request, with the orphaned file removed on a best-effort basis.
func (s *Service) Submit(ctx context.Context, req SubmissionRequest) (*model.Complaint, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, validationf("description is required")
	}
	if req.MainCategory == "" || req.SubCategory == "" {
		return nil, validationf("main category and sub-category are required")
	}
	category, err := taxonomy.Resolve(req.MainCategory, req.SubCategory)
	if err != nil {
		return nil, validationf("invalid category %s/%s", req.MainCategory, req.SubCategory)
	}
	if category.RequiresImage && req.Image == nil {
		return nil, validationf("image is required for %s complaints", category.Label)
	}

	complaint := &model.Complaint{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Status:       model.StatusSubmitted,
		Category:     req.Category,
		MainCategory: req.MainCategory,
		SubCategory:  req.SubCategory,
		Description:  description,
		Location:     parseLocation(req.Latitude, req.Longitude, req.Accuracy),
		UserPhone:    req.UserPhone,
		UserID:       req.UserID,
		UserName:     req.UserName,
		Analysis:     buildAnalysis(req.Suggestion),
	}

	if req.Image != nil {
		attachment, err := s.saveImage(ctx, complaint.ID, req.Image)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		complaint.Image = attachment
	}

	if err := s.store.Append(ctx, complaint); err != nil {
		if complaint.Image != nil {
			// The record never made it; the file is acceptable collateral,
			// but there is no reason to keep it around when removal works.
			if rmErr := s.images.Remove(ctx, complaint.Image.FileName); rmErr != nil {
				log.Printf("orphaned image %s left behind: %v", complaint.Image.FileName, rmErr)
			}
		}
		return nil, fmt.Errorf("store complaint: %w", err)
	}

	s.offerEnrichment(ctx, complaint, category)
	return complaint, nil
}

func (s *Service) saveImage(ctx context.Context, complaintID string, payload *ImagePayload) (*model.ImageAttachment, error) {
	fileName := complaintID + imageExtension(payload)
	url, err := s.images.Save(ctx, fileName, payload.ContentType, payload.Reader, payload.Size)
	if err != nil {
		return nil, err
	}
	return &model.ImageAttachment{
		FileName:     fileName,
		OriginalName: payload.OriginalName,
		MimeType:     payload.ContentType,
		URL:          url,
	}, nil
}

// offerEnrichment hands the complaint to the classification pipeline when it
// has an image, no analysis yet, and a category the model can recognize.
// Failures here are logged and swallowed: classification is advisory.
func (s *Service) offerEnrichment(ctx context.Context, c *model.Complaint, category *taxonomy.Category) {
	if s.enrich == nil || c.Image == nil || c.Analysis != nil || !category.AIDetectable {
		return
	}
	job := Job{ComplaintID: c.ID, FileName: c.Image.FileName, ContentType: c.Image.MimeType}
	if err := s.enrich.Submit(ctx, job); err != nil {
		log.Printf("enrichment for %s not scheduled: %v", c.ID, err)
	}
}

// parseLocation applies the source behavior: coordinates that are missing or
// not finite drop the whole location silently.
func parseLocation(latitude, longitude, accuracy string) *model.Location {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latitude), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(longitude), 64)
	if latErr != nil || lonErr != nil || !isFinite(lat) || !isFinite(lon) {
		return nil
	}
	loc := &model.Location{Latitude: lat, Longitude: lon}
	if acc, err := strconv.ParseFloat(strings.TrimSpace(accuracy), 64); err == nil && isFinite(acc) {
		loc.Accuracy = &acc
	}
	return loc
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func buildAnalysis(s *Suggestion) *model.Analysis {
	if s.empty() {
		return nil
	}
	a := &model.Analysis{
		Provider:             s.Provider,
		SuggestedCategory:    s.Category,
		SuggestedDescription: s.Description,
	}
	if s.MainCategory != "" {
		main := s.MainCategory
		a.SuggestedMainCategory = &main
	}
	if s.SubCategory != "" {
		sub := s.SubCategory
		a.SuggestedSubCategory = &sub
	}
	if conf, err := strconv.ParseFloat(s.Confidence, 64); err == nil {
		a.Confidence = &conf
	}
	return a
}

// extensionByMIME fixes the stored extension per image type; the platform
// MIME tables are not consulted because their ordering varies (image/jpeg
// maps to .jfif on some systems).
var extensionByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// imageExtension picks the stored file extension: the original name's
// extension when present, otherwise one derived from the MIME type.
func imageExtension(payload *ImagePayload) string {
	if ext := filepath.Ext(payload.OriginalName); ext != "" {
		return strings.ToLower(ext)
	}
	if ext, ok := extensionByMIME[strings.ToLower(payload.ContentType)]; ok {
		return ext
	}
	return ".jpg"
}
