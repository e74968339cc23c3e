// Package server exposes the complaint intake HTTP API: taxonomy lookups,
// standalone image analysis, complaint submission and listing, and static
// serving of uploaded photos.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/civicpulse/civicpulse/internal/classifier"
	"github.com/civicpulse/civicpulse/internal/config"
	"github.com/civicpulse/civicpulse/internal/intake"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/query"
	"github.com/civicpulse/civicpulse/internal/taxonomy"
)

// defaultAdminPhones seeds the admin phones file on first read.
var defaultAdminPhones = []string{"+917058346137", "+919876543210"}

// Server wires the intake and query services to HTTP.
type Server struct {
	cfg     *config.Config
	intake  *intake.Service
	queries *query.Service
	cls     classifier.Classifier

	// uploadsDir is the local directory served under /uploads/; empty when
	// images live in object storage and carry absolute URLs instead.
	uploadsDir string

	server  *http.Server
	once    sync.Once
	adminMu sync.Mutex
}

// New constructs a Server. cls may be nil when no classifier is configured;
// the analyse endpoint then reports the capability as unavailable.
func New(cfg *config.Config, intakeSvc *intake.Service, querySvc *query.Service, cls classifier.Classifier, uploadsDir string) *Server {
	return &Server{
		cfg:        cfg,
		intake:     intakeSvc,
		queries:    querySvc,
		cls:        cls,
		uploadsDir: uploadsDir,
	}
}

// Handler builds the routed handler with middleware applied. Exposed so tests
// can drive the full stack through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/categories/", s.handleCategoryRoute)
	mux.HandleFunc("/api/analyse", s.handleAnalyse)
	mux.HandleFunc("/api/complaints", s.handleComplaints)
	mux.HandleFunc("/api/complaints/summary", s.handleSummary)
	mux.HandleFunc("/api/admin/check", s.handleAdminCheck)
	mux.HandleFunc("/api/admin-phones", s.handleAdminPhones)
	if s.uploadsDir != "" {
		mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))
	}
	return corsMiddleware(s.cfg.AllowedOrigins, loggingMiddleware(mux))
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.once.Do(func() {
		s.server = &http.Server{
			Addr:    s.cfg.Address,
			Handler: s.Handler(),
		}
	})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()
	log.Printf("api listening on %s", s.cfg.Address)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": taxonomy.MainCategories()})
}

func (s *Server) handleCategoryRoute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/categories/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "subcategories" {
		http.NotFound(w, r)
		return
	}
	subs, err := taxonomy.SubCategories(parts[0])
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"subCategories": subs})
}

func (s *Server) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.cls == nil {
		respondError(w, http.StatusServiceUnavailable, "Image analysis is not configured.")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024)
	mr, err := r.MultipartReader()
	if err != nil {
		respondError(w, http.StatusBadRequest, "expecting multipart form")
		return
	}
	image, err := nextImagePart(mr)
	if err != nil {
		s.respondUploadError(w, err)
		return
	}
	if image == nil {
		respondError(w, http.StatusBadRequest, "Image file is required for analysis.")
		return
	}
	suggestion, err := s.cls.Classify(r.Context(), image.data, image.contentType)
	if err != nil {
		log.Printf("analyse failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Unable to analyse image automatically.")
		return
	}
	category := "other"
	if suggestion.MainCategory != nil {
		category = *suggestion.MainCategory
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"category":     category,
		"mainCategory": suggestion.MainCategory,
		"subCategory":  suggestion.SubCategory,
		"description":  suggestion.Description,
		"confidence":   suggestion.Confidence,
		"provider":     s.cls.Provider(),
	})
}

func (s *Server) handleComplaints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListComplaints(w, r)
	case http.MethodPost:
		s.handleSubmitComplaint(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	userID := r.URL.Query().Get("userId")
	var (
		complaints []model.Complaint
		err        error
	)
	if phone != "" || userID != "" {
		complaints, err = s.queries.ListForUser(r.Context(), phone, userID)
	} else {
		complaints, err = s.queries.ListAll(r.Context())
	}
	if err != nil {
		log.Printf("list complaints: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"complaints": complaints})
}

func (s *Server) handleSubmitComplaint(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024)
	req, err := readSubmission(r)
	if err != nil {
		s.respondUploadError(w, err)
		return
	}
	complaint, err := s.intake.Submit(r.Context(), *req)
	if err != nil {
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			respondError(w, http.StatusBadRequest, ve.Msg)
			return
		}
		log.Printf("submit complaint: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"complaint": complaint,
		"message":   "Complaint filed successfully",
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	complaints, err := s.queries.ListAll(r.Context())
	if err != nil {
		log.Printf("summarize complaints: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}
	respondJSON(w, http.StatusOK, query.Summarize(complaints))
}

func (s *Server) handleAdminCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		respondError(w, http.StatusBadRequest, "phone is required")
		return
	}
	phones, err := s.loadAdminPhones()
	if err != nil {
		log.Printf("load admin phones: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}
	isAdmin := false
	for _, p := range phones {
		if p == phone {
			isAdmin = true
			break
		}
	}
	respondJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

func (s *Server) handleAdminPhones(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	phones, err := s.loadAdminPhones()
	if err != nil {
		log.Printf("load admin phones: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"adminPhones": phones})
}

// loadAdminPhones reads the admin phone list, seeding the file with defaults
// on first use.
func (s *Server) loadAdminPhones() ([]string, error) {
	s.adminMu.Lock()
	defer s.adminMu.Unlock()
	var doc struct {
		AdminPhones []string `json:"adminPhones"`
	}
	data, err := os.ReadFile(s.cfg.AdminPhonesFile)
	if errors.Is(err, os.ErrNotExist) {
		doc.AdminPhones = defaultAdminPhones
		seeded, marshalErr := json.MarshalIndent(doc, "", "  ")
		if marshalErr != nil {
			return nil, marshalErr
		}
		if err := os.MkdirAll(filepath.Dir(s.cfg.AdminPhonesFile), 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := os.WriteFile(s.cfg.AdminPhonesFile, seeded, 0o640); err != nil {
			return nil, fmt.Errorf("seed admin phones: %w", err)
		}
		return doc.AdminPhones, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read admin phones: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse admin phones: %w", err)
	}
	return doc.AdminPhones, nil
}

// respondUploadError maps multipart read failures: an exceeded body limit
// becomes 413 with a size hint, everything else a 400.
func (s *Server) respondUploadError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		log.Printf("rejected payload exceeding limit")
		respondMessage(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Upload too large. Please choose an image under %d MB or reduce its resolution.", s.cfg.MaxUploadBytes>>20))
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

// imageUpload is a fully buffered image part. Uploads are capped well below
// anything that needs streaming to disk.
type imageUpload struct {
	data         []byte
	contentType  string
	originalName string
}

// readSubmission walks the multipart stream, collecting form fields and the
// optional image part into a SubmissionRequest.
func readSubmission(r *http.Request) (*intake.SubmissionRequest, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errors.New("expecting multipart form")
	}
	fields := map[string]string{}
	var image *imageUpload
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if part.FileName() != "" {
			if part.FormName() == "image" && image == nil {
				image, err = readImagePart(part)
				if err != nil {
					part.Close()
					return nil, err
				}
			}
			part.Close()
			continue
		}
		value, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return nil, err
		}
		fields[part.FormName()] = string(value)
	}
	req := &intake.SubmissionRequest{
		Description:  fields["description"],
		Category:     fields["category"],
		MainCategory: fields["mainCategory"],
		SubCategory:  fields["subCategory"],
		Latitude:     fields["latitude"],
		Longitude:    fields["longitude"],
		Accuracy:     fields["accuracy"],
		UserPhone:    fields["userPhone"],
		UserID:       fields["userId"],
		UserName:     fields["userName"],
		Suggestion: &intake.Suggestion{
			Provider:     fields["analysisProvider"],
			Category:     fields["suggestedCategory"],
			MainCategory: fields["suggestedMainCategory"],
			SubCategory:  fields["suggestedSubCategory"],
			Description:  fields["suggestedDescription"],
			Confidence:   fields["suggestedConfidence"],
		},
	}
	if image != nil {
		req.Image = &intake.ImagePayload{
			OriginalName: image.originalName,
			ContentType:  image.contentType,
			Reader:       bytes.NewReader(image.data),
			Size:         int64(len(image.data)),
		}
	}
	return req, nil
}

// nextImagePart finds the "image" file part, or nil when the form has none.
func nextImagePart(mr *multipart.Reader) (*imageUpload, error) {
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == "image" && part.FileName() != "" {
			upload, err := readImagePart(part)
			part.Close()
			return upload, err
		}
		part.Close()
	}
}

func readImagePart(part *multipart.Part) (*imageUpload, error) {
	data, err := io.ReadAll(part)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	contentType := part.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return &imageUpload{
		data:         data,
		contentType:  contentType,
		originalName: part.FileName(),
	}, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// corsMiddleware reflects the request origin when no allow-list is
// configured; with a list, only listed origins are acknowledged.
func corsMiddleware(allowed []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(allowed) == 0 && origin != "":
			w.Header().Set("Access-Control-Allow-Origin", origin)
		case len(allowed) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		default:
			for _, o := range allowed {
				if o == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
