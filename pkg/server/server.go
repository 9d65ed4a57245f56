// Package server exposes the search pipeline over HTTP: one-shot JSON
// search, server-sent-events streaming, activity probes, and the
// comprehensive Google category sweep.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/osprey-dev/namesift/pkg/face"
	"github.com/osprey-dev/namesift/pkg/pipeline"
)

// Version reported by the metadata endpoints.
const Version = "1.0.0"

// maxUploadBytes bounds the multipart form we are willing to parse.
const maxUploadBytes = 16 << 20

// defaultActivityPlatforms mirrors the activities endpoint's form
// default.
const defaultActivityPlatforms = "instagram,twitter,facebook,tiktok"

// Server wires HTTP handlers to a pipeline.
type Server struct {
	pipe   *pipeline.Pipeline
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a Server around a pipeline.
func New(pipe *pipeline.Pipeline, opts ...Option) *Server {
	s := &Server{pipe: pipe, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /search-stream", s.handleSearchStream)
	mux.HandleFunc("POST /search-activities", s.handleActivities)
	mux.HandleFunc("POST /search-google-comprehensive", s.handleComprehensive)
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "running", "version": Version})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	resp := s.pipe.Search(r.Context(), req, nil)
	s.logger.InfoContext(r.Context(), "search handled",
		"name", req.Name, "results", len(resp.Results), "enhanced_used", resp.EnhancedUsed)

	writeJSON(w, http.StatusOK, map[string]any{
		"results":       resp.Results,
		"status":        "success",
		"total_results": len(resp.Results),
		"enhanced_used": resp.EnhancedUsed,
	})
}

func (s *Server) handleSearchStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The pipeline runs in its own goroutine and pushes progress into
	// the channel; this handler drains it onto the wire so the search
	// never blocks on a slow client longer than the channel buffer.
	events := make(chan pipeline.Progress, 32)
	done := make(chan pipeline.Response, 1)
	go func() {
		defer close(events)
		done <- s.pipe.Search(r.Context(), req, func(ev pipeline.Progress) {
			select {
			case events <- ev:
			case <-r.Context().Done():
			}
		})
	}()

	for ev := range events {
		writeSSE(w, "progress", ev)
		flusher.Flush()
	}

	resp := <-done
	writeSSE(w, "complete", map[string]any{
		"results":       resp.Results,
		"total_results": len(resp.Results),
		"enhanced_used": resp.EnhancedUsed,
	})
	flusher.Flush()
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "name is required"})
		return
	}

	raw := r.FormValue("platforms")
	if raw == "" {
		raw = defaultActivityPlatforms
	}
	var platforms []string
	for p := range strings.SplitSeq(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			platforms = append(platforms, p)
		}
	}

	activities := s.pipe.Activities(r.Context(), name, platforms)
	writeJSON(w, http.StatusOK, map[string]any{
		"activities":         activities,
		"status":             "success",
		"total_activities":   len(activities),
		"platforms_searched": platforms,
		"search_type":        "comprehensive_activities",
	})
}

func (s *Server) handleComprehensive(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "name is required"})
		return
	}

	limit := 20
	if v := r.FormValue("max_results"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "max_results must be a positive integer"})
			return
		}
		limit = n
	}

	results := s.pipe.Comprehensive(r.Context(), name, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"results":       results,
		"status":        "success",
		"total_results": len(results),
		"categories_searched": []string{
			"social_media", "professional", "academic", "news",
			"personal_websites", "forums", "images", "location",
		},
		"search_type": "comprehensive_google",
	})
}

// parseSearchRequest validates the shared search form: at least one of
// name and file, and the file (when present) must be a non-empty image.
func parseSearchRequest(r *http.Request) (pipeline.Request, error) {
	var req pipeline.Request
	if err := parseForm(r); err != nil {
		return req, err
	}

	req.Name = strings.TrimSpace(r.FormValue("name"))
	req.UseEnhanced = parseBool(r.FormValue("use_enhanced"))

	file, header, err := r.FormFile("file")
	if err != nil {
		// No usable upload; the name alone must carry the search.
		if req.Name == "" {
			return req, errors.New("provide name or image")
		}
		return req, nil
	}
	defer file.Close() //nolint:errcheck // read-only temp file

	data, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return req, errors.New("file is empty")
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return req, fmt.Errorf("file must be an image")
	}
	if _, err := face.ValidateImage(data); err != nil {
		return req, fmt.Errorf("file must be an image: %w", err)
	}
	req.Image = data
	return req, nil
}

// parseForm accepts multipart and urlencoded forms alike.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload) //nolint:errcheck // client gone
}

func writeSSE(w io.Writer, eventType string, data any) {
	payload, err := json.Marshal(map[string]any{"type": eventType, "data": data})
	if err != nil {
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", payload)
}
