package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/semaphore"

	"github.com/joanteresajose/reddit-persona/internal/collector"
	"github.com/joanteresajose/reddit-persona/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Extractor runs the full analysis pipeline for one profile URL.
// Implemented by pipeline.Extractor; stubbed in tests.
type Extractor interface {
	Extract(ctx context.Context, profileURL string) (storage.PersonaRecord, error)
}

// ReportReader reads a rendered report back for download.
type ReportReader interface {
	ReadReport(path string) ([]byte, error)
}

type Deps struct {
	Extractor Extractor
	Store     *storage.Store
	Files     ReportReader
	Token     string // optional; empty disables bearer auth
	// MaxExtractions bounds concurrent analyze requests; 0 means 1.
	MaxExtractions int
}

type analyzeRequest struct {
	RedditURL string `json:"reddit_url"`
}

// personaResponse mirrors a PersonaRecord with the stored persona and
// citation JSON inlined rather than double-encoded.
type personaResponse struct {
	ID        string          `json:"id"`
	RedditURL string          `json:"reddit_url"`
	Username  string          `json:"username"`
	Persona   json.RawMessage `json:"persona"`
	Citations json.RawMessage `json:"citations"`
	FilePath  string          `json:"file_path"`
	Degraded  bool            `json:"degraded"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(rec storage.PersonaRecord) personaResponse {
	return personaResponse{
		ID:        rec.ID,
		RedditURL: rec.RedditURL,
		Username:  rec.Username,
		Persona:   json.RawMessage(rec.PersonaJSON),
		Citations: json.RawMessage(rec.CitationsJSON),
		FilePath:  rec.ReportPath,
		Degraded:  rec.Degraded,
		CreatedAt: rec.CreatedAt,
	}
}

// NewHandler returns the HTTP API: analysis, persona listing and report
// download under /api, plus /health.
func NewHandler(deps Deps) http.Handler {
	maxExtractions := deps.MaxExtractions
	if maxExtractions <= 0 {
		maxExtractions = 1
	}
	sem := semaphore.NewWeighted(int64(maxExtractions))

	r := chi.NewRouter()
	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/analyze-reddit", handleAnalyze(deps, sem))
		r.Get("/personas", handleListPersonas(deps))
		r.Get("/personas/{id}", handleGetPersona(deps))
		r.Get("/download-persona/{id}", handleDownloadPersona(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleAnalyze(deps Deps, sem *semaphore.Weighted) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.RedditURL == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "reddit_url is required")
			return
		}

		if err := sem.Acquire(r.Context(), 1); err != nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "request cancelled while waiting for capacity")
			return
		}
		defer sem.Release(1)

		rec, err := deps.Extractor.Extract(r.Context(), req.RedditURL)
		if err != nil {
			writeExtractError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toResponse(rec))
	}
}

// writeExtractError maps pipeline failures to HTTP responses: the two
// content-emptiness cases become 404, everything else a generic 500 with
// the message text.
func writeExtractError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, collector.ErrNoContent), errors.Is(err, collector.ErrUserNotFound):
		httpError(w, http.StatusNotFound, "not_found", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func handleListPersonas(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 100, 100)
		offset := parseIntParam(r, "offset", 0, 0)

		records, err := deps.Store.ListPersonas(limit, offset)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list personas: %v", err)
			return
		}

		resp := make([]personaResponse, len(records))
		for i, rec := range records {
			resp[i] = toResponse(rec)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func handleGetPersona(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, err := deps.Store.GetPersona(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "persona not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get persona: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toResponse(rec))
	}
}

func handleDownloadPersona(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec, err := deps.Store.GetPersona(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "persona not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get persona: %v", err)
			return
		}

		data, err := deps.Files.ReadReport(rec.ReportPath)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "report file not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to read report: %v", err)
			return
		}

		filename := filepath.Base(rec.Username + "_persona.txt")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(data)
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
