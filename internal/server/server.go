// Package server exposes the scrape operations over HTTP. It is a thin
// wrapper: request decoding, validation and status mapping live here, all
// scraping semantics live in the core.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/config"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/internal/scrape"
	"github.com/xHishamSaeedx/tournify-deathmatch-scrape/pkg/models"
)

const (
	serviceName    = "valorant-match-scraper"
	serviceVersion = "1.0.0"
)

// Scraper is the contract the HTTP layer needs from the core.
type Scraper interface {
	Scrape(ctx context.Context, matchURL string) models.ScrapeOutcome
	ScrapeBatch(ctx context.Context, urls []string) []models.ScrapeOutcome
	ValidateURL(matchURL string) error
}

// Server wires the HTTP routes for the scraping API.
type Server struct {
	scraper Scraper
	cfg     config.ScraperConfig
}

// New creates a Server around a scraper core.
func New(scraper Scraper, cfg config.ScraperConfig) *Server {
	return &Server{scraper: scraper, cfg: cfg}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", withInstrumentation("healthz", s.handleHealth))
	mux.HandleFunc("POST /api/v1/scrape-match", withInstrumentation("scrape-match", s.handleScrapeMatch))
	mux.HandleFunc("GET /api/v1/scrape-match/{id}", withInstrumentation("scrape-match-by-id", s.handleScrapeMatchByID))
	mux.HandleFunc("GET /api/v1/game-modes", withInstrumentation("game-modes", s.handleGameModes))
	mux.HandleFunc("GET /api/v1/maps", withInstrumentation("maps", s.handleMaps))
	mux.HandleFunc("GET /api/v1/stats", withInstrumentation("stats", s.handleStats))
	mux.HandleFunc("POST /api/v1/batch-scrape", withInstrumentation("batch-scrape", s.handleBatchScrape))
	mux.Handle("GET /metrics", promhttp.Handler())
}

// scrapeRequest mirrors the POST /api/v1/scrape-match body.
type scrapeRequest struct {
	MatchURL string `json:"match_url"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// batchResponse summarizes a batch scrape alongside the per-URL outcomes.
type batchResponse struct {
	TotalRequests int                    `json:"total_requests"`
	Successful    int                    `json:"successful"`
	Failed        int                    `json:"failed"`
	Results       []models.ScrapeOutcome `json:"results"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (s *Server) handleScrapeMatch(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if strings.TrimSpace(req.MatchURL) == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", errors.New("missing match_url"))
		return
	}
	if err := s.scraper.ValidateURL(req.MatchURL); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_url", err)
		return
	}

	outcome := s.scraper.Scrape(r.Context(), req.MatchURL)
	recordOutcome(outcome)
	if !outcome.Success {
		writeError(w, http.StatusUnprocessableEntity, "scrape_failed", errors.New(outcome.ErrorMessage))
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleScrapeMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	matchURL := strings.TrimRight(s.cfg.BaseURL, "/") + "/match/" + matchID

	outcome := s.scraper.Scrape(r.Context(), matchURL)
	recordOutcome(outcome)
	if !outcome.Success {
		writeError(w, http.StatusNotFound, "match_not_found", errors.New(outcome.ErrorMessage))
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleGameModes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"game_modes": enumList(models.GameModes()),
	})
}

func (s *Server) handleMaps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"maps": enumList(models.MapNames()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":         serviceName,
		"version":         serviceVersion,
		"base_url":        s.cfg.BaseURL,
		"request_timeout": s.cfg.Timeout.Seconds(),
		"max_retries":     s.cfg.MaxRetries,
		"retry_delay":     s.cfg.RetryDelay.Seconds(),
	})
}

func (s *Server) handleBatchScrape(w http.ResponseWriter, r *http.Request) {
	var urls []string
	if err := json.NewDecoder(r.Body).Decode(&urls); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if len(urls) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_body", errors.New("no urls provided"))
		return
	}
	if len(urls) > scrape.MaxBatchSize {
		writeError(w, http.StatusBadRequest, "batch_too_large",
			errors.New("batch size too large, maximum 10 URLs allowed"))
		return
	}

	outcomes := s.scraper.ScrapeBatch(r.Context(), urls)
	successful := 0
	for _, o := range outcomes {
		recordOutcome(o)
		if o.Success {
			successful++
		}
	}

	writeJSON(w, http.StatusOK, batchResponse{
		TotalRequests: len(urls),
		Successful:    successful,
		Failed:        len(urls) - successful,
		Results:       outcomes,
	})
}

type enumEntry struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

func enumList[T ~string](values []T) []enumEntry {
	entries := make([]enumEntry, len(values))
	for i, v := range values {
		entries[i] = enumEntry{Value: string(v), Name: strings.ToUpper(string(v))}
	}
	return entries
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
