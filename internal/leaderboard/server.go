// Package leaderboard serves the shared tapsy leaderboard over HTTP.
//
// Routes:
//   - GET    /health
//   - GET    /leaderboard?limit=N          top players by combined score
//   - GET    /leaderboard/{name}           one player's entry
//   - POST   /leaderboard/scores           submit {name, mode, score}
//   - DELETE /leaderboard/{name}           remove a player
//   - GET    /usernames/{name}/available   name availability
//
// All responses are JSON. Errors have the shape {"error": "<code>"}.
package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tapsy/internal/memory"
	"github.com/vovakirdan/tapsy/internal/storage"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Store is the persistence the server needs. *storage.Store implements it.
type Store interface {
	SubmitScore(category string, score int, name string) (storage.LeaderboardEntry, bool, error)
	Rankings(limit int) ([]storage.LeaderboardEntry, error)
	LeaderboardEntry(name string) (storage.LeaderboardEntry, error)
	DeleteLeaderboardEntry(name string) error
	UsernameAvailable(name string) (bool, error)
}

var _ Store = (*storage.Store)(nil)

// Options configures the server.
type Options struct {
	Logger *log.Logger

	// AllowOrigin enables CORS for one origin. Empty disables CORS headers.
	AllowOrigin string

	// RequestTimeout bounds handler time. Defaults to 10s.
	RequestTimeout time.Duration
}

// Server bundles the router and its store.
type Server struct {
	r      *chi.Mux
	store  Store
	logger *log.Logger
}

// New constructs a Server, installs middleware and registers routes.
func New(store Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}

	s := &Server{r: chi.NewRouter(), store: store, logger: opts.Logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.RequestTimeout))
	s.r.Use(jsonContentType)
	if opts.AllowOrigin != "" {
		s.r.Use(cors(opts.AllowOrigin))
	}

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", s.handleRankings)
		r.Post("/scores", s.handleSubmit)
		r.Get("/{name}", s.handleEntry)
		r.Delete("/{name}", s.handleDelete)
	})
	s.r.Get("/usernames/{name}/available", s.handleAvailable)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Handler returns the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting leaderboard API", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping leaderboard API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// ------------------------------ handlers -----------------------------------

type rankingsRes struct {
	Entries []storage.LeaderboardEntry `json:"entries"`
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.store.Rankings(limit)
	if err != nil {
		s.serverError(w, r, "rankings", err)
		return
	}
	if entries == nil {
		entries = []storage.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, rankingsRes{Entries: entries})
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.store.LeaderboardEntry(chi.URLParam(r, "name"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		s.serverError(w, r, "entry", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// submitReq is the payload of POST /leaderboard/scores. Mode is a game mode
// name or a leaderboard category.
type submitReq struct {
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	Score int    `json:"score"`
}

type submitRes struct {
	Entry   storage.LeaderboardEntry `json:"entry"`
	Updated bool                     `json:"updated"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Score < 0 {
		writeError(w, http.StatusBadRequest, "invalid_score")
		return
	}

	category, ok := categoryFor(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_mode")
		return
	}

	entry, updated, err := s.store.SubmitScore(category, req.Score, req.Name)
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "invalid_name")
		return
	case err != nil:
		s.serverError(w, r, "submit", err)
		return
	}

	s.logger.Info("score submitted", "name", entry.Name, "category", category, "score", req.Score, "updated", updated)
	writeJSON(w, http.StatusOK, submitRes{Entry: entry, Updated: updated})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteLeaderboardEntry(chi.URLParam(r, "name"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		s.serverError(w, r, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type availableRes struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

func (s *Server) handleAvailable(w http.ResponseWriter, r *http.Request) {
	name := storage.NormalizeName(chi.URLParam(r, "name"))
	ok, err := s.store.UsernameAvailable(name)
	if err != nil {
		s.serverError(w, r, "availability", err)
		return
	}
	writeJSON(w, http.StatusOK, availableRes{Name: name, Available: ok})
}

// categoryFor maps a game mode name, or a category name, to a category.
func categoryFor(mode string) (string, bool) {
	if m, err := memory.ParseMode(mode); err == nil {
		return m.LeaderboardCategory(), true
	}
	switch storage.NormalizeName(mode) {
	case storage.CategoryClassic, storage.CategoryReverse, storage.CategoryHard:
		return storage.NormalizeName(mode), true
	}
	return "", false
}

// ------------------------------ helpers ------------------------------------

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error("request failed", "op", op, "err", err, "request_id", chimw.GetReqID(r.Context()))
	writeError(w, http.StatusInternalServerError, "server_error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables cross-origin requests from origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs each request once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
