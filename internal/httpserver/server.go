// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Interactive solving: POST /solve/new, POST /solve/next, GET /solve/{id}.
//   - Local simulations: POST /simulate (recorded in the run store).
//   - Run history: /runs/* (JWT required when a secret is configured).
//   - Daily puzzle runs and leaderboard under /daily (only with a database).
//
// Notes:
//   - Solve sessions live in a size-bounded LRU; the least recently used
//     session is dropped when the cache is full.
//   - Each session guards its own picker; the dictionary index is shared read-only.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/davidsrrose/wordle-bot/internal/config"
	"github.com/davidsrrose/wordle-bot/internal/daily"
	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/store"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

// Server bundles router, dictionary, solve sessions and the run store.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	list     *words.List
	dict     *solver.Dictionary
	store    store.Store
	daily    *daily.Store // nil without a database
	sessions *lru.Cache[string, *solveSession]
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db may be nil, in which case the /daily routes are not mounted.
func New(cfg config.Config, list *words.List, st store.Store, db *sql.DB) (*Server, error) {
	sessions, err := lru.New[string, *solveSession](cfg.SessionCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		list:     list,
		dict:     solver.NewDictionary(list.Words),
		store:    st,
		sessions: sessions,
		now:      time.Now,
	}
	if db != nil {
		s.daily = daily.NewStore(db)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordlebot","endpoints":["/health","POST /solve/new","POST /solve/next","POST /simulate","/runs","/daily/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"source": s.list.Source, "words": s.list.Len(), "rejected": s.list.Rejected,
		})
	})

	s.mountSolve(s.r)
	s.mountRuns(s.r)
	if s.daily != nil {
		s.mountDaily(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeError writes {"error":code,"detail":detail} with status.
func writeError(w http.ResponseWriter, status int, code, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Detail: detail})
}
