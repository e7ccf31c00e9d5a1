// internal/httpserver/routes_runs.go
//
// Local simulations and run history.
//   - POST /simulate        → solve one local game, record and return the run
//   - GET  /runs            → recent runs (?limit=N)
//   - GET  /runs/stats      → totals and average guesses
//   - GET  /runs/{id}       → one run
//   - GET  /runs/whoami     → token subject (auth only)
//
// /runs is behind requireAuth, which only checks tokens when JWT_SECRET is set.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/davidsrrose/wordle-bot/internal/session"
	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/store"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

func (s *Server) mountRuns(r chi.Router) {
	r.Post("/simulate", s.handleSimulate)
	r.Route("/runs", func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/", s.handleListRuns)
		r.Get("/stats", s.handleRunStats)
		r.Get("/whoami", s.handleWhoAmI)
		r.Get("/{id}", s.handleGetRun)
	})
}

type simulateReq struct {
	solverReq
	Answer   string `json:"answer"` // optional; random when empty
	HardMode *bool  `json:"hardMode"`
}

// solverFor builds a session.Solver from the request over the server config.
func (s *Server) solverFor(req solverReq, hard *bool) (*session.Solver, error) {
	mode, err := solver.ParseMode(firstNonEmpty(req.Mode, s.cfg.FilterMode))
	if err != nil {
		return nil, err
	}
	strategy := firstNonEmpty(req.Strategy, s.cfg.Strategy)
	seed := s.cfg.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	if _, err := solver.ParseStrategy(strategy, seed); err != nil {
		return nil, err
	}
	opening := firstNonEmpty(req.Opening, s.cfg.OpeningWord)
	if _, ok := words.Normalize(opening); !ok {
		return nil, fmt.Errorf("opening word %q must be 5 letters A-Z", opening)
	}
	sv := &session.Solver{
		List:     s.list,
		Dict:     s.dict,
		Mode:     mode,
		Strategy: strings.ToLower(strategy),
		Seed:     seed,
		Opening:  opening,
		HardMode: s.cfg.HardMode,
		Logger:   log.Logger,
	}
	if hard != nil {
		sv.HardMode = *hard
	}
	return sv, nil
}

// handleSimulate plays one local game and records it.
// Solver failures (exhausted pool, a hard-mode violation in legacy mode) are
// still recorded and returned with 200; the run's outcome is "aborted" and its
// error set.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
	}
	answer := strings.ToUpper(strings.TrimSpace(req.Answer))
	if answer != "" && !s.list.Contains(answer) {
		writeError(w, http.StatusBadRequest, "unknown_answer", answer)
		return
	}
	sv, err := s.solverFor(req.solverReq, req.HardMode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_config", err.Error())
		return
	}

	res, g, err := sv.Play(r.Context(), answer)
	if res == nil {
		writeError(w, http.StatusInternalServerError, "simulate_failed", err.Error())
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("answer", g.Answer).Msg("simulation aborted")
	}
	run := sv.Record("api", g.Answer, res, err)
	if err := s.store.Save(r.Context(), run); err != nil {
		log.Warn().Err(err).Str("run", run.ID).Msg("save run")
	}
	_ = json.NewEncoder(w).Encode(run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		log.Warn().Err(err).Msg("list runs")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"runs": runs})
}

func (s *Server) handleRunStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Stats(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("run stats")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	if err != nil {
		log.Warn().Err(err).Msg("get run")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	_ = json.NewEncoder(w).Encode(run)
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Context().Value(ctxClientKey{}).(*authClient)
	if c == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "auth disabled")
		return
	}
	_ = json.NewEncoder(w).Encode(c)
}
