// internal/httpserver/routes_daily.go
//
// HTTP routes for the local daily puzzle.
// Exposes three endpoints under /daily:
//   - GET  /daily/today       → today's date and word index (never the answer)
//   - POST /daily/solve       → let a solver configuration play today's puzzle
//   - GET  /daily/leaderboard → configurations ranked for today (or ?date=)
//
// Each configuration ("mode/strategy") plays once per day; the result is
// stored in daily_results and the full run in the run store.
// Deterministic word selection is based on date + salt.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/davidsrrose/wordle-bot/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleDailyToday)
		r.Post("/solve", s.handleDailySolve)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// today returns the puzzle for the current UTC date.
func (s *Server) today() daily.Puzzle {
	return daily.For(s.now(), s.cfg.DailySalt, s.list)
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.today())
}

// dailySolveRes is returned by /daily/solve.
type dailySolveRes struct {
	Date    string        `json:"date"`
	Solver  string        `json:"solver"`
	Played  bool          `json:"played"` // true if this solver already had a result today
	Result  *daily.Result `json:"result,omitempty"`
	Summary string        `json:"summary,omitempty"`
}

// handleDailySolve plays today's puzzle once per solver configuration.
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	var req solverReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
	}
	sv, err := s.solverFor(req, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_config", err.Error())
		return
	}
	p := s.today()
	name := sv.Name()

	// Check if already played (persisted in DB).
	played, err := s.daily.AlreadyPlayed(r.Context(), name, p.Date)
	if err != nil {
		log.Warn().Err(err).Str("solver", name).Msg("check daily result")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	if played {
		_ = json.NewEncoder(w).Encode(dailySolveRes{Date: p.Date, Solver: name, Played: true})
		return
	}

	res, _, err := sv.Play(r.Context(), p.Answer)
	if res == nil {
		writeError(w, http.StatusInternalServerError, "simulate_failed", err.Error())
		return
	}
	run := sv.Record("daily", p.Answer, res, err)
	run.Date = p.Date
	if err := s.store.Save(r.Context(), run); err != nil {
		log.Warn().Err(err).Str("run", run.ID).Msg("save run")
	}

	result := daily.Result{
		Solver:    name,
		Date:      p.Date,
		WordIndex: p.Index,
		Guesses:   len(res.Guesses),
		Won:       res.Won(),
		ElapsedMs: run.ElapsedMs,
	}
	if err := s.daily.InsertResult(r.Context(), result); err != nil {
		log.Warn().Err(err).Str("solver", name).Msg("insert daily result")
	}
	_ = json.NewEncoder(w).Encode(dailySolveRes{Date: p.Date, Solver: name, Result: &result, Summary: res.Summary})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Warn().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
