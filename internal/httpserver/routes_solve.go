// internal/httpserver/routes_solve.go
//
// Interactive solving: a client plays Wordle somewhere else and asks for the
// next guess after every turn.
//   - POST /solve/new   → start a session, returns the opening guess
//   - POST /solve/next  → send the whole board so far, get the next guess
//   - GET  /solve/{id}  → session state and a sample of the remaining pool
//
// Board rows are either a pattern string ("GYB..", also "210..") or five
// mark words ("hit", "present", "miss", ...).

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
	"github.com/davidsrrose/wordle-bot/internal/solver"
	"github.com/davidsrrose/wordle-bot/internal/words"
)

// solveSession is one client game.
type solveSession struct {
	mu       sync.Mutex // guards picker
	picker   *solver.Picker
	mode     string
	strategy string
	created  time.Time
}

func (s *Server) mountSolve(r chi.Router) {
	r.Route("/solve", func(r chi.Router) {
		r.Post("/new", s.handleSolveNew)
		r.Post("/next", s.handleSolveNext)
		r.Get("/{id}", s.handleSolveGet)
	})
}

// solverReq selects a picker configuration; empty fields use the server config.
type solverReq struct {
	Mode     string  `json:"mode"`
	Strategy string  `json:"strategy"`
	Seed     *uint64 `json:"seed"`
	Opening  string  `json:"opening"`
}

// newPicker builds a picker from the request over the server config.
func (s *Server) newPicker(req solverReq) (*solver.Picker, string, string, error) {
	modeName := firstNonEmpty(req.Mode, s.cfg.FilterMode)
	mode, err := solver.ParseMode(modeName)
	if err != nil {
		return nil, "", "", err
	}
	seed := s.cfg.Seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	strategyName := firstNonEmpty(req.Strategy, s.cfg.Strategy)
	strategy, err := solver.ParseStrategy(strategyName, seed)
	if err != nil {
		return nil, "", "", err
	}
	opening, ok := words.Normalize(firstNonEmpty(req.Opening, s.cfg.OpeningWord))
	if !ok {
		return nil, "", "", fmt.Errorf("opening word %q must be 5 letters A-Z", firstNonEmpty(req.Opening, s.cfg.OpeningWord))
	}
	p := solver.NewPicker(s.dict,
		solver.WithMode(mode),
		solver.WithStrategy(strategy),
		solver.WithOpeningWord(opening),
		solver.WithLogger(log.Logger),
	)
	return p, mode.String(), strategy.Name(), nil
}

type solveNewRes struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Mode      string `json:"mode"`
	Strategy  string `json:"strategy"`
	Remaining int    `json:"remaining"`
}

// handleSolveNew creates a session and returns the opening guess.
func (s *Server) handleSolveNew(w http.ResponseWriter, r *http.Request) {
	var req solverReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
	}
	picker, mode, strategy, err := s.newPicker(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_config", err.Error())
		return
	}
	guess, err := picker.ChooseWord(nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "picker_failed", err.Error())
		return
	}

	id := uuid.NewString()
	if evicted := s.sessions.Add(id, &solveSession{picker: picker, mode: mode, strategy: strategy, created: s.now()}); evicted {
		log.Debug().Msg("solve session evicted")
	}
	_ = json.NewEncoder(w).Encode(solveNewRes{
		SessionID: id, Guess: guess, Mode: mode, Strategy: strategy, Remaining: len(picker.Remaining()),
	})
}

// rowReq is one played row.
type rowReq struct {
	Guess   string   `json:"guess"`
	Pattern string   `json:"pattern,omitempty"`
	Marks   []string `json:"marks,omitempty"`
}

type solveNextReq struct {
	SessionID string   `json:"sessionId"`
	Board     []rowReq `json:"board"`
}

type solveNextRes struct {
	Guess     string `json:"guess"`
	Remaining int    `json:"remaining"`
	State     string `json:"state"`
}

// decodeBoard turns request rows into a feedback.Board.
func decodeBoard(rows []rowReq) (feedback.Board, error) {
	board := make(feedback.Board, 0, len(rows))
	for i, rr := range rows {
		var row feedback.Row
		var err error
		if rr.Marks != nil {
			row, err = feedback.ParseMarks(rr.Guess, rr.Marks)
		} else {
			row, err = feedback.ParsePattern(rr.Guess, rr.Pattern)
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		board = append(board, row)
	}
	return board, nil
}

// handleSolveNext feeds the board to the session's picker.
//   - 400 malformed feedback (pool untouched)
//   - 404 unknown or evicted session
//   - 409 pool exhausted (terminal for the session)
func (s *Server) handleSolveNext(w http.ResponseWriter, r *http.Request) {
	var req solveNextReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	sess, ok := s.sessions.Get(req.SessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown session")
		return
	}
	board, err := decodeBoard(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed_feedback", err.Error())
		return
	}

	sess.mu.Lock()
	guess, err := sess.picker.ChooseWord(board)
	remaining, state := len(sess.picker.Remaining()), sess.picker.State()
	sess.mu.Unlock()

	switch {
	case errors.Is(err, feedback.ErrMalformedFeedback):
		writeError(w, http.StatusBadRequest, "malformed_feedback", err.Error())
		return
	case errors.Is(err, solver.ErrExhaustedPool):
		log.Warn().Err(err).Str("session", req.SessionID).Msg("pool exhausted")
		writeError(w, http.StatusConflict, "exhausted", err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "picker_failed", err.Error())
		return
	}
	_ = json.NewEncoder(w).Encode(solveNextRes{Guess: guess, Remaining: remaining, State: state.String()})
}

type solveGetRes struct {
	SessionID  string    `json:"sessionId"`
	State      string    `json:"state"`
	Mode       string    `json:"mode"`
	Strategy   string    `json:"strategy"`
	Remaining  int       `json:"remaining"`
	Candidates []string  `json:"candidates"`
	Created    time.Time `json:"created"`
}

// handleSolveGet reports the session without changing it.
func (s *Server) handleSolveGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.Peek(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown session")
		return
	}
	sess.mu.Lock()
	remaining := sess.picker.Remaining()
	state := sess.picker.State()
	sess.mu.Unlock()

	sample := remaining
	if len(sample) > 20 {
		sample = sample[:20]
	}
	_ = json.NewEncoder(w).Encode(solveGetRes{
		SessionID: id, State: state.String(), Mode: sess.mode, Strategy: sess.strategy,
		Remaining: len(remaining), Candidates: sample, Created: sess.created,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
