// internal/session/session.go
//
// Driver loop for one game.
// Responsibilities:
//   - Ask the picker for a guess, hand it to the player, read the board back.
//   - Stop when the board shows a win or a loss (IsOver).
//   - Abort on picker errors (malformed feedback, exhausted pool), player
//     errors, or a guess that never lands on the board.
//   - Collect the share summary when the player can produce one.
//
// The player is whatever drives the actual game: the browser adapter for the
// real page, or game.Player for a local game.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davidsrrose/wordle-bot/internal/feedback"
)

// ErrNoProgress means a guess was submitted but no new row appeared,
// typically because the game rejected the word.
var ErrNoProgress = errors.New("guess did not register")

// Player submits guesses and reports the board.
// ReadFeedback returns an empty (or all-empty) board before the first guess.
type Player interface {
	EnterGuess(ctx context.Context, guess string) error
	ReadFeedback(ctx context.Context) (feedback.Board, error)
}

// Summarizer is implemented by players that can produce share text.
type Summarizer interface {
	Summary(ctx context.Context) (string, error)
}

// Chooser picks the next guess from the board so far.
type Chooser interface {
	ChooseWord(board feedback.Board) (string, error)
}

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
	OutcomeAborted Outcome = "aborted"
)

// Result describes a finished (or aborted) run.
type Result struct {
	ID       string         `json:"id"`
	Outcome  Outcome        `json:"outcome"`
	Guesses  []string       `json:"guesses"`
	Board    feedback.Board `json:"-"`
	Summary  string         `json:"summary,omitempty"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
}

// Won reports whether the run ended in a win.
func (r *Result) Won() bool { return r.Outcome == OutcomeWon }

// Option tweaks Run.
type Option func(*runner)

type runner struct {
	log      zerolog.Logger
	maxTurns int
}

// WithLogger injects the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option { return func(r *runner) { r.log = l } }

// WithMaxTurns bounds the number of guesses submitted (default 6).
func WithMaxTurns(n int) Option {
	return func(r *runner) {
		if n > 0 {
			r.maxTurns = n
		}
	}
}

// IsWon reports whether any row is fully correct.
func IsWon(board feedback.Board) bool {
	for _, row := range board {
		if row.AllCorrect() {
			return true
		}
	}
	return false
}

// IsLost reports whether every row has been played without a win.
// An empty board is not lost.
func IsLost(board feedback.Board) bool {
	if len(board) == 0 || IsWon(board) {
		return false
	}
	for _, row := range board {
		if row.IsEmpty() {
			return false
		}
	}
	return true
}

// IsOver reports whether the game has reached a terminal state.
func IsOver(board feedback.Board) bool {
	return IsWon(board) || IsLost(board)
}

// Run plays one game to completion.
// On error the returned Result is still populated with everything seen so far
// and its Outcome is OutcomeAborted.
func Run(ctx context.Context, p Player, c Chooser, opts ...Option) (*Result, error) {
	r := runner{log: zerolog.Nop(), maxTurns: 6}
	for _, o := range opts {
		o(&r)
	}

	res := &Result{
		ID:      uuid.NewString(),
		Outcome: OutcomeAborted,
		Guesses: []string{},
		Started: time.Now().UTC(),
	}
	log := r.log.With().Str("run", res.ID).Logger()
	finish := func(err error) (*Result, error) {
		res.Finished = time.Now().UTC()
		return res, err
	}

	var board feedback.Board
	for !IsOver(board) {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		if len(res.Guesses) >= r.maxTurns {
			return finish(fmt.Errorf("no result after %d guesses", len(res.Guesses)))
		}

		guess, err := c.ChooseWord(board)
		if err != nil {
			log.Warn().Err(err).Int("turn", len(res.Guesses)+1).Msg("picker failed")
			return finish(fmt.Errorf("choose word: %w", err))
		}

		played := len(board.Played())
		if err := p.EnterGuess(ctx, guess); err != nil {
			return finish(fmt.Errorf("enter guess %s: %w", guess, err))
		}
		res.Guesses = append(res.Guesses, guess)

		board, err = p.ReadFeedback(ctx)
		if err != nil {
			return finish(fmt.Errorf("read feedback: %w", err))
		}
		res.Board = board
		if len(board.Played()) <= played {
			return finish(fmt.Errorf("%w: %s", ErrNoProgress, guess))
		}
		log.Info().Str("guess", guess).Str("pattern", board.Played()[played].Pattern()).Msg("feedback")
	}

	if IsWon(board) {
		res.Outcome = OutcomeWon
		log.Info().Int("guesses", len(res.Guesses)).Msg("game won")
	} else {
		res.Outcome = OutcomeLost
		log.Info().Msg("game lost")
	}

	if s, ok := p.(Summarizer); ok {
		text, err := s.Summary(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("share summary unavailable")
		} else {
			res.Summary = text
		}
	}
	return finish(nil)
}
